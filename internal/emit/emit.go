package emit

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/hatch-dev/hatch/internal/output"
	"github.com/hatch-dev/hatch/internal/project"
)

// WriteError reports the first path that could not be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Emitter writes file sets to a filesystem.
type Emitter struct {
	fs afero.Fs
}

// New returns an Emitter writing to fsys. A nil fsys means the OS
// filesystem.
func New(fsys afero.Fs) *Emitter {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Emitter{fs: fsys}
}

// Sync writes every entry of files under targetDir, creating parent
// directories and overwriting existing files. Each file gets the mode modes
// records for it, project.DefaultMode otherwise; a nil modes is valid. Files
// already in targetDir but absent from files are left alone. On failure,
// entries written so far stay on disk.
func (e *Emitter) Sync(targetDir string, files project.FileSet, modes project.Modes) error {
	for _, rel := range files.Paths() {
		dst := filepath.Join(targetDir, filepath.FromSlash(rel))
		mode := modes.Get(rel)
		if err := e.fs.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return &WriteError{Path: dst, Err: err}
		}
		if err := afero.WriteFile(e.fs, dst, files[rel], mode); err != nil {
			return &WriteError{Path: dst, Err: err}
		}
		// WriteFile only applies mode to files it creates.
		if err := e.fs.Chmod(dst, mode); err != nil {
			return &WriteError{Path: dst, Err: err}
		}
	}
	output.Debug("emitted files", "dir", targetDir, "count", len(files))
	return nil
}
