package template

import (
	"archive/tar"
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/klauspost/compress/gzip"
)

// DefaultStripComponents drops the single top-level directory npm (and most
// forge tarball endpoints) wrap archive contents in.
const DefaultStripComponents = 1

// sourceReader records read failures of the underlying stream so they can be
// told apart from archive format errors.
type sourceReader struct {
	r   io.Reader
	err error
}

func (s *sourceReader) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	if err != nil && err != io.EOF {
		s.err = err
	}
	return n, err
}

// Extract streams a tar or tar.gz archive from r into dest, dropping the
// first strip path components of every entry. Entries that would land
// outside dest are confined to it. Directories, regular files and symlinks
// are written; a symlink whose target leaves dest is an *ExtractionError.
// Other entry types are skipped.
func Extract(r io.Reader, dest string, strip int) error {
	return extract(&sourceReader{r: r}, dest, strip)
}

func extract(src *sourceReader, dest string, strip int) error {
	br := bufio.NewReader(src)

	var archive io.Reader = br
	magic, err := br.Peek(2)
	if err != nil && err != io.EOF {
		if src.err != nil {
			return src.err
		}
		return &ExtractionError{Err: err}
	}
	if len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return readFailure(src, err)
		}
		defer gz.Close()
		archive = gz
	}

	tr := tar.NewReader(archive)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return readFailure(src, err)
		}

		rel, ok := stripPath(hdr.Name, strip)
		if !ok {
			continue
		}
		target, err := securejoin.SecureJoin(dest, rel)
		if err != nil {
			return &ExtractionError{Err: fmt.Errorf("entry %s: %w", hdr.Name, err)}
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("creating directory %s: %w", target, err)
			}
		case tar.TypeReg:
			if err := writeEntry(tr, target, hdr.FileInfo().Mode().Perm()); err != nil {
				return readFailure(src, err)
			}
		case tar.TypeSymlink:
			if err := writeSymlink(dest, target, hdr.Linkname); err != nil {
				return &ExtractionError{Err: fmt.Errorf("entry %s: %w", hdr.Name, err)}
			}
		default:
			// Hard links and devices are not part of templates.
		}
	}
}

// readFailure classifies err: a failure of the source stream is returned as
// is so the caller can report it as a download error, anything else is a
// malformed archive.
func readFailure(src *sourceReader, err error) error {
	if src.err != nil {
		return src.err
	}
	var fsErr *os.PathError
	if errors.As(err, &fsErr) {
		return err
	}
	return &ExtractionError{Err: err}
}

func writeEntry(r io.Reader, target string, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm|0o600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// writeSymlink creates target pointing at linkname, which must be relative
// and resolve inside dest.
func writeSymlink(dest, target, linkname string) error {
	if linkname == "" || path.IsAbs(linkname) || filepath.IsAbs(linkname) {
		return fmt.Errorf("link target %q must be relative", linkname)
	}
	resolved := filepath.Join(filepath.Dir(target), filepath.FromSlash(linkname))
	// Every link is checked this way, so following a chain of links never
	// leaves dest either.
	if rel, err := filepath.Rel(dest, resolved); err != nil || !filepath.IsLocal(rel) {
		return fmt.Errorf("link target %q escapes the archive root", linkname)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return os.Symlink(linkname, target)
}

// stripPath removes the first n components of an archive entry name.
func stripPath(name string, n int) (string, bool) {
	name = strings.TrimPrefix(path.Clean("/"+strings.ReplaceAll(name, "\\", "/")), "/")
	if name == "" {
		return "", false
	}
	parts := strings.Split(name, "/")
	if len(parts) <= n {
		return "", false
	}
	return strings.Join(parts[n:], "/"), true
}
