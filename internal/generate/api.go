package generate

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/hatch-dev/hatch/internal/output"
	"github.com/hatch-dev/hatch/internal/plugin"
	"github.com/hatch-dev/hatch/internal/project"
	"github.com/hatch-dev/hatch/internal/render"
)

// api implements plugin.GeneratorAPI for one plugin.
type api struct {
	fs       afero.Fs
	info     plugin.Info
	dir      string
	applyAll bool
	meta     project.Metadata
}

var _ plugin.GeneratorAPI = (*api)(nil)

func (a *api) PluginID() string           { return a.info.ID }
func (a *api) Options() map[string]any    { return a.info.Options }
func (a *api) ProjectDir() string         { return a.dir }
func (a *api) ApplyAll() bool             { return a.applyAll }
func (a *api) Metadata() project.Metadata { return a.meta }

func (a *api) path(rel string) (string, error) {
	p := filepath.FromSlash(rel)
	if !filepath.IsLocal(p) {
		return "", fmt.Errorf("path %q escapes the project directory", rel)
	}
	return filepath.Join(a.dir, p), nil
}

func (a *api) Exists(rel string) bool {
	p, err := a.path(rel)
	if err != nil {
		return false
	}
	ok, _ := afero.Exists(a.fs, p)
	return ok
}

func (a *api) ReadFile(rel string) ([]byte, error) {
	p, err := a.path(rel)
	if err != nil {
		return nil, err
	}
	return afero.ReadFile(a.fs, p)
}

func (a *api) WriteFile(rel string, content []byte) (bool, error) {
	p, err := a.path(rel)
	if err != nil {
		return false, err
	}
	if !a.applyAll {
		exists, err := afero.Exists(a.fs, p)
		if err != nil {
			return false, fmt.Errorf("checking %s: %w", rel, err)
		}
		if exists {
			output.Debug("keeping existing file", "plugin", a.info.ID, "path", rel)
			return false, nil
		}
	}
	if err := a.fs.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return false, fmt.Errorf("creating directory for %s: %w", rel, err)
	}
	if err := afero.WriteFile(a.fs, p, content, 0o644); err != nil {
		return false, fmt.Errorf("writing %s: %w", rel, err)
	}
	output.Debug("generated", "plugin", a.info.ID, "path", rel)
	return true, nil
}

func (a *api) UpdateFile(rel string, update func(old []byte) ([]byte, error)) error {
	p, err := a.path(rel)
	if err != nil {
		return err
	}
	old, err := afero.ReadFile(a.fs, p)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading %s: %w", rel, err)
	}
	content, err := update(old)
	if err != nil {
		return err
	}
	if bytes.Equal(content, old) && old != nil {
		return nil
	}
	if err := a.fs.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", rel, err)
	}
	if err := afero.WriteFile(a.fs, p, content, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", rel, err)
	}
	output.Debug("updated", "plugin", a.info.ID, "path", rel)
	return nil
}

func (a *api) RenderString(text string, data map[string]any) (string, error) {
	if data == nil {
		data = a.meta.Context()
	}
	return render.RenderString(text, data)
}
