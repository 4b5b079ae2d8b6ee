package generate

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/hatch-dev/hatch/internal/hook"
	"github.com/hatch-dev/hatch/internal/output"
	"github.com/hatch-dev/hatch/internal/plugin"
	"github.com/hatch-dev/hatch/internal/project"
	"github.com/hatch-dev/hatch/internal/projectconfig"
)

// Stage names generator failures in a hook.HandlerError.
const Stage = "generate"

// Transform edits the project before any plugin generates into it.
type Transform func(ctx context.Context, fsys afero.Fs, dir string) error

// Request describes one generation run.
type Request struct {
	Dir     string
	Plugins []plugin.Info
	// ApplyAll lets plugins overwrite files that already exist.
	ApplyAll   bool
	Transforms []Transform
}

// Generator applies plugin generators to a project directory.
type Generator struct {
	fs       afero.Fs
	registry *plugin.Registry
}

// New returns a Generator over fsys. A nil fsys means the OS filesystem.
func New(fsys afero.Fs, registry *plugin.Registry) *Generator {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Generator{fs: fsys, registry: registry}
}

// Generate runs the transforms in order, then each plugin's Generator in
// order. The first failure stops the run; files already written stay.
func (g *Generator) Generate(ctx context.Context, req Request) error {
	dir, err := filepath.Abs(req.Dir)
	if err != nil {
		return fmt.Errorf("resolving project dir: %w", err)
	}

	for _, t := range req.Transforms {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := t(ctx, g.fs, dir); err != nil {
			return err
		}
	}

	resolved, err := g.registry.Resolve(nil, req.Plugins)
	if err != nil {
		return err
	}
	if len(resolved) == 0 {
		return nil
	}

	meta, err := g.metadata(dir)
	if err != nil {
		return err
	}

	for _, r := range resolved {
		if err := ctx.Err(); err != nil {
			return err
		}
		output.Debug("generate", "plugin", r.Info.ID, "dir", dir, "applyAll", req.ApplyAll)
		a := &api{
			fs:       g.fs,
			info:     r.Info,
			dir:      dir,
			applyAll: req.ApplyAll,
			meta:     meta,
		}
		if err := r.Plugin.Generator(a); err != nil {
			return &hook.HandlerError{Stage: Stage, PluginID: r.Info.ID, Err: err}
		}
	}
	return nil
}

// metadata reads the project config. A project whose config was removed by
// a plugin still generates, named after its directory.
func (g *Generator) metadata(dir string) (project.Metadata, error) {
	cfg, err := projectconfig.Load(g.fs, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			output.Debug("no project config, using directory name", "dir", dir)
			return project.Metadata{ProjectName: filepath.Base(dir)}, nil
		}
		return project.Metadata{}, err
	}
	return cfg.Metadata(), nil
}
