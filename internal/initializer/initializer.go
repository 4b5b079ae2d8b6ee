package initializer

import (
	"context"

	"github.com/hatch-dev/hatch/internal/branding"
	"github.com/hatch-dev/hatch/internal/generate"
	"github.com/hatch-dev/hatch/internal/output"
	"github.com/hatch-dev/hatch/internal/pkgmgr"
	"github.com/hatch-dev/hatch/internal/plugin"
)

// Installer installs npm dependencies.
type Installer interface {
	InstallProject(ctx context.Context, dir string) error
	Install(ctx context.Context, dir string, modules []string, opts pkgmgr.InstallOptions) error
}

// Generator runs plugin generators against a project.
type Generator interface {
	Generate(ctx context.Context, req generate.Request) error
}

// Options configures an Initializer.
type Options struct {
	Installer Installer
	Generator Generator
	// Builtins are generated into every new project.
	Builtins []plugin.Info
	// ToolPackage is installed as a dev dependency so the project can run
	// generation itself. Defaults to the branded CLI package.
	ToolPackage string
	// SkipInstall leaves dependencies alone; generation still runs.
	SkipInstall bool
}

// Initializer sets up a freshly emitted project.
type Initializer struct {
	opts Options
}

// New returns an Initializer.
func New(opts Options) *Initializer {
	if opts.ToolPackage == "" {
		opts.ToolPackage = branding.ToolPackage()
	}
	return &Initializer{opts: opts}
}

// Init installs the project's dependencies, installs the tool package and
// runs the built-in generation pass, in that order. The first failure is
// returned; earlier steps are not undone.
func (i *Initializer) Init(ctx context.Context, dir string) error {
	if i.opts.SkipInstall {
		output.Info("skipping dependency installation", "dir", dir)
	} else {
		output.Debug("installing project dependencies", "dir", dir)
		if err := i.opts.Installer.InstallProject(ctx, dir); err != nil {
			return err
		}
		output.Debug("installing tool package", "package", i.opts.ToolPackage)
		if err := i.opts.Installer.Install(ctx, dir, []string{i.opts.ToolPackage}, pkgmgr.InstallOptions{SaveDev: true}); err != nil {
			return err
		}
	}

	return i.opts.Generator.Generate(ctx, generate.Request{
		Dir:      dir,
		Plugins:  i.opts.Builtins,
		ApplyAll: false,
	})
}
