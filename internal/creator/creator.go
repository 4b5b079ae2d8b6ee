package creator

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"

	"github.com/hatch-dev/hatch/internal/branding"
	"github.com/hatch-dev/hatch/internal/emit"
	"github.com/hatch-dev/hatch/internal/generate"
	"github.com/hatch-dev/hatch/internal/hook"
	"github.com/hatch-dev/hatch/internal/initializer"
	"github.com/hatch-dev/hatch/internal/output"
	"github.com/hatch-dev/hatch/internal/pkgmgr"
	"github.com/hatch-dev/hatch/internal/plugin"
	"github.com/hatch-dev/hatch/internal/project"
	"github.com/hatch-dev/hatch/internal/projectconfig"
	"github.com/hatch-dev/hatch/internal/render"
	"github.com/hatch-dev/hatch/internal/template"
)

// Stage names.
const (
	StagePrepare         = "prepare"
	StageResolveTemplate = "resolveTemplate"
	StageRender          = "render"
	StageBeforeEmit      = "beforeEmit"
	StageEmit            = "emit"
	StageInit            = "init"
	StageAfterInit       = "afterInit"
)

// CoreID attributes the default handlers in stage errors.
var CoreID = branding.PluginID("core")

// TemplateResolver turns a template reference into a local directory.
type TemplateResolver interface {
	Resolve(ctx context.Context, ref string) (string, error)
}

// Renderer renders a template directory into a file set and the
// permissions of its files.
type Renderer interface {
	RenderAll(sourceDir, pattern string, data map[string]any) (project.FileSet, project.Modes, error)
}

// Emitter writes a file set to disk.
type Emitter interface {
	Sync(targetDir string, files project.FileSet, modes project.Modes) error
}

// Initializer sets up an emitted project.
type Initializer interface {
	Init(ctx context.Context, dir string) error
}

// Generator runs plugin generators against a project.
type Generator interface {
	Generate(ctx context.Context, req generate.Request) error
}

// PackageManager installs modules and runs commands.
type PackageManager interface {
	InstallProject(ctx context.Context, dir string) error
	Install(ctx context.Context, dir string, modules []string, opts pkgmgr.InstallOptions) error
	TarballURL(ctx context.Context, name string) (string, error)
	Exec(ctx context.Context, dir, command string, args ...string) ([]byte, error)
}

// Options configures a Creator. Registry and PackageManager are required;
// the other collaborators default to the standard implementations.
type Options struct {
	Registry       *plugin.Registry
	PackageManager PackageManager

	// Builtins are registered before Plugins, in order.
	Builtins []plugin.Info
	// Plugins are the user-declared plugins.
	Plugins []plugin.Info

	Fs          afero.Fs
	Resolver    TemplateResolver
	Renderer    Renderer
	Emitter     Emitter
	Generator   Generator
	Initializer Initializer

	// Pattern selects template files to render. Defaults to every file.
	Pattern string
	// SkipInstall turns dependency installation into a no-op.
	SkipInstall bool
}

// CreateOptions are the inputs of one Create call.
type CreateOptions struct {
	ProjectName string
	AppID       string
	Template    string
	// TargetDir defaults to ProjectName under the working directory.
	TargetDir string
}

// Creator owns the hook stages and drives them.
type Creator struct {
	opts Options

	prepare         *hook.Waterfall[project.Metadata]
	resolveTemplate *hook.Waterfall[string]
	render          *hook.Series[*project.RenderInput]
	beforeEmit      *hook.Series[project.FileSet]
	emit            *hook.Series[*project.EmitInput]
	initStage       *hook.Series[string]
	afterInit       *hook.Series[string]

	initOnce sync.Once
	initErr  error
	resolved []plugin.Resolved
}

// New validates opts and fills in default collaborators.
func New(opts Options) (*Creator, error) {
	if opts.Registry == nil {
		return nil, errors.New("creator: a plugin registry is required")
	}
	if opts.PackageManager == nil {
		return nil, errors.New("creator: a package manager is required")
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Pattern == "" {
		opts.Pattern = render.DefaultPattern
	}
	if opts.Resolver == nil {
		opts.Resolver = template.NewResolver(template.WithLookup(opts.PackageManager))
	}
	if opts.Renderer == nil {
		opts.Renderer = render.New(opts.Fs)
	}
	if opts.Emitter == nil {
		opts.Emitter = emit.New(opts.Fs)
	}
	if opts.Generator == nil {
		opts.Generator = generate.New(opts.Fs, opts.Registry)
	}
	if opts.Initializer == nil {
		opts.Initializer = initializer.New(initializer.Options{
			Installer:   opts.PackageManager,
			Generator:   opts.Generator,
			Builtins:    opts.Builtins,
			SkipInstall: opts.SkipInstall,
		})
	}

	return &Creator{
		opts:            opts,
		prepare:         hook.NewWaterfall[project.Metadata](StagePrepare),
		resolveTemplate: hook.NewWaterfall[string](StageResolveTemplate),
		render:          hook.NewSeries[*project.RenderInput](StageRender),
		beforeEmit:      hook.NewSeries[project.FileSet](StageBeforeEmit),
		emit:            hook.NewSeries[*project.EmitInput](StageEmit),
		initStage:       hook.NewSeries[string](StageInit),
		afterInit:       hook.NewSeries[string](StageAfterInit),
	}, nil
}

// InitPlugins taps the core handlers, then resolves every plugin and calls
// its Creator once, built-ins first. Later calls return the first result.
func (c *Creator) InitPlugins() error {
	c.initOnce.Do(func() {
		c.tapDefaults()

		resolved, err := c.opts.Registry.Resolve(c.opts.Builtins, c.opts.Plugins)
		if err != nil {
			c.initErr = err
			return
		}
		c.resolved = resolved

		for _, r := range resolved {
			output.Debug("registering plugin", "plugin", r.Info.ID, "builtin", r.BuiltIn)
			if err := r.Plugin.Creator(&API{creator: c, info: r.Info}); err != nil {
				c.initErr = fmt.Errorf("registering plugin %s: %w", r.Info.ID, err)
				return
			}
		}
	})
	return c.initErr
}

func (c *Creator) tapDefaults() {
	c.resolveTemplate.Tap(CoreID, func(ctx context.Context, ref string) (string, error) {
		return c.opts.Resolver.Resolve(ctx, ref)
	})
	c.render.Tap(CoreID, func(_ context.Context, in *project.RenderInput) error {
		files, modes, err := c.opts.Renderer.RenderAll(in.TemplateDir, c.opts.Pattern, in.Metadata.Context())
		if err != nil {
			return err
		}
		for p, content := range files {
			in.Files.Set(p, content)
		}
		for p, mode := range modes {
			in.Modes.Set(p, mode)
		}
		return nil
	})
	c.emit.Tap(CoreID, func(_ context.Context, in *project.EmitInput) error {
		return c.opts.Emitter.Sync(in.TargetDir, in.Files, in.Modes)
	})
	c.initStage.Tap(CoreID, func(ctx context.Context, dir string) error {
		return c.opts.Initializer.Init(ctx, dir)
	})
}

// Create generates a project. Stages run strictly in order and the first
// failure aborts the rest; files already written are left on disk.
func (c *Creator) Create(ctx context.Context, opts CreateOptions) error {
	if err := c.InitPlugins(); err != nil {
		return err
	}

	session := newSession()
	scope := template.NewScope()
	defer closeScope(scope)
	ctx = withSession(ctx, session)
	ctx = template.WithScope(ctx, scope)
	output.Debug("create", "session", session.ID(), "project", opts.ProjectName)

	meta, err := runWaterfall(ctx, c.prepare, project.Metadata{
		ProjectName: opts.ProjectName,
		AppID:       opts.AppID,
		Template:    opts.Template,
	})
	if err != nil {
		return err
	}
	if err := meta.Validate(); err != nil {
		return &hook.HandlerError{Stage: StagePrepare, PluginID: CoreID, Err: err}
	}
	session.setMetadata(meta)

	templateDir, err := runWaterfall(ctx, c.resolveTemplate, meta.Template)
	if err != nil {
		return err
	}

	files := project.NewFileSet()
	modes := project.Modes{}
	err = runSeries(ctx, c.render, &project.RenderInput{Metadata: meta, TemplateDir: templateDir, Files: files, Modes: modes})
	closeScope(scope)
	if err != nil {
		return err
	}

	if err := runSeries(ctx, c.beforeEmit, files); err != nil {
		return err
	}

	target := opts.TargetDir
	if target == "" {
		target = meta.ProjectName
	}
	target, err = filepath.Abs(target)
	if err != nil {
		return fmt.Errorf("resolving target dir: %w", err)
	}

	if err := runSeries(ctx, c.emit, &project.EmitInput{TargetDir: target, Files: files, Modes: modes}); err != nil {
		return err
	}
	if err := runSeries(ctx, c.initStage, target); err != nil {
		return err
	}
	return runSeries(ctx, c.afterInit, target)
}

// InstallPlugin adds plugins to the project in dir: it installs the npm
// packages backing them, appends their ids to the project config and
// regenerates their files over what is on disk. An empty ids is a no-op.
// Nothing is installed unless dir holds a valid project config.
func (c *Creator) InstallPlugin(ctx context.Context, dir string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	if _, err := projectconfig.Load(c.opts.Fs, dir); err != nil {
		return err
	}
	pkgs, err := c.opts.Registry.Packages(ids)
	if err != nil {
		return err
	}
	if err := c.installNodeModules(ctx, dir, pkgs, pkgmgr.InstallOptions{}); err != nil {
		return err
	}

	infos := make([]plugin.Info, len(ids))
	for i, id := range ids {
		infos[i] = plugin.Info{ID: id}
	}
	return c.opts.Generator.Generate(ctx, generate.Request{
		Dir:        dir,
		Plugins:    infos,
		ApplyAll:   true,
		Transforms: []generate.Transform{appendPlugins(ids)},
	})
}

func (c *Creator) installNodeModules(ctx context.Context, dir string, modules []string, opts pkgmgr.InstallOptions) error {
	if len(modules) == 0 {
		return nil
	}
	if c.opts.SkipInstall {
		output.Debug("skipping install", "modules", modules, "dir", dir)
		return nil
	}
	return c.opts.PackageManager.Install(ctx, dir, modules, opts)
}

// appendPlugins records ids in the project config file.
func appendPlugins(ids []string) generate.Transform {
	return func(_ context.Context, fsys afero.Fs, dir string) error {
		path := projectconfig.Path(dir)
		data, err := afero.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("reading project config: %w", err)
		}
		out, err := projectconfig.AppendPlugins(data, ids)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		info, err := fsys.Stat(path)
		if err != nil {
			return err
		}
		if err := afero.WriteFile(fsys, path, out, info.Mode().Perm()); err != nil {
			return fmt.Errorf("writing project config: %w", err)
		}
		return nil
	}
}

func closeScope(s *template.Scope) {
	dirs := s.Dirs()
	if err := s.Close(); err != nil {
		output.Warn("removing temporary template files", "err", err)
		return
	}
	if len(dirs) > 0 {
		output.Debug("removed temporary template files", "dirs", dirs)
	}
}

func runWaterfall[T any](ctx context.Context, w *hook.Waterfall[T], in T) (T, error) {
	output.Debug("stage", "name", w.Name(), "handlers", w.Len())
	return w.Call(ctx, in)
}

func runSeries[T any](ctx context.Context, s *hook.Series[T], in T) error {
	output.Debug("stage", "name", s.Name(), "handlers", s.Len())
	return s.Call(ctx, in)
}
