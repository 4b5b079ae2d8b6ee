package plugin

import (
	"context"

	"github.com/hatch-dev/hatch/internal/pkgmgr"
	"github.com/hatch-dev/hatch/internal/project"
)

// Plugin is implemented by every plugin.
type Plugin interface {
	// Creator registers handlers on the create pipeline. It is called once
	// per Creator, synchronously, before the next plugin's Creator.
	Creator(api CreatorAPI) error
	// Generator contributes files to an already emitted project.
	Generator(api GeneratorAPI) error
}

// Base provides no-op implementations for plugins that only need one side.
type Base struct{}

// Creator implements Plugin.
func (Base) Creator(CreatorAPI) error { return nil }

// Generator implements Plugin.
func (Base) Generator(GeneratorAPI) error { return nil }

// Session is per-invocation state shared by all plugins of one Create call.
type Session interface {
	ID() string
	// Once runs fn the first time key is seen in this session.
	Once(key string, fn func() error) error
}

// CreatorAPI is the capability handle a plugin receives in Creator.
type CreatorAPI interface {
	PluginID() string
	Options() map[string]any
	// Plugins returns every resolved plugin in registration order.
	Plugins() []Info
	// UserPlugins returns the caller-declared plugins only.
	UserPlugins() []Info

	TapPrepare(fn func(ctx context.Context, meta project.Metadata) (project.Metadata, error))
	TapResolveTemplate(fn func(ctx context.Context, ref string) (string, error))
	TapRender(fn func(ctx context.Context, in *project.RenderInput) error)
	TapBeforeEmit(fn func(ctx context.Context, files project.FileSet) error)
	TapEmit(fn func(ctx context.Context, in *project.EmitInput) error)
	TapInit(fn func(ctx context.Context, targetDir string) error)
	TapAfterInit(fn func(ctx context.Context, targetDir string) error)

	Exec(ctx context.Context, dir, command string, args ...string) ([]byte, error)
	InstallNodeModules(ctx context.Context, dir string, modules []string, opts pkgmgr.InstallOptions) error
	InstallPlugins(ctx context.Context, dir string, ids []string) error
	// Session returns the state of the Create call ctx belongs to.
	Session(ctx context.Context) Session
}

// GeneratorAPI is the capability handle a plugin receives in Generator.
type GeneratorAPI interface {
	PluginID() string
	Options() map[string]any
	ProjectDir() string
	// ApplyAll reports whether the project already exists and generated
	// files should overwrite what is on disk.
	ApplyAll() bool
	Metadata() project.Metadata
	Exists(path string) bool
	ReadFile(path string) ([]byte, error)
	// WriteFile writes a project-relative file. Without ApplyAll an
	// existing file is kept and false is returned.
	WriteFile(path string, content []byte) (bool, error)
	// UpdateFile rewrites a project-relative file with update's result
	// whatever ApplyAll says. update receives nil when the file is missing.
	UpdateFile(path string, update func(old []byte) ([]byte, error)) error
	RenderString(text string, data map[string]any) (string, error)
}
