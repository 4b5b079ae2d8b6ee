package creator

import (
	"context"

	"github.com/hatch-dev/hatch/internal/output"
	"github.com/hatch-dev/hatch/internal/pkgmgr"
	"github.com/hatch-dev/hatch/internal/plugin"
	"github.com/hatch-dev/hatch/internal/project"
)

// API is the capability handle bound to one plugin.
type API struct {
	creator *Creator
	info    plugin.Info
}

var _ plugin.CreatorAPI = (*API)(nil)

// PluginID returns the id handlers are attributed to.
func (a *API) PluginID() string { return a.info.ID }

// Options returns the plugin's construction options.
func (a *API) Options() map[string]any { return a.info.Options }

// Plugins returns every resolved plugin, built-ins first.
func (a *API) Plugins() []plugin.Info {
	infos := make([]plugin.Info, len(a.creator.resolved))
	for i, r := range a.creator.resolved {
		infos[i] = r.Info
	}
	return infos
}

// UserPlugins returns the user-declared plugins.
func (a *API) UserPlugins() []plugin.Info {
	var infos []plugin.Info
	for _, r := range a.creator.resolved {
		if !r.BuiltIn {
			infos = append(infos, r.Info)
		}
	}
	return infos
}

func (a *API) TapPrepare(fn func(ctx context.Context, meta project.Metadata) (project.Metadata, error)) {
	a.creator.prepare.Tap(a.info.ID, fn)
}

func (a *API) TapResolveTemplate(fn func(ctx context.Context, ref string) (string, error)) {
	a.creator.resolveTemplate.Tap(a.info.ID, fn)
}

func (a *API) TapRender(fn func(ctx context.Context, in *project.RenderInput) error) {
	a.creator.render.Tap(a.info.ID, fn)
}

func (a *API) TapBeforeEmit(fn func(ctx context.Context, files project.FileSet) error) {
	a.creator.beforeEmit.Tap(a.info.ID, fn)
}

func (a *API) TapEmit(fn func(ctx context.Context, in *project.EmitInput) error) {
	a.creator.emit.Tap(a.info.ID, fn)
}

func (a *API) TapInit(fn func(ctx context.Context, targetDir string) error) {
	a.creator.initStage.Tap(a.info.ID, fn)
}

func (a *API) TapAfterInit(fn func(ctx context.Context, targetDir string) error) {
	a.creator.afterInit.Tap(a.info.ID, fn)
}

// Exec runs command in dir and returns its stdout.
func (a *API) Exec(ctx context.Context, dir, command string, args ...string) ([]byte, error) {
	return a.creator.opts.PackageManager.Exec(ctx, dir, command, args...)
}

// InstallNodeModules installs modules into the project in dir.
func (a *API) InstallNodeModules(ctx context.Context, dir string, modules []string, opts pkgmgr.InstallOptions) error {
	return a.creator.installNodeModules(ctx, dir, modules, opts)
}

// InstallPlugins adds plugins to the project in dir.
func (a *API) InstallPlugins(ctx context.Context, dir string, ids []string) error {
	return a.creator.InstallPlugin(ctx, dir, ids)
}

// Session returns the Create call's session. Outside a Create call a
// detached session is returned.
func (a *API) Session(ctx context.Context) plugin.Session {
	if s, ok := SessionFrom(ctx); ok {
		return s
	}
	output.Debug("no session in context, using a detached one", "plugin", a.info.ID)
	return newSession()
}
