package cli

import (
	"os"

	"golang.org/x/term"

	"github.com/hatch-dev/hatch/internal/builtin"
	"github.com/hatch-dev/hatch/internal/config"
	"github.com/hatch-dev/hatch/internal/creator"
	"github.com/hatch-dev/hatch/internal/pkgmgr"
	"github.com/hatch-dev/hatch/internal/plugin"
	"github.com/hatch-dev/hatch/internal/template"
)

// environment holds what commands need from the outside world, so tests
// can swap the package manager and the terminal.
type environment struct {
	build          buildInfo
	registry       *plugin.Registry
	packageManager func(s config.Settings) (creator.PackageManager, error)
	interactive    func() bool
	prompter       prompter
}

func defaultEnvironment() *environment {
	return &environment{
		build:    buildInfo{Version: "dev", Commit: "unknown", Date: "unknown"},
		registry: builtin.NewRegistry(),
		packageManager: func(s config.Settings) (creator.PackageManager, error) {
			return pkgmgr.New(s.PackageManager,
				pkgmgr.WithRegistry(s.Registry),
				pkgmgr.WithRunner(&pkgmgr.ExecRunner{Stderr: os.Stderr}),
			)
		},
		interactive: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
		prompter: surveyPrompter{},
	}
}

// newCreator wires a Creator from the user settings.
func (e *environment) newCreator(user []plugin.Info, skipInstall bool) (*creator.Creator, error) {
	settings := config.Current()
	pm, err := e.packageManager(settings)
	if err != nil {
		return nil, err
	}
	return creator.New(creator.Options{
		Registry:       e.registry,
		PackageManager: pm,
		Builtins:       builtin.Infos(),
		Plugins:        user,
		Resolver: template.NewResolver(
			template.WithLookup(pm),
			template.WithDir(settings.TemplateDir),
		),
		SkipInstall: skipInstall,
	})
}
