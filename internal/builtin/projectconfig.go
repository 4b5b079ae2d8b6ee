package builtin

import (
	"context"

	"github.com/hatch-dev/hatch/internal/branding"
	"github.com/hatch-dev/hatch/internal/plugin"
	"github.com/hatch-dev/hatch/internal/project"
	"github.com/hatch-dev/hatch/internal/projectconfig"
)

// projectConfig writes the config file recording the project's metadata
// and user plugins, and rejects edits that leave it invalid.
type projectConfig struct {
	plugin.Base
}

func newProjectConfig(map[string]any) (plugin.Plugin, error) {
	return &projectConfig{}, nil
}

func (p *projectConfig) Creator(api plugin.CreatorAPI) error {
	api.TapRender(func(ctx context.Context, in *project.RenderInput) error {
		return api.Session(ctx).Once(ProjectConfigID, func() error {
			data, err := projectconfig.Render(in.Metadata, api.UserPlugins())
			if err != nil {
				return err
			}
			in.Files.Set(branding.ConfigFile(), data)
			return nil
		})
	})

	// A plugin may rewrite the file after render; it must still parse.
	api.TapBeforeEmit(func(_ context.Context, files project.FileSet) error {
		data, ok := files.Get(branding.ConfigFile())
		if !ok {
			return nil
		}
		_, err := projectconfig.Parse(data)
		return err
	})
	return nil
}
