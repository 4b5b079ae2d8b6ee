package builtin

import (
	"context"

	"github.com/hatch-dev/hatch/internal/plugin"
	"github.com/hatch-dev/hatch/internal/project"
	"github.com/hatch-dev/hatch/internal/render"
)

const readmeFile = "README.md"

type readme struct {
	plugin.Base
}

func newReadme(map[string]any) (plugin.Plugin, error) {
	return &readme{}, nil
}

func (r *readme) Creator(api plugin.CreatorAPI) error {
	api.TapRender(func(_ context.Context, in *project.RenderInput) error {
		if in.Files.Has(readmeFile) {
			return nil
		}
		out, err := render.RenderString(string(mustRead("README.md.tmpl")), in.Metadata.Context())
		if err != nil {
			return err
		}
		in.Files.SetString(readmeFile, out)
		return nil
	})
	return nil
}
