package builtin

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hatch-dev/hatch/internal/pkgmgr"
	"github.com/hatch-dev/hatch/internal/plugin"
	"github.com/hatch-dev/hatch/internal/project"
)

const prettierFile = ".prettierrc.json"

// prettier adds a prettier config and installs prettier as a dev
// dependency. Options are merged over the defaults into the config file.
type prettier struct {
	config []byte
}

func newPrettier(opts map[string]any) (plugin.Plugin, error) {
	cfg := map[string]any{
		"semi":          true,
		"singleQuote":   true,
		"trailingComma": "all",
		"printWidth":    100,
	}
	for k, v := range opts {
		cfg[k] = v
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding prettier options: %w", err)
	}
	return &prettier{config: append(data, '\n')}, nil
}

func (p *prettier) Creator(api plugin.CreatorAPI) error {
	api.TapBeforeEmit(func(_ context.Context, files project.FileSet) error {
		if !files.Has(prettierFile) {
			files.Set(prettierFile, p.config)
		}
		return nil
	})
	api.TapInit(func(ctx context.Context, dir string) error {
		return api.InstallNodeModules(ctx, dir, []string{"prettier"}, pkgmgr.InstallOptions{SaveDev: true})
	})
	return nil
}

func (p *prettier) Generator(api plugin.GeneratorAPI) error {
	_, err := api.WriteFile(prettierFile, p.config)
	return err
}
