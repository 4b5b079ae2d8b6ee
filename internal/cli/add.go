package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hatch-dev/hatch/internal/output"
	"github.com/hatch-dev/hatch/internal/plugin"
)

func newAddCmd(env *environment) *cobra.Command {
	var (
		dir         string
		skipInstall bool
	)
	cmd := &cobra.Command{
		Use:   "add <plugin>...",
		Short: "Add plugins to an existing project",
		Long: `Install plugins into the project in the current directory (or --dir).

The plugins' packages are installed, their ids are appended to the project's
configuration file, and their files are generated over what is on disk.

Examples:
  hatch add hatch:license
  hatch add hatch:prettier@^1 --dir ./my-app`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			infos, err := env.registry.ParseInfos(args)
			if err != nil {
				return err
			}
			abs, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving project dir: %w", err)
			}

			c, err := env.newCreator(nil, skipInstall)
			if err != nil {
				return err
			}
			ids := plugin.IDs(infos)
			if err := c.InstallPlugin(cmd.Context(), abs, ids); err != nil {
				return err
			}

			styled := make([]string, len(ids))
			for i, id := range ids {
				styled[i] = output.StyleNoun.Render(id)
			}
			output.Success(cmd.OutOrStdout(), "Added %s", strings.Join(styled, ", "))
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "Project directory")
	cmd.Flags().BoolVar(&skipInstall, "skip-install", false, "Do not install npm packages")
	return cmd
}
