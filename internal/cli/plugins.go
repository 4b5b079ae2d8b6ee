package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hatch-dev/hatch/internal/builtin"
)

// pluginEntry is a registered plugin for display.
type pluginEntry struct {
	ID          string   `json:"id"`
	Version     string   `json:"version"`
	BuiltIn     bool     `json:"builtIn"`
	Packages    []string `json:"packages,omitempty"`
	Description string   `json:"description"`
}

func newPluginsCmd(env *environment) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "plugins",
		Short: "List available plugins",
		Long:  `List the plugins this binary knows. Built-in plugins run for every project.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			builtins := make(map[string]bool)
			for _, info := range builtin.Infos() {
				builtins[info.ID] = true
			}

			var entries []pluginEntry
			for _, id := range env.registry.IDs() {
				reg, _ := env.registry.Lookup(id)
				entries = append(entries, pluginEntry{
					ID:          id,
					Version:     reg.Version,
					BuiltIn:     builtins[id],
					Packages:    reg.Packages,
					Description: reg.Description,
				})
			}

			if asJSON {
				return printPluginsJSON(cmd, entries)
			}
			return printPluginsTable(cmd, entries)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	return cmd
}

func printPluginsTable(cmd *cobra.Command, entries []pluginEntry) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tVERSION\tKIND\tDESCRIPTION")
	for _, e := range entries {
		kind := "optional"
		if e.BuiltIn {
			kind = "built-in"
		}
		version := e.Version
		if version == "" {
			version = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.ID, version, kind, e.Description)
	}
	return w.Flush()
}

func printPluginsJSON(cmd *cobra.Command, entries []pluginEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
