package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hatch-dev/hatch/internal/branding"
	"github.com/hatch-dev/hatch/internal/config"
	"github.com/hatch-dev/hatch/internal/output"
)

// buildInfo is injected via ldflags.
type buildInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

func newRootCmd(env *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   branding.CLIName(),
		Short: branding.Description(),
		Long: branding.DisplayName() + ` scaffolds projects from templates and lets plugins shape the result.

A template is a local directory (file://path), an archive URL, or an npm
package; its template/ subdirectory is rendered into the new project.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.Load()
			output.SetupLoggingTo(cmd.ErrOrStderr(), viper.GetBool(config.KeyVerbose))
			output.Debug("started", "version", env.build.Version)
		},
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging (env: "+branding.EnvVar(config.KeyVerbose)+")")
	_ = viper.BindPFlag(config.KeyVerbose, cmd.PersistentFlags().Lookup("verbose"))

	cmd.AddCommand(newCreateCmd(env))
	cmd.AddCommand(newAddCmd(env))
	cmd.AddCommand(newPluginsCmd(env))
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd(env))
	return cmd
}

// Execute runs the root command with build info injected via ldflags.
// SIGINT and SIGTERM cancel the command's context so temporary files are
// cleaned up on the way out.
func Execute(version, commit, date string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := defaultEnvironment()
	env.build = buildInfo{Version: version, Commit: commit, Date: date}

	err := newRootCmd(env).ExecuteContext(ctx)
	if err != nil {
		output.Error(err.Error())
	}
	return err
}
