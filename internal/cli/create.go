package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hatch-dev/hatch/internal/creator"
	"github.com/hatch-dev/hatch/internal/output"
)

type createOptions struct {
	template    string
	appID       string
	dir         string
	plugins     []string
	skipInstall bool
}

func newCreateCmd(env *environment) *cobra.Command {
	var o createOptions
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a project from a template",
		Long: `Create a project from a template.

The template reference is a local directory (file://./my-template), a tarball
URL (https://example.com/t.tgz) or an npm package name (@acme/web-template).
Its template/ subdirectory is rendered with {{ projectName }}, {{ appId }},
{{ projectNamePascal }} and {{ year }} available.

Examples:
  hatch create my-app --template @acme/web-template
  hatch create my-app -t file://./templates/web --app-id com.acme.myapp
  hatch create my-app -t @acme/web-template --plugin hatch:license --plugin hatch:prettier`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, env, args[0], o)
		},
	}

	cmd.Flags().StringVarP(&o.template, "template", "t", "", "Template reference (file://dir, URL or npm package)")
	cmd.Flags().StringVar(&o.appID, "app-id", "", "Application id (default: prompt, or the project name)")
	cmd.Flags().StringVar(&o.dir, "dir", "", "Target directory (default: ./<name>)")
	cmd.Flags().StringArrayVarP(&o.plugins, "plugin", "p", nil, "Plugin to enable, optionally with a version constraint (repeatable)")
	cmd.Flags().BoolVar(&o.skipInstall, "skip-install", false, "Do not install npm dependencies")
	return cmd
}

func runCreate(cmd *cobra.Command, env *environment, name string, o createOptions) error {
	ctx := cmd.Context()

	infos, err := env.registry.ParseInfos(o.plugins)
	if err != nil {
		return err
	}

	if o.template == "" {
		if !env.interactive() {
			return errors.New("--template is required")
		}
		o.template, err = env.prompter.Input(ctx, "Template", "", required("template"))
		if err != nil {
			return err
		}
	}
	if o.appID == "" {
		o.appID = name
		if env.interactive() {
			o.appID, err = env.prompter.Input(ctx, "App id", name, required("app id"))
			if err != nil {
				return err
			}
		}
	}

	target := o.dir
	if target == "" {
		target = name
	}
	target, err = filepath.Abs(target)
	if err != nil {
		return fmt.Errorf("resolving target dir: %w", err)
	}

	c, err := env.newCreator(infos, o.skipInstall)
	if err != nil {
		return err
	}
	err = c.Create(ctx, creator.CreateOptions{
		ProjectName: name,
		AppID:       o.appID,
		Template:    o.template,
		TargetDir:   target,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	output.Success(out, "Created %s in %s", output.StyleNoun.Render(name), target)
	if rel, err := relativeToWD(target); err == nil {
		output.Hint(out, "cd %s", rel)
	}
	return nil
}

func required(what string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", what)
		}
		return nil
	}
}

func relativeToWD(path string) (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Rel(wd, path)
}
