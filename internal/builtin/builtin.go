package builtin

import (
	"embed"

	"github.com/hatch-dev/hatch/internal/branding"
	"github.com/hatch-dev/hatch/internal/plugin"
)

//go:embed files
var files embed.FS

// bundleVersion is the version every bundled plugin reports.
const bundleVersion = "1.0.0"

// Plugin ids.
var (
	ProjectConfigID = branding.PluginID("project-config")
	ReadmeID        = branding.PluginID("readme")
	GitignoreID     = branding.PluginID("gitignore")
	EditorconfigID  = branding.PluginID("editorconfig")
	PrettierID      = branding.PluginID("prettier")
	LicenseID       = branding.PluginID("license")
)

func registrations() []plugin.Registration {
	return []plugin.Registration{
		{ID: ProjectConfigID, Factory: newProjectConfig, Description: "writes the project configuration file"},
		{ID: ReadmeID, Factory: newReadme, Description: "adds a README.md when the template has none"},
		{ID: GitignoreID, Factory: newGitignore, Description: "generates .gitignore"},
		{ID: EditorconfigID, Factory: newEditorconfig, Description: "generates .editorconfig"},
		{ID: PrettierID, Factory: newPrettier, Packages: []string{"prettier"}, Description: "adds prettier and its config"},
		{ID: LicenseID, Factory: newLicense, Description: "adds an MIT LICENSE (option: holder)"},
	}
}

// NewRegistry returns a registry holding every bundled plugin.
func NewRegistry() *plugin.Registry {
	r := plugin.NewRegistry()
	for _, reg := range registrations() {
		reg.Version = bundleVersion
		r.MustRegister(reg)
	}
	return r
}

// Infos returns the built-in plugins in the order they are registered on
// every Creator, ahead of user plugins.
func Infos() []plugin.Info {
	return []plugin.Info{
		{ID: ProjectConfigID},
		{ID: ReadmeID},
		{ID: GitignoreID},
		{ID: EditorconfigID},
	}
}

func mustRead(name string) []byte {
	data, err := files.ReadFile("files/" + name)
	if err != nil {
		panic(err)
	}
	return data
}
