// Package branding provides compile-time identity values for the CLI.
//
// Forkers edit branding.yaml in this package before building; Go's
// //go:embed bakes it into the binary.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	HomeDir     string `yaml:"home_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
	ToolPackage string `yaml:"tool_package"`
	ConfigFile  string `yaml:"config_file"`
	PluginScope string `yaml:"plugin_scope"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:     "hatch",
			DisplayName: "Hatch",
			Description: "Plugin-extensible project scaffolding",
			HomeDir:     ".hatch",
			EnvPrefix:   "HATCH",
			ToolPackage: "@hatch/cli",
			ConfigFile:  "hatch.config.yaml",
			PluginScope: "hatch",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "hatch").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "Hatch").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".hatch").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "HATCH").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// ToolPackage returns the npm package name generated projects depend on so
// they can run future generation themselves.
func ToolPackage() string { load(); return defaults.ToolPackage }

// ConfigFile returns the project configuration file name written at the
// root of every generated project.
func ConfigFile() string { load(); return defaults.ConfigFile }

// PluginID returns a fully qualified id for a bundled plugin,
// e.g. PluginID("readme") → "hatch:readme".
func PluginID(name string) string {
	load()
	return defaults.PluginScope + ":" + name
}

// EnvVar returns a fully qualified env var name, e.g., EnvVar("HOME") → "HATCH_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
