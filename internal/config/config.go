package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/hatch-dev/hatch/internal/branding"
	"github.com/hatch-dev/hatch/internal/pkgmgr"
	"github.com/hatch-dev/hatch/internal/template"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Setting keys.
const (
	KeyPackageManager = "package_manager"
	KeyRegistry       = "registry"
	KeyTemplateDir    = "template_dir"
	KeyVerbose        = "verbose"
)

var defaults = map[string]any{
	KeyPackageManager: pkgmgr.DefaultClient,
	KeyRegistry:       "",
	KeyTemplateDir:    template.DefaultDir,
	KeyVerbose:        false,
}

// Settings is a typed snapshot of the current configuration.
type Settings struct {
	PackageManager string
	Registry       string
	TemplateDir    string
	Verbose        bool
}

// Dir returns the path to the config directory (~/.hatch/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.hatch/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	for k, v := range defaults {
		viper.SetDefault(k, v)
	}
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Keys returns the known setting keys, sorted.
func Keys() []string {
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Current returns the loaded settings.
func Current() Settings {
	return Settings{
		PackageManager: viper.GetString(KeyPackageManager),
		Registry:       viper.GetString(KeyRegistry),
		TemplateDir:    viper.GetString(KeyTemplateDir),
		Verbose:        viper.GetBool(KeyVerbose),
	}
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set validates and writes a config key-value pair and saves the config
// file.
func Set(key, value string) error {
	def, ok := defaults[key]
	if !ok {
		return fmt.Errorf("unknown config key %q (known: %v)", key, Keys())
	}
	var typed any = value
	if _, isBool := def.(bool); isBool {
		b, err := cast.ToBoolE(value)
		if err != nil {
			return fmt.Errorf("%s must be true or false: %w", key, err)
		}
		typed = b
	}
	if key == KeyPackageManager {
		if _, err := pkgmgr.New(value); err != nil {
			return err
		}
	}

	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, typed)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
