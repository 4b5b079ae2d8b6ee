package projectconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/hatch-dev/hatch/internal/branding"
	"github.com/hatch-dev/hatch/internal/plugin"
	"github.com/hatch-dev/hatch/internal/project"
	"github.com/spf13/afero"
	"go.yaml.in/yaml/v3"
)

// Config is the parsed project configuration file.
type Config struct {
	ProjectName string     `yaml:"projectName"`
	AppID       string     `yaml:"appId,omitempty"`
	Plugins     PluginList `yaml:"plugins,omitempty"`
}

// Metadata returns the project metadata recorded in the file. The template
// reference is not persisted.
func (c *Config) Metadata() project.Metadata {
	return project.Metadata{ProjectName: c.ProjectName, AppID: c.AppID}
}

// PluginList is the plugins key. Entries are written as bare ids unless they
// carry options.
type PluginList []plugin.Info

// UnmarshalYAML accepts both "id" and {id, options} entries.
func (l *PluginList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: plugins must be a list", node.Line)
	}
	out := make(PluginList, 0, len(node.Content))
	for _, item := range node.Content {
		switch item.Kind {
		case yaml.ScalarNode:
			out = append(out, plugin.Info{ID: item.Value})
		case yaml.MappingNode:
			var info plugin.Info
			if err := item.Decode(&info); err != nil {
				return err
			}
			out = append(out, info)
		default:
			return fmt.Errorf("line %d: plugin entry must be an id or a mapping", item.Line)
		}
	}
	*l = out
	return nil
}

// MarshalYAML writes bare ids for option-less entries.
func (l PluginList) MarshalYAML() (any, error) {
	out := make([]any, 0, len(l))
	for _, info := range l {
		if len(info.Options) == 0 {
			out = append(out, info.ID)
			continue
		}
		out = append(out, info)
	}
	return out, nil
}

// Path returns the config file location inside dir.
func Path(dir string) string {
	return filepath.Join(dir, branding.ConfigFile())
}

// Parse validates data against the schema and decodes it.
func Parse(data []byte) (*Config, error) {
	result, err := Validate(data)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, &ValidationError{Issues: result.Issues}
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", branding.ConfigFile(), err)
	}
	return &cfg, nil
}

// Load reads and parses the config file of the project in dir.
func Load(fsys afero.Fs, dir string) (*Config, error) {
	path := Path(dir)
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s is not a %s project (no %s): %w",
				dir, branding.DisplayName(), branding.ConfigFile(), err)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Render produces the initial config file for a new project.
func Render(meta project.Metadata, plugins []plugin.Info) ([]byte, error) {
	cfg := Config{
		ProjectName: meta.ProjectName,
		AppID:       meta.AppID,
		Plugins:     PluginList(plugins),
	}
	body, err := yaml.Marshal(&cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", branding.ConfigFile(), err)
	}
	header := fmt.Sprintf("# Generated by %s on %s.\n# Add plugins with `%s add <plugin>`.\n",
		branding.DisplayName(), time.Now().Format("2006-01-02"), branding.CLIName())
	return append([]byte(header), body...), nil
}
