package builtin

import (
	"github.com/hatch-dev/hatch/internal/plugin"
)

// staticFile generates one fixed file into the project.
type staticFile struct {
	plugin.Base
	path    string
	content []byte
}

func (s *staticFile) Generator(api plugin.GeneratorAPI) error {
	_, err := api.WriteFile(s.path, s.content)
	return err
}

func newEditorconfig(map[string]any) (plugin.Plugin, error) {
	return &staticFile{path: ".editorconfig", content: mustRead("editorconfig")}, nil
}
