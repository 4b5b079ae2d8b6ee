package builtin

import (
	"context"
	"fmt"

	"github.com/hatch-dev/hatch/internal/plugin"
	"github.com/hatch-dev/hatch/internal/project"
	"github.com/hatch-dev/hatch/internal/render"
)

const licenseFile = "LICENSE"

// license writes an MIT license. The holder option defaults to the project
// name.
type license struct {
	holder string
}

func newLicense(opts map[string]any) (plugin.Plugin, error) {
	l := &license{}
	if v, ok := opts["holder"]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("option holder must be a string, got %T", v)
		}
		l.holder = s
	}
	return l, nil
}

func (l *license) text(meta project.Metadata) ([]byte, error) {
	data := meta.Context()
	data["holder"] = l.holder
	if l.holder == "" {
		data["holder"] = meta.ProjectName + " authors"
	}
	out, err := render.RenderString(string(mustRead("LICENSE.tmpl")), data)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

func (l *license) Creator(api plugin.CreatorAPI) error {
	api.TapRender(func(_ context.Context, in *project.RenderInput) error {
		if in.Files.Has(licenseFile) {
			return nil
		}
		text, err := l.text(in.Metadata)
		if err != nil {
			return err
		}
		in.Files.Set(licenseFile, text)
		return nil
	})
	return nil
}

func (l *license) Generator(api plugin.GeneratorAPI) error {
	text, err := l.text(api.Metadata())
	if err != nil {
		return err
	}
	_, err = api.WriteFile(licenseFile, text)
	return err
}
