package project

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Metadata describes the project being generated. It is passed by value;
// once the prepare stage returns, every later stage sees a copy.
type Metadata struct {
	ProjectName string
	AppID       string
	Template    string
}

// Validate checks that the metadata can name a project directory and a
// template.
func (m Metadata) Validate() error {
	if m.ProjectName == "" {
		return fmt.Errorf("project name is required")
	}
	if m.ProjectName != filepath.Base(m.ProjectName) || m.ProjectName == "." || m.ProjectName == ".." {
		return fmt.Errorf("project name %q must be a single path segment", m.ProjectName)
	}
	if m.Template == "" {
		return fmt.Errorf("template reference is required")
	}
	return nil
}

// Context returns the rendering context for template substitution.
func (m Metadata) Context() map[string]any {
	return map[string]any{
		"projectName":       m.ProjectName,
		"projectNamePascal": PascalCase(m.ProjectName),
		"appId":             m.AppID,
		"year":              time.Now().Year(),
	}
}

// PascalCase converts "my-app_name" into "MyAppName".
func PascalCase(name string) string {
	fields := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_' || r == '.' || r == ' '
	})
	titler := cases.Title(language.English)
	var b strings.Builder
	for _, f := range fields {
		b.WriteString(titler.String(f))
	}
	return b.String()
}
