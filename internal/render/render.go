package render

import (
	"bytes"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/flosch/pongo2/v6"
	"github.com/spf13/afero"

	"github.com/hatch-dev/hatch/internal/output"
	"github.com/hatch-dev/hatch/internal/project"
)

// DefaultPattern matches every file in the template tree, dotfiles included.
const DefaultPattern = "**/*"

// sniffLen is how much of a file is inspected to decide whether it is text.
const sniffLen = 8000

// dotfiles lists template names that npm would strip from a published
// package, mapped to the names they are emitted under.
var dotfiles = map[string]string{
	"_gitignore":    ".gitignore",
	"_npmrc":        ".npmrc",
	"_editorconfig": ".editorconfig",
}

// placeholder matches "{{ name }}" and "{{ name|filter:arg }}". Any other
// brace text is not a placeholder.
var placeholder = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*((?:\|[^{}]*?)?)\s*\}\}`)

// TemplateRenderError reports invalid substitution syntax in a template file.
type TemplateRenderError struct {
	Path string
	Err  error
}

func (e *TemplateRenderError) Error() string {
	return fmt.Sprintf("rendering %s: %v", e.Path, e.Err)
}

func (e *TemplateRenderError) Unwrap() error { return e.Err }

// Renderer reads templates from a filesystem.
type Renderer struct {
	fs afero.Fs
}

// New returns a Renderer reading from fsys. A nil fsys means the OS
// filesystem.
func New(fsys afero.Fs) *Renderer {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Renderer{fs: fsys}
}

// RenderAll renders every file under sourceDir whose slash-separated
// relative path matches pattern. The returned Modes hold each file's
// permissions. Symlinked files are read through; symlinked directories and
// dangling links are skipped.
func (r *Renderer) RenderAll(sourceDir, pattern string, data map[string]any) (project.FileSet, project.Modes, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, nil, fmt.Errorf("invalid glob pattern %q", pattern)
	}

	files := project.NewFileSet()
	modes := project.Modes{}
	err := afero.Walk(r.fs, sourceDir, func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.Mode()&fs.ModeSymlink != 0 {
			if info, err = r.fs.Stat(p); err != nil {
				output.Debug("skipping dangling link", "path", p, "err", err)
				return nil
			}
		}
		if info.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(sourceDir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		ok, err := doublestar.Match(pattern, rel)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		content, err := afero.ReadFile(r.fs, p)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", p, err)
		}

		out, err := renderFile(rel, content, data)
		if err != nil {
			return err
		}
		name := outputName(rel)
		files.Set(name, out)
		modes.Set(name, info.Mode())
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return files, modes, nil
}

func renderFile(rel string, content []byte, data map[string]any) ([]byte, error) {
	if IsBinary(content) {
		return content, nil
	}
	out, err := Substitute(string(content), data)
	if err != nil {
		return nil, &TemplateRenderError{Path: rel, Err: err}
	}
	return []byte(out), nil
}

// Substitute replaces the placeholders of text whose name is a key of data.
// Placeholders may carry pongo2 filters. Unknown names and all other brace
// text ({% %}, {# #}, JSX or shell syntax) are copied unchanged.
func Substitute(text string, data map[string]any) (string, error) {
	matches := placeholder.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text, nil
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		name := text[m[2]:m[3]]
		if _, ok := data[name]; !ok {
			continue
		}
		value, err := RenderString(text[m[0]:m[1]], data)
		if err != nil {
			return "", fmt.Errorf("placeholder %s: %w", text[m[0]:m[1]], err)
		}
		b.WriteString(text[last:m[0]])
		b.WriteString(value)
		last = m[1]
	}
	b.WriteString(text[last:])
	return b.String(), nil
}

// RenderString executes text as a full pongo2 template, tags included.
// Output is not HTML-escaped. It is meant for text a plugin owns; template
// files go through Substitute.
func RenderString(text string, data map[string]any) (string, error) {
	tpl, err := pongo2.FromString("{% autoescape off %}" + text + "{% endautoescape %}")
	if err != nil {
		return "", err
	}
	return tpl.Execute(pongo2.Context(data))
}

// IsBinary reports whether content looks like a non-text file.
func IsBinary(content []byte) bool {
	head := content
	truncated := len(head) > sniffLen
	if truncated {
		head = head[:sniffLen]
	}
	if bytes.IndexByte(head, 0) >= 0 {
		return true
	}
	for len(head) > 0 {
		r, size := utf8.DecodeRune(head)
		if r == utf8.RuneError && size == 1 {
			// A multi-byte rune may be cut at the sniff boundary.
			return !truncated || len(head) >= utf8.UTFMax
		}
		head = head[size:]
	}
	return false
}

func outputName(rel string) string {
	dir, base := path.Split(rel)
	if renamed, ok := dotfiles[base]; ok {
		return dir + renamed
	}
	return rel
}
