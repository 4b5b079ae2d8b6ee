package builtin

import (
	"strings"

	"github.com/hatch-dev/hatch/internal/plugin"
)

const gitignoreFile = ".gitignore"

// gitignore writes the default ignore rules, or appends the missing ones to
// a .gitignore the template already shipped.
type gitignore struct {
	plugin.Base
	rules []byte
}

func newGitignore(map[string]any) (plugin.Plugin, error) {
	return &gitignore{rules: mustRead("gitignore")}, nil
}

func (g *gitignore) Generator(api plugin.GeneratorAPI) error {
	if !api.Exists(gitignoreFile) {
		_, err := api.WriteFile(gitignoreFile, g.rules)
		return err
	}
	return api.UpdateFile(gitignoreFile, func(old []byte) ([]byte, error) {
		return mergeIgnoreRules(old, g.rules), nil
	})
}

// mergeIgnoreRules appends each rule of add that existing lacks. Comments
// and blank lines of add are not copied.
func mergeIgnoreRules(existing, add []byte) []byte {
	present := make(map[string]bool)
	for _, l := range strings.Split(string(existing), "\n") {
		present[strings.TrimSpace(l)] = true
	}

	var missing []string
	for _, l := range strings.Split(string(add), "\n") {
		rule := strings.TrimSpace(l)
		if rule == "" || strings.HasPrefix(rule, "#") || present[rule] {
			continue
		}
		present[rule] = true
		missing = append(missing, rule)
	}
	if len(missing) == 0 {
		return existing
	}

	out := string(existing)
	if len(out) > 0 && !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return []byte(out + strings.Join(missing, "\n") + "\n")
}
