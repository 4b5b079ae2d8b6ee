package plugin

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Info identifies a plugin and its construction options.
type Info struct {
	ID      string         `yaml:"id" json:"id"`
	Options map[string]any `yaml:"options,omitempty" json:"options,omitempty"`
}

// Spec is a plugin id with an optional version constraint, as typed on the
// command line: "hatch:license", "@acme/hatch-plugin@^1.2".
type Spec struct {
	ID         string
	Constraint *semver.Constraints
	Raw        string
}

// ParseSpec splits "id@constraint". A leading "@" belongs to an npm scope.
func ParseSpec(raw string) (Spec, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Spec{}, fmt.Errorf("empty plugin id")
	}

	search := raw
	offset := 0
	if strings.HasPrefix(raw, "@") {
		search = raw[1:]
		offset = 1
	}
	at := strings.LastIndex(search, "@")
	if at < 0 {
		return Spec{ID: raw, Raw: raw}, nil
	}

	id := raw[:at+offset]
	version := raw[at+offset+1:]
	if id == "" || version == "" {
		return Spec{}, fmt.Errorf("invalid plugin spec %q", raw)
	}
	c, err := semver.NewConstraint(version)
	if err != nil {
		return Spec{}, fmt.Errorf("invalid version constraint in %q: %w", raw, err)
	}
	return Spec{ID: id, Constraint: c, Raw: raw}, nil
}

// ParseInfos converts command-line plugin specs to Infos. Every id must be
// registered, and a version constraint must be satisfied by the registered
// plugin's version.
func (r *Registry) ParseInfos(raw []string) ([]Info, error) {
	infos := make([]Info, 0, len(raw))
	for _, s := range raw {
		spec, err := ParseSpec(s)
		if err != nil {
			return nil, err
		}
		reg, ok := r.Lookup(spec.ID)
		if !ok {
			return nil, &NotFoundError{ID: spec.ID}
		}
		if spec.Constraint != nil {
			v, err := semver.NewVersion(reg.Version)
			if err != nil {
				return nil, fmt.Errorf("plugin %s has no usable version: %w", spec.ID, err)
			}
			if !spec.Constraint.Check(v) {
				return nil, fmt.Errorf("plugin %s version %s does not satisfy %s", spec.ID, v, spec.Constraint)
			}
		}
		infos = append(infos, Info{ID: spec.ID})
	}
	return infos, nil
}

// IDs returns the ids of infos in order.
func IDs(infos []Info) []string {
	ids := make([]string, len(infos))
	for i, info := range infos {
		ids[i] = info.ID
	}
	return ids
}
