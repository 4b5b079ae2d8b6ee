package template

import (
	"regexp"
	"strings"
)

// LocalPrefix marks a reference as a local directory.
const LocalPrefix = "file://"

// Kind classifies a template reference.
type Kind int

const (
	// Local is a directory on disk.
	Local Kind = iota
	// Remote is a tarball URL.
	Remote
	// Package is an npm package name.
	Package
)

func (k Kind) String() string {
	switch k {
	case Local:
		return "local"
	case Remote:
		return "remote"
	case Package:
		return "package"
	default:
		return "unknown"
	}
}

var absoluteURL = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)

// Reference is a classified template reference.
type Reference struct {
	Kind Kind
	// Value is the path, URL or package name with any marker removed.
	Value string
	Raw   string
}

// Classify determines the kind of ref.
func Classify(ref string) Reference {
	switch {
	case strings.HasPrefix(ref, LocalPrefix):
		return Reference{Kind: Local, Value: strings.TrimPrefix(ref, LocalPrefix), Raw: ref}
	case absoluteURL.MatchString(ref):
		return Reference{Kind: Remote, Value: ref, Raw: ref}
	default:
		return Reference{Kind: Package, Value: ref, Raw: ref}
	}
}
