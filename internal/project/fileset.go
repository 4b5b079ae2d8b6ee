package project

import (
	"io/fs"
	"path"
	"sort"
)

// DefaultMode is the permission of a file with no recorded mode.
const DefaultMode fs.FileMode = 0o644

// FileSet maps a slash-separated project-relative path to file content.
// A FileSet is shared by reference between stages and is not safe for
// concurrent use.
type FileSet map[string][]byte

// NewFileSet returns an empty file set.
func NewFileSet() FileSet {
	return make(FileSet)
}

// Set stores content at p, replacing any previous entry.
func (fs FileSet) Set(p string, content []byte) {
	fs[clean(p)] = content
}

// SetString is Set for text content.
func (fs FileSet) SetString(p, content string) {
	fs.Set(p, []byte(content))
}

// Get returns the content at p.
func (fs FileSet) Get(p string) ([]byte, bool) {
	c, ok := fs[clean(p)]
	return c, ok
}

// Has reports whether p is present.
func (fs FileSet) Has(p string) bool {
	_, ok := fs[clean(p)]
	return ok
}

// Delete removes p from the set.
func (fs FileSet) Delete(p string) {
	delete(fs, clean(p))
}

// Paths returns all entries in lexical order.
func (fs FileSet) Paths() []string {
	paths := make([]string, 0, len(fs))
	for p := range fs {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func clean(p string) string {
	p = path.Clean("/" + p)
	return p[1:]
}

// Modes records file permissions for FileSet entries that came from disk.
// Entries without a recorded mode are written with DefaultMode.
type Modes map[string]fs.FileMode

// Set records mode for p.
func (m Modes) Set(p string, mode fs.FileMode) {
	m[clean(p)] = mode.Perm()
}

// Get returns the mode recorded for p, or DefaultMode. A nil Modes is
// valid.
func (m Modes) Get(p string) fs.FileMode {
	if mode, ok := m[clean(p)]; ok {
		return mode
	}
	return DefaultMode
}
