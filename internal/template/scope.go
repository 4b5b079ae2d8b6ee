package template

import (
	"context"
	"errors"
	"os"
	"sync"
)

// Scope owns temporary directories and removes all of them on Close.
type Scope struct {
	mu     sync.Mutex
	dirs   []string
	closed bool
}

// NewScope returns an empty scope.
func NewScope() *Scope {
	return &Scope{}
}

// MkdirTemp creates a temporary directory owned by the scope.
func (s *Scope) MkdirTemp(pattern string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", errors.New("temp scope already closed")
	}
	dir, err := os.MkdirTemp("", pattern)
	if err != nil {
		return "", err
	}
	s.dirs = append(s.dirs, dir)
	return dir, nil
}

// Dirs returns the directories currently owned by the scope.
func (s *Scope) Dirs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.dirs...)
}

// Close removes every directory the scope created. It may be called more
// than once; later calls only retry directories that failed to delete.
func (s *Scope) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true

	var errs []error
	var remaining []string
	for _, dir := range s.dirs {
		if err := os.RemoveAll(dir); err != nil {
			errs = append(errs, err)
			remaining = append(remaining, dir)
		}
	}
	s.dirs = remaining
	return errors.Join(errs...)
}

type scopeKey struct{}

// WithScope returns a context carrying s.
func WithScope(ctx context.Context, s *Scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, s)
}

// ScopeFrom returns the scope carried by ctx, if any.
func ScopeFrom(ctx context.Context) (*Scope, bool) {
	s, ok := ctx.Value(scopeKey{}).(*Scope)
	return s, ok
}
