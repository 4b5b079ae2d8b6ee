package creator

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/hatch-dev/hatch/internal/plugin"
	"github.com/hatch-dev/hatch/internal/project"
)

// Session is the state of one Create call.
type Session struct {
	id string

	mu   sync.Mutex
	done map[string]bool
	meta project.Metadata
}

var _ plugin.Session = (*Session)(nil)

func newSession() *Session {
	return &Session{id: uuid.NewString(), done: make(map[string]bool)}
}

// ID returns the session's unique id.
func (s *Session) ID() string { return s.id }

// Once runs fn the first time key is seen. Later calls with the same key
// return nil without running fn.
func (s *Session) Once(key string, fn func() error) error {
	s.mu.Lock()
	if s.done[key] {
		s.mu.Unlock()
		return nil
	}
	s.done[key] = true
	s.mu.Unlock()
	return fn()
}

// Metadata returns the metadata frozen by the prepare stage.
func (s *Session) Metadata() project.Metadata {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.meta
}

func (s *Session) setMetadata(m project.Metadata) {
	s.mu.Lock()
	s.meta = m
	s.mu.Unlock()
}

type sessionKey struct{}

func withSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFrom returns the session of the Create call ctx belongs to.
func SessionFrom(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*Session)
	return s, ok
}
