package memory

import (
	"context"
	"sync"
	"time"

	"github.com/oksasatya/vendor-vault/internal/application"
)

type sessionEntry struct {
	s       application.Session
	expires time.Time
}

type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]sessionEntry
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: map[string]sessionEntry{}}
}

func (m *SessionStore) Save(_ context.Context, s application.Session, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.UserID] = sessionEntry{s: s, expires: time.Now().Add(ttl)}
	return nil
}

func (m *SessionStore) Get(_ context.Context, userID string) (*application.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[userID]
	if !ok || time.Now().After(e.expires) {
		delete(m.sessions, userID)
		return nil, application.ErrSessionNotFound
	}
	s := e.s
	return &s, nil
}

func (m *SessionStore) Delete(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
	return nil
}
