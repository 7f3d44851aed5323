package storage

import (
	"context"
	"sync"
	"time"

	"file-chat/models"
)

// SessionStore maps an opaque client token to the username that joined with
// it. Get on an unknown or expired token reports ok=false with no error.
type SessionStore interface {
	Get(ctx context.Context, token string) (username string, ok bool, err error)
	Set(ctx context.Context, token, username string) error
	Clear(ctx context.Context, token string) error
	Close() error
}

// Expirer is implemented by stores that need a periodic sweep to drop
// expired sessions.
type Expirer interface {
	DeleteExpired(ctx context.Context) (int, error)
}

type MemorySessions struct {
	ttl      time.Duration
	now      func() time.Time
	mu       sync.RWMutex
	sessions map[string]models.Session
}

func NewMemorySessions(ttl time.Duration) *MemorySessions {
	return &MemorySessions{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]models.Session),
	}
}

func (m *MemorySessions) Get(_ context.Context, token string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[token]
	if !exists || m.now().After(session.ExpiresAt) {
		return "", false, nil
	}
	return session.Username, true, nil
}

func (m *MemorySessions) Set(_ context.Context, token, username string) error {
	if token == "" {
		return ErrEmptyToken
	}
	if username == "" {
		return ErrEmptyUsername
	}
	now := m.now()

	m.mu.Lock()
	m.sessions[token] = models.Session{
		Token:     token,
		Username:  username,
		ExpiresAt: now.Add(m.ttl),
		CreatedAt: now,
	}
	m.mu.Unlock()
	return nil
}

func (m *MemorySessions) Clear(_ context.Context, token string) error {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
	return nil
}

func (m *MemorySessions) DeleteExpired(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for token, session := range m.sessions {
		if now.After(session.ExpiresAt) {
			delete(m.sessions, token)
			removed++
		}
	}
	return removed, nil
}

func (m *MemorySessions) Close() error { return nil }
