// Package session tracks who is logged in. A Session is an explicit value
// handed to every account-scoped service call.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"gentlix-bank/internal/errors"
)

const (
	// DefaultTTL is how long a session stays valid without use.
	DefaultTTL = 30 * time.Minute
	// CleanupInterval is how often expired sessions are swept.
	CleanupInterval = time.Minute
)

type Session struct {
	Token     uuid.UUID `json:"token"`
	Tag       string    `json:"tag"`
	IBAN      string    `json:"iban"`
	OpenedAt  time.Time `json:"opened_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Manager holds open sessions in memory. Expiry slides forward on every
// successful Lookup. A zero TTL disables expiry.
type Manager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	ttl      time.Duration
	now      func() time.Time
	logger   zerolog.Logger

	cleanupOnce sync.Once
	stopCh      chan struct{}
	stopOnce    sync.Once
}

type Option func(*Manager)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

func NewManager(ttl time.Duration, logger zerolog.Logger, opts ...Option) *Manager {
	m := &Manager{
		sessions: make(map[uuid.UUID]*Session),
		ttl:      ttl,
		now:      time.Now,
		logger:   logger.With().Str("component", "session_manager").Logger(),
		stopCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Open starts a session for the account identified by tag and iban.
func (m *Manager) Open(tag, iban string) *Session {
	now := m.now()
	s := &Session{
		Token:    uuid.New(),
		Tag:      tag,
		IBAN:     iban,
		OpenedAt: now,
	}
	if m.ttl > 0 {
		s.ExpiresAt = now.Add(m.ttl)
	}

	m.mu.Lock()
	m.sessions[s.Token] = s
	m.mu.Unlock()

	m.logger.Info().Str("tag", tag).Msg("Session opened")
	cp := *s
	return &cp
}

// Lookup resolves a token string. Unknown, malformed and expired tokens all
// yield ErrSessionNotFound.
func (m *Manager) Lookup(token string) (*Session, error) {
	id, err := uuid.Parse(token)
	if err != nil {
		return nil, errors.ErrSessionNotFound
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, errors.ErrSessionNotFound
	}
	now := m.now()
	if m.ttl > 0 && now.After(s.ExpiresAt) {
		delete(m.sessions, id)
		m.logger.Debug().Str("tag", s.Tag).Msg("Session expired")
		return nil, errors.ErrSessionNotFound
	}
	if m.ttl > 0 {
		s.ExpiresAt = now.Add(m.ttl)
	}

	cp := *s
	return &cp, nil
}

func (m *Manager) Close(token uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[token]
	if !ok {
		return errors.ErrSessionNotFound
	}
	delete(m.sessions, token)
	m.logger.Info().Str("tag", s.Tag).Msg("Session closed")
	return nil
}

// CloseAccount ends every session of the account identified by tag and iban
// and returns how many were open. Sessions of a later account reusing the tag
// are left alone.
func (m *Manager) CloseAccount(tag, iban string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	closed := 0
	for token, s := range m.sessions {
		if s.Tag == tag && s.IBAN == iban {
			delete(m.sessions, token)
			closed++
		}
	}
	if closed > 0 {
		m.logger.Info().Str("tag", tag).Int("closed", closed).Msg("Account sessions closed")
	}
	return closed
}

// Len counts live sessions. Expired ones still waiting for the sweep are
// not counted.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.ttl <= 0 {
		return len(m.sessions)
	}
	now := m.now()
	live := 0
	for _, s := range m.sessions {
		if !now.After(s.ExpiresAt) {
			live++
		}
	}
	return live
}

// StartCleanup sweeps expired sessions every interval until Stop. Only the
// first call starts the sweeper.
func (m *Manager) StartCleanup(interval time.Duration) {
	if m.ttl <= 0 || interval <= 0 {
		return
	}
	m.cleanupOnce.Do(func() {
		go m.cleanup(interval)
	})
}

func (m *Manager) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.evict(m.now())
		case <-m.stopCh:
			return
		}
	}
}

func (m *Manager) evict(now time.Time) int {
	if m.ttl <= 0 {
		return 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	evicted := 0
	for token, s := range m.sessions {
		if now.After(s.ExpiresAt) {
			delete(m.sessions, token)
			evicted++
		}
	}
	if evicted > 0 {
		m.logger.Debug().Int("evicted", evicted).Msg("Cleaned up expired sessions")
	}
	return evicted
}

// Stop ends the sweeper. Safe to call more than once.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopCh)
	})
}

type contextKey struct{}

func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(contextKey{}).(*Session)
	return s, ok && s != nil
}
