package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sapatmohit/smart-farming-ai-agent/internal/domain"
	"github.com/sapatmohit/smart-farming-ai-agent/internal/i18n"
)

const maxClientIDLen = 128

// DefaultIdleTimeout is how long an unused session is kept
const DefaultIdleTimeout = 30 * time.Minute

// StorageFactory returns the locale storage for a client, or nil when
// preferences cannot be persisted.
type StorageFactory func(clientID string) LocaleStorage

// ManagerOption configures a SessionManager
type ManagerOption func(*SessionManager)

// WithIdleTimeout sets how long a session may go unused before it is
// evicted. Zero or negative disables eviction.
func WithIdleTimeout(d time.Duration) ManagerOption {
	return func(m *SessionManager) { m.idleTimeout = d }
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) ManagerOption {
	return func(m *SessionManager) { m.now = now }
}

// SessionManager holds the live sessions of this process. A session lives
// until its client deletes it or it has been idle for the idle timeout.
type SessionManager struct {
	advisor     Advisor
	resolver    *i18n.Resolver
	storage     StorageFactory
	logger      *zap.Logger
	idleTimeout time.Duration
	now         func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionManager creates a session manager
func NewSessionManager(
	advisor Advisor,
	resolver *i18n.Resolver,
	storage StorageFactory,
	logger *zap.Logger,
	opts ...ManagerOption,
) *SessionManager {
	m := &SessionManager{
		advisor:     advisor,
		resolver:    resolver,
		storage:     storage,
		logger:      logger,
		idleTimeout: DefaultIdleTimeout,
		now:         time.Now,
		sessions:    make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Resolver returns the shared translation resolver
func (m *SessionManager) Resolver() *i18n.Resolver {
	return m.resolver
}

// Create starts a session for clientID. An empty clientID gets a fresh one.
func (m *SessionManager) Create(ctx context.Context, clientID string) (*Session, error) {
	if len(clientID) > maxClientIDLen {
		return nil, fmt.Errorf("%w: client_id too long", domain.ErrInvalidRequest)
	}
	if clientID == "" {
		clientID = uuid.New().String()
	}

	var storage LocaleStorage
	if m.storage != nil {
		storage = m.storage(clientID)
	}
	prefs := NewLocalePreference(storage, m.resolver, m.logger)

	session := NewSession(uuid.New().String(), clientID, m.advisor, m.resolver, prefs, m.logger)
	session.Start(ctx)
	session.touch(m.now())

	m.EvictIdle()

	m.mu.Lock()
	m.sessions[session.ID()] = session
	m.mu.Unlock()

	m.logger.Info("Session created",
		zap.String("session_id", session.ID()),
		zap.String("client_id", clientID),
		zap.String("locale", session.Locale()),
	)
	return session, nil
}

// Get returns a live session and marks it as used
func (m *SessionManager) Get(id string) (*Session, error) {
	m.mu.RLock()
	session, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	session.touch(m.now())
	return session, nil
}

// Delete ends a session. An in-flight submission still settles on the
// detached session.
func (m *SessionManager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.sessions, id)
	m.logger.Info("Session deleted", zap.String("session_id", id))
	return nil
}

// EvictIdle removes sessions idle for longer than the idle timeout and
// returns how many were removed. Busy sessions are kept.
func (m *SessionManager) EvictIdle() int {
	if m.idleTimeout <= 0 {
		return 0
	}
	cutoff := m.now().Add(-m.idleTimeout)

	m.mu.Lock()
	defer m.mu.Unlock()
	evicted := 0
	for id, session := range m.sessions {
		if session.idleSince(cutoff) {
			delete(m.sessions, id)
			evicted++
		}
	}
	if evicted > 0 {
		m.logger.Info("Idle sessions evicted", zap.Int("count", evicted), zap.Int("remaining", len(m.sessions)))
	}
	return evicted
}

// Run evicts idle sessions every interval until ctx is done
func (m *SessionManager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.EvictIdle()
		}
	}
}

// Count returns the number of live sessions
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
