package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/roygutt18/quiteSlot/internal/remote"
)

// ClientFactory builds the per-session remote client.
type ClientFactory func() (*remote.Client, error)

// Manager tracks live wizard sessions by token and evicts the ones idle past
// the TTL.
type Manager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session

	factory        ClientFactory
	ttl            time.Duration
	resendCooldown time.Duration
	log            *zap.Logger

	stop chan struct{}
	once sync.Once
}

func NewManager(factory ClientFactory, ttl, resendCooldown time.Duration, log *zap.Logger) *Manager {
	m := &Manager{
		sessions:       make(map[uuid.UUID]*Session),
		factory:        factory,
		ttl:            ttl,
		resendCooldown: resendCooldown,
		log:            log,
		stop:           make(chan struct{}),
	}
	go m.janitor()
	return m
}

// Get returns the session for token, if it is still alive.
func (m *Manager) Get(token uuid.UUID) (*Session, bool) {
	m.mu.RLock()
	s, ok := m.sessions[token]
	m.mu.RUnlock()
	return s, ok
}

// Create opens a fresh session with its own remote client.
func (m *Manager) Create() (*Session, error) {
	client, err := m.factory()
	if err != nil {
		return nil, err
	}

	s := New(uuid.New(), client, m.resendCooldown)

	m.mu.Lock()
	m.sessions[s.Token] = s
	m.mu.Unlock()

	m.log.Info("Wizard session created", zap.String("session", s.Token.String()))
	return s, nil
}

// Drop removes a session immediately.
func (m *Manager) Drop(token uuid.UUID) {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close stops the eviction loop.
func (m *Manager) Close() {
	m.once.Do(func() { close(m.stop) })
}

func (m *Manager) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.evictIdle()
		}
	}
}

func (m *Manager) evictIdle() {
	cutoff := time.Now().Add(-m.ttl)

	m.mu.Lock()
	defer m.mu.Unlock()
	for token, s := range m.sessions {
		if s.LastSeen().Before(cutoff) {
			delete(m.sessions, token)
			m.log.Debug("Wizard session evicted", zap.String("session", token.String()))
		}
	}
}
