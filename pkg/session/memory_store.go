package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore implements Store using process-local storage. It is safe for
// concurrent use by events for distinct users; serialization of events for
// the same user is the caller's responsibility.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	idleTTL  time.Duration
	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
}

// NewMemoryStore creates an in-memory session store. When both cfg values
// are positive a background loop evicts sessions idle for longer than
// cfg.IdleTTL every cfg.CleanupInterval.
func NewMemoryStore(cfg Config) *MemoryStore {
	store := &MemoryStore{
		sessions: make(map[string]*Session),
		idleTTL:  cfg.IdleTTL,
		done:     make(chan struct{}),
	}

	if cfg.CleanupInterval > 0 && cfg.IdleTTL > 0 {
		store.ticker = time.NewTicker(cfg.CleanupInterval)
		go store.cleanupLoop()
	}

	return store
}

// Get returns the mutable session handle for the user, creating a fresh one
// in the initial state when none exists.
func (m *MemoryStore) Get(ctx context.Context, userID string) (*Session, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}

	m.mu.RLock()
	sess, exists := m.sessions[userID]
	m.mu.RUnlock()
	if exists {
		return sess, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// Another goroutine may have created the session between the locks.
	if sess, exists := m.sessions[userID]; exists {
		return sess, nil
	}
	sess = New(userID)
	m.sessions[userID] = sess
	return sess, nil
}

// Clear removes the session for the user. Absent sessions are a no-op.
func (m *MemoryStore) Clear(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
	return nil
}

// Len returns the number of resident sessions.
func (m *MemoryStore) Len(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions), nil
}

// DeleteIdle evicts every session idle for at least the configured TTL.
func (m *MemoryStore) DeleteIdle(ctx context.Context) error {
	if m.idleTTL <= 0 {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for userID, sess := range m.sessions {
		if sess.IdleSince(now, m.idleTTL) {
			delete(m.sessions, userID)
		}
	}
	return nil
}

// Close stops the cleanup goroutine. Safe for repeated calls.
func (m *MemoryStore) Close() error {
	m.stopOnce.Do(func() {
		if m.ticker != nil {
			m.ticker.Stop()
			close(m.done)
		}
	})
	return nil
}

func (m *MemoryStore) cleanupLoop() {
	for {
		select {
		case <-m.ticker.C:
			_ = m.DeleteIdle(context.Background())
		case <-m.done:
			return
		}
	}
}
