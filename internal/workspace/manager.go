package workspace

import (
	"context"
	"log"
	"sync"
	"time"
)

// Config bounds the sessions a Manager keeps.
type Config struct {
	// HistoryLimit caps each field history. Zero keeps every entry.
	HistoryLimit int
	// TTL is how long an idle session survives. Zero disables expiry.
	TTL time.Duration
	// MaxSessions caps open sessions. Zero means no cap.
	MaxSessions int
	// SweepInterval is how often Run looks for idle sessions.
	SweepInterval time.Duration
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		TTL:           2 * time.Hour,
		MaxSessions:   1000,
		SweepInterval: time.Minute,
	}
}

// Manager owns the open sessions.
type Manager struct {
	config Config
	now    func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates an empty Manager.
func NewManager(config Config) *Manager {
	return &Manager{
		config:   config,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Create opens a new session with empty fields in analysis mode.
func (m *Manager) Create() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.config.MaxSessions > 0 && len(m.sessions) >= m.config.MaxSessions {
		return nil, ErrTooManySessions
	}

	s := newSession(m.config.HistoryLimit, m.now)
	m.sessions[s.ID] = s
	log.Printf("[session] created %s (%d open)", s.ID, len(m.sessions))
	return s, nil
}

// Get returns the session with id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Delete closes and forgets the session with id. Its histories are discarded.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	s.close()
	log.Printf("[session] deleted %s", id)
	return nil
}

// Len returns the number of open sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep closes sessions idle for longer than the TTL as of now and returns
// how many were removed.
func (m *Manager) Sweep(now time.Time) int {
	if m.config.TTL <= 0 {
		return 0
	}

	var expired []*Session
	m.mu.Lock()
	for id, s := range m.sessions {
		if now.Sub(s.LastActive()) > m.config.TTL {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		s.close()
	}
	return len(expired)
}

// Run sweeps idle sessions every SweepInterval until ctx is cancelled, then
// closes every remaining session.
func (m *Manager) Run(ctx context.Context) error {
	interval := m.config.SweepInterval
	if interval <= 0 {
		interval = DefaultConfig().SweepInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.closeAll()
			return nil
		case <-ticker.C:
			if n := m.Sweep(m.now()); n > 0 {
				log.Printf("[session] expired %d idle session(s)", n)
			}
		}
	}
}

func (m *Manager) closeAll() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.close()
	}
}
