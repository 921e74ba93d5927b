package simulation

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/gymstack/journey-api/internal/models"
)

// Manager tracks live simulation sessions by id. Sessions are in-memory
// only; a janitor loop evicts sessions that have been idle past the
// configured TTL.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	logger   zerolog.Logger
}

func NewManager(logger zerolog.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		logger:   logger.With().Str("component", "simulation_manager").Logger(),
	}
}

// Create starts a new session for the journey with the simulated clock set
// to wall-clock now.
func (m *Manager) Create(journey models.Journey) *Session {
	s := NewSession(journey, time.Now(), m.logger)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.logger.Info().Str("session_id", s.ID).Str("journey_id", journey.ID).Msg("session created")
	return s
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

func (m *Manager) Remove(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	return true
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep removes sessions idle longer than ttl and returns how many were
// evicted.
func (m *Manager) Sweep(ttl time.Duration) int {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	evicted := 0
	for id, s := range m.sessions {
		if s.IdleSince(now) >= ttl {
			delete(m.sessions, id)
			evicted++
		}
	}
	return evicted
}

// RunJanitor sweeps idle sessions on the given interval until the context
// is cancelled.
func (m *Manager) RunJanitor(ctx context.Context, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	m.logger.Info().Dur("interval", interval).Dur("ttl", ttl).Msg("session janitor started")
	for {
		select {
		case <-ticker.C:
			if n := m.Sweep(ttl); n > 0 {
				m.logger.Info().Int("evicted", n).Msg("idle sessions evicted")
			}
		case <-ctx.Done():
			m.logger.Info().Msg("session janitor stopped")
			return
		}
	}
}
