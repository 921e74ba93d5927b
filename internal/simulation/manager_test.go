package simulation

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerCreateGetRemove(t *testing.T) {
	m := NewManager(zerolog.Nop())

	s := m.Create(onboardingJourney())
	require.NotEmpty(t, s.ID)
	assert.Equal(t, 1, m.Len())

	got, ok := m.Get(s.ID)
	require.True(t, ok)
	assert.Same(t, s, got)

	_, ok = m.Get("missing")
	assert.False(t, ok)

	assert.True(t, m.Remove(s.ID))
	assert.False(t, m.Remove(s.ID))
	assert.Equal(t, 0, m.Len())
}

func TestManagerSweepEvictsIdleSessions(t *testing.T) {
	m := NewManager(zerolog.Nop())

	idle := m.Create(onboardingJourney())
	idle.lastActive = time.Now().Add(-time.Hour)

	active := m.Create(onboardingJourney())

	evicted := m.Sweep(30 * time.Minute)
	assert.Equal(t, 1, evicted)

	_, ok := m.Get(idle.ID)
	assert.False(t, ok)
	_, ok = m.Get(active.ID)
	assert.True(t, ok)
	assert.Equal(t, 1, m.Len())
}
