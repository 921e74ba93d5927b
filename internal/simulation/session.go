// Package simulation owns the simulated clock and per-session runtime state
// of a journey. Time only advances when a caller moves it; there is no
// background scheduler. Each session is an isolated value: all engine calls
// receive their state explicitly and nothing here is a process-wide
// singleton.
package simulation

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gymstack/journey-api/internal/engine"
	"github.com/gymstack/journey-api/internal/models"
)

// Session replays journey progress over simulated time. The event log is
// append-only and the notification feed is newest first; both are cleared
// only by Reset. All methods are safe for concurrent use, with every call
// running to completion under the session lock.
type Session struct {
	ID        string
	JourneyID string

	mu            sync.Mutex
	journey       models.Journey
	now           time.Time
	anchor        *time.Time
	instances     []models.ActionInstance
	events        []models.Event
	notifications []models.Notification
	ledger        engine.Ledger
	lastActive    time.Time
	logger        zerolog.Logger
}

// Snapshot is a read-only copy of session state for consumers such as the
// checklist renderer and notification feed.
type Snapshot struct {
	SessionID     string                  `json:"session_id"`
	JourneyID     string                  `json:"journey_id"`
	Now           time.Time               `json:"now"`
	AnchoredAt    *time.Time              `json:"anchored_at,omitempty"`
	Instances     []models.ActionInstance `json:"instances"`
	Events        []models.Event          `json:"events"`
	Notifications []models.Notification   `json:"notifications"`
}

// NewSession loads a journey into a fresh session anchored at nothing, with
// the simulated clock set to now.
func NewSession(journey models.Journey, now time.Time, logger zerolog.Logger) *Session {
	s := &Session{
		ID:         uuid.NewString(),
		JourneyID:  journey.ID,
		journey:    journey,
		now:        now,
		ledger:     engine.Ledger{},
		lastActive: time.Now(),
		logger:     logger.With().Str("component", "simulation").Str("journey_id", journey.ID).Logger(),
	}
	s.initInstances()
	return s
}

// initInstances creates one instance per action. Deadlines are previewed
// against the current simulated time until the journey anchors, so the
// checklist always shows a deadline even before the member starts.
func (s *Session) initInstances() {
	base := s.now
	if s.anchor != nil {
		base = *s.anchor
	}
	s.instances = make([]models.ActionInstance, 0, len(s.journey.Actions))
	for _, action := range s.journey.Actions {
		inst := models.ActionInstance{
			Action:     action,
			Status:     models.StatusNotDone,
			AnchoredAt: s.anchor,
			Deadline:   engine.ResolveDeadline(action.TimeRange, base, nil),
		}
		s.instances = append(s.instances, inst)
	}
}

// Now returns the current simulated time.
func (s *Session) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// SetTime moves the simulated clock to an arbitrary instant and recomputes
// deadlines, statuses, and due reminders for every instance. This is the
// only path that can turn an action OVERDUE without a triggering event.
func (s *Session) SetTime(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.now = t
	s.recompute()
}

// FastForward advances the simulated clock by whole days.
func (s *Session) FastForward(days int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.now = s.now.AddDate(0, 0, days)
	s.recompute()
}

// TriggerEvent records a domain event at the current simulated time and
// runs it through the event processor. The first event matching the entry
// action anchors the journey and rebases all deadlines onto the anchor.
func (s *Session) TriggerEvent(eventType string, product models.Product) models.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	evt := models.Event{
		ID:         uuid.NewString(),
		EventType:  eventType,
		Product:    product,
		OccurredAt: s.now,
	}

	res := engine.ProcessEvent(evt, s.journey, s.instances, s.anchor, s.now, s.ledger)
	for _, inst := range res.Updated {
		s.upsertInstance(inst)
	}
	s.notifications = append(res.Notifications, s.notifications...)
	s.events = append([]models.Event{evt}, s.events...)

	if s.anchor == nil {
		if entry := s.journey.EntryAction(); entry != nil && entry.EventType == eventType && entry.Product == product {
			anchoredAt := evt.OccurredAt
			s.anchor = &anchoredAt
			s.logger.Info().Time("anchored_at", anchoredAt).Msg("journey anchored")
			s.recompute()
		}
	}

	return evt
}

// Reset discards all derived state: the clock returns to wall-clock now and
// the event log, notifications, anchor, and reminder ledger are cleared.
// Instances are recreated as on initial load.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	s.now = time.Now()
	s.anchor = nil
	s.events = nil
	s.notifications = nil
	s.ledger = engine.Ledger{}
	s.initInstances()
	s.logger.Info().Msg("session reset")
}

// MarkNotificationRead flips a notification's read flag. The flag is
// one-way; marking an already read notification is a no-op.
func (s *Session) MarkNotificationRead(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].Read = true
			return true
		}
	}
	return false
}

// Snapshot copies the session state for read-only consumers.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		SessionID:     s.ID,
		JourneyID:     s.JourneyID,
		Now:           s.now,
		Instances:     append([]models.ActionInstance(nil), s.instances...),
		Events:        append([]models.Event(nil), s.events...),
		Notifications: append([]models.Notification(nil), s.notifications...),
	}
	if s.anchor != nil {
		anchoredAt := *s.anchor
		snap.AnchoredAt = &anchoredAt
	}
	return snap
}

// recompute re-derives deadline and status for every instance against the
// current clock and surfaces any reminders that became due. Instances are
// walked in journey order so WITH_PREVIOUS deadlines resolve against the
// predecessor's completion time.
func (s *Session) recompute() {
	base := s.now
	if s.anchor != nil {
		base = *s.anchor
	}

	var prevCompleted *time.Time
	var due []models.Notification
	for i := range s.instances {
		inst := &s.instances[i]
		inst.AnchoredAt = s.anchor
		inst.Deadline = engine.ResolveDeadline(inst.TimeRange, base, prevCompleted)
		inst.Status = engine.Classify(inst.Action, inst.Deadline, s.now, inst.CompletedAt, inst.CurrentCount)
		due = append(due, engine.CheckReminders(*inst, s.now, s.ledger)...)
		prevCompleted = inst.CompletedAt
	}
	if len(due) > 0 {
		s.notifications = append(due, s.notifications...)
	}
}

func (s *Session) upsertInstance(inst models.ActionInstance) {
	for i := range s.instances {
		if s.instances[i].Action.ID == inst.Action.ID {
			s.instances[i] = inst
			return
		}
	}
	s.instances = append(s.instances, inst)
}

func (s *Session) touch() {
	s.lastActive = time.Now()
}

// IdleSince reports how long ago the session was last used.
func (s *Session) IdleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastActive)
}
