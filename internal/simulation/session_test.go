package simulation

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gymstack/journey-api/internal/models"
)

var start = time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)

func onboardingJourney() models.Journey {
	two := 2
	return models.Journey{
		ID:   "j1",
		Name: "Onboarding",
		Actions: []models.Action{
			{
				ID: "a-entry", ActionTypeID: "A01", EventType: "ACCOUNT_CREATED",
				CompletionMode: models.CompletionOccurrence, Product: models.ProductMemberApp,
				VisibleInChecklist: true, TimeRange: models.NoDeadline(),
			},
			{
				ID: "a-workout", ActionTypeID: "A13", EventType: "WORKOUT_TRACKED",
				CompletionMode: models.CompletionCounter, RequiredCount: &two,
				Product: models.ProductMemberApp, VisibleInChecklist: true,
				TimeRange: models.AbsoluteDeadline(2, models.UnitDays),
				Reminders: []models.Reminder{
					{ID: "rem-1", Channel: models.ChannelPush, Frequency: models.FrequencyOnce},
				},
			},
		},
	}
}

func instance(t *testing.T, snap Snapshot, actionID string) models.ActionInstance {
	t.Helper()
	for _, inst := range snap.Instances {
		if inst.Action.ID == actionID {
			return inst
		}
	}
	t.Fatalf("instance %s not found", actionID)
	return models.ActionInstance{}
}

func TestSessionEndToEnd(t *testing.T) {
	s := NewSession(onboardingJourney(), start, zerolog.Nop())

	// Pre-start preview: deadlines are shown against the simulated clock
	// even though nothing is anchored yet.
	snap := s.Snapshot()
	assert.Nil(t, snap.AnchoredAt)
	preview := instance(t, snap, "a-workout")
	require.NotNil(t, preview.Deadline)
	assert.True(t, preview.Deadline.Equal(start.AddDate(0, 0, 2)))

	// Entry event anchors the journey and rebases deadlines on the anchor.
	s.TriggerEvent("ACCOUNT_CREATED", models.ProductMemberApp)
	snap = s.Snapshot()
	require.NotNil(t, snap.AnchoredAt)
	assert.True(t, snap.AnchoredAt.Equal(start))

	entry := instance(t, snap, "a-entry")
	assert.Equal(t, models.StatusDone, entry.Status)
	require.NotNil(t, entry.CompletedAt)
	assert.True(t, entry.CompletedAt.Equal(start))

	workout := instance(t, snap, "a-workout")
	assert.Equal(t, models.StatusNotDone, workout.Status)
	require.NotNil(t, workout.Deadline)
	assert.True(t, workout.Deadline.Equal(start.AddDate(0, 0, 2)))

	// Three days later the workout counter is overdue and its ONCE
	// reminder fires exactly once.
	s.FastForward(3)
	snap = s.Snapshot()
	workout = instance(t, snap, "a-workout")
	assert.Equal(t, models.StatusOverdue, workout.Status)
	require.Len(t, snap.Notifications, 1)
	assert.Equal(t, "a-workout", snap.Notifications[0].ActionID)

	s.FastForward(5)
	snap = s.Snapshot()
	assert.Len(t, snap.Notifications, 1, "ONCE reminders never repeat")

	// First workout: partial counter past its deadline stays OVERDUE.
	s.TriggerEvent("WORKOUT_TRACKED", models.ProductMemberApp)
	snap = s.Snapshot()
	workout = instance(t, snap, "a-workout")
	assert.Equal(t, 1, workout.CurrentCount)
	assert.Equal(t, models.StatusOverdue, workout.Status)

	// Second workout reaches the threshold.
	s.TriggerEvent("WORKOUT_TRACKED", models.ProductMemberApp)
	snap = s.Snapshot()
	workout = instance(t, snap, "a-workout")
	assert.Equal(t, 2, workout.CurrentCount)
	assert.Equal(t, models.StatusDone, workout.Status)
	require.NotNil(t, workout.CompletedAt)
	assert.True(t, workout.CompletedAt.Equal(snap.Now))

	// Completion is sticky under any further time advance.
	s.FastForward(30)
	snap = s.Snapshot()
	assert.Equal(t, models.StatusDone, instance(t, snap, "a-workout").Status)

	// The event log holds all three events, newest first.
	require.Len(t, snap.Events, 3)
	assert.Equal(t, "WORKOUT_TRACKED", snap.Events[0].EventType)
	assert.Equal(t, "ACCOUNT_CREATED", snap.Events[2].EventType)
}

func TestSessionPreviewDeadlineFollowsClockBeforeAnchor(t *testing.T) {
	s := NewSession(onboardingJourney(), start, zerolog.Nop())

	s.SetTime(start.AddDate(0, 0, 5))
	snap := s.Snapshot()
	preview := instance(t, snap, "a-workout")
	require.NotNil(t, preview.Deadline)
	assert.True(t, preview.Deadline.Equal(start.AddDate(0, 0, 7)), "preview deadline rebases on the moved clock")
}

func TestSessionWithPreviousChaining(t *testing.T) {
	journey := onboardingJourney()
	journey.Actions[1].TimeRange = models.RelativeToPrevious(2, models.UnitDays)

	s := NewSession(journey, start, zerolog.Nop())

	// Unsatisfied predecessor: no deadline yet.
	snap := s.Snapshot()
	assert.Nil(t, instance(t, snap, "a-workout").Deadline)

	s.TriggerEvent("ACCOUNT_CREATED", models.ProductMemberApp)
	snap = s.Snapshot()
	workout := instance(t, snap, "a-workout")
	require.NotNil(t, workout.Deadline)
	assert.True(t, workout.Deadline.Equal(start.AddDate(0, 0, 2)), "deadline chains from the predecessor's completion")
}

func TestSessionReset(t *testing.T) {
	s := NewSession(onboardingJourney(), start, zerolog.Nop())

	s.TriggerEvent("ACCOUNT_CREATED", models.ProductMemberApp)
	s.FastForward(10)
	s.TriggerEvent("WORKOUT_TRACKED", models.ProductMemberApp)

	snap := s.Snapshot()
	require.NotEmpty(t, snap.Events)
	require.NotNil(t, snap.AnchoredAt)

	s.Reset()
	snap = s.Snapshot()
	assert.Nil(t, snap.AnchoredAt)
	assert.Empty(t, snap.Events)
	assert.Empty(t, snap.Notifications)
	for _, inst := range snap.Instances {
		assert.Equal(t, models.StatusNotDone, inst.Status)
		assert.Zero(t, inst.CurrentCount)
		assert.Nil(t, inst.CompletedAt)
	}

	// The ledger was cleared too: going overdue again re-fires the ONCE
	// reminder.
	s.SetTime(s.Now().AddDate(0, 0, 1))
	s.TriggerEvent("ACCOUNT_CREATED", models.ProductMemberApp)
	s.FastForward(3)
	snap = s.Snapshot()
	assert.Len(t, snap.Notifications, 1)
}

func TestSessionMarkNotificationRead(t *testing.T) {
	s := NewSession(onboardingJourney(), start, zerolog.Nop())
	s.TriggerEvent("ACCOUNT_CREATED", models.ProductMemberApp)
	s.FastForward(3)

	snap := s.Snapshot()
	require.Len(t, snap.Notifications, 1)
	require.False(t, snap.Notifications[0].Read)

	assert.True(t, s.MarkNotificationRead(snap.Notifications[0].ID))
	assert.False(t, s.MarkNotificationRead("missing"))

	snap = s.Snapshot()
	assert.True(t, snap.Notifications[0].Read)
}
