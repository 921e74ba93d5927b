package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gymstack/journey-api/internal/models"
)

func overdueInstance(reminders ...models.Reminder) models.ActionInstance {
	deadline := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	return models.ActionInstance{
		Action: models.Action{
			ID:             "a-overdue",
			ActionTypeID:   "A13",
			EventType:      "WORKOUT_TRACKED",
			CompletionMode: models.CompletionOccurrence,
			Reminders:      reminders,
		},
		Status:   models.StatusOverdue,
		Deadline: &deadline,
	}
}

func TestCheckRemindersRequiresOverdue(t *testing.T) {
	inst := overdueInstance(models.Reminder{ID: "r1", Channel: models.ChannelPush, Frequency: models.FrequencyOnce})
	now := inst.Deadline.AddDate(0, 0, 1)

	for _, status := range []models.ActionStatus{models.StatusNotDone, models.StatusInProgress, models.StatusDone} {
		inst.Status = status
		assert.Empty(t, CheckReminders(inst, now, Ledger{}), "status %s must not fire", status)
	}

	inst.Status = models.StatusOverdue
	inst.Deadline = nil
	assert.Empty(t, CheckReminders(inst, now, Ledger{}), "no deadline must not fire")
}

func TestCheckRemindersOnceFiresExactlyOnce(t *testing.T) {
	inst := overdueInstance(models.Reminder{ID: "r1", Channel: models.ChannelPush, Frequency: models.FrequencyOnce})
	ledger := Ledger{}
	now := inst.Deadline.AddDate(0, 0, 1)

	first := CheckReminders(inst, now, ledger)
	require.Len(t, first, 1)
	assert.Equal(t, models.ChannelPush, first[0].Channel)
	assert.Equal(t, "a-overdue", first[0].ActionID)
	assert.Equal(t, now, first[0].FiredAt)
	assert.False(t, first[0].Read)

	// Any number of later ticks while still overdue fires nothing more.
	for days := 2; days <= 20; days += 3 {
		again := CheckReminders(inst, inst.Deadline.AddDate(0, 0, days), ledger)
		assert.Empty(t, again)
	}
}

func TestCheckRemindersEveryXDays(t *testing.T) {
	inst := overdueInstance(models.Reminder{ID: "r1", Channel: models.ChannelEmail, Frequency: models.FrequencyEveryXDays, FrequencyDays: 3})
	ledger := Ledger{}
	start := inst.Deadline.AddDate(0, 0, 1)

	// Fires on first observed overdue.
	require.Len(t, CheckReminders(inst, start, ledger), 1)

	// Too soon: two days since the last fire.
	assert.Empty(t, CheckReminders(inst, start.AddDate(0, 0, 2), ledger))

	// Interval reached.
	require.Len(t, CheckReminders(inst, start.AddDate(0, 0, 3), ledger), 1)

	// A ten day jump fires once, not three times: the ledger records only
	// the latest fire, never a backlog.
	fired := CheckReminders(inst, start.AddDate(0, 0, 13), ledger)
	require.Len(t, fired, 1)
	assert.Empty(t, CheckReminders(inst, start.AddDate(0, 0, 14), ledger))
}

func TestCheckRemindersSilentChannels(t *testing.T) {
	inst := overdueInstance(
		models.Reminder{ID: "r1", Channel: models.ChannelTrainer, Frequency: models.FrequencyOnce},
		models.Reminder{ID: "r2", Channel: models.ChannelWebhook, Frequency: models.FrequencyEveryXDays, FrequencyDays: 1},
	)
	ledger := Ledger{}

	for days := 1; days <= 10; days++ {
		assert.Empty(t, CheckReminders(inst, inst.Deadline.AddDate(0, 0, days), ledger))
	}
	assert.Empty(t, ledger, "silent channels never touch the ledger")
}

func TestCheckRemindersOrdinalOrder(t *testing.T) {
	inst := overdueInstance(
		models.Reminder{ID: "first", Channel: models.ChannelPush, Frequency: models.FrequencyOnce, Position: 0},
		models.Reminder{ID: "second", Channel: models.ChannelEmail, Frequency: models.FrequencyOnce, Position: 1},
	)
	ledger := Ledger{}

	fired := CheckReminders(inst, inst.Deadline.AddDate(0, 0, 1), ledger)
	require.Len(t, fired, 2)
	assert.Equal(t, models.ChannelPush, fired[0].Channel)
	assert.Equal(t, models.ChannelEmail, fired[1].Channel)
}
