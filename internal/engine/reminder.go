package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gymstack/journey-api/internal/library"
	"github.com/gymstack/journey-api/internal/models"
)

// Ledger maps a reminder id to the last instant it fired. It is the only
// memory the scheduler has across calls and lives for the duration of one
// simulation session. The ledger records only the latest fire: fast
// forwarding ten days over a three day interval produces one notification,
// not a backlog.
type Ledger map[string]time.Time

// CheckReminders decides which of an action's reminders fire at the given
// instant and returns the resulting notifications, updating the ledger for
// each fired reminder.
//
// Reminders are exclusively an overdue escalation mechanism: nothing fires
// unless the instance is OVERDUE with a deadline set. Trainer and webhook
// channels are silent sinks and are skipped entirely. ONCE fires the first
// time the action is observed overdue; EVERY_X_DAYS fires on first
// observation and then whenever at least the configured number of whole
// days has elapsed since its last fire. Reminders are evaluated in their
// stored ordinal positions, so notification order is deterministic.
func CheckReminders(inst models.ActionInstance, now time.Time, ledger Ledger) []models.Notification {
	if inst.Status != models.StatusOverdue || inst.Deadline == nil {
		return nil
	}

	var fired []models.Notification
	for _, rem := range inst.Reminders {
		if rem.Channel.Silent() {
			continue
		}

		last, seen := ledger[rem.ID]
		switch rem.Frequency {
		case models.FrequencyOnce:
			if seen {
				continue
			}
		case models.FrequencyEveryXDays:
			if seen && daysBetween(last, now) < rem.FrequencyDays {
				continue
			}
		default:
			continue
		}

		ledger[rem.ID] = now
		fired = append(fired, newNotification(inst, rem, now))
	}
	return fired
}

// daysBetween returns the number of whole days from a to b.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

func newNotification(inst models.ActionInstance, rem models.Reminder, now time.Time) models.Notification {
	title := library.Title(inst.ActionTypeID)
	return models.Notification{
		ID:          uuid.NewString(),
		Channel:     rem.Channel,
		ActionID:    inst.Action.ID,
		ActionTitle: title,
		Message:     fmt.Sprintf("Reminder: %q is overdue. Complete it to stay on track.", title),
		FiredAt:     now,
	}
}
