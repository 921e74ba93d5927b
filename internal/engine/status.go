package engine

import (
	"time"

	"github.com/gymstack/journey-api/internal/models"
)

// Classify maps an action's current runtime facts to a status. It is a pure
// function re-evaluated on every clock tick and every event; there is no
// stored previous status to diff against.
//
// Priority order, first match wins:
//  1. a completion stamp always means DONE, even past the deadline
//  2. a partially filled counter is OVERDUE past its deadline, else IN_PROGRESS
//  3. a satisfied counter is DONE even without a stamp (the processor
//     normally stamps it first, this is the fallback)
//  4. past the deadline means OVERDUE
//  5. otherwise NOT_DONE
func Classify(action models.Action, deadline *time.Time, now time.Time, completedAt *time.Time, currentCount int) models.ActionStatus {
	if completedAt != nil {
		return models.StatusDone
	}

	if action.CompletionMode == models.CompletionCounter {
		required := action.Required()
		if currentCount > 0 && required > 0 && currentCount < required {
			if deadline != nil && now.After(*deadline) {
				return models.StatusOverdue
			}
			return models.StatusInProgress
		}
		if required > 0 && currentCount >= required {
			return models.StatusDone
		}
	}

	if deadline != nil && now.After(*deadline) {
		return models.StatusOverdue
	}

	return models.StatusNotDone
}
