// Package checklist builds the read-model strings the member checklist
// renders. It only reads engine output and never mutates session state.
package checklist

import (
	"fmt"
	"time"

	"github.com/gymstack/journey-api/internal/models"
)

// FormatTimeFrame renders a human-readable deadline line for an action.
func FormatTimeFrame(action models.Action, deadline *time.Time, now time.Time) string {
	if action.TimeRange.Kind == models.TimeRangeNone {
		return "No deadline"
	}
	if deadline == nil {
		// WITH_PREVIOUS before the predecessor completed.
		return "Pending previous action"
	}

	diff := deadline.Sub(now)
	days := int(diff.Hours() / 24)

	switch {
	case days < 0:
		overdue := -days
		if overdue == 1 {
			return "Overdue by 1 day"
		}
		return fmt.Sprintf("Overdue by %d days", overdue)
	case days == 0:
		if diff < 0 {
			return "Overdue"
		}
		return "Due today"
	case days == 1:
		return "Due in 1 day"
	case days <= 7:
		return fmt.Sprintf("Due in %d days", days)
	case days <= 30:
		weeks := days / 7
		rest := days % 7
		if rest == 0 {
			if weeks == 1 {
				return "Due in 1 week"
			}
			return fmt.Sprintf("Due in %d weeks", weeks)
		}
		return fmt.Sprintf("Due in %s and %s", plural(weeks, "week"), plural(rest, "day"))
	default:
		return "Due: " + deadline.Format("Jan 2, 2006")
	}
}

// FormatProgress renders the "2 of 5" progress text for counter actions.
func FormatProgress(currentCount, requiredCount int) string {
	return fmt.Sprintf("%d of %d", currentCount, requiredCount)
}

// ProgressPercent returns counter progress clamped to 0..100.
func ProgressPercent(currentCount, requiredCount int) float64 {
	if requiredCount <= 0 {
		return 0
	}
	pct := float64(currentCount) / float64(requiredCount) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
