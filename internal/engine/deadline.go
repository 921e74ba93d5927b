// Package engine implements the journey evaluation core: deadline
// resolution, status classification, reminder scheduling, and event
// processing. Every function here is synchronous and free of side effects
// on its inputs, except for the explicitly documented Ledger updates; the
// simulation session owns all state and threads it through these calls.
package engine

import (
	"time"

	"github.com/gymstack/journey-api/internal/models"
)

// ResolveDeadline converts a time-range rule into a concrete deadline
// instant, or nil when no deadline applies yet.
//
// NONE never has a deadline. ABSOLUTE adds whole calendar days to the entry
// anchor, preserving the anchor's time of day. WITH_PREVIOUS stays nil until
// the previous action's completion time is known, then adds the offset to
// it. Malformed rules (a missing or non-positive duration where one is
// required) resolve to nil rather than erroring, so callers can always
// render "no deadline yet".
func ResolveDeadline(tr models.TimeRange, entryAnchor time.Time, prevCompleted *time.Time) *time.Time {
	switch tr.Kind {
	case models.TimeRangeAbsolute:
		if tr.DurationDays < 1 {
			return nil
		}
		d := entryAnchor.AddDate(0, 0, tr.DurationDays)
		return &d
	case models.TimeRangeWithPrevious:
		if prevCompleted == nil || tr.OffsetDays < 0 {
			return nil
		}
		d := prevCompleted.AddDate(0, 0, tr.OffsetDays)
		return &d
	default:
		return nil
	}
}
