package models

import "time"

// ActionInstance is the runtime projection of an action definition within
// one simulation session. Instances are derived state: deadlines and
// statuses are recomputed on every clock change, and the whole set is
// discarded on session reset. CompletedAt is set once and never cleared
// except by reset.
type ActionInstance struct {
	Action

	Status       ActionStatus `json:"status"`
	CurrentCount int          `json:"current_count"`
	Deadline     *time.Time   `json:"deadline,omitempty"`
	CompletedAt  *time.Time   `json:"completed_at,omitempty"`
	AnchoredAt   *time.Time   `json:"anchored_at,omitempty"`
}

// Completed reports whether the instance carries a completion stamp.
// Completion is sticky: a completed instance is never reclassified.
func (ai ActionInstance) Completed() bool {
	return ai.CompletedAt != nil
}
