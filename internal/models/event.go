package models

import "time"

// Event is an immutable domain fact recorded against simulated time. The
// session event log is append-only; events are never mutated or removed
// except on full session reset.
type Event struct {
	ID         string                 `json:"id"`
	EventType  string                 `json:"event_type"`
	Product    Product                `json:"product"`
	OccurredAt time.Time              `json:"occurred_at"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}
