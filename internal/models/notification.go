package models

import "time"

// Notification is the member-visible record of a fired reminder. Read is the
// only mutable field and only ever flips false to true.
type Notification struct {
	ID          string          `json:"id"`
	Channel     ReminderChannel `json:"channel"`
	ActionID    string          `json:"action_id"`
	ActionTitle string          `json:"action_title"`
	Message     string          `json:"message"`
	FiredAt     time.Time       `json:"fired_at"`
	Read        bool            `json:"read"`
}
