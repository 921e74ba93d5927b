package models

type ReminderChannel string

const (
	ChannelPush    ReminderChannel = "PUSH"
	ChannelEmail   ReminderChannel = "EMAIL"
	ChannelTrainer ReminderChannel = "TRAINER"
	ChannelWebhook ReminderChannel = "WEBHOOK"
)

func IsValidChannel(c ReminderChannel) bool {
	switch c {
	case ChannelPush, ChannelEmail, ChannelTrainer, ChannelWebhook:
		return true
	}
	return false
}

// Silent reports whether the channel is a sink that never surfaces a
// member-visible notification. Trainer and webhook reminders are delivered
// out of band, not through the member feed.
func (c ReminderChannel) Silent() bool {
	return c == ChannelTrainer || c == ChannelWebhook
}

type ReminderFrequency string

const (
	FrequencyOnce       ReminderFrequency = "ONCE"
	FrequencyEveryXDays ReminderFrequency = "EVERY_X_DAYS"
)

// Reminder is an escalation policy attached to a single action. Reminders
// only ever fire while the owning action is overdue.
type Reminder struct {
	ID            string            `json:"id" db:"id"`
	ActionID      string            `json:"action_id" db:"action_id"`
	Channel       ReminderChannel   `json:"channel" db:"channel"`
	Frequency     ReminderFrequency `json:"frequency" db:"frequency"`
	FrequencyDays int               `json:"frequency_days,omitempty" db:"frequency_days"`
	Position      int               `json:"position" db:"position"`
}

func (r Reminder) Validate() error {
	if !IsValidChannel(r.Channel) {
		return ErrInvalidReminder
	}
	switch r.Frequency {
	case FrequencyOnce:
	case FrequencyEveryXDays:
		if r.FrequencyDays < 1 {
			return ErrInvalidReminder
		}
	default:
		return ErrInvalidReminder
	}
	return nil
}
