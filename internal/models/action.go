package models

type Product string

const (
	ProductMemberApp     Product = "MEMBER_APP"
	ProductFitnessHub    Product = "FITNESS_HUB"
	ProductTrainerApp    Product = "TRAINER_APP"
	ProductSmartStrength Product = "SMART_STRENGTH"
	ProductUnknown       Product = "UNKNOWN"
)

func IsValidProduct(p Product) bool {
	switch p {
	case ProductMemberApp, ProductFitnessHub, ProductTrainerApp, ProductSmartStrength, ProductUnknown:
		return true
	}
	return false
}

type CompletionMode string

const (
	CompletionOccurrence CompletionMode = "OCCURRENCE"
	CompletionCounter    CompletionMode = "COUNTER"
)

// ActionStatus is the runtime state of an action within a simulation session.
type ActionStatus string

const (
	StatusNotDone    ActionStatus = "NOT_DONE"
	StatusInProgress ActionStatus = "IN_PROGRESS"
	StatusDone       ActionStatus = "DONE"
	StatusOverdue    ActionStatus = "OVERDUE"
)

// Action is one configured step of a journey. Definitions are immutable at
// runtime; per-session state lives on ActionInstance.
type Action struct {
	ID                 string         `json:"id" db:"id"`
	JourneyID          string         `json:"journey_id" db:"journey_id"`
	ActionTypeID       string         `json:"action_type_id" db:"action_type_id"`
	EventType          string         `json:"event_type" db:"event_type"`
	CompletionMode     CompletionMode `json:"completion_mode" db:"completion_mode"`
	RequiredCount      *int           `json:"required_count,omitempty" db:"required_count"`
	Product            Product        `json:"product" db:"product"`
	VisibleInChecklist bool           `json:"visible_in_checklist" db:"visible_in_checklist"`
	GuidanceEnabled    bool           `json:"guidance_enabled" db:"guidance_enabled"`
	Position           int            `json:"position" db:"position"`
	TimeRange          TimeRange      `json:"time_range"`
	Reminders          []Reminder     `json:"reminders"`
}

// Validate enforces the completion-mode invariant: RequiredCount is set if
// and only if the mode is COUNTER, and must then be at least 1.
func (a Action) Validate() error {
	switch a.CompletionMode {
	case CompletionOccurrence:
		if a.RequiredCount != nil {
			return ErrRequiredCountForbidden
		}
	case CompletionCounter:
		if a.RequiredCount == nil || *a.RequiredCount < 1 {
			return ErrRequiredCountMissing
		}
	default:
		return ErrInvalidCompletionMode
	}
	return a.TimeRange.Validate()
}

// Required returns the counter threshold, or 0 for OCCURRENCE actions.
func (a Action) Required() int {
	if a.RequiredCount == nil {
		return 0
	}
	return *a.RequiredCount
}
