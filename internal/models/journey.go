package models

import "time"

type NodeType string

const (
	NodeStart    NodeType = "START"
	NodeAction   NodeType = "ACTION"
	NodeDecision NodeType = "DECISION"
	NodeMerge    NodeType = "MERGE"
	NodeEnd      NodeType = "END"
)

// JourneyNode is structural bookkeeping for the builder canvas. Journeys are
// linear today: the node list is always START followed by one ACTION node per
// action. DECISION, MERGE and END are representable for forward
// compatibility but are never produced or evaluated.
type JourneyNode struct {
	ID       string   `json:"id" db:"id"`
	NodeType NodeType `json:"node_type" db:"node_type"`
	ActionID *string  `json:"action_id,omitempty" db:"action_id"`
	Position int      `json:"position" db:"position"`
}

// Journey is an ordered sequence of onboarding actions. Action order defines
// both the checklist display order and the WITH_PREVIOUS deadline chain.
type Journey struct {
	ID        string        `json:"id" db:"id"`
	Name      string        `json:"name" db:"name"`
	IsDefault bool          `json:"is_default" db:"is_default"`
	Nodes     []JourneyNode `json:"nodes"`
	Actions   []Action      `json:"actions"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" db:"updated_at"`
}

// EntryAction returns the first action in journey order, the only action
// eligible to complete before the journey is anchored. Nil for an empty
// journey.
func (j *Journey) EntryAction() *Action {
	if len(j.Actions) == 0 {
		return nil
	}
	return &j.Actions[0]
}

// ActionByID returns the action definition with the given id, or nil.
func (j *Journey) ActionByID(id string) *Action {
	for i := range j.Actions {
		if j.Actions[i].ID == id {
			return &j.Actions[i]
		}
	}
	return nil
}
