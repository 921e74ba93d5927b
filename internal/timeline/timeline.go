// Package timeline projects a journey's actions onto day offsets for the
// builder timeline view. Offsets are relative to the entry action at day
// zero; they are a static projection of the definition, independent of any
// simulation session.
package timeline

import "github.com/gymstack/journey-api/internal/models"

type Position struct {
	ActionID string        `json:"action_id"`
	Days     int           `json:"days"`
	Action   models.Action `json:"action"`
}

type Marker struct {
	Days  int             `json:"days"`
	Label string          `json:"label"`
	Unit  models.TimeUnit `json:"unit"`
}

// StandardMarkers are the fixed tick marks the builder timeline draws.
var StandardMarkers = []Marker{
	{Days: 1, Label: "1 Day", Unit: models.UnitDays},
	{Days: 7, Label: "1 Week", Unit: models.UnitWeeks},
	{Days: 14, Label: "2 Weeks", Unit: models.UnitWeeks},
	{Days: 28, Label: "4 Weeks", Unit: models.UnitWeeks},
	{Days: 60, Label: "2 Months", Unit: models.UnitMonths},
	{Days: 90, Label: "3 Months", Unit: models.UnitMonths},
	{Days: 180, Label: "6 Months", Unit: models.UnitMonths},
}

// Positions computes the day offset of every placeable action. The entry
// action sits at day zero, ABSOLUTE actions at their duration, and
// WITH_PREVIOUS actions chain from the previous placeable offset. Actions
// with no resolvable offset (NONE, or WITH_PREVIOUS with no placed
// predecessor) are omitted.
func Positions(actions []models.Action) []Position {
	positions := make([]Position, 0, len(actions))
	var prev *int

	for i, action := range actions {
		if i == 0 {
			zero := 0
			positions = append(positions, Position{ActionID: action.ID, Days: 0, Action: action})
			prev = &zero
			continue
		}

		days := offset(action, prev)
		if days == nil {
			continue
		}
		positions = append(positions, Position{ActionID: action.ID, Days: *days, Action: action})
		prev = days
	}
	return positions
}

func offset(action models.Action, prev *int) *int {
	switch action.TimeRange.Kind {
	case models.TimeRangeAbsolute:
		if action.TimeRange.DurationDays < 1 {
			return nil
		}
		d := action.TimeRange.DurationDays
		return &d
	case models.TimeRangeWithPrevious:
		if prev == nil {
			return nil
		}
		d := *prev + action.TimeRange.OffsetDays
		return &d
	default:
		return nil
	}
}
