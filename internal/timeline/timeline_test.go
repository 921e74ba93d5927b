package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gymstack/journey-api/internal/models"
)

func action(id string, tr models.TimeRange) models.Action {
	return models.Action{ID: id, TimeRange: tr}
}

func days(positions []Position) map[string]int {
	out := make(map[string]int, len(positions))
	for _, p := range positions {
		out[p.ActionID] = p.Days
	}
	return out
}

func TestPositions(t *testing.T) {
	actions := []models.Action{
		action("entry", models.NoDeadline()),
		action("abs", models.AbsoluteDeadline(7, models.UnitDays)),
		action("chained", models.RelativeToPrevious(3, models.UnitDays)),
		action("floating", models.NoDeadline()),
		action("after-floating", models.RelativeToPrevious(2, models.UnitDays)),
	}

	got := Positions(actions)
	require.Len(t, got, 4, "actions without a resolvable offset are omitted")

	byID := days(got)
	assert.Equal(t, 0, byID["entry"], "entry action anchors the timeline at day zero")
	assert.Equal(t, 7, byID["abs"])
	assert.Equal(t, 10, byID["chained"])
	assert.NotContains(t, byID, "floating")
	assert.Equal(t, 12, byID["after-floating"], "chains from the last placed action, skipping unplaced ones")
}

func TestPositionsUnplaceableChain(t *testing.T) {
	// A WITH_PREVIOUS action directly after an entry still chains: the entry
	// sits at day zero regardless of its own time range.
	got := Positions([]models.Action{
		action("entry", models.NoDeadline()),
		action("chained", models.RelativeToPrevious(5, models.UnitDays)),
	})
	require.Len(t, got, 2)
	assert.Equal(t, 5, got[1].Days)
}

func TestPositionsEmptyJourney(t *testing.T) {
	assert.Empty(t, Positions(nil))
}

func TestStandardMarkersAscending(t *testing.T) {
	for i := 1; i < len(StandardMarkers); i++ {
		assert.Less(t, StandardMarkers[i-1].Days, StandardMarkers[i].Days)
	}
}
