package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gymstack/journey-api/internal/models"
)

func TestResolveDeadline(t *testing.T) {
	anchor := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	prev := time.Date(2025, 3, 5, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		tr   models.TimeRange
		prev *time.Time
		want *time.Time
	}{
		{
			name: "NONE never has a deadline",
			tr:   models.NoDeadline(),
			want: nil,
		},
		{
			name: "ABSOLUTE adds days to the anchor",
			tr:   models.AbsoluteDeadline(14, models.UnitWeeks),
			want: timePtr(time.Date(2025, 3, 15, 9, 30, 0, 0, time.UTC)),
		},
		{
			name: "ABSOLUTE preserves the anchor's time of day",
			tr:   models.AbsoluteDeadline(1, models.UnitDays),
			want: timePtr(time.Date(2025, 3, 2, 9, 30, 0, 0, time.UTC)),
		},
		{
			name: "ABSOLUTE with a malformed duration resolves to nil",
			tr:   models.TimeRange{Kind: models.TimeRangeAbsolute, DurationDays: 0},
			want: nil,
		},
		{
			name: "WITH_PREVIOUS is gated on the previous completion",
			tr:   models.RelativeToPrevious(3, models.UnitDays),
			want: nil,
		},
		{
			name: "WITH_PREVIOUS offsets from the previous completion",
			tr:   models.RelativeToPrevious(3, models.UnitDays),
			prev: &prev,
			want: timePtr(time.Date(2025, 3, 8, 18, 0, 0, 0, time.UTC)),
		},
		{
			name: "WITH_PREVIOUS with zero offset lands on the previous completion",
			tr:   models.RelativeToPrevious(0, models.UnitDays),
			prev: &prev,
			want: &prev,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveDeadline(tt.tr, anchor, tt.prev)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, got.Equal(*tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestResolveDeadlineIndependentOfCurrentTime(t *testing.T) {
	// The resolver has no notion of "now": the same anchor always yields
	// the same deadline.
	tr := models.AbsoluteDeadline(7, models.UnitDays)
	anchor := time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC)

	first := ResolveDeadline(tr, anchor, nil)
	second := ResolveDeadline(tr, anchor, nil)

	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.True(t, first.Equal(*second))
	assert.True(t, first.Equal(anchor.AddDate(0, 0, 7)))
}

func timePtr(t time.Time) *time.Time {
	return &t
}
