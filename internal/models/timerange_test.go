package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeRangeValidate(t *testing.T) {
	tests := []struct {
		name    string
		tr      TimeRange
		wantErr bool
	}{
		{"none", NoDeadline(), false},
		{"none with stray duration", TimeRange{Kind: TimeRangeNone, DurationDays: 3}, true},
		{"absolute", AbsoluteDeadline(2, UnitDays), false},
		{"absolute zero duration", TimeRange{Kind: TimeRangeAbsolute}, true},
		{"absolute with stray offset", TimeRange{Kind: TimeRangeAbsolute, DurationDays: 2, OffsetDays: 1}, true},
		{"with previous", RelativeToPrevious(0, UnitDays), false},
		{"with previous negative offset", TimeRange{Kind: TimeRangeWithPrevious, OffsetDays: -1}, true},
		{"unknown kind", TimeRange{Kind: "SOMEDAY"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tr.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeRange)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUnitConversionRoundTrip(t *testing.T) {
	assert.Equal(t, 14, UnitToDays(2, UnitWeeks))
	assert.Equal(t, 60, UnitToDays(2, UnitMonths))
	assert.Equal(t, 5, UnitToDays(5, UnitDays))

	assert.Equal(t, 2, DaysToUnit(14, UnitWeeks))
	assert.Equal(t, 2, DaysToUnit(60, UnitMonths))
	assert.Equal(t, 5, DaysToUnit(5, UnitDays))
}

func TestDaysToUnitRoundsToNearest(t *testing.T) {
	// Weeks round at the half-week boundary, months at the half-month.
	assert.Equal(t, 1, DaysToUnit(10, UnitWeeks))
	assert.Equal(t, 2, DaysToUnit(11, UnitWeeks))
	assert.Equal(t, 1, DaysToUnit(44, UnitMonths))
	assert.Equal(t, 2, DaysToUnit(45, UnitMonths))
	assert.Equal(t, 0, DaysToUnit(3, UnitWeeks))
	assert.Equal(t, 1, DaysToUnit(4, UnitWeeks))
}
