package models

type TimeRangeKind string

const (
	TimeRangeNone         TimeRangeKind = "NONE"
	TimeRangeAbsolute     TimeRangeKind = "ABSOLUTE"
	TimeRangeWithPrevious TimeRangeKind = "WITH_PREVIOUS"
)

type TimeUnit string

const (
	UnitDays   TimeUnit = "DAYS"
	UnitWeeks  TimeUnit = "WEEKS"
	UnitMonths TimeUnit = "MONTHS"
)

// TimeRange is the deadline rule of an action. Durations are always stored
// in whole days; the unit fields only record how the builder displayed the
// value. Which numeric fields are meaningful depends on Kind, so construct
// values through NoDeadline, AbsoluteDeadline, or RelativeToPrevious and
// rely on Validate to reject mismatched combinations.
type TimeRange struct {
	Kind         TimeRangeKind `json:"kind" db:"time_range_kind"`
	DurationDays int           `json:"duration_days,omitempty" db:"duration_days"`
	DurationUnit TimeUnit      `json:"duration_unit,omitempty" db:"duration_unit"`
	OffsetDays   int           `json:"offset_days,omitempty" db:"offset_days"`
	OffsetUnit   TimeUnit      `json:"offset_unit,omitempty" db:"offset_unit"`
}

func NoDeadline() TimeRange {
	return TimeRange{Kind: TimeRangeNone}
}

func AbsoluteDeadline(days int, unit TimeUnit) TimeRange {
	return TimeRange{Kind: TimeRangeAbsolute, DurationDays: days, DurationUnit: unit}
}

func RelativeToPrevious(offsetDays int, unit TimeUnit) TimeRange {
	return TimeRange{Kind: TimeRangeWithPrevious, OffsetDays: offsetDays, OffsetUnit: unit}
}

func (tr TimeRange) Validate() error {
	switch tr.Kind {
	case TimeRangeNone:
		if tr.DurationDays != 0 || tr.OffsetDays != 0 {
			return ErrInvalidTimeRange
		}
	case TimeRangeAbsolute:
		if tr.DurationDays < 1 || tr.OffsetDays != 0 {
			return ErrInvalidTimeRange
		}
	case TimeRangeWithPrevious:
		if tr.OffsetDays < 0 || tr.DurationDays != 0 {
			return ErrInvalidTimeRange
		}
	default:
		return ErrInvalidTimeRange
	}
	return nil
}

// DaysToUnit converts a stored day count into a display value for the given
// unit. Weeks and months round to the nearest whole unit (weeks = 7 days,
// months = 30 days), so the conversion is lossy. Display only; deadline
// arithmetic always stays in days.
func DaysToUnit(days int, unit TimeUnit) int {
	switch unit {
	case UnitWeeks:
		return (days + 3) / 7
	case UnitMonths:
		return (days + 15) / 30
	default:
		return days
	}
}

// UnitToDays converts a display value back into stored days.
func UnitToDays(value int, unit TimeUnit) int {
	switch unit {
	case UnitWeeks:
		return value * 7
	case UnitMonths:
		return value * 30
	default:
		return value
	}
}
