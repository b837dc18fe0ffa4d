// Package editor implements the mutation operations of the weekly hours editor.
//
// Every operation takes a snapshot and returns a new one; the input is never changed.
// Edits are validated eagerly: an operation that would leave a day with an invalid or
// overlapping range fails instead of returning the broken snapshot. Ranges of the edited
// day are kept in chronological order, so indexes refer to that order.
package editor

import (
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Bound selects which end of a range SetRangeBound replaces
type Bound string

const (
	BoundStart Bound = "start"
	BoundEnd   Bound = "end"
)

// ParseBound validates a bound name
func ParseBound(s string) (Bound, error) {
	switch Bound(s) {
	case BoundStart, BoundEnd:
		return Bound(s), nil
	default:
		return "", fmt.Errorf("unknown range bound %q", s)
	}
}

// SetDayActive closes the day (active=false) or opens it. Opening an empty day seeds
// the default range; opening a day that already has ranges changes nothing.
func SetDayActive(hours domain.WeeklyHours, day domain.Weekday, active bool) (domain.WeeklyHours, error) {
	if !day.Valid() {
		return hours, fmt.Errorf("%w: %d", domain.ErrInvalidWeekday, int(day))
	}
	if !active {
		return hours.WithDay(day, nil), nil
	}
	if hours.IsOpen(day) {
		return hours, nil
	}
	return hours.WithDay(day, []domain.TimeRange{domain.DefaultRange}), nil
}

// AddRange appends the default range to the day
func AddRange(hours domain.WeeklyHours, day domain.Weekday) (domain.WeeklyHours, error) {
	return AddRangeValue(hours, day, domain.DefaultRange)
}

// AddRangeValue appends r to the day
func AddRangeValue(hours domain.WeeklyHours, day domain.Weekday, r domain.TimeRange) (domain.WeeklyHours, error) {
	if !day.Valid() {
		return hours, fmt.Errorf("%w: %d", domain.ErrInvalidWeekday, int(day))
	}
	ranges := append(hours.Day(day), r)
	return commitDay(hours, day, ranges)
}

// RemoveRange removes the range at index. The last range of an active day is never
// removed (ErrLastRange): closing a day is SetDayActive(day, false).
func RemoveRange(hours domain.WeeklyHours, day domain.Weekday, index int) (domain.WeeklyHours, error) {
	ranges, err := dayWithIndex(hours, day, index)
	if err != nil {
		return hours, err
	}
	if len(ranges) == 1 {
		return hours, fmt.Errorf("%w: %s", domain.ErrLastRange, day)
	}

	ranges = append(ranges[:index], ranges[index+1:]...)
	return hours.WithDay(day, ranges), nil
}

// SetRangeBound replaces the start or end of the range at index
func SetRangeBound(
	hours domain.WeeklyHours,
	day domain.Weekday,
	index int,
	which Bound,
	value types.TimeString,
) (domain.WeeklyHours, error) {
	ranges, err := dayWithIndex(hours, day, index)
	if err != nil {
		return hours, err
	}

	switch which {
	case BoundStart:
		ranges[index].Start = value
	case BoundEnd:
		ranges[index].End = value
	default:
		return hours, fmt.Errorf("unknown range bound %q", which)
	}

	return commitDay(hours, day, ranges)
}

// SetRange replaces both bounds of the range at index at once
func SetRange(hours domain.WeeklyHours, day domain.Weekday, index int, r domain.TimeRange) (domain.WeeklyHours, error) {
	ranges, err := dayWithIndex(hours, day, index)
	if err != nil {
		return hours, err
	}
	ranges[index] = r
	return commitDay(hours, day, ranges)
}

func dayWithIndex(hours domain.WeeklyHours, day domain.Weekday, index int) ([]domain.TimeRange, error) {
	if !day.Valid() {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidWeekday, int(day))
	}
	ranges := hours.Day(day)
	if index < 0 || index >= len(ranges) {
		return nil, fmt.Errorf("%w: %s has %d ranges, got index %d", domain.ErrRangeIndex, day, len(ranges), index)
	}
	return ranges, nil
}

// commitDay validates the new sequence of one day and returns the updated snapshot
func commitDay(hours domain.WeeklyHours, day domain.Weekday, ranges []domain.TimeRange) (domain.WeeklyHours, error) {
	if err := domain.ValidateDay(ranges); err != nil {
		return hours, fmt.Errorf("%s: %w", day, err)
	}
	domain.SortRanges(ranges)
	return hours.WithDay(day, ranges), nil
}
