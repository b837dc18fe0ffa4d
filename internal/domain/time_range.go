package domain

import (
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// TimeRange is a start/end pair on a single day, half-open: [Start, End)
type TimeRange struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// NewTimeRange builds a range and rejects start >= end with ErrInvalidRange
func NewTimeRange(start, end types.TimeString) (TimeRange, error) {
	r := TimeRange{Start: start, End: end}
	if err := r.Validate(); err != nil {
		return TimeRange{}, err
	}
	return r, nil
}

// MustTimeRange parses "HH:MM" bounds and panics on error. Constants and tests only.
func MustTimeRange(start, end string) TimeRange {
	r, err := NewTimeRange(types.MustParse(start), types.MustParse(end))
	if err != nil {
		panic(err)
	}
	return r
}

// Validate checks that both bounds are set and Start < End
func (r TimeRange) Validate() error {
	if err := r.Start.Validate(); err != nil {
		return fmt.Errorf("%w: start: %v", ErrInvalidRange, err)
	}
	if err := r.End.Validate(); err != nil {
		return fmt.Errorf("%w: end: %v", ErrInvalidRange, err)
	}
	if !r.Start.IsBefore(r.End) {
		return fmt.Errorf("%w: %s", ErrInvalidRange, r)
	}
	return nil
}

// Overlaps reports whether the half-open ranges share any minute.
// Adjacent ranges (09:00-10:00, 10:00-11:00) do not overlap.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.IsBefore(other.End) && other.Start.IsBefore(r.End)
}

// Intersect returns the common part of two ranges
func (r TimeRange) Intersect(other TimeRange) (TimeRange, bool) {
	if !r.Overlaps(other) {
		return TimeRange{}, false
	}

	start := r.Start
	if other.Start.IsAfter(start) {
		start = other.Start
	}
	end := r.End
	if other.End.IsBefore(end) {
		end = other.End
	}

	return TimeRange{Start: start, End: end}, true
}

// Contains reports whether other lies fully inside r
func (r TimeRange) Contains(other TimeRange) bool {
	return !other.Start.IsBefore(r.Start) && !other.End.IsAfter(r.End)
}

// DurationMinutes returns the length of the range in minutes
func (r TimeRange) DurationMinutes() int {
	return r.End.Minutes() - r.Start.Minutes()
}

func (r TimeRange) String() string {
	return r.Start.String() + "-" + r.End.String()
}

// Overlaps is the free-function form of TimeRange.Overlaps
func Overlaps(a, b TimeRange) bool {
	return a.Overlaps(b)
}
