package domain

import (
	"encoding/json"
	"fmt"
	"sort"
)

// WeeklyHours is the recurring weekly schedule: weekday -> chronological ranges.
// An empty or missing day means closed. Values are snapshots: accessors return copies
// and WithDay returns a new document, the receiver is never modified.
type WeeklyHours struct {
	days map[Weekday][]TimeRange
}

// NewWeeklyHours builds a document from a day mapping, copying the input.
// The result is not validated, call Validate before persisting.
func NewWeeklyHours(days map[Weekday][]TimeRange) WeeklyHours {
	h := WeeklyHours{days: make(map[Weekday][]TimeRange, len(AllWeekdays))}
	for day, ranges := range days {
		if len(ranges) == 0 {
			continue
		}
		h.days[day] = cloneRanges(ranges)
	}
	return h
}

// EmptyWeeklyHours returns a document with every day closed
func EmptyWeeklyHours() WeeklyHours {
	return WeeklyHours{days: map[Weekday][]TimeRange{}}
}

// Day returns a copy of the day's ranges (empty when closed)
func (h WeeklyHours) Day(day Weekday) []TimeRange {
	return cloneRanges(h.days[day])
}

// IsOpen reports whether the day has at least one range
func (h WeeklyHours) IsOpen(day Weekday) bool {
	return len(h.days[day]) > 0
}

// IsEmpty reports whether every day is closed
func (h WeeklyHours) IsEmpty() bool {
	for _, ranges := range h.days {
		if len(ranges) > 0 {
			return false
		}
	}
	return true
}

// WithDay returns a new document with the day's sequence replaced.
// Passing an empty slice closes the day.
func (h WeeklyHours) WithDay(day Weekday, ranges []TimeRange) WeeklyHours {
	next := NewWeeklyHours(h.days)
	if len(ranges) == 0 {
		delete(next.days, day)
		return next
	}
	next.days[day] = cloneRanges(ranges)
	return next
}

// Validate checks every range (ErrInvalidRange) and that ranges of one day do not
// overlap (ErrOverlap)
func (h WeeklyHours) Validate() error {
	for _, day := range AllWeekdays {
		if err := ValidateDay(h.days[day]); err != nil {
			return fmt.Errorf("%s: %w", day, err)
		}
	}
	for day := range h.days {
		if !day.Valid() {
			return fmt.Errorf("%w: %d", ErrInvalidWeekday, int(day))
		}
	}
	return nil
}

// ValidateDay checks one day's sequence
func ValidateDay(ranges []TimeRange) error {
	for i, r := range ranges {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("range %d: %w", i, err)
		}
	}
	for i := 0; i < len(ranges); i++ {
		for j := i + 1; j < len(ranges); j++ {
			if ranges[i].Overlaps(ranges[j]) {
				return fmt.Errorf("%w: %s and %s", ErrOverlap, ranges[i], ranges[j])
			}
		}
	}
	return nil
}

// Equal compares two documents day by day, range order included
func (h WeeklyHours) Equal(other WeeklyHours) bool {
	for _, day := range AllWeekdays {
		a, b := h.days[day], other.days[day]
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if !a[i].Start.Equal(b[i].Start) || !a[i].End.Equal(b[i].End) {
				return false
			}
		}
	}
	return true
}

// MarshalJSON writes all seven days, closed days as []
func (h WeeklyHours) MarshalJSON() ([]byte, error) {
	doc := make(map[Weekday][]TimeRange, len(AllWeekdays))
	for _, day := range AllWeekdays {
		ranges := h.days[day]
		if ranges == nil {
			ranges = []TimeRange{}
		}
		doc[day] = ranges
	}
	return json.Marshal(doc)
}

// UnmarshalJSON reads a day-name keyed document. Range order is kept as is.
func (h *WeeklyHours) UnmarshalJSON(data []byte) error {
	var doc map[Weekday][]TimeRange
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*h = NewWeeklyHours(doc)
	return nil
}

// SortRanges orders ranges chronologically by start, then end
func SortRanges(ranges []TimeRange) {
	sort.SliceStable(ranges, func(i, j int) bool {
		if ranges[i].Start.Equal(ranges[j].Start) {
			return ranges[i].End.IsBefore(ranges[j].End)
		}
		return ranges[i].Start.IsBefore(ranges[j].Start)
	})
}

func cloneRanges(ranges []TimeRange) []TimeRange {
	out := make([]TimeRange, len(ranges))
	copy(out, ranges)
	return out
}
