package domain

import "errors"

var (
	// ErrInvalidRange is returned when a time range does not satisfy start < end
	ErrInvalidRange = errors.New("domain: invalid time range, start must be before end")

	// ErrOverlap is returned when a range would overlap another range of the same day
	ErrOverlap = errors.New("domain: time range overlaps another range of the same day")

	// ErrUnknownTemplate is returned for an unrecognised hours template name
	ErrUnknownTemplate = errors.New("domain: unknown hours template")

	// ErrLastRange is returned when removing the only range of an active day
	ErrLastRange = errors.New("domain: cannot remove the last range of an active day")

	// ErrRangeIndex is returned for a range index outside the day's sequence
	ErrRangeIndex = errors.New("domain: range index out of bounds")

	// ErrInvalidWeekday is returned for a weekday outside the accepted numbering scheme
	ErrInvalidWeekday = errors.New("domain: invalid weekday")

	// ErrExceptionNotFound is returned when an availability exception does not exist
	ErrExceptionNotFound = errors.New("domain: availability exception not found")
)
