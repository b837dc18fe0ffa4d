package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// ProfessionalAvailability is a one-off working window of one professional on an exact
// date. Exceptions for a date replace the professional's weekday defaults for that date.
type ProfessionalAvailability struct {
	ID             uuid.UUID
	BusinessID     int64
	ProfessionalID int64
	Date           time.Time // date only, time of day is ignored
	Start          types.TimeString
	End            types.TimeString
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewProfessionalAvailability validates eagerly and generates an id when id is uuid.Nil
func NewProfessionalAvailability(
	id uuid.UUID,
	businessID, professionalID int64,
	date time.Time,
	start, end types.TimeString,
) (*ProfessionalAvailability, error) {
	if id == uuid.Nil {
		id = uuid.New()
	}
	a := &ProfessionalAvailability{
		ID:             id,
		BusinessID:     businessID,
		ProfessionalID: professionalID,
		Date:           DateOnly(date),
		Start:          start,
		End:            end,
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Range returns the window as a TimeRange
func (a *ProfessionalAvailability) Range() TimeRange {
	return TimeRange{Start: a.Start, End: a.End}
}

// Validate checks start < end and that the date is set
func (a *ProfessionalAvailability) Validate() error {
	if a.Date.IsZero() {
		return fmt.Errorf("%w: availability date is required", ErrInvalidRange)
	}
	return a.Range().Validate()
}

// OnDate reports whether the exception is for the given calendar date
func (a *ProfessionalAvailability) OnDate(date time.Time) bool {
	return SameDate(a.Date, date)
}

// DateOnly truncates a time to midnight UTC of its calendar date
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDate compares calendar dates, ignoring time of day and location
func SameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
