// Package overlay layers per-professional working windows and one-off date exceptions
// on top of business hours.
package overlay

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// Overlay is an immutable snapshot of professionals' default weekly windows and their
// date exceptions. Mutating methods return a new Overlay.
type Overlay struct {
	defaults   map[int64]domain.WeeklyHours
	exceptions map[int64][]domain.ProfessionalAvailability
}

// New builds an overlay. Exceptions are copied and grouped by professional; they are
// expected to be valid already (they come from storage or from WithException).
func New(defaults map[int64]domain.WeeklyHours, exceptions []*domain.ProfessionalAvailability) *Overlay {
	o := &Overlay{
		defaults:   make(map[int64]domain.WeeklyHours, len(defaults)),
		exceptions: make(map[int64][]domain.ProfessionalAvailability),
	}
	for id, hours := range defaults {
		o.defaults[id] = hours
	}
	for _, e := range exceptions {
		if e == nil {
			continue
		}
		o.exceptions[e.ProfessionalID] = append(o.exceptions[e.ProfessionalID], *e)
	}
	return o
}

// Professionals returns every professional known to the overlay, ascending
func (o *Overlay) Professionals() []int64 {
	seen := make(map[int64]struct{}, len(o.defaults)+len(o.exceptions))
	for id := range o.defaults {
		seen[id] = struct{}{}
	}
	for id := range o.exceptions {
		seen[id] = struct{}{}
	}

	ids := make([]int64, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// IsWorking reports whether the professional has a default window on the date's weekday
// or an exception on that exact date
func (o *Overlay) IsWorking(professionalID int64, date time.Time) bool {
	if o.defaults[professionalID].IsOpen(domain.WeekdayOf(date)) {
		return true
	}
	return len(o.exceptionsOn(professionalID, date)) > 0
}

// WindowsFor returns the professional's windows for a date. Exceptions on the exact
// date replace the weekday default, they are not merged with it.
func (o *Overlay) WindowsFor(professionalID int64, date time.Time) []domain.TimeRange {
	if exc := o.exceptionsOn(professionalID, date); len(exc) > 0 {
		windows := make([]domain.TimeRange, 0, len(exc))
		for _, e := range exc {
			windows = append(windows, e.Range())
		}
		domain.SortRanges(windows)
		return windows
	}

	windows := o.defaults[professionalID].Day(domain.WeekdayOf(date))
	domain.SortRanges(windows)
	return windows
}

// WithException adds an exception, or replaces the one with the same id.
// The window is validated eagerly (ErrInvalidRange) and must not overlap another
// exception of the same professional on the same date (ErrOverlap).
func (o *Overlay) WithException(exc domain.ProfessionalAvailability) (*Overlay, error) {
	if err := exc.Validate(); err != nil {
		return o, err
	}

	for _, other := range o.exceptionsOn(exc.ProfessionalID, exc.Date) {
		if other.ID == exc.ID {
			continue
		}
		if other.Range().Overlaps(exc.Range()) {
			return o, fmt.Errorf("%w: %s on %s overlaps %s", domain.ErrOverlap,
				exc.Range(), exc.Date.Format(domain.DateFormat), other.Range())
		}
	}

	next := o.clone()
	list := next.exceptions[exc.ProfessionalID]
	for i := range list {
		if list[i].ID == exc.ID {
			list[i] = exc
			return next, nil
		}
	}
	next.exceptions[exc.ProfessionalID] = append(list, exc)
	return next, nil
}

// WithoutException removes the exception with the given id
func (o *Overlay) WithoutException(id uuid.UUID) (*Overlay, error) {
	for profID, list := range o.exceptions {
		for i := range list {
			if list[i].ID != id {
				continue
			}
			next := o.clone()
			rest := append([]domain.ProfessionalAvailability{}, list[:i]...)
			next.exceptions[profID] = append(rest, list[i+1:]...)
			return next, nil
		}
	}
	return o, fmt.Errorf("%w: %s", domain.ErrExceptionNotFound, id)
}

func (o *Overlay) exceptionsOn(professionalID int64, date time.Time) []domain.ProfessionalAvailability {
	var out []domain.ProfessionalAvailability
	for _, e := range o.exceptions[professionalID] {
		if e.OnDate(date) {
			out = append(out, e)
		}
	}
	return out
}

func (o *Overlay) clone() *Overlay {
	next := &Overlay{
		defaults:   o.defaults,
		exceptions: make(map[int64][]domain.ProfessionalAvailability, len(o.exceptions)),
	}
	for id, list := range o.exceptions {
		next.exceptions[id] = append([]domain.ProfessionalAvailability(nil), list...)
	}
	return next
}
