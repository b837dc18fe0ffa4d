// Package slots derives bookable time slots from business hours, professionals' working
// windows and the booking ledger. Everything here is pure and safe for concurrent use.
package slots

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/schedule/overlay"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

var (
	ErrInvalidGranularity = errors.New("slots: granularity must be a positive whole number of minutes")
	ErrOutsideOpenHours   = errors.New("slots: interval is outside open hours")
	ErrSlotOccupied       = errors.New("slots: interval overlaps an existing booking")
)

// Input is everything the engine needs for one business and one date.
// Date carries the business location; ticks are placed on the date in that location.
type Input struct {
	BusinessHours domain.WeeklyHours
	Overlay       *overlay.Overlay
	Bookings      []*domain.Booking
	Date          time.Time
	Granularity   time.Duration
}

// Compute returns the slots of every professional with a non-empty open window,
// ordered by professional id and then by time
func Compute(in Input) ([]domain.Slot, error) {
	step, err := stepMinutes(in.Granularity)
	if err != nil {
		return nil, err
	}

	business := in.BusinessHours.Day(domain.WeekdayOf(in.Date))
	if len(business) == 0 || in.Overlay == nil {
		return []domain.Slot{}, nil
	}
	domain.SortRanges(business)

	ledger := domain.Ledger(in.Bookings)
	out := make([]domain.Slot, 0)

	for _, profID := range in.Overlay.Professionals() {
		if !in.Overlay.IsWorking(profID, in.Date) {
			continue
		}
		windows := openWindows(business, in.Overlay.WindowsFor(profID, in.Date))
		for _, window := range windows {
			out = append(out, ticks(window, step, profID, in.Date, ledger)...)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ProfessionalID != out[j].ProfessionalID {
			return out[i].ProfessionalID < out[j].ProfessionalID
		}
		return out[i].Time.IsBefore(out[j].Time)
	})
	return out, nil
}

// OpenWindows returns the professional's open windows on the input date:
// business ranges intersected with the professional's windows
func OpenWindows(in Input, professionalID int64) []domain.TimeRange {
	if in.Overlay == nil {
		return nil
	}
	business := in.BusinessHours.Day(domain.WeekdayOf(in.Date))
	domain.SortRanges(business)
	return openWindows(business, in.Overlay.WindowsFor(professionalID, in.Date))
}

// CheckInterval verifies that [start, end) lies inside one open window of the professional
// and does not overlap an active booking
func CheckInterval(in Input, professionalID int64, start, end time.Time) error {
	requested, err := intervalOn(in.Date, start, end)
	if err != nil {
		return err
	}

	inside := false
	for _, window := range OpenWindows(in, professionalID) {
		if window.Contains(requested) {
			inside = true
			break
		}
	}
	if !inside {
		return fmt.Errorf("%w: %s", ErrOutsideOpenHours, requested)
	}

	return CheckOccupancy(in, professionalID, start, end)
}

// CheckOccupancy verifies only that [start, end) does not overlap an active booking
// of the professional
func CheckOccupancy(in Input, professionalID int64, start, end time.Time) error {
	if !start.Before(end) {
		return fmt.Errorf("%w: %s - %s", domain.ErrInvalidRange,
			start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	for _, b := range domain.Ledger(in.Bookings) {
		if b.AppliesTo(professionalID) && b.Overlaps(start, end) {
			return fmt.Errorf("%w: booking %d", ErrSlotOccupied, b.ID)
		}
	}
	return nil
}

func stepMinutes(granularity time.Duration) (int, error) {
	if granularity <= 0 || granularity%time.Minute != 0 {
		return 0, fmt.Errorf("%w: %s", ErrInvalidGranularity, granularity)
	}
	return int(granularity / time.Minute), nil
}

// openWindows intersects two chronologically sorted, non-overlapping range lists
func openWindows(business, professional []domain.TimeRange) []domain.TimeRange {
	var out []domain.TimeRange
	for _, b := range business {
		for _, p := range professional {
			if w, ok := b.Intersect(p); ok {
				out = append(out, w)
			}
		}
	}
	domain.SortRanges(out)
	return out
}

func ticks(window domain.TimeRange, step int, profID int64, date time.Time, ledger []*domain.Booking) []domain.Slot {
	var out []domain.Slot
	for m := window.Start.Minutes(); m+step <= window.End.Minutes(); m += step {
		tick, err := types.NewTimeStringFromMinutes(m)
		if err != nil {
			break
		}
		next, err := tick.AddMinutes(step)
		if err != nil {
			break
		}
		start, end := tick.On(date), next.On(date)

		slot := domain.Slot{
			Time:            tick,
			DurationMinutes: step,
			ProfessionalID:  profID,
			State:           domain.SlotFree,
		}
		for _, b := range ledger {
			if b.AppliesTo(profID) && b.Overlaps(start, end) {
				slot.State = domain.SlotBooked
				slot.Occupant = &domain.Occupant{
					BookingID:   b.ID,
					Kind:        b.Kind,
					ClientName:  b.ClientName,
					ServiceName: b.ServiceName,
				}
				break
			}
		}
		out = append(out, slot)
	}
	return out
}

// intervalOn converts instants into a wall-clock range on date. The end may be the
// following midnight (24:00). Positions are read from the clock, not from elapsed time,
// so the result matches the ticks of Compute on DST-change days.
func intervalOn(date time.Time, start, end time.Time) (domain.TimeRange, error) {
	loc := date.Location()
	y, m, d := date.Date()
	ny, nm, nd := time.Date(y, m, d+1, 0, 0, 0, 0, loc).Date()

	notOnDate := fmt.Errorf("%w: interval is not on %s at minute resolution",
		ErrOutsideOpenHours, date.Format(domain.DateFormat))

	s := start.In(loc)
	if sy, sm, sd := s.Date(); sy != y || sm != m || sd != d || !onMinute(s) {
		return domain.TimeRange{}, notOnDate
	}
	startMin := clockMinutes(s)

	e := end.In(loc)
	if !onMinute(e) {
		return domain.TimeRange{}, notOnDate
	}
	var endMin int
	switch ey, em, ed := e.Date(); {
	case ey == y && em == m && ed == d:
		endMin = clockMinutes(e)
	case ey == ny && em == nm && ed == nd && clockMinutes(e) == 0:
		endMin = 24 * 60
	default:
		return domain.TimeRange{}, notOnDate
	}

	from, err := types.NewTimeStringFromMinutes(startMin)
	if err != nil {
		return domain.TimeRange{}, fmt.Errorf("%w: %v", ErrOutsideOpenHours, err)
	}
	to, err := types.NewTimeStringFromMinutes(endMin)
	if err != nil {
		return domain.TimeRange{}, fmt.Errorf("%w: %v", ErrOutsideOpenHours, err)
	}
	return domain.NewTimeRange(from, to)
}

func clockMinutes(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func onMinute(t time.Time) bool {
	return t.Second() == 0 && t.Nanosecond() == 0
}
