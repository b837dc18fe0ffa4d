package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Weekday is the canonical day-of-week key, ISO numbering: Monday=1 ... Sunday=7.
//
// Some external data numbers days Sunday=0 ... Saturday=6. Convert with
// WeekdayFromSundayZero / Weekday.SundayZero at the ingestion boundary only.
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// AllWeekdays lists the days in ISO order
var AllWeekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var weekdayNames = map[Weekday]string{
	Monday:    "monday",
	Tuesday:   "tuesday",
	Wednesday: "wednesday",
	Thursday:  "thursday",
	Friday:    "friday",
	Saturday:  "saturday",
	Sunday:    "sunday",
}

// WeekdayFromISO converts an ISO number (1..7)
func WeekdayFromISO(n int) (Weekday, error) {
	w := Weekday(n)
	if !w.Valid() {
		return 0, fmt.Errorf("%w: iso %d", ErrInvalidWeekday, n)
	}
	return w, nil
}

// WeekdayFromSundayZero converts a Sunday=0..Saturday=6 number
func WeekdayFromSundayZero(n int) (Weekday, error) {
	if n < 0 || n > 6 {
		return 0, fmt.Errorf("%w: sunday-based %d", ErrInvalidWeekday, n)
	}
	if n == 0 {
		return Sunday, nil
	}
	return Weekday(n), nil
}

// WeekdayFromTime converts the standard library weekday (which is Sunday=0 based)
func WeekdayFromTime(d time.Weekday) Weekday {
	w, _ := WeekdayFromSundayZero(int(d))
	return w
}

// WeekdayOf returns the weekday of a date
func WeekdayOf(date time.Time) Weekday {
	return WeekdayFromTime(date.Weekday())
}

// ParseWeekday accepts a day name ("monday", "Mon") or an ISO number ("1")
func ParseWeekday(s string) (Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		return WeekdayFromISO(n)
	}
	for w, name := range weekdayNames {
		if s == name || (len(s) == 3 && strings.HasPrefix(name, s)) {
			return w, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidWeekday, s)
}

// Valid reports whether w is one of the seven ISO days
func (w Weekday) Valid() bool {
	return w >= Monday && w <= Sunday
}

// ISO returns the ISO number
func (w Weekday) ISO() int {
	return int(w)
}

// SundayZero returns the Sunday=0..Saturday=6 number
func (w Weekday) SundayZero() int {
	if w == Sunday {
		return 0
	}
	return int(w)
}

func (w Weekday) String() string {
	if name, ok := weekdayNames[w]; ok {
		return name
	}
	return "weekday(" + strconv.Itoa(int(w)) + ")"
}

// MarshalText encodes the day as its lowercase name, also used for JSON map keys
func (w Weekday) MarshalText() ([]byte, error) {
	if !w.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWeekday, int(w))
	}
	return []byte(w.String()), nil
}

func (w *Weekday) UnmarshalText(data []byte) error {
	parsed, err := ParseWeekday(string(data))
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}
