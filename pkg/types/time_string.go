package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	minutesPerHour = 60
	// MinutesPerDay количество минут в сутках, 24:00 допустимо как конец дня
	MinutesPerDay = 24 * minutesPerHour
)

var (
	// ErrInvalidTimeFormat возвращается при разборе строки не в формате HH:MM или HH:MM:SS
	ErrInvalidTimeFormat = errors.New("types: invalid time format, expected HH:MM")

	// ErrTimeOutOfRange возвращается, когда время выходит за пределы суток
	ErrTimeOutOfRange = errors.New("types: time is out of day range")
)

// TimeString время суток с точностью до минуты ("09:30").
// Нулевое значение означает "не задано", см. IsZero.
type TimeString struct {
	minutes int
	set     bool
}

// NewTimeString создает TimeString из часов и минут time.Time (дата и секунды отбрасываются)
func NewTimeString(t time.Time) TimeString {
	return TimeString{minutes: t.Hour()*minutesPerHour + t.Minute(), set: true}
}

// NewTimeStringFromMinutes создает TimeString из количества минут от начала суток
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes > MinutesPerDay {
		return TimeString{}, fmt.Errorf("%w: %d minutes", ErrTimeOutOfRange, minutes)
	}
	return TimeString{minutes: minutes, set: true}, nil
}

// NewTimeStringFromString разбирает строку "HH:MM" или "HH:MM:SS" (секунды только 00).
// "24:00" допустимо и означает конец суток.
func NewTimeStringFromString(s string) (TimeString, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return TimeString{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	values := make([]int, len(parts))
	for i, p := range parts {
		if len(p) != 2 {
			return TimeString{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
		}
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 {
			return TimeString{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
		}
		values[i] = v
	}

	hours, minutes := values[0], values[1]
	if minutes >= minutesPerHour || (len(values) == 3 && values[2] != 0) {
		return TimeString{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	return NewTimeStringFromMinutes(hours*minutesPerHour + minutes)
}

// MustParse как NewTimeStringFromString, но паникует при ошибке. Только для констант и тестов.
func MustParse(s string) TimeString {
	t, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Minutes возвращает количество минут от начала суток
func (t TimeString) Minutes() int {
	return t.minutes
}

// IsZero возвращает true, если время не задано
func (t TimeString) IsZero() bool {
	return !t.set
}

// Validate проверяет, что время задано и лежит в пределах суток
func (t TimeString) Validate() error {
	if !t.set {
		return fmt.Errorf("%w: empty value", ErrInvalidTimeFormat)
	}
	if t.minutes < 0 || t.minutes > MinutesPerDay {
		return fmt.Errorf("%w: %d minutes", ErrTimeOutOfRange, t.minutes)
	}
	return nil
}

// AddMinutes возвращает время, сдвинутое на n минут. Переход через сутки - ошибка.
func (t TimeString) AddMinutes(n int) (TimeString, error) {
	return NewTimeStringFromMinutes(t.minutes + n)
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.minutes < other.minutes
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.minutes > other.minutes
}

// Equal сравнивает два значения времени
func (t TimeString) Equal(other TimeString) bool {
	return t.minutes == other.minutes && t.set == other.set
}

// On возвращает момент времени t в дату date (в часовом поясе date)
func (t TimeString) On(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, t.minutes, 0, 0, date.Location())
}

// String возвращает время в формате "HH:MM"
func (t TimeString) String() string {
	return fmt.Sprintf("%02d:%02d", t.minutes/minutesPerHour, t.minutes%minutesPerHour)
}

// MarshalText реализует encoding.TextMarshaler (используется encoding/json)
func (t TimeString) MarshalText() ([]byte, error) {
	if !t.set {
		return []byte{}, nil
	}
	return []byte(t.String()), nil
}

// UnmarshalText реализует encoding.TextUnmarshaler
func (t *TimeString) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*t = TimeString{}
		return nil
	}
	parsed, err := NewTimeStringFromString(string(data))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value реализует driver.Valuer, колонка TIME в PostgreSQL
func (t TimeString) Value() (driver.Value, error) {
	if !t.set {
		return nil, nil
	}
	return t.String() + ":00", nil
}

// Scan реализует sql.Scanner
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = TimeString{}
		return nil
	case string:
		return t.UnmarshalText([]byte(v))
	case []byte:
		return t.UnmarshalText(v)
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidTimeFormat, src)
	}
}
