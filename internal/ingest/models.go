package ingest

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// WeekdayScheme нумерация дней недели во внешних данных
type WeekdayScheme string

const (
	// SchemeISO Monday=1 ... Sunday=7
	SchemeISO WeekdayScheme = "iso"
	// SchemeSundayZero Sunday=0 ... Saturday=6
	SchemeSundayZero WeekdayScheme = "sunday0"
)

// ParseWeekdayScheme разбирает название схемы, пустая строка означает SchemeSundayZero
func ParseWeekdayScheme(s string) (WeekdayScheme, error) {
	switch WeekdayScheme(strings.ToLower(strings.TrimSpace(s))) {
	case "", SchemeSundayZero:
		return SchemeSundayZero, nil
	case SchemeISO:
		return SchemeISO, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownScheme, s)
}

// Export выгрузка старого админского API
type Export struct {
	BusinessID    flexID                   `json:"business_id"`
	ManagerIDs    []flexID                 `json:"manager_ids"`
	WeekdayScheme string                   `json:"weekday_scheme"`
	BusinessHours map[string][]legacyRange `json:"business_hours"`
	Professionals []legacyProfessional     `json:"professionals"`
	Availability  []legacyAvailability     `json:"availability"`
	Bookings      []legacyBooking          `json:"bookings"`
}

type legacyRange struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func (r legacyRange) bounds() (string, string) {
	start, end := r.Start, r.End
	if start == "" {
		start = r.StartTime
	}
	if end == "" {
		end = r.EndTime
	}
	return start, end
}

type legacyWorkingHours struct {
	DayOfWeek json.Number `json:"day_of_week"`
	legacyRange
}

type legacyProfessional struct {
	ID             *flexID              `json:"id"`
	ProfessionalID *flexID              `json:"professional_id"`
	WorkingHours   []legacyWorkingHours `json:"working_hours"`
}

type legacyAvailability struct {
	ID             string  `json:"id"`
	ProfessionalID *flexID `json:"professional_id"`
	Date           string  `json:"date"`
	legacyRange
}

type legacyBooking struct {
	ID                 *flexID `json:"id"`
	ProfessionalID     *flexID `json:"professional_id"`
	ServiceID          *flexID `json:"service_id"`
	ClientID           *flexID `json:"client_id"`
	ClientName         string  `json:"client_name"`
	ServiceName        string  `json:"service_name"`
	StartTime          string  `json:"start_time"`
	EndTime            string  `json:"end_time"`
	Kind               string  `json:"kind"`
	Type               string  `json:"type"`
	Status             string  `json:"status"`
	Notes              *string `json:"notes"`
	CancellationReason *string `json:"cancellation_reason"`
}

// flexID идентификатор, который в выгрузке встречается и числом, и строкой
type flexID int64

func (f *flexID) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: identifier %s", ErrInvalidRecord, string(data))
	}
	*f = flexID(v)
	return nil
}

func (f *flexID) ptr() *int64 {
	if f == nil || *f == 0 {
		return nil
	}
	v := int64(*f)
	return &v
}

// Snapshot нормализованные данные одного бизнеса
type Snapshot struct {
	BusinessID        int64
	ManagerIDs        []int64
	BusinessHours     domain.WeeklyHours
	ProfessionalHours map[int64]domain.WeeklyHours
	Exceptions        []*domain.ProfessionalAvailability
	Bookings          []*domain.Booking
}
