// Package ingest приводит выгрузки старого админского API к доменным сущностям.
// Все преобразования внешних форматов (нумерация дней, id/professional_id, синонимы статусов)
// выполняются здесь и только здесь.
package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

var statusSynonyms = map[string]domain.BookingStatus{
	"new":                domain.StatusPending,
	"pending":            domain.StatusPending,
	"booked":             domain.StatusConfirmed,
	"scheduled":          domain.StatusConfirmed,
	"confirmed":          domain.StatusConfirmed,
	"done":               domain.StatusCompleted,
	"completed":          domain.StatusCompleted,
	"canceled":           domain.StatusCancelledByBusiness,
	"cancelled":          domain.StatusCancelledByBusiness,
	"rejected":           domain.StatusDeclined,
	"declined":           domain.StatusDeclined,
	"noshow":             domain.StatusNoShow,
	"no-show":            domain.StatusNoShow,
	"no_show":            domain.StatusNoShow,
	"missed":             domain.StatusNoShow,
	"client_cancelled":   domain.StatusCancelledByClient,
	"business_cancelled": domain.StatusCancelledByBusiness,
}

var bookingTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

// Normalizer переводит выгрузку в доменную модель.
// Location задает часовой пояс бизнеса для времени без смещения.
type Normalizer struct {
	location *time.Location
}

// NewNormalizer создает нормализатор, nil location означает UTC
func NewNormalizer(location *time.Location) *Normalizer {
	if location == nil {
		location = time.UTC
	}
	return &Normalizer{location: location}
}

// Decode читает JSON выгрузки и нормализует ее
func (n *Normalizer) Decode(r io.Reader) (*Snapshot, error) {
	var export Export
	if err := json.NewDecoder(r).Decode(&export); err != nil {
		return nil, fmt.Errorf("%w: decode export: %v", ErrInvalidRecord, err)
	}
	return n.Normalize(&export)
}

// Normalize приводит выгрузку к Snapshot. Первая же некорректная запись прерывает разбор.
func (n *Normalizer) Normalize(export *Export) (*Snapshot, error) {
	scheme, err := ParseWeekdayScheme(export.WeekdayScheme)
	if err != nil {
		return nil, err
	}

	snapshot := &Snapshot{
		BusinessID:        int64(export.BusinessID),
		ProfessionalHours: make(map[int64]domain.WeeklyHours, len(export.Professionals)),
	}
	if snapshot.BusinessID <= 0 {
		return nil, fmt.Errorf("%w: business_id is required", ErrMissingID)
	}

	// 1. Менеджеры бизнеса
	for i, id := range export.ManagerIDs {
		if id <= 0 {
			return nil, fmt.Errorf("manager_ids[%d]: %w: positive user id is required", i, ErrMissingID)
		}
		snapshot.ManagerIDs = append(snapshot.ManagerIDs, int64(id))
	}

	// 2. Часы работы бизнеса
	snapshot.BusinessHours, err = n.businessHours(export.BusinessHours, scheme)
	if err != nil {
		return nil, err
	}

	// 3. Рабочие часы мастеров
	for i, p := range export.Professionals {
		id, hours, err := n.professional(p, scheme)
		if err != nil {
			return nil, fmt.Errorf("professionals[%d]: %w", i, err)
		}
		snapshot.ProfessionalHours[id] = hours
	}

	// 4. Исключения по датам
	for i, a := range export.Availability {
		exc, err := n.availability(snapshot.BusinessID, a)
		if err != nil {
			return nil, fmt.Errorf("availability[%d]: %w", i, err)
		}
		snapshot.Exceptions = append(snapshot.Exceptions, exc)
	}

	// 5. Бронирования
	for i, b := range export.Bookings {
		booking, err := n.booking(snapshot.BusinessID, b)
		if err != nil {
			return nil, fmt.Errorf("bookings[%d]: %w", i, err)
		}
		snapshot.Bookings = append(snapshot.Bookings, booking)
	}

	return snapshot, nil
}

// Weekday переводит номер дня из внешней схемы в доменный день недели.
// Названия дней ("monday", "mon") принимаются независимо от схемы.
func Weekday(raw string, scheme WeekdayScheme) (domain.Weekday, error) {
	raw = strings.TrimSpace(raw)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return domain.ParseWeekday(raw)
	}

	switch scheme {
	case SchemeISO:
		return domain.WeekdayFromISO(n)
	case SchemeSundayZero:
		return domain.WeekdayFromSundayZero(n)
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownScheme, scheme)
}

// Status переводит статус выгрузки, включая устаревшие синонимы
func Status(raw string) (domain.BookingStatus, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" {
		return domain.StatusConfirmed, nil
	}
	if s, ok := statusSynonyms[key]; ok {
		return s, nil
	}
	return domain.ParseBookingStatus(key)
}

func (n *Normalizer) businessHours(raw map[string][]legacyRange, scheme WeekdayScheme) (domain.WeeklyHours, error) {
	days := make(map[domain.Weekday][]domain.TimeRange, len(raw))
	for key, ranges := range raw {
		day, err := Weekday(key, scheme)
		if err != nil {
			return domain.WeeklyHours{}, fmt.Errorf("business_hours[%s]: %w", key, err)
		}
		for _, r := range ranges {
			tr, err := timeRange(r)
			if err != nil {
				return domain.WeeklyHours{}, fmt.Errorf("business_hours[%s]: %w", key, err)
			}
			days[day] = append(days[day], tr)
		}
	}
	return validated(days)
}

func (n *Normalizer) professional(p legacyProfessional, scheme WeekdayScheme) (int64, domain.WeeklyHours, error) {
	// professional_id приоритетнее id: в части выгрузок id это строка связи, а не мастер
	id := p.ProfessionalID.ptr()
	if id == nil {
		id = p.ID.ptr()
	}
	if id == nil {
		return 0, domain.WeeklyHours{}, ErrMissingID
	}

	days := make(map[domain.Weekday][]domain.TimeRange)
	for _, wh := range p.WorkingHours {
		day, err := Weekday(wh.DayOfWeek.String(), scheme)
		if err != nil {
			return 0, domain.WeeklyHours{}, err
		}
		tr, err := timeRange(wh.legacyRange)
		if err != nil {
			return 0, domain.WeeklyHours{}, err
		}
		days[day] = append(days[day], tr)
	}

	hours, err := validated(days)
	return *id, hours, err
}

func (n *Normalizer) availability(businessID int64, a legacyAvailability) (*domain.ProfessionalAvailability, error) {
	profID := a.ProfessionalID.ptr()
	if profID == nil {
		return nil, ErrMissingID
	}

	id := uuid.Nil
	if a.ID != "" {
		parsed, err := uuid.Parse(a.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: availability id %q", ErrInvalidRecord, a.ID)
		}
		id = parsed
	}

	date, err := time.Parse(domain.DateFormat, strings.TrimSpace(a.Date))
	if err != nil {
		return nil, fmt.Errorf("%w: date %q", ErrInvalidRecord, a.Date)
	}

	tr, err := timeRange(a.legacyRange)
	if err != nil {
		return nil, err
	}

	return domain.NewProfessionalAvailability(id, businessID, *profID, date, tr.Start, tr.End)
}

func (n *Normalizer) booking(businessID int64, b legacyBooking) (*domain.Booking, error) {
	id := b.ID.ptr()
	if id == nil {
		return nil, ErrMissingID
	}

	start, err := n.instant(b.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := n.instant(b.EndTime)
	if err != nil {
		return nil, err
	}

	status, err := Status(b.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	kind := domain.KindReservation
	switch strings.ToLower(strings.TrimSpace(firstNonEmpty(b.Kind, b.Type))) {
	case "block", "blocked", "unavailable", "break":
		kind = domain.KindBlock
	case "", "reservation", "appointment", "booking":
	default:
		return nil, fmt.Errorf("%w: kind %q", ErrInvalidRecord, firstNonEmpty(b.Kind, b.Type))
	}

	booking := &domain.Booking{
		ID:                 *id,
		BusinessID:         businessID,
		ProfessionalID:     b.ProfessionalID.ptr(),
		ServiceID:          b.ServiceID.ptr(),
		ClientID:           b.ClientID.ptr(),
		ClientName:         strings.TrimSpace(b.ClientName),
		ServiceName:        strings.TrimSpace(b.ServiceName),
		Start:              start,
		End:                end,
		Kind:               kind,
		Status:             status,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
	}
	if kind == domain.KindBlock {
		booking.ServiceID, booking.ClientID = nil, nil
		booking.ClientName, booking.ServiceName = "", ""
	}
	if err := booking.ValidateInterval(); err != nil {
		return nil, err
	}
	return booking, nil
}

func (n *Normalizer) instant(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range bookingTimeLayouts {
		if t, err := time.ParseInLocation(layout, raw, n.location); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: timestamp %q", ErrInvalidRecord, raw)
}

func timeRange(r legacyRange) (domain.TimeRange, error) {
	rawStart, rawEnd := r.bounds()
	start, err := types.NewTimeStringFromString(rawStart)
	if err != nil {
		return domain.TimeRange{}, fmt.Errorf("%w: %v", domain.ErrInvalidRange, err)
	}
	end, err := types.NewTimeStringFromString(rawEnd)
	if err != nil {
		return domain.TimeRange{}, fmt.Errorf("%w: %v", domain.ErrInvalidRange, err)
	}
	return domain.NewTimeRange(start, end)
}

func validated(days map[domain.Weekday][]domain.TimeRange) (domain.WeeklyHours, error) {
	for _, ranges := range days {
		domain.SortRanges(ranges)
	}
	hours := domain.NewWeeklyHours(days)
	if err := hours.Validate(); err != nil {
		return domain.WeeklyHours{}, err
	}
	return hours, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
