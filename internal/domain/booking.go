package domain

import (
	"fmt"
	"sort"
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending             BookingStatus = "pending"
	StatusConfirmed           BookingStatus = "confirmed"
	StatusCompleted           BookingStatus = "completed"
	StatusCancelledByClient   BookingStatus = "cancelled_by_client"
	StatusCancelledByBusiness BookingStatus = "cancelled_by_business"
	StatusDeclined            BookingStatus = "declined"
	StatusNoShow              BookingStatus = "no_show"
)

// ParseBookingStatus validates a status string
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	for _, known := range ActiveStatuses {
		if status == known {
			return status, nil
		}
	}
	for _, known := range InactiveStatuses {
		if status == known {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown booking status %q", s)
}

// BookingKind distinguishes client reservations from admin blocks
type BookingKind string

const (
	// KindReservation is a client booking of a service
	KindReservation BookingKind = "reservation"
	// KindBlock withholds a window from availability, it has no client or service
	KindBlock BookingKind = "block"
)

// ParseBookingKind validates a kind string
func ParseBookingKind(s string) (BookingKind, error) {
	switch BookingKind(s) {
	case KindReservation, KindBlock:
		return BookingKind(s), nil
	default:
		return "", fmt.Errorf("unknown booking kind %q", s)
	}
}

// Booking is a committed interval of a business: a reservation or a block.
// A booking without ProfessionalID applies to every professional of the business.
type Booking struct {
	ID             int64
	BusinessID     int64
	ProfessionalID *int64
	ServiceID      *int64
	ClientID       *int64
	ClientName     string // denormalized or ad hoc client name
	ServiceName    string
	Start          time.Time
	End            time.Time
	Kind           BookingKind
	Status         BookingStatus
	Notes          *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its interval
func (b *Booking) IsActive() bool {
	for _, s := range InactiveStatuses {
		if b.Status == s {
			return false
		}
	}
	return true
}

// IsBlock returns true for admin-declared unavailability
func (b *Booking) IsBlock() bool {
	return b.Kind == KindBlock
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// statusTransitions lists the moves allowed outside of cancellation.
// Every target is terminal.
var statusTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusDeclined},
	StatusConfirmed: {StatusCompleted, StatusNoShow},
}

// CanTransitionTo reports whether the status may change to next.
// Cancellation goes through CanBeCancelled instead.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	for _, s := range statusTransitions[b.Status] {
		if s == next {
			return true
		}
	}
	return false
}

// IsClient reports whether userID is the client of a reservation. Blocks have no client.
func (b *Booking) IsClient(userID int64) bool {
	return !b.IsBlock() && b.ClientID != nil && *b.ClientID == userID
}

// AppliesTo reports whether the booking withholds time from the professional
func (b *Booking) AppliesTo(professionalID int64) bool {
	return b.ProfessionalID == nil || *b.ProfessionalID == professionalID
}

// Overlaps checks the half-open interval [Start, End) against [start, end)
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.Start.Before(end) && start.Before(b.End)
}

// ValidateInterval checks that Start is strictly before End
func (b *Booking) ValidateInterval() error {
	if b.Start.IsZero() || b.End.IsZero() || !b.Start.Before(b.End) {
		return fmt.Errorf("%w: booking %s - %s", ErrInvalidRange,
			b.Start.Format(time.RFC3339), b.End.Format(time.RFC3339))
	}
	return nil
}

// Ledger returns the active bookings ordered by start time.
// The input slice is not modified.
func Ledger(bookings []*Booking) []*Booking {
	active := make([]*Booking, 0, len(bookings))
	for _, b := range bookings {
		if b != nil && b.IsActive() {
			active = append(active, b)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Start.Before(active[j].Start)
	})
	return active
}

// BusinessBookingsFilter фильтр для получения бронирований бизнеса
type BusinessBookingsFilter struct {
	BusinessID      int64          // Обязательный параметр
	ProfessionalID  *int64         // Бронирования мастера и бронирования без мастера
	From            *time.Time     // Начало периода (включительно)
	To              *time.Time     // Конец периода (не включительно)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	Kind            *BookingKind   // Фильтр по типу (опционально)
	IncludeInactive bool           // Включать ли отменённые/отклонённые
}
