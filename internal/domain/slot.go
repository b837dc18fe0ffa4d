package domain

import "github.com/m04kA/SMC-ScheduleService/pkg/types"

// SlotState is the occupancy of a slot
type SlotState string

const (
	SlotFree   SlotState = "free"
	SlotBooked SlotState = "booked"
)

// Occupant describes what holds a booked slot
type Occupant struct {
	BookingID   int64
	Kind        BookingKind
	ClientName  string
	ServiceName string
}

// Slot is a derived, fixed-length tick of a professional's open time. Never persisted.
type Slot struct {
	Time            types.TimeString
	DurationMinutes int
	ProfessionalID  int64
	State           SlotState
	Occupant        *Occupant // nil for free slots
}

// IsFree returns true if the slot can be offered for booking
func (s *Slot) IsFree() bool {
	return s.State == SlotFree
}
