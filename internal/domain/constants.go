package domain

import "github.com/m04kA/SMC-ScheduleService/pkg/types"

// Default configuration values
const (
	DefaultSlotDurationMinutes     = 30
	DefaultAdvanceBookingDays      = 0  // 0 = unlimited
	DefaultMinBookingNoticeMinutes = 60 // 1 hour
)

// Business validation constants
const (
	MinSlotDurationMinutes      = 5
	MaxSlotDurationMinutes      = 480 // 8 hours
	MinAdvanceBookingDays       = 0
	MaxAdvanceBookingDays       = 365 // 1 year
	MinBookingNoticeMinutes     = 0
	MaxBookingNoticeMinutes     = 10080 // 1 week
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxClientNameLength         = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DefaultRange is the range seeded when a day is opened or a range is added in the editor
var DefaultRange = TimeRange{
	Start: types.MustParse("09:00"),
	End:   types.MustParse("18:00"),
}

// InactiveStatuses are excluded from the booking ledger
var InactiveStatuses = []BookingStatus{
	StatusCancelledByClient,
	StatusCancelledByBusiness,
	StatusDeclined,
	StatusNoShow,
}

// ActiveStatuses occupy time in the booking ledger
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}
