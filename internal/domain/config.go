package domain

import "time"

// BusinessSlotsConfig represents the booking configuration of a business
type BusinessSlotsConfig struct {
	BusinessID              int64
	SlotDurationMinutes     int // slot engine granularity
	AdvanceBookingDays      int // 0 = unlimited
	MinBookingNoticeMinutes int
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// DefaultBusinessSlotsConfig returns the configuration used when a business has none stored
func DefaultBusinessSlotsConfig(businessID int64) *BusinessSlotsConfig {
	return &BusinessSlotsConfig{
		BusinessID:              businessID,
		SlotDurationMinutes:     DefaultSlotDurationMinutes,
		AdvanceBookingDays:      DefaultAdvanceBookingDays,
		MinBookingNoticeMinutes: DefaultMinBookingNoticeMinutes,
	}
}

// Granularity returns the slot length as a duration
func (c *BusinessSlotsConfig) Granularity() time.Duration {
	return time.Duration(c.SlotDurationMinutes) * time.Minute
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (c *BusinessSlotsConfig) HasAdvanceBookingLimit() bool {
	return c.AdvanceBookingDays > 0
}
