package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
)

func TestBooking_IsActive(t *testing.T) {
	for _, s := range ActiveStatuses {
		b := &Booking{Status: s}
		assert.True(t, b.IsActive(), s)
	}
	for _, s := range InactiveStatuses {
		b := &Booking{Status: s}
		assert.False(t, b.IsActive(), s)
	}
}

func TestBooking_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to BookingStatus
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusDeclined, true},
		{StatusPending, StatusCompleted, false},
		{StatusPending, StatusNoShow, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusNoShow, true},
		{StatusConfirmed, StatusPending, false},
		{StatusConfirmed, StatusDeclined, false},
		{StatusConfirmed, StatusCancelledByBusiness, false},
		{StatusCompleted, StatusNoShow, false},
		{StatusDeclined, StatusConfirmed, false},
		{StatusCancelledByClient, StatusConfirmed, false},
	}

	for _, tt := range tests {
		b := &Booking{Status: tt.from}
		assert.Equal(t, tt.want, b.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestBooking_IsClient(t *testing.T) {
	reservation := &Booking{Kind: KindReservation, ClientID: ptr.Ptr(int64(5))}
	assert.True(t, reservation.IsClient(5))
	assert.False(t, reservation.IsClient(6))

	block := &Booking{Kind: KindBlock, ClientID: ptr.Ptr(int64(5))}
	assert.False(t, block.IsClient(5))

	anonymous := &Booking{Kind: KindReservation}
	assert.False(t, anonymous.IsClient(5))
}

func TestBooking_AppliesTo(t *testing.T) {
	own := &Booking{ProfessionalID: ptr.Ptr(int64(7))}
	businessWide := &Booking{}

	assert.True(t, own.AppliesTo(7))
	assert.False(t, own.AppliesTo(8))
	assert.True(t, businessWide.AppliesTo(8))
}

func TestBooking_ValidateInterval(t *testing.T) {
	start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

	ok := &Booking{Start: start, End: start.Add(30 * time.Minute)}
	assert.NoError(t, ok.ValidateInterval())

	empty := &Booking{Start: start, End: start}
	assert.ErrorIs(t, empty.ValidateInterval(), ErrInvalidRange)
}

func TestLedger(t *testing.T) {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	late := &Booking{ID: 1, Start: base.Add(2 * time.Hour), Status: StatusConfirmed}
	early := &Booking{ID: 2, Start: base, Status: StatusPending}
	cancelled := &Booking{ID: 3, Start: base, Status: StatusCancelledByClient}
	declined := &Booking{ID: 4, Start: base, Status: StatusDeclined}

	ledger := Ledger([]*Booking{late, cancelled, early, nil, declined})

	assert.Len(t, ledger, 2)
	assert.Equal(t, int64(2), ledger[0].ID)
	assert.Equal(t, int64(1), ledger[1].ID)
}

func TestParseBookingStatus(t *testing.T) {
	s, err := ParseBookingStatus("declined")
	assert.NoError(t, err)
	assert.Equal(t, StatusDeclined, s)

	_, err = ParseBookingStatus("lost")
	assert.Error(t, err)
}
