package models

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             int64   `json:"userId"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// UpdateStatusRequest запрос на смену статуса бронирования бизнесом
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// GetBusinessBookingsRequest запрос на получение бронирований бизнеса
type GetBusinessBookingsRequest struct {
	UserID          int64      `json:"-"`
	BusinessID      int64      `json:"businessId"`
	ProfessionalID  *int64     `json:"professionalId,omitempty"`
	From            *time.Time `json:"from,omitempty"`
	To              *time.Time `json:"to,omitempty"`
	Status          *string    `json:"status,omitempty"`
	Kind            *string    `json:"kind,omitempty"`
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetBusinessBookingsRequest) ToDomainFilter() (domain.BusinessBookingsFilter, error) {
	filter := domain.BusinessBookingsFilter{
		BusinessID:      r.BusinessID,
		ProfessionalID:  r.ProfessionalID,
		From:            r.From,
		To:              r.To,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := domain.ParseBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}
	if r.Kind != nil {
		kind, err := domain.ParseBookingKind(*r.Kind)
		if err != nil {
			return filter, err
		}
		filter.Kind = &kind
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID             int64     `json:"id"`
	BusinessID     int64     `json:"businessId"`
	ProfessionalID *int64    `json:"professionalId,omitempty"`
	ServiceID      *int64    `json:"serviceId,omitempty"`
	ClientID       *int64    `json:"clientId,omitempty"`
	ClientName     string    `json:"clientName,omitempty"`
	ServiceName    string    `json:"serviceName,omitempty"`
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	Kind           string    `json:"kind"`
	Status         string    `json:"status"`
	Notes          *string   `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		BusinessID:         b.BusinessID,
		ProfessionalID:     b.ProfessionalID,
		ServiceID:          b.ServiceID,
		ClientID:           b.ClientID,
		ClientName:         b.ClientName,
		ServiceName:        b.ServiceName,
		Start:              b.Start,
		End:                b.End,
		Kind:               string(b.Kind),
		Status:             string(b.Status),
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelled := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelled
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}
	for _, b := range bookings {
		if r := FromDomainBooking(b); r != nil {
			resp.Bookings = append(resp.Bookings, *r)
		}
	}
	return resp
}
