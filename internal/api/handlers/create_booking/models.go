package create_booking

import (
	"time"

	createBooking "github.com/m04kA/SMC-ScheduleService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP модель запроса на создание бронирования.
// Время передается в RFC 3339, end опционален (по умолчанию один шаг сетки).
type CreateBookingRequest struct {
	BusinessID     int64      `json:"businessId"`
	ProfessionalID *int64     `json:"professionalId,omitempty"`
	ServiceID      *int64     `json:"serviceId,omitempty"`
	ClientID       *int64     `json:"clientId,omitempty"`
	ClientName     string     `json:"clientName,omitempty"`
	ServiceName    string     `json:"serviceName,omitempty"`
	Start          time.Time  `json:"start"`
	End            *time.Time `json:"end,omitempty"`
	Kind           string     `json:"kind,omitempty"` // reservation | block
	Notes          *string    `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) *createBooking.Request {
	return &createBooking.Request{
		UserID:         userID,
		BusinessID:     r.BusinessID,
		ProfessionalID: r.ProfessionalID,
		ServiceID:      r.ServiceID,
		ClientID:       r.ClientID,
		ClientName:     r.ClientName,
		ServiceName:    r.ServiceName,
		Start:          r.Start,
		End:            r.End,
		Kind:           r.Kind,
		Notes:          r.Notes,
	}
}
