package models

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// SaveAvailabilityRequest запрос на создание или изменение исключения.
// Пустой ID означает создание.
type SaveAvailabilityRequest struct {
	UserID         int64  `json:"-"`
	ID             string `json:"id,omitempty"`
	BusinessID     int64  `json:"-"`
	ProfessionalID int64  `json:"-"`
	Date           string `json:"date"`  // YYYY-MM-DD
	Start          string `json:"start"` // HH:MM
	End            string `json:"end"`   // HH:MM
}

// ListAvailabilityRequest запрос на список исключений за период
type ListAvailabilityRequest struct {
	BusinessID     int64
	ProfessionalID *int64
	From           *time.Time
	To             *time.Time
}

// AvailabilityResponse ответ с данными исключения
type AvailabilityResponse struct {
	ID             string    `json:"id"`
	BusinessID     int64     `json:"businessId"`
	ProfessionalID int64     `json:"professionalId"`
	Date           string    `json:"date"`
	Start          string    `json:"start"`
	End            string    `json:"end"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// AvailabilityListResponse ответ со списком исключений
type AvailabilityListResponse struct {
	Availability []AvailabilityResponse `json:"availability"`
}

// FromDomain конвертирует domain модель в DTO
func FromDomain(a *domain.ProfessionalAvailability) *AvailabilityResponse {
	if a == nil {
		return nil
	}
	return &AvailabilityResponse{
		ID:             a.ID.String(),
		BusinessID:     a.BusinessID,
		ProfessionalID: a.ProfessionalID,
		Date:           a.Date.Format(domain.DateFormat),
		Start:          a.Start.String(),
		End:            a.End.String(),
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// FromDomainList конвертирует список domain моделей в DTO
func FromDomainList(list []*domain.ProfessionalAvailability) *AvailabilityListResponse {
	resp := &AvailabilityListResponse{Availability: make([]AvailabilityResponse, 0, len(list))}
	for _, a := range list {
		if r := FromDomain(a); r != nil {
			resp.Availability = append(resp.Availability, *r)
		}
	}
	return resp
}
