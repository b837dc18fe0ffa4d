package get_available_slots

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string `json:"date"`
	BusinessID      int64  `json:"businessId"`
	DurationMinutes int    `json:"durationMinutes"`
	Slots           []Slot `json:"slots"`
}

// Slot модель временного слота
type Slot struct {
	StartTime       string    `json:"startTime"`
	DurationMinutes int       `json:"durationMinutes"`
	ProfessionalID  int64     `json:"professionalId"`
	State           string    `json:"state"` // free | booked
	Occupant        *Occupant `json:"occupant,omitempty"`
}

// Occupant кем занят слот
type Occupant struct {
	BookingID   int64  `json:"bookingId"`
	Kind        string `json:"kind"`
	ClientName  string `json:"clientName,omitempty"`
	ServiceName string `json:"serviceName,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]Slot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = Slot{
			StartTime:       slot.Time.String(),
			DurationMinutes: slot.DurationMinutes,
			ProfessionalID:  slot.ProfessionalID,
			State:           string(slot.State),
		}
		if slot.Occupant != nil {
			slots[i].Occupant = &Occupant{
				BookingID:   slot.Occupant.BookingID,
				Kind:        string(slot.Occupant.Kind),
				ClientName:  slot.Occupant.ClientName,
				ServiceName: slot.Occupant.ServiceName,
			}
		}
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		BusinessID:      resp.BusinessID,
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(businessID int64, professionalID *int64, dateStr, freeStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	req := &getAvailableSlots.Request{
		BusinessID:     businessID,
		ProfessionalID: professionalID,
		Date:           date,
	}

	if freeStr != "" {
		req.FreeOnly, err = strconv.ParseBool(freeStr)
		if err != nil {
			return nil, err
		}
	}

	return req, nil
}
