package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// validateRequest валидирует входные данные запроса и возвращает тип бронирования
func validateRequest(req *Request) (domain.BookingKind, error) {
	if req.UserID <= 0 {
		return "", fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.BusinessID <= 0 {
		return "", fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	kind := domain.KindReservation
	if req.Kind != "" {
		parsed, err := domain.ParseBookingKind(req.Kind)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		kind = parsed
	}

	// Бронирование клиента всегда привязано к мастеру
	if kind == domain.KindReservation && req.ProfessionalID == nil {
		return "", fmt.Errorf("%w: professionalId is required for a reservation", ErrInvalidInput)
	}
	if req.ProfessionalID != nil && *req.ProfessionalID <= 0 {
		return "", fmt.Errorf("%w: professionalId must be positive", ErrInvalidInput)
	}

	if req.Start.IsZero() {
		return "", fmt.Errorf("%w: start is required", ErrInvalidInput)
	}
	if req.End != nil && !req.Start.Before(*req.End) {
		return "", fmt.Errorf("%w: start must be before end", ErrInvalidInput)
	}

	if len([]rune(req.ClientName)) > domain.MaxClientNameLength {
		return "", fmt.Errorf("%w: clientName is longer than %d characters", ErrInvalidInput, domain.MaxClientNameLength)
	}
	if req.Notes != nil && len([]rune(*req.Notes)) > domain.MaxNotesLength {
		return "", fmt.Errorf("%w: notes are longer than %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return kind, nil
}

// validateDate проверяет, что дата подходит для бронирования
func validateDate(date time.Time, now time.Time, config *domain.BusinessSlotsConfig) error {
	if startOfDay(date).Before(startOfDay(now)) {
		return ErrInvalidDate
	}

	// AdvanceBookingDays = 0 означает, что ограничений на дату нет
	if !config.HasAdvanceBookingLimit() {
		return nil
	}

	maxDate := startOfDay(now).AddDate(0, 0, config.AdvanceBookingDays)
	if startOfDay(date).After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, config.AdvanceBookingDays)
	}

	return nil
}

// validateBookingTime проверяет, что бронирование не нарушает minBookingNoticeMinutes
func validateBookingTime(start, now time.Time, minBookingNoticeMinutes int) error {
	earliest := now.Add(time.Duration(minBookingNoticeMinutes) * time.Minute)
	if start.Before(earliest) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minBookingNoticeMinutes)
	}
	return nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
