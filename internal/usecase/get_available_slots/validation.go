package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	if req.ProfessionalID != nil && *req.ProfessionalID <= 0 {
		return fmt.Errorf("%w: professionalID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата подходит для бронирования.
// date и now должны быть в одном часовом поясе.
func validateDate(date time.Time, now time.Time, config *domain.BusinessSlotsConfig) error {
	// Проверяем, что дата не в прошлом
	if isDateInPast(date, now) {
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

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	return startOfDay(date).Before(startOfDay(now))
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
