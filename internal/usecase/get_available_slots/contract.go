package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/availability"
)

// HoursRepository интерфейс репозитория рабочих часов
type HoursRepository interface {
	// Get получает часы бизнеса (professionalID = nil) или мастера
	Get(ctx context.Context, businessID int64, professionalID *int64) (domain.WeeklyHours, error)
	// ListProfessionals получает часы по умолчанию всех мастеров бизнеса
	ListProfessionals(ctx context.Context, businessID int64) (map[int64]domain.WeeklyHours, error)
}

// AvailabilityRepository интерфейс репозитория исключений
type AvailabilityRepository interface {
	List(ctx context.Context, filter availabilityRepo.Filter) ([]*domain.ProfessionalAvailability, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByBusinessWithFilter(ctx context.Context, filter domain.BusinessBookingsFilter) ([]*domain.Booking, error)
}

// ConfigResolver возвращает конфигурацию бизнеса, при отсутствии - значения по умолчанию
type ConfigResolver interface {
	Resolve(ctx context.Context, businessID int64) (*domain.BusinessSlotsConfig, error)
}

// SlotMetrics метрики расчёта слотов
type SlotMetrics interface {
	ObserveSlotComputation(slotsCount int, err error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

type nopMetrics struct{}

func (nopMetrics) ObserveSlotComputation(int, error) {}
