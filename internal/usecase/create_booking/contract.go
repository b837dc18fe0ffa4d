package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/availability"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByBusinessWithFilter(ctx context.Context, filter domain.BusinessBookingsFilter) ([]*domain.Booking, error)
}

// HoursRepository интерфейс репозитория рабочих часов
type HoursRepository interface {
	Get(ctx context.Context, businessID int64, professionalID *int64) (domain.WeeklyHours, error)
	ListProfessionals(ctx context.Context, businessID int64) (map[int64]domain.WeeklyHours, error)
}

// AvailabilityRepository интерфейс репозитория исключений
type AvailabilityRepository interface {
	List(ctx context.Context, filter availabilityRepo.Filter) ([]*domain.ProfessionalAvailability, error)
}

// ConfigResolver возвращает конфигурацию бизнеса, при отсутствии - значения по умолчанию
type ConfigResolver interface {
	Resolve(ctx context.Context, businessID int64) (*domain.BusinessSlotsConfig, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
