package availability

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/availability"
)

// AvailabilityRepository интерфейс репозитория исключений
type AvailabilityRepository interface {
	Save(ctx context.Context, a *domain.ProfessionalAvailability) (*domain.ProfessionalAvailability, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ProfessionalAvailability, error)
	List(ctx context.Context, filter availabilityRepo.Filter) ([]*domain.ProfessionalAvailability, error)
	Delete(ctx context.Context, businessID, professionalID int64, id uuid.UUID) error
}

// AccessChecker проверяет права менеджера бизнеса
type AccessChecker interface {
	IsManager(ctx context.Context, businessID, userID int64) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
