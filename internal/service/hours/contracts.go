package hours

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// HoursRepository интерфейс репозитория документов часов работы
type HoursRepository interface {
	Get(ctx context.Context, businessID int64, professionalID *int64) (domain.WeeklyHours, error)
	Save(ctx context.Context, businessID int64, professionalID *int64, hours domain.WeeklyHours) error
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
