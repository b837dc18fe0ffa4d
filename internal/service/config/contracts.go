package config

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// ConfigRepository интерфейс репозитория конфигурации слотов
type ConfigRepository interface {
	GetByBusinessID(ctx context.Context, businessID int64) (*domain.BusinessSlotsConfig, error)
	Upsert(ctx context.Context, config *domain.BusinessSlotsConfig) (*domain.BusinessSlotsConfig, error)
}

// AccessChecker проверяет права менеджера бизнеса
type AccessChecker interface {
	IsManager(ctx context.Context, businessID, userID int64) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
