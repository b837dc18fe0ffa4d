package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	configRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/config"
	"github.com/m04kA/SMC-ScheduleService/internal/service/config/models"
)

// Service сервис для работы с конфигурацией слотов бизнеса
type Service struct {
	configRepo ConfigRepository
	managers   AccessChecker
	defaults   domain.BusinessSlotsConfig
	logger     Logger
}

// NewService создает новый экземпляр сервиса конфигурации.
// defaults используются для бизнесов без сохраненной конфигурации.
func NewService(configRepo ConfigRepository, managers AccessChecker, defaults domain.BusinessSlotsConfig, logger Logger) *Service {
	return &Service{
		configRepo: configRepo,
		managers:   managers,
		defaults:   defaults,
		logger:     logger,
	}
}

// Get получает конфигурацию бизнеса (значения по умолчанию, если она не сохранена)
func (s *Service) Get(ctx context.Context, businessID int64) (*models.ConfigResponse, error) {
	config, err := s.Resolve(ctx, businessID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainConfig(config), nil
}

// Resolve возвращает доменную конфигурацию бизнеса для use cases
func (s *Service) Resolve(ctx context.Context, businessID int64) (*domain.BusinessSlotsConfig, error) {
	config, err := s.configRepo.GetByBusinessID(ctx, businessID)
	if err == nil {
		return config, nil
	}
	if !errors.Is(err, configRepo.ErrConfigNotFound) {
		s.logger.Error("Resolve: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: Resolve - repository error: %v", ErrInternal, err)
	}

	defaults := s.defaults
	defaults.BusinessID = businessID
	return &defaults, nil
}

// Update частично обновляет конфигурацию бизнеса
func (s *Service) Update(ctx context.Context, businessID int64, req *models.UpdateConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Update: updating config for business=%d by user=%d", businessID, req.UserID)

	if req.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	// 1. Менять конфигурацию может только менеджер бизнеса
	if err := s.checkManagerAccess(ctx, businessID, req.UserID); err != nil {
		return nil, err
	}

	// 2. Текущая конфигурация или значения по умолчанию
	config, err := s.Resolve(ctx, businessID)
	if err != nil {
		return nil, err
	}

	// 3. Применяем изменения и валидируем результат
	req.ApplyTo(config)
	if err := validateConfig(config); err != nil {
		s.logger.Warn("Update: validation failed for business=%d: %v", businessID, err)
		return nil, err
	}

	// 4. Сохраняем
	saved, err := s.configRepo.Upsert(ctx, config)
	if err != nil {
		s.logger.Error("Update: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated config for business=%d", businessID)
	return models.FromDomainConfig(saved), nil
}

// checkManagerAccess проверяет, что пользователь является менеджером бизнеса
func (s *Service) checkManagerAccess(ctx context.Context, businessID, userID int64) error {
	ok, err := s.managers.IsManager(ctx, businessID, userID)
	if err != nil {
		s.logger.Error("checkManagerAccess: failed to check user=%d for business=%d: %v", userID, businessID, err)
		return fmt.Errorf("%w: checkManagerAccess - repository error: %v", ErrInternal, err)
	}
	if !ok {
		s.logger.Warn("checkManagerAccess: user=%d is not a manager of business=%d", userID, businessID)
		return ErrAccessDenied
	}
	return nil
}

func validateConfig(c *domain.BusinessSlotsConfig) error {
	if c.SlotDurationMinutes < domain.MinSlotDurationMinutes || c.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slot duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}
	if c.AdvanceBookingDays < 0 || c.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advance booking days must be between 0 and %d",
			ErrInvalidInput, domain.MaxAdvanceBookingDays)
	}
	if c.MinBookingNoticeMinutes < 0 || c.MinBookingNoticeMinutes > domain.MaxBookingNoticeMinutes {
		return fmt.Errorf("%w: min booking notice must be between 0 and %d minutes",
			ErrInvalidInput, domain.MaxBookingNoticeMinutes)
	}
	return nil
}
