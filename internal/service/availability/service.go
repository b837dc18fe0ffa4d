package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/availability"
	"github.com/m04kA/SMC-ScheduleService/internal/schedule/overlay"
	"github.com/m04kA/SMC-ScheduleService/internal/service/availability/models"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Service сервис разовых окон работы мастеров
type Service struct {
	repo      AvailabilityRepository
	managers  AccessChecker
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса
func NewService(repo AvailabilityRepository, managers AccessChecker, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		repo:      repo,
		managers:  managers,
		txManager: txManager,
		logger:    logger,
	}
}

// Save создает исключение или изменяет существующее.
// Окно валидируется сразу: начало раньше конца и нет пересечений с другими окнами
// мастера в ту же дату.
func (s *Service) Save(ctx context.Context, req *models.SaveAvailabilityRequest) (*models.AvailabilityResponse, error) {
	s.logger.Info("Save: availability id=%q for business=%d, professional=%d on %s by user=%d",
		req.ID, req.BusinessID, req.ProfessionalID, req.Date, req.UserID)

	// 1. Разбираем запрос
	exc, err := s.parse(req)
	if err != nil {
		s.logger.Warn("Save: invalid request: %v", err)
		return nil, err
	}

	// 2. Изменять окна мастеров может только менеджер бизнеса
	if err := s.checkManagerAccess(ctx, req.BusinessID, req.UserID); err != nil {
		return nil, err
	}

	// 3. Проверка пересечений и запись в одной транзакции
	var saved *domain.ProfessionalAvailability
	err = s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		// 3.1. При редактировании исключение должно существовать у этого мастера
		if req.ID != "" {
			existing, err := s.repo.GetByID(ctx, exc.ID)
			if err != nil {
				return s.repoError("Save", err)
			}
			if existing.BusinessID != req.BusinessID || existing.ProfessionalID != req.ProfessionalID {
				s.logger.Warn("Save: availability id=%s belongs to another professional", exc.ID)
				return ErrAvailabilityNotFound
			}
		}

		// 3.2. Проверяем пересечения с окнами мастера в эту дату
		sameDay, err := s.repo.List(ctx, availabilityRepo.Filter{
			BusinessID:     req.BusinessID,
			ProfessionalID: &req.ProfessionalID,
			From:           &exc.Date,
			To:             &exc.Date,
		})
		if err != nil {
			return s.repoError("Save", err)
		}
		if _, err := overlay.New(nil, sameDay).WithException(*exc); err != nil {
			s.logger.Warn("Save: rejected for professional=%d: %v", req.ProfessionalID, err)
			return mapDomainError(err)
		}

		// 3.3. Сохраняем
		saved, err = s.repo.Save(ctx, exc)
		if err != nil {
			return s.repoError("Save", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Save: saved availability id=%s", saved.ID)
	return models.FromDomain(saved), nil
}

// Delete удаляет исключение мастера
func (s *Service) Delete(ctx context.Context, userID, businessID, professionalID int64, rawID string) error {
	s.logger.Info("Delete: availability id=%s for business=%d, professional=%d by user=%d",
		rawID, businessID, professionalID, userID)

	id, err := uuid.Parse(rawID)
	if err != nil {
		return fmt.Errorf("%w: availability id %q", ErrInvalidInput, rawID)
	}

	if err := s.checkManagerAccess(ctx, businessID, userID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, businessID, professionalID, id); err != nil {
		return s.repoError("Delete", err)
	}

	s.logger.Info("Delete: removed availability id=%s", id)
	return nil
}

// List возвращает исключения бизнеса за период
func (s *Service) List(ctx context.Context, req *models.ListAvailabilityRequest) (*models.AvailabilityListResponse, error) {
	if req.From != nil && req.To != nil && req.To.Before(*req.From) {
		return nil, fmt.Errorf("%w: to is before from", ErrInvalidInput)
	}

	list, err := s.repo.List(ctx, availabilityRepo.Filter{
		BusinessID:     req.BusinessID,
		ProfessionalID: req.ProfessionalID,
		From:           req.From,
		To:             req.To,
	})
	if err != nil {
		return nil, s.repoError("List", err)
	}

	return models.FromDomainList(list), nil
}

func (s *Service) parse(req *models.SaveAvailabilityRequest) (*domain.ProfessionalAvailability, error) {
	id := uuid.Nil
	if req.ID != "" {
		parsed, err := uuid.Parse(req.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: availability id %q", ErrInvalidInput, req.ID)
		}
		id = parsed
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	start, err := types.NewTimeStringFromString(req.Start)
	if err != nil {
		return nil, fmt.Errorf("%w: start: %v", ErrInvalidInput, err)
	}
	end, err := types.NewTimeStringFromString(req.End)
	if err != nil {
		return nil, fmt.Errorf("%w: end: %v", ErrInvalidInput, err)
	}

	exc, err := domain.NewProfessionalAvailability(id, req.BusinessID, req.ProfessionalID, date, start, end)
	if err != nil {
		return nil, mapDomainError(err)
	}
	return exc, nil
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

func (s *Service) repoError(op string, err error) error {
	if errors.Is(err, availabilityRepo.ErrAvailabilityNotFound) {
		s.logger.Warn("%s: availability not found", op)
		return ErrAvailabilityNotFound
	}
	s.logger.Error("%s: repository error: %v", op, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func mapDomainError(err error) error {
	switch {
	case errors.Is(err, domain.ErrOverlap):
		return fmt.Errorf("%w: %v", ErrOverlap, err)
	case errors.Is(err, domain.ErrInvalidRange):
		return fmt.Errorf("%w: %v", ErrInvalidRange, err)
	default:
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
}
