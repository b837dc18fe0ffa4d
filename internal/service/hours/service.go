package hours

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	hoursRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/hours"
	"github.com/m04kA/SMC-ScheduleService/internal/schedule/editor"
	"github.com/m04kA/SMC-ScheduleService/internal/schedule/templates"
	"github.com/m04kA/SMC-ScheduleService/internal/service/hours/models"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Service сервис часов работы бизнеса и мастеров.
// Каждое изменение валидируется до сохранения, документ сохраняется целиком.
type Service struct {
	hoursRepo HoursRepository
	managers  AccessChecker
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса часов работы
func NewService(hoursRepo HoursRepository, managers AccessChecker, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		hoursRepo: hoursRepo,
		managers:  managers,
		txManager: txManager,
		logger:    logger,
	}
}

// Get получает документ часов работы. Несохраненный документ - все дни закрыты.
func (s *Service) Get(ctx context.Context, businessID int64, professionalID *int64) (*models.HoursResponse, error) {
	hours, isDefault, err := s.load(ctx, "Get", businessID, professionalID)
	if err != nil {
		return nil, err
	}
	return &models.HoursResponse{
		BusinessID:     businessID,
		ProfessionalID: professionalID,
		Hours:          hours,
		IsDefault:      isDefault,
	}, nil
}

// Templates возвращает имена доступных шаблонов
func (s *Service) Templates() *models.TemplatesResponse {
	return &models.TemplatesResponse{Templates: templates.Names()}
}

// Replace заменяет документ целиком: переданным документом или результатом шаблона
func (s *Service) Replace(ctx context.Context, businessID int64, req *models.ReplaceHoursRequest) (*models.HoursResponse, error) {
	s.logger.Info("Replace: replacing hours for business=%d, professional=%v by user=%d",
		businessID, req.ProfessionalID, req.UserID)

	if err := s.checkManagerAccess(ctx, businessID, req.UserID); err != nil {
		return nil, err
	}

	var hours domain.WeeklyHours
	switch {
	case req.Template != nil && req.Hours != nil:
		return nil, fmt.Errorf("%w: either hours or template must be set, not both", ErrInvalidInput)
	case req.Template != nil:
		applied, err := templates.Apply(*req.Template)
		if err != nil {
			s.logger.Warn("Replace: unknown template %q for business=%d", *req.Template, businessID)
			return nil, fmt.Errorf("%w: %s", ErrUnknownTemplate, *req.Template)
		}
		hours = applied
	case req.Hours != nil:
		hours = *req.Hours
	default:
		return nil, fmt.Errorf("%w: hours or template is required", ErrInvalidInput)
	}

	return s.save(ctx, "Replace", businessID, req.ProfessionalID, hours)
}

// Edit применяет одну операцию редактора к дню недели и сохраняет документ
func (s *Service) Edit(ctx context.Context, businessID int64, day domain.Weekday, req *models.EditDayRequest) (*models.HoursResponse, error) {
	s.logger.Info("Edit: op=%s on %s for business=%d, professional=%v by user=%d",
		req.Op, day, businessID, req.ProfessionalID, req.UserID)

	// 1. Проверяем права менеджера
	if err := s.checkManagerAccess(ctx, businessID, req.UserID); err != nil {
		return nil, err
	}

	// 2. Чтение, изменение и запись документа в одной транзакции
	var resp *models.HoursResponse
	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		// 2.1. Загружаем текущий документ
		hours, _, err := s.load(ctx, "Edit", businessID, req.ProfessionalID)
		if err != nil {
			return err
		}

		// 2.2. Применяем операцию
		edited, err := applyEdit(hours, day, req)
		if err != nil {
			s.logger.Warn("Edit: op=%s on %s rejected for business=%d: %v", req.Op, day, businessID, err)
			return err
		}

		// 2.3. Сохраняем
		resp, err = s.save(ctx, "Edit", businessID, req.ProfessionalID, edited)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
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

func applyEdit(hours domain.WeeklyHours, day domain.Weekday, req *models.EditDayRequest) (domain.WeeklyHours, error) {
	var (
		edited domain.WeeklyHours
		err    error
	)

	switch req.Op {
	case models.OpSetActive:
		if req.Active == nil {
			return hours, fmt.Errorf("%w: active is required for %s", ErrInvalidInput, req.Op)
		}
		edited, err = editor.SetDayActive(hours, day, *req.Active)

	case models.OpAddRange:
		if req.Start == "" && req.End == "" {
			edited, err = editor.AddRange(hours, day)
			break
		}
		r, rangeErr := parseRange(req.Start, req.End)
		if rangeErr != nil {
			return hours, rangeErr
		}
		edited, err = editor.AddRangeValue(hours, day, r)

	case models.OpRemoveRange:
		if req.Index == nil {
			return hours, fmt.Errorf("%w: index is required for %s", ErrInvalidInput, req.Op)
		}
		edited, err = editor.RemoveRange(hours, day, *req.Index)

	case models.OpSetBound:
		if req.Index == nil {
			return hours, fmt.Errorf("%w: index is required for %s", ErrInvalidInput, req.Op)
		}
		bound, boundErr := editor.ParseBound(req.Bound)
		if boundErr != nil {
			return hours, fmt.Errorf("%w: %v", ErrInvalidInput, boundErr)
		}
		value, parseErr := types.NewTimeStringFromString(req.Value)
		if parseErr != nil {
			return hours, fmt.Errorf("%w: %v", ErrInvalidInput, parseErr)
		}
		edited, err = editor.SetRangeBound(hours, day, *req.Index, bound, value)

	case models.OpSetRange:
		if req.Index == nil {
			return hours, fmt.Errorf("%w: index is required for %s", ErrInvalidInput, req.Op)
		}
		r, rangeErr := parseRange(req.Start, req.End)
		if rangeErr != nil {
			return hours, rangeErr
		}
		edited, err = editor.SetRange(hours, day, *req.Index, r)

	default:
		return hours, fmt.Errorf("%w: unknown op %q", ErrInvalidInput, req.Op)
	}

	if err != nil {
		return hours, fmt.Errorf("%w: %v", ErrInvalidHours, err)
	}
	return edited, nil
}

func parseRange(start, end string) (domain.TimeRange, error) {
	s, err := types.NewTimeStringFromString(start)
	if err != nil {
		return domain.TimeRange{}, fmt.Errorf("%w: start: %v", ErrInvalidInput, err)
	}
	e, err := types.NewTimeStringFromString(end)
	if err != nil {
		return domain.TimeRange{}, fmt.Errorf("%w: end: %v", ErrInvalidInput, err)
	}
	r, err := domain.NewTimeRange(s, e)
	if err != nil {
		return domain.TimeRange{}, fmt.Errorf("%w: %v", ErrInvalidHours, err)
	}
	return r, nil
}

func (s *Service) load(ctx context.Context, op string, businessID int64, professionalID *int64) (domain.WeeklyHours, bool, error) {
	hours, err := s.hoursRepo.Get(ctx, businessID, professionalID)
	if errors.Is(err, hoursRepo.ErrHoursNotFound) {
		return domain.EmptyWeeklyHours(), true, nil
	}
	if err != nil {
		s.logger.Error("%s: repository error for business=%d: %v", op, businessID, err)
		return domain.WeeklyHours{}, false, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return hours, false, nil
}

func (s *Service) save(ctx context.Context, op string, businessID int64, professionalID *int64, hours domain.WeeklyHours) (*models.HoursResponse, error) {
	if err := hours.Validate(); err != nil {
		s.logger.Warn("%s: invalid hours for business=%d: %v", op, businessID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidHours, err)
	}

	if err := s.hoursRepo.Save(ctx, businessID, professionalID, hours); err != nil {
		s.logger.Error("%s: repository error for business=%d: %v", op, businessID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	s.logger.Info("%s: saved hours for business=%d, professional=%v", op, businessID, professionalID)
	return &models.HoursResponse{
		BusinessID:     businessID,
		ProfessionalID: professionalID,
		Hours:          hours,
	}, nil
}
