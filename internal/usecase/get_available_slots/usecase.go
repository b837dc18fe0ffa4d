package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/availability"
	hoursRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/hours"
	"github.com/m04kA/SMC-ScheduleService/internal/schedule/overlay"
	"github.com/m04kA/SMC-ScheduleService/internal/schedule/slots"
)

// UseCase use case для получения сетки слотов бизнеса на дату
type UseCase struct {
	hoursRepo        HoursRepository
	availabilityRepo AvailabilityRepository
	bookingRepo      BookingRepository
	configResolver   ConfigResolver
	metrics          SlotMetrics
	location         *time.Location
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case.
// location - часовой пояс бизнеса, в нём размещаются слоты.
func NewUseCase(
	hoursRepo HoursRepository,
	availabilityRepo AvailabilityRepository,
	bookingRepo BookingRepository,
	configResolver ConfigResolver,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		hoursRepo:        hoursRepo,
		availabilityRepo: availabilityRepo,
		bookingRepo:      bookingRepo,
		configResolver:   configResolver,
		metrics:          nopMetrics{},
		location:         location,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// WithMetrics подключает метрики расчёта слотов
func (uc *UseCase) WithMetrics(m SlotMetrics) *UseCase {
	if m != nil {
		uc.metrics = m
	}
	return uc
}

// Execute выполняет use case получения сетки слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: business=%d, date=%s", req.BusinessID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Приводим дату и текущее время к часовому поясу бизнеса
	y, m, d := req.Date.Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, uc.location)
	now := uc.timeProvider.Now().In(uc.location)

	// 3. Получаем конфигурацию слотов
	config, err := uc.configResolver.Resolve(ctx, req.BusinessID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get config: %v", err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}

	// 4. Валидация даты с учетом конфигурации
	if err := validateDate(date, now, config); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 5. Собираем входные данные движка
	in, err := LoadInput(ctx, uc.hoursRepo, uc.availabilityRepo, uc.bookingRepo, req.BusinessID, req.ProfessionalID, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to load schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to load schedule: %v", ErrInternal, err)
	}
	in.Granularity = config.Granularity()

	// 6. Считаем сетку
	grid, err := slots.Compute(in)
	uc.metrics.ObserveSlotComputation(len(grid), err)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to compute slots: %v", err)
		return nil, fmt.Errorf("%w: failed to compute slots: %v", ErrInternal, err)
	}

	// 7. Убираем слоты, на которые уже поздно записываться, и применяем фильтры
	grid = applyBookingNotice(grid, date, now, config.MinBookingNoticeMinutes)
	grid = filterSlots(grid, req.ProfessionalID, req.FreeOnly)

	uc.logger.Info("GetAvailableSlots: %d slots for business=%d on %s",
		len(grid), req.BusinessID, date.Format(domain.DateFormat))

	return &Response{
		Date:            date,
		BusinessID:      req.BusinessID,
		DurationMinutes: config.SlotDurationMinutes,
		Slots:           grid,
	}, nil
}

// LoadInput загружает часы бизнеса, часы мастеров, исключения на дату и бронирования дня.
// date должна быть полуночью в часовом поясе бизнеса. Granularity не заполняется.
// Если professionalID задан, бронирования ограничиваются этим мастером и общими блоками.
func LoadInput(
	ctx context.Context,
	hours HoursRepository,
	availability AvailabilityRepository,
	bookings BookingRepository,
	businessID int64,
	professionalID *int64,
	date time.Time,
) (slots.Input, error) {
	// 1. Часы бизнеса, отсутствие документа - все дни закрыты
	businessHours, err := hours.Get(ctx, businessID, nil)
	if err != nil && !errors.Is(err, hoursRepo.ErrHoursNotFound) {
		return slots.Input{}, fmt.Errorf("business hours: %w", err)
	}

	// 2. Часы мастеров по умолчанию
	defaults, err := hours.ListProfessionals(ctx, businessID)
	if err != nil {
		return slots.Input{}, fmt.Errorf("professional hours: %w", err)
	}

	// 3. Исключения на дату
	day := domain.DateOnly(date)
	exceptions, err := availability.List(ctx, availabilityRepo.Filter{
		BusinessID:     businessID,
		ProfessionalID: professionalID,
		From:           &day,
		To:             &day,
	})
	if err != nil {
		return slots.Input{}, fmt.Errorf("availability: %w", err)
	}

	// 4. Активные бронирования, пересекающие день
	from := date
	to := date.AddDate(0, 0, 1)
	ledger, err := bookings.GetByBusinessWithFilter(ctx, domain.BusinessBookingsFilter{
		BusinessID:     businessID,
		ProfessionalID: professionalID,
		From:           &from,
		To:             &to,
	})
	if err != nil {
		return slots.Input{}, fmt.Errorf("bookings: %w", err)
	}

	return slots.Input{
		BusinessHours: businessHours,
		Overlay:       overlay.New(defaults, exceptions),
		Bookings:      ledger,
		Date:          date,
	}, nil
}
