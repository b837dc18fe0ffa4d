package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/schedule/slots"
	bookingModels "github.com/m04kA/SMC-ScheduleService/internal/service/bookings/models"
	getSlots "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_available_slots"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo      BookingRepository
	hoursRepo        HoursRepository
	availabilityRepo AvailabilityRepository
	configResolver   ConfigResolver
	txManager        TransactionManager
	location         *time.Location
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	hoursRepo HoursRepository,
	availabilityRepo AvailabilityRepository,
	configResolver ConfigResolver,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		bookingRepo:      bookingRepo,
		hoursRepo:        hoursRepo,
		availabilityRepo: availabilityRepo,
		configResolver:   configResolver,
		txManager:        txManager,
		location:         location,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка интервала и вставка выполняются в одной сериализуемой транзакции,
// бронирования дня читаются с блокировкой (FOR UPDATE).
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*bookingModels.BookingResponse, error) {
	uc.logger.Info("CreateBooking: user=%d, business=%d, kind=%q, start=%s",
		req.UserID, req.BusinessID, req.Kind, req.Start.Format(time.RFC3339))

	// 1. Валидация входных данных
	kind, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время в часовом поясе бизнеса
	now := uc.timeProvider.Now().In(uc.location)
	start := req.Start.In(uc.location)

	var result *domain.Booking

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем конфигурацию слотов
		config, err := uc.configResolver.Resolve(txCtx, req.BusinessID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get config: %v", err)
			return fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
		}

		end := start.Add(config.Granularity())
		if req.End != nil {
			end = req.End.In(uc.location)
		}

		booking := &domain.Booking{
			BusinessID:     req.BusinessID,
			ProfessionalID: req.ProfessionalID,
			Start:          start,
			End:            end,
			Kind:           kind,
			Status:         domain.StatusConfirmed,
			Notes:          req.Notes,
		}

		// 3.2. Проверяем интервал
		if kind == domain.KindBlock {
			err = uc.checkBlock(txCtx, booking)
		} else {
			booking.ServiceID = req.ServiceID
			booking.ClientID = req.ClientID
			if booking.ClientID == nil {
				booking.ClientID = &req.UserID
			}
			booking.ClientName = req.ClientName
			booking.ServiceName = req.ServiceName
			err = uc.checkReservation(txCtx, booking, config, now)
		}
		if err != nil {
			return err
		}

		// 3.3. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created %s id=%d", result.Kind, result.ID)

	return bookingModels.FromDomainBooking(result), nil
}

// checkReservation проверяет дату, минимальное время до записи, рабочее время мастера
// и пересечения с бронированиями
func (uc *UseCase) checkReservation(
	ctx context.Context,
	booking *domain.Booking,
	config *domain.BusinessSlotsConfig,
	now time.Time,
) error {
	if err := validateDate(booking.Start, now, config); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return err
	}
	if err := validateBookingTime(booking.Start, now, config.MinBookingNoticeMinutes); err != nil {
		uc.logger.Warn("CreateBooking: booking time validation failed: %v", err)
		return err
	}

	date := startOfDay(booking.Start)
	in, err := getSlots.LoadInput(ctx, uc.hoursRepo, uc.availabilityRepo, uc.bookingRepo,
		booking.BusinessID, booking.ProfessionalID, date)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to load schedule: %v", err)
		return fmt.Errorf("%w: failed to load schedule: %v", ErrInternal, err)
	}

	if err := slots.CheckInterval(in, *booking.ProfessionalID, booking.Start, booking.End); err != nil {
		uc.logger.Warn("CreateBooking: interval rejected: %v", err)
		return mapSlotError(err)
	}
	return nil
}

// checkBlock проверяет только пересечения: блокировка может лежать вне рабочего времени
func (uc *UseCase) checkBlock(ctx context.Context, booking *domain.Booking) error {
	if err := booking.ValidateInterval(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := uc.bookingRepo.GetByBusinessWithFilter(ctx, domain.BusinessBookingsFilter{
		BusinessID:     booking.BusinessID,
		ProfessionalID: booking.ProfessionalID,
		From:           &booking.Start,
		To:             &booking.End,
	})
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
		return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	in := slots.Input{Bookings: bookings}
	if booking.ProfessionalID != nil {
		err = slots.CheckOccupancy(in, *booking.ProfessionalID, booking.Start, booking.End)
	} else {
		err = checkBusinessOccupancy(bookings, booking.Start, booking.End)
	}
	if err != nil {
		uc.logger.Warn("CreateBooking: block rejected: %v", err)
		return mapSlotError(err)
	}
	return nil
}

// checkBusinessOccupancy для блокировки всего бизнеса: занят любой мастер - интервал занят
func checkBusinessOccupancy(bookings []*domain.Booking, start, end time.Time) error {
	for _, b := range domain.Ledger(bookings) {
		if b.Overlaps(start, end) {
			return fmt.Errorf("%w: booking %d", slots.ErrSlotOccupied, b.ID)
		}
	}
	return nil
}

func mapSlotError(err error) error {
	switch {
	case errors.Is(err, slots.ErrSlotOccupied):
		return fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
	case errors.Is(err, slots.ErrOutsideOpenHours):
		return fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	case errors.Is(err, domain.ErrInvalidRange):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
