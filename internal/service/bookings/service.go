package bookings

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ScheduleService/internal/service/bookings/models"
)

// Service сервис для работы с журналом бронирований
type Service struct {
	bookingRepo BookingRepository
	managers    AccessChecker
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, managers AccessChecker, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		managers:    managers,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID.
// Доступно клиенту бронирования и менеджерам бизнеса.
func (s *Service) GetByID(ctx context.Context, bookingID int64, userID int64) (*models.BookingResponse, error) {
	booking, err := s.getBooking(ctx, "GetByID", bookingID)
	if err != nil {
		return nil, err
	}

	if err := s.checkUserAccess(ctx, booking, userID); err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// GetBusinessBookings получает бронирования бизнеса с фильтрацией по мастеру,
// периоду, статусу и типу. По умолчанию отменённые не возвращаются.
func (s *Service) GetBusinessBookings(ctx context.Context, req *models.GetBusinessBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetBusinessBookings: fetching bookings for business=%d, professional=%v, includeInactive=%t by user=%d",
		req.BusinessID, req.ProfessionalID, req.IncludeInactive, req.UserID)

	if err := s.checkManagerAccess(ctx, req.BusinessID, req.UserID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetBusinessBookings: invalid filter for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		s.logger.Warn("GetBusinessBookings: empty period for business=%d", req.BusinessID)
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByBusinessWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetBusinessBookings: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: GetBusinessBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetBusinessBookings: successfully fetched %d bookings for business=%d", len(bookings), req.BusinessID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование.
// Клиент, создавший бронирование, отменяет его как cancelled_by_client,
// менеджер бизнеса как cancelled_by_business. Остальным доступ запрещен.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	if req.CancellationReason != nil && utf8.RuneCountInString(*req.CancellationReason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellation reason is too long", ErrInvalidInput)
	}

	// 1. Получаем бронирование
	booking, err := s.getBooking(ctx, "Cancel", bookingID)
	if err != nil {
		return nil, err
	}

	// 2. Определяем, кто отменяет
	cancelStatus := domain.StatusCancelledByClient
	if !booking.IsClient(req.UserID) {
		if err := s.checkManagerAccess(ctx, booking.BusinessID, req.UserID); err != nil {
			return nil, err
		}
		cancelStatus = domain.StatusCancelledByBusiness
	}

	// 3. Проверяем статус
	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return nil, ErrCannotCancel
	}

	// 4. Отменяем

	if err := s.bookingRepo.Cancel(ctx, bookingID, cancelStatus, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found during cancellation", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	booking.Status = cancelStatus
	booking.CancellationReason = req.CancellationReason

	s.logger.Info("Cancel: successfully cancelled booking id=%d with status=%s", bookingID, cancelStatus)
	return models.FromDomainBooking(booking), nil
}

// UpdateStatus меняет статус бронирования (подтверждение, завершение, отказ, неявка).
// Доступно только менеджерам бизнеса. Допустимы переходы pending -> confirmed|declined
// и confirmed -> completed|no_show. Отмена выполняется только через Cancel.
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%d", bookingID, req.Status, req.UserID)

	// 1. Разбираем статус
	newStatus, err := domain.ParseBookingStatus(req.Status)
	if err != nil || newStatus == domain.StatusCancelledByClient || newStatus == domain.StatusCancelledByBusiness {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return nil, ErrInvalidStatus
	}

	// 2. Получаем бронирование
	booking, err := s.getBooking(ctx, "UpdateStatus", bookingID)
	if err != nil {
		return nil, err
	}

	// 3. Статус меняет только менеджер
	if err := s.checkManagerAccess(ctx, booking.BusinessID, req.UserID); err != nil {
		return nil, err
	}

	// 4. Проверяем переход
	if !booking.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: booking id=%d cannot move from %s to %s", bookingID, booking.Status, newStatus)
		return nil, fmt.Errorf("%w: cannot move from %s to %s", ErrInvalidStatus, booking.Status, newStatus)
	}

	// 5. Сохраняем

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	booking.Status = newStatus

	s.logger.Info("UpdateStatus: booking id=%d is now %s", bookingID, newStatus)
	return models.FromDomainBooking(booking), nil
}

func (s *Service) getBooking(ctx context.Context, op string, bookingID int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, bookingID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// Вспомогательные методы

// checkUserAccess проверяет доступ к бронированию: клиент бронирования или менеджер бизнеса
func (s *Service) checkUserAccess(ctx context.Context, booking *domain.Booking, userID int64) error {
	if booking.IsClient(userID) {
		return nil
	}
	return s.checkManagerAccess(ctx, booking.BusinessID, userID)
}

// checkManagerAccess проверяет, что пользователь является менеджером бизнеса
func (s *Service) checkManagerAccess(ctx context.Context, businessID int64, userID int64) error {
	ok, err := s.managers.IsManager(ctx, businessID, userID)
	if err != nil {
		s.logger.Error("checkManagerAccess: failed to check user=%d for business=%d: %v", userID, businessID, err)
		return fmt.Errorf("%w: checkManagerAccess - repository error: %v", ErrInternal, err)
	}
	if !ok {
		s.logger.Warn("checkManagerAccess: user=%d is not a manager of business=%d", userID, businessID)
		return ErrAccessDenied
	}

	s.logger.Info("checkManagerAccess: user=%d is manager of business=%d", userID, businessID)
	return nil
}
