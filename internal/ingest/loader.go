package ingest

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/schedule/overlay"
)

// HoursWriter сохраняет документ часов работы
type HoursWriter interface {
	Save(ctx context.Context, businessID int64, professionalID *int64, hours domain.WeeklyHours) error
}

// AvailabilityWriter сохраняет исключение
type AvailabilityWriter interface {
	Save(ctx context.Context, a *domain.ProfessionalAvailability) (*domain.ProfessionalAvailability, error)
}

// BookingImporter сохраняет бронирование с известным id
type BookingImporter interface {
	Import(ctx context.Context, booking *domain.Booking) error
	SyncIDSequence(ctx context.Context) error
}

// ManagerGranter выдает пользователю права менеджера бизнеса
type ManagerGranter interface {
	Grant(ctx context.Context, businessID, userID int64) error
}

// TransactionManager выполняет функцию в транзакции
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Stats сколько записей каждого вида записано
type Stats struct {
	Managers      int
	Professionals int
	Exceptions    int
	Bookings      int
}

// Loader записывает Snapshot в хранилище одной транзакцией
type Loader struct {
	hours        HoursWriter
	availability AvailabilityWriter
	bookings     BookingImporter
	managers     ManagerGranter
	txManager    TransactionManager
	logger       Logger
}

// NewLoader создает загрузчик
func NewLoader(
	hours HoursWriter,
	availability AvailabilityWriter,
	bookings BookingImporter,
	managers ManagerGranter,
	txManager TransactionManager,
	logger Logger,
) *Loader {
	return &Loader{
		hours:        hours,
		availability: availability,
		bookings:     bookings,
		managers:     managers,
		txManager:    txManager,
		logger:       logger,
	}
}

// Load записывает часы бизнеса, часы мастеров, исключения и бронирования.
// Пересекающиеся исключения одного мастера на одну дату отклоняют весь Snapshot.
func (l *Loader) Load(ctx context.Context, snapshot *Snapshot) (Stats, error) {
	var stats Stats

	// 1. Проверяем исключения до открытия транзакции
	check := overlay.New(nil, nil)
	for _, exc := range snapshot.Exceptions {
		next, err := check.WithException(*exc)
		if err != nil {
			return stats, fmt.Errorf("%w: availability %s: %v", ErrInvalidRecord, exc.ID, err)
		}
		check = next
	}

	// 2. Пишем все в одной транзакции
	err := l.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		for _, userID := range snapshot.ManagerIDs {
			if err := l.managers.Grant(ctx, snapshot.BusinessID, userID); err != nil {
				return fmt.Errorf("manager %d: %w", userID, err)
			}
			stats.Managers++
		}

		if err := l.hours.Save(ctx, snapshot.BusinessID, nil, snapshot.BusinessHours); err != nil {
			return fmt.Errorf("business hours: %w", err)
		}

		for profID, hours := range snapshot.ProfessionalHours {
			id := profID
			if err := l.hours.Save(ctx, snapshot.BusinessID, &id, hours); err != nil {
				return fmt.Errorf("professional %d hours: %w", profID, err)
			}
			stats.Professionals++
		}

		for _, exc := range snapshot.Exceptions {
			if _, err := l.availability.Save(ctx, exc); err != nil {
				return fmt.Errorf("availability %s: %w", exc.ID, err)
			}
			stats.Exceptions++
		}

		for _, b := range snapshot.Bookings {
			if err := l.bookings.Import(ctx, b); err != nil {
				return fmt.Errorf("booking %d: %w", b.ID, err)
			}
			stats.Bookings++
		}
		if stats.Bookings > 0 {
			if err := l.bookings.SyncIDSequence(ctx); err != nil {
				return fmt.Errorf("booking id sequence: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		l.logger.Error("Load: business=%d import failed: %v", snapshot.BusinessID, err)
		return Stats{}, err
	}

	l.logger.Info("Load: business=%d imported managers=%d professionals=%d exceptions=%d bookings=%d",
		snapshot.BusinessID, stats.Managers, stats.Professionals, stats.Exceptions, stats.Bookings)
	return stats, nil
}
