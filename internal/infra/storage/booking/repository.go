package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
)

const tableName = "bookings"

var columns = []string{
	"id",
	"business_id",
	"professional_id",
	"service_id",
	"client_id",
	"client_name",
	"service_name",
	"start_at",
	"end_at",
	"kind",
	"status",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"business_id",
			"professional_id",
			"service_id",
			"client_id",
			"client_name",
			"service_name",
			"start_at",
			"end_at",
			"kind",
			"status",
			"notes",
		).
		Values(
			booking.BusinessID,
			booking.ProfessionalID,
			booking.ServiceID,
			booking.ClientID,
			booking.ClientName,
			booking.ServiceName,
			booking.Start,
			booking.End,
			booking.Kind,
			booking.Status,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// Import сохраняет бронирование с уже известным id (перенос из старой системы).
// Повторный импорт перезаписывает запись.
func (r *Repository) Import(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"id",
			"business_id",
			"professional_id",
			"service_id",
			"client_id",
			"client_name",
			"service_name",
			"start_at",
			"end_at",
			"kind",
			"status",
			"notes",
			"cancellation_reason",
		).
		Values(
			booking.ID,
			booking.BusinessID,
			booking.ProfessionalID,
			booking.ServiceID,
			booking.ClientID,
			booking.ClientName,
			booking.ServiceName,
			booking.Start,
			booking.End,
			booking.Kind,
			booking.Status,
			booking.Notes,
			booking.CancellationReason,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			professional_id = EXCLUDED.professional_id,
			start_at = EXCLUDED.start_at,
			end_at = EXCLUDED.end_at,
			kind = EXCLUDED.kind,
			status = EXCLUDED.status,
			updated_at = NOW()`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Import - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Import - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

// SyncIDSequence сдвигает последовательность id за максимальный импортированный id
func (r *Repository) SyncIDSequence(ctx context.Context) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query := "SELECT setval(pg_get_serial_sequence('" + tableName + "', 'id'), COALESCE(MAX(id), 1)) FROM " + tableName
	if _, err := executor.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("%w: SyncIDSequence - execute: %v", ErrExecQuery, err)
	}
	return nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByBusinessWithFilter получает бронирования бизнеса с фильтрацией.
// From/To отбирают бронирования, пересекающиеся с периодом [From, To).
// Бронирования без мастера попадают в выборку по любому мастеру.
//
// Внутри транзакции при заданном периоде строки блокируются (FOR UPDATE),
// это нужно usecase создания бронирования.
func (r *Repository) GetByBusinessWithFilter(ctx context.Context, filter domain.BusinessBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"business_id": filter.BusinessID})

	// Фильтрация по мастеру
	if filter.ProfessionalID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.Eq{"professional_id": *filter.ProfessionalID},
			squirrel.Eq{"professional_id": nil},
		})
	}

	// Фильтрация по периоду
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"end_at": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_at": *filter.To})
	}

	if filter.Kind != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"kind": *filter.Kind})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		inactive := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactive[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactive})
	}

	selectBuilder = selectBuilder.OrderBy("start_at ASC", "id ASC")

	if dbmetrics.IsInTransaction(ctx) && filter.From != nil && filter.To != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByBusinessWithFilter - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessWithFilter - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// Cancel переводит бронирование в статус отмены
func (r *Repository) Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("status", status).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.BusinessID,
		&booking.ProfessionalID,
		&booking.ServiceID,
		&booking.ClientID,
		&booking.ClientName,
		&booking.ServiceName,
		&booking.Start,
		&booking.End,
		&booking.Kind,
		&booking.Status,
		&booking.Notes,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}
