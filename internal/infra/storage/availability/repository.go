package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
)

const tableName = "professional_availability"

var columns = []string{
	"id",
	"business_id",
	"professional_id",
	"date",
	"start_time",
	"end_time",
	"created_at",
	"updated_at",
}

// Filter выборка исключений бизнеса за период [From, To] включительно
type Filter struct {
	BusinessID     int64
	ProfessionalID *int64
	From           *time.Time
	To             *time.Time
}

// Repository репозиторий исключений в расписании мастеров
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Save создает исключение или обновляет существующее с тем же id
func (r *Repository) Save(ctx context.Context, a *domain.ProfessionalAvailability) (*domain.ProfessionalAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("id", "business_id", "professional_id", "date", "start_time", "end_time").
		Values(a.ID, a.BusinessID, a.ProfessionalID, a.Date.Format(domain.DateFormat), a.Start, a.End).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			date = EXCLUDED.date,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			updated_at = NOW()
		RETURNING created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Save - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Save - execute insert: %v", ErrExecQuery, err)
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return a, nil
}

// GetByID получает исключение по id
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ProfessionalAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	a, err := scanAvailability(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAvailabilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan: %v", ErrScanRow, err)
	}

	return a, nil
}

// List получает исключения бизнеса, отсортированные по мастеру, дате и началу окна
func (r *Repository) List(ctx context.Context, filter Filter) ([]*domain.ProfessionalAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"business_id": filter.BusinessID})

	if filter.ProfessionalID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"professional_id": *filter.ProfessionalID})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"date": filter.From.Format(domain.DateFormat)})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"date": filter.To.Format(domain.DateFormat)})
	}

	query, args, err := selectBuilder.
		OrderBy("professional_id ASC", "date ASC", "start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.ProfessionalAvailability, 0)
	for rows.Next() {
		a, err := scanAvailability(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// Delete удаляет исключение мастера
func (r *Repository) Delete(ctx context.Context, businessID, professionalID int64, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"id": id, "business_id": businessID, "professional_id": professionalID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAvailabilityNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAvailability(row rowScanner) (*domain.ProfessionalAvailability, error) {
	var a domain.ProfessionalAvailability
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&a.ID,
		&a.BusinessID,
		&a.ProfessionalID,
		&a.Date,
		&a.Start,
		&a.End,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.Date = domain.DateOnly(a.Date)
	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return &a, nil
}
