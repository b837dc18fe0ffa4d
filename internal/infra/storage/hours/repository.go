package hours

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
)

const tableName = "business_hours"

// Repository хранит документы WeeklyHours целиком (JSONB).
// professionalID == nil означает часы работы самого бизнеса.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория часов работы
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает документ часов работы бизнеса или мастера.
// Внутри транзакции строка блокируется (FOR UPDATE) до сохранения изменённого документа.
func (r *Repository) Get(ctx context.Context, businessID int64, professionalID *int64) (domain.WeeklyHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("document").
		From(tableName).
		Where(squirrel.Eq{"business_id": businessID}).
		Where(professionalFilter(professionalID))
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return domain.WeeklyHours{}, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var document []byte
	err = executor.QueryRowContext(ctx, query, args...).Scan(&document)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.WeeklyHours{}, ErrHoursNotFound
	}
	if err != nil {
		return domain.WeeklyHours{}, fmt.Errorf("%w: Get - scan document: %v", ErrScanRow, err)
	}

	var hours domain.WeeklyHours
	if err := json.Unmarshal(document, &hours); err != nil {
		return domain.WeeklyHours{}, fmt.Errorf("%w: Get - unmarshal: %v", ErrDocument, err)
	}

	return hours, nil
}

// ListProfessionals получает документы часов работы всех мастеров бизнеса
func (r *Repository) ListProfessionals(ctx context.Context, businessID int64) (map[int64]domain.WeeklyHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("professional_id", "document").
		From(tableName).
		Where(squirrel.Eq{"business_id": businessID}).
		Where(squirrel.NotEq{"professional_id": nil}).
		OrderBy("professional_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListProfessionals - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListProfessionals - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make(map[int64]domain.WeeklyHours)
	for rows.Next() {
		var (
			professionalID int64
			document       []byte
		)
		if err := rows.Scan(&professionalID, &document); err != nil {
			return nil, fmt.Errorf("%w: ListProfessionals - scan row: %v", ErrScanRow, err)
		}

		var hours domain.WeeklyHours
		if err := json.Unmarshal(document, &hours); err != nil {
			return nil, fmt.Errorf("%w: ListProfessionals - professional %d: %v", ErrDocument, professionalID, err)
		}
		result[professionalID] = hours
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListProfessionals - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// Save сохраняет документ целиком, заменяя предыдущий
func (r *Repository) Save(ctx context.Context, businessID int64, professionalID *int64, hours domain.WeeklyHours) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	document, err := json.Marshal(hours)
	if err != nil {
		return fmt.Errorf("%w: Save - marshal: %v", ErrDocument, err)
	}

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("business_id", "professional_id", "document").
		Values(businessID, professionalID, document).
		Suffix("ON CONFLICT (business_id, (COALESCE(professional_id, 0))) DO UPDATE SET document = EXCLUDED.document, updated_at = NOW()").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Save - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Save - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

func professionalFilter(professionalID *int64) squirrel.Eq {
	if professionalID == nil {
		return squirrel.Eq{"professional_id": nil}
	}
	return squirrel.Eq{"professional_id": *professionalID}
}
