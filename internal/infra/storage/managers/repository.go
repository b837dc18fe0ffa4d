package managers

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
)

const tableName = "business_managers"

// Repository хранит список менеджеров бизнеса (пользователи с правом управлять расписанием)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория менеджеров
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// IsManager проверяет, что пользователь является менеджером бизнеса
func (r *Repository) IsManager(ctx context.Context, businessID, userID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		Prefix("SELECT EXISTS (").
		From(tableName).
		Where(squirrel.Eq{"business_id": businessID, "user_id": userID}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: IsManager - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: IsManager - scan: %v", ErrScanRow, err)
	}
	return exists, nil
}

// Grant добавляет менеджера бизнеса, повторный вызов ничего не меняет
func (r *Repository) Grant(ctx context.Context, businessID, userID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("business_id", "user_id").
		Values(businessID, userID).
		Suffix("ON CONFLICT (business_id, user_id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Grant - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Grant - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}
