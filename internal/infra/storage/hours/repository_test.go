package hours

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/schedule/templates"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
)

func newRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	repo, _, mock := newWrappedRepository(t)
	return repo, mock
}

func newWrappedRepository(t *testing.T) (*Repository, *dbmetrics.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	wrapped := dbmetrics.Wrap(db, nil)
	return NewRepository(wrapped), wrapped, mock
}

const document = `{"monday":[{"start":"09:00","end":"14:00"},{"start":"17:00","end":"20:00"}],"tuesday":[],"sunday":[]}`

func TestGet_Business(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT document FROM business_hours WHERE business_id = $1 AND professional_id IS NULL")).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"document"}).AddRow([]byte(document)))

	hours, err := repo.Get(context.Background(), 42, nil)
	require.NoError(t, err)

	monday := hours.Day(domain.Monday)
	require.Len(t, monday, 2)
	assert.Equal(t, "17:00-20:00", monday[1].String())
	assert.False(t, hours.IsOpen(domain.Tuesday))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_LocksInTransaction(t *testing.T) {
	repo, wrapped, mock := newWrappedRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`professional_id IS NULL FOR UPDATE$`).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"document"}).AddRow([]byte(document)))

	tx, err := wrapped.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	_, err = repo.Get(dbmetrics.WithTx(context.Background(), tx), 42, nil)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_Professional(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE business_id = $1 AND professional_id = $2")).
		WithArgs(int64(42), int64(7)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), 42, ptr.Ptr[int64](7))
	assert.ErrorIs(t, err, ErrHoursNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_BrokenDocument(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectQuery("SELECT document").
		WillReturnRows(sqlmock.NewRows([]string{"document"}).AddRow([]byte(`{"funday":[]}`)))

	_, err := repo.Get(context.Background(), 42, nil)
	assert.ErrorIs(t, err, ErrDocument)
}

func TestListProfessionals(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE business_id = $1 AND professional_id IS NOT NULL ORDER BY professional_id ASC")).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"professional_id", "document"}).
			AddRow(int64(7), []byte(document)).
			AddRow(int64(8), []byte(`{}`)))

	result, err := repo.ListProfessionals(context.Background(), 42)
	require.NoError(t, err)

	require.Len(t, result, 2)
	assert.True(t, result[7].IsOpen(domain.Monday))
	assert.True(t, result[8].IsEmpty())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSave(t *testing.T) {
	repo, mock := newRepository(t)
	hours, err := templates.Apply(templates.WeekdaysContinuous)
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO business_hours (business_id,professional_id,document) VALUES ($1,$2,$3) ON CONFLICT")).
		WithArgs(int64(42), nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Save(context.Background(), 42, nil, hours))
	assert.NoError(t, mock.ExpectationsWereMet())
}
