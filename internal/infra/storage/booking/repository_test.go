package booking

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
)

func newRepository(t *testing.T) (*Repository, *dbmetrics.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	wrapped := dbmetrics.Wrap(db, nil)
	return NewRepository(wrapped), wrapped, mock
}

var (
	start = time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	end   = start.Add(30 * time.Minute)
)

func bookingRow() *sqlmock.Rows {
	return sqlmock.NewRows(columns).AddRow(
		int64(1), int64(42), int64(7), nil, int64(3), "Анна", "Стрижка",
		start, end, "reservation", "confirmed", nil, nil, nil, start, start,
	)
}

func TestCreate(t *testing.T) {
	repo, _, mock := newRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings")).
		WithArgs(int64(42), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), "Анна", "", start, end,
			domain.KindReservation, domain.StatusConfirmed, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(11), start, start))

	created, err := repo.Create(context.Background(), &domain.Booking{
		BusinessID:     42,
		ProfessionalID: ptr.Ptr[int64](7),
		ClientName:     "Анна",
		Start:          start,
		End:            end,
		Kind:           domain.KindReservation,
		Status:         domain.StatusConfirmed,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(11), created.ID)
	assert.Equal(t, start, created.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID(t *testing.T) {
	repo, _, mock := newRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, business_id, professional_id")).
		WithArgs(int64(1)).
		WillReturnRows(bookingRow())

	booking, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, int64(42), booking.BusinessID)
	require.NotNil(t, booking.ProfessionalID)
	assert.Equal(t, int64(7), *booking.ProfessionalID)
	assert.Nil(t, booking.ServiceID)
	assert.Equal(t, domain.StatusConfirmed, booking.Status)
	assert.Equal(t, domain.KindReservation, booking.Kind)
	assert.Nil(t, booking.CancelledAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, _, mock := newRepository(t)

	mock.ExpectQuery("SELECT").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetByBusinessWithFilter_ExcludesInactive(t *testing.T) {
	repo, _, mock := newRepository(t)

	mock.ExpectQuery(`FROM bookings WHERE business_id = \$1 AND \(professional_id = \$2 OR professional_id IS NULL\) AND end_at > \$3 AND start_at < \$4 AND status NOT IN \(\$5,\$6,\$7,\$8\) ORDER BY start_at ASC, id ASC$`).
		WithArgs(int64(42), int64(7), start, end,
			"cancelled_by_client", "cancelled_by_business", "declined", "no_show").
		WillReturnRows(bookingRow())

	bookings, err := repo.GetByBusinessWithFilter(context.Background(), domain.BusinessBookingsFilter{
		BusinessID:     42,
		ProfessionalID: ptr.Ptr[int64](7),
		From:           &start,
		To:             &end,
	})

	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "Анна", bookings[0].ClientName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByBusinessWithFilter_LocksInTransaction(t *testing.T) {
	repo, wrapped, mock := newRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE$`).WillReturnRows(sqlmock.NewRows(columns))

	tx, err := wrapped.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	ctx := dbmetrics.WithTx(context.Background(), tx)

	bookings, err := repo.GetByBusinessWithFilter(ctx, domain.BusinessBookingsFilter{
		BusinessID: 42,
		From:       &start,
		To:         &end,
	})

	require.NoError(t, err)
	assert.Empty(t, bookings)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByBusinessWithFilter_StatusFilter(t *testing.T) {
	repo, _, mock := newRepository(t)
	status := domain.StatusCancelledByClient

	mock.ExpectQuery(`WHERE business_id = \$1 AND status = \$2 ORDER BY`).
		WithArgs(int64(42), status).
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.GetByBusinessWithFilter(context.Background(), domain.BusinessBookingsFilter{
		BusinessID: 42,
		Status:     &status,
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancel(t *testing.T) {
	repo, _, mock := newRepository(t)
	reason := "заболел"

	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status = $1, cancellation_reason = $2, cancelled_at = NOW(), updated_at = NOW() WHERE id = $3")).
		WithArgs(domain.StatusCancelledByClient, &reason, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE bookings").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Cancel(context.Background(), 1, domain.StatusCancelledByClient, &reason))
	assert.ErrorIs(t, repo.Cancel(context.Background(), 2, domain.StatusCancelledByClient, nil), ErrBookingNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_ExecError(t *testing.T) {
	repo, _, mock := newRepository(t)

	mock.ExpectQuery("INSERT INTO bookings").WillReturnError(errors.New("connection reset"))

	_, err := repo.Create(context.Background(), &domain.Booking{BusinessID: 1, Start: start, End: end})
	assert.ErrorIs(t, err, ErrExecQuery)
}

func TestUpdateStatus(t *testing.T) {
	repo, _, mock := newRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2")).
		WithArgs(domain.StatusCompleted, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateStatus(context.Background(), 1, domain.StatusCompleted))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSyncIDSequence(t *testing.T) {
	repo, _, mock := newRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("SELECT setval(pg_get_serial_sequence('bookings', 'id'), COALESCE(MAX(id), 1)) FROM bookings")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SyncIDSequence(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
