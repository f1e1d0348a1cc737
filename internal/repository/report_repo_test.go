package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"
	"time"

	"restaurant-recap/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestGetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReportRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "daily_reports" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteIsIdempotent(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReportRepository(db)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "daily_reports" WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "daily_reports" WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	deleted, err := repo.Delete(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDuplicateKey(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReportRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "daily_reports"`).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &model.DailyReport{
		ClientCode:     model.DefaultClientCode,
		RestaurantCode: "TLS-SO",
		ReportDate:     time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAppliesFilter(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReportRepository(db)
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT \* FROM "daily_reports" WHERE restaurant_code = \$1 AND report_date >= \$2 AND report_date <= \$3 ORDER BY report_date desc`).
		WithArgs("TLS-SO", "2024-03-01", "2024-03-31").
		WillReturnRows(sqlmock.NewRows([]string{"id", "restaurant_code", "report_date"}).
			AddRow(uuid.New().String(), "TLS-SO", to).
			AddRow(uuid.New().String(), "TLS-SO", from))

	reports, err := repo.List(context.Background(), ReportFilter{RestaurantCode: "TLS-SO", From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, to, reports[0].ReportDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMonthlyPreloadsKPI(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReportRepository(db)
	reportID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "daily_reports" WHERE \(?report_date >= \$1 AND report_date < \$2`).
		WithArgs("2024-02-01", "2024-03-01").
		WillReturnRows(sqlmock.NewRows([]string{"id", "restaurant_code", "report_date"}).
			AddRow(reportID.String(), "TLS-SO", time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)))
	mock.ExpectQuery(`SELECT \* FROM "daily_kpis" WHERE "daily_kpis"."report_id" = \$1`).
		WithArgs(reportID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "report_id", "customers"}).
			AddRow(uuid.New().String(), reportID.String(), "42"))

	reports, err := repo.GetMonthly(context.Background(), 2024, time.February, "")
	require.NoError(t, err)
	require.Len(t, reports, 1)
	require.NotNil(t, reports[0].KPI)
	assert.Equal(t, "42", reports[0].KPI.Customers.Decimal.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTranslateError(t *testing.T) {
	assert.NoError(t, translateError(nil))
	assert.ErrorIs(t, translateError(gorm.ErrRecordNotFound), ErrNotFound)
	assert.ErrorIs(t, translateError(gorm.ErrDuplicatedKey), ErrDuplicate)
	assert.ErrorIs(t, translateError(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})), ErrDuplicate)
	assert.ErrorIs(t, translateError(driver.ErrBadConn), ErrUnavailable)
	assert.ErrorIs(t, translateError(context.DeadlineExceeded), ErrUnavailable)

	other := errors.New("syntax error")
	assert.Equal(t, other, translateError(other))
}
