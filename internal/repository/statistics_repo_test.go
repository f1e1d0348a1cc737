package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRestaurantCoverage(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewStatisticsRepository(db)

	first := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT restaurant_code, COUNT\(\*\) as report_count, MIN\(report_date\) as first_date, MAX\(report_date\) as last_date, SUM\(net_revenue\) as net_revenue FROM "daily_reports" WHERE \(?report_date >= \$1 AND report_date <= \$2\)? GROUP BY .?restaurant_code.? ORDER BY restaurant_code asc`).
		WithArgs("2024-03-01", "2024-03-31").
		WillReturnRows(sqlmock.NewRows([]string{"restaurant_code", "report_count", "first_date", "last_date", "net_revenue"}).
			AddRow("BDX-01", 20, first, last, "1520.50").
			AddRow("TLS-SO", 1, first, first, nil))

	rows, err := repo.GetRestaurantCoverage(context.Background(), first, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "BDX-01", rows[0].RestaurantCode)
	assert.Equal(t, 20, rows[0].ReportCount)
	assert.True(t, rows[0].LastDate.Equal(last))
	assert.Equal(t, "1520.5", rows[0].NetRevenue.Decimal.String())
	assert.False(t, rows[1].NetRevenue.Valid)
	assert.NoError(t, mock.ExpectationsWereMet())
}
