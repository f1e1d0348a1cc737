package recap

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func input(code string, day time.Time, m Metrics) ReportInput {
	return ReportInput{RestaurantCode: code, Date: day, Metrics: m}
}

func TestComputeMonthlyViewRowOrder(t *testing.T) {
	view := ComputeMonthlyView(nil, 2023, time.January)

	require.Len(t, view.DayRows(), 31)
	require.Len(t, view.WeekRows(), 6)
	require.Len(t, view.Rows, 31+6+1)

	// Day 1 is alone in week 52 of 2022, its week row follows immediately.
	assert.Equal(t, RowDay, view.Rows[0].Kind)
	assert.Equal(t, RowWeek, view.Rows[1].Kind)
	assert.Equal(t, WeekKey{Week: 52, Year: 2022}, view.Rows[1].Week)
	assert.Equal(t, 1, view.Rows[1].Days)

	last := view.Rows[len(view.Rows)-1]
	assert.Equal(t, RowMonth, last.Kind)
	assert.Equal(t, 31, last.Days)
	assert.Equal(t, "Total January 2023", last.Label)

	for _, r := range view.Rows {
		assert.True(t, r.Metrics.IsEmpty(), "no input must mean no data, got %+v", r.Metrics)
	}
}

func TestComputeMonthlyViewWeekAndMonthTotals(t *testing.T) {
	// 2024-01-08..10 are Monday to Wednesday of ISO week 2.
	inputs := []ReportInput{
		input("TLS-SO", date(2024, 1, 8), Metrics{RealizedRevenue: dec(100), Customers: dec(10)}),
		input("TLS-SO", date(2024, 1, 9), Metrics{RealizedRevenue: dec(200), Customers: dec(20)}),
		input("TLS-SO", date(2024, 1, 10), Metrics{RealizedRevenue: Null, Customers: Null, CashDiscrepancy: dec(-3)}),
	}
	view := ComputeMonthlyView(inputs, 2024, time.January)

	var week Row
	for _, r := range view.WeekRows() {
		if r.Week == (WeekKey{Week: 2, Year: 2024}) {
			week = r
		}
	}
	require.Equal(t, RowWeek, week.Kind)
	assertValue(t, 300, week.Metrics.RealizedRevenue)
	assertValue(t, 30, week.Metrics.Customers)
	assertValue(t, -3, week.Metrics.CashDiscrepancy)
	assert.False(t, week.Metrics.ForecastRevenue.Valid)

	assertValue(t, 10, DeriveMetrics(week.Metrics).BasketAverage)

	total := view.Total()
	assertValue(t, 300, total.Metrics.RealizedRevenue)
	assert.False(t, total.Metrics.PriorYearRevenue.Valid)

	// Week 1 has no report at all and stays null.
	assert.True(t, view.WeekRows()[0].Metrics.IsEmpty())
}

func TestWeekRowsSumToMonthTotal(t *testing.T) {
	var inputs []ReportInput
	for i, day := range MonthDays(2024, time.March) {
		m := Metrics{NetRevenue: dec(int64(i * 10))}
		if i%3 == 0 {
			m.Customers = dec(int64(i))
		}
		if i%7 == 0 {
			m.ForecastRevenue = Value(decimal.RequireFromString("12.5"))
		}
		inputs = append(inputs, input("TLS-SO", day, m))
	}
	view := ComputeMonthlyView(inputs, 2024, time.March)

	var weeks Metrics
	for _, r := range view.WeekRows() {
		weeks = weeks.Add(r.Metrics)
	}
	total := view.Total().Metrics
	assert.True(t, weeks.NetRevenue.Decimal.Equal(total.NetRevenue.Decimal))
	assert.True(t, weeks.Customers.Decimal.Equal(total.Customers.Decimal))
	assert.True(t, weeks.ForecastRevenue.Decimal.Equal(total.ForecastRevenue.Decimal))
	assert.Equal(t, "62.5", total.ForecastRevenue.Decimal.String())
	assert.False(t, weeks.DeliveryRevenue.Valid)
	assert.False(t, total.DeliveryRevenue.Valid)
}

func TestComputeMonthlyViewMergesRestaurants(t *testing.T) {
	inputs := []ReportInput{
		input("TLS-SO", date(2024, 2, 29), Metrics{RealizedRevenue: dec(100), DeliveryRevenue: dec(5)}),
		input("TLS-NE", date(2024, 2, 29), Metrics{RealizedRevenue: dec(50)}),
		input("TLS-NE", date(2024, 3, 1), Metrics{RealizedRevenue: dec(999)}),
	}
	view := ComputeMonthlyView(inputs, 2024, time.February)

	days := view.DayRows()
	require.Len(t, days, 29)
	leap := days[28]
	assert.Equal(t, "2024-02-29", leap.Label)
	assertValue(t, 150, leap.Metrics.RealizedRevenue)
	assertValue(t, 5, leap.Metrics.DeliveryRevenue)

	// The March report is outside the month.
	assertValue(t, 150, view.Total().Metrics.RealizedRevenue)
}

func TestMergeByDate(t *testing.T) {
	merged := MergeByDate([]ReportInput{
		input("A", date(2024, 5, 1), Metrics{Customers: dec(3)}),
		input("B", date(2024, 5, 1), Metrics{Customers: Null}),
		input("C", date(2024, 5, 2), Metrics{}),
	})
	require.Len(t, merged, 2)
	assertValue(t, 3, merged["2024-05-01"].Customers)
	assert.True(t, merged["2024-05-02"].IsEmpty())
}
