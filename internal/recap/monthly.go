package recap

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// RowKind tells day, week and month-total rows apart.
type RowKind string

const (
	RowDay   RowKind = "day"
	RowWeek  RowKind = "week"
	RowMonth RowKind = "month"
)

// MonthSelection is the explicit query of a monthly view. An empty
// RestaurantCode means every restaurant combined.
type MonthSelection struct {
	Year           int
	Month          time.Month
	RestaurantCode string
}

// ReportInput is the aggregation view of one stored daily report.
type ReportInput struct {
	RestaurantCode string
	Date           time.Time
	Metrics        Metrics
}

// Row is one line of the monthly view.
type Row struct {
	Kind    RowKind    `json:"kind"`
	Label   string     `json:"label"`
	Date    *time.Time `json:"date,omitempty"`
	Week    WeekKey    `json:"week"`
	Days    int        `json:"days"`
	Metrics Metrics    `json:"metrics"`
}

// MonthlyView holds the rows of one month in calendar order: each week's day
// rows followed by that week's summary row, and the month total last.
type MonthlyView struct {
	Year  int
	Month time.Month
	Rows  []Row
}

// DayRows returns the day rows in date order.
func (v MonthlyView) DayRows() []Row { return v.filter(RowDay) }

// WeekRows returns the week summary rows in date order.
func (v MonthlyView) WeekRows() []Row { return v.filter(RowWeek) }

// Total returns the month-total row.
func (v MonthlyView) Total() Row {
	if n := len(v.Rows); n > 0 && v.Rows[n-1].Kind == RowMonth {
		return v.Rows[n-1]
	}
	return Row{Kind: RowMonth}
}

func (v MonthlyView) filter(kind RowKind) []Row {
	var rows []Row
	for _, r := range v.Rows {
		if r.Kind == kind {
			rows = append(rows, r)
		}
	}
	return rows
}

// MergeByDate sums the inputs sharing a calendar date. It is how several
// restaurants are combined before the month is bucketed into weeks.
func MergeByDate(inputs []ReportInput) map[string]Metrics {
	merged := make(map[string]Metrics, len(inputs))
	for _, in := range inputs {
		key := in.Date.Format(dateLayout)
		merged[key] = merged[key].Add(in.Metrics)
	}
	return merged
}

// ComputeMonthlyView aggregates the inputs of one month into day, week and
// month-total rows. Inputs dated outside the month are ignored and a day with
// no input yields an all-null day row.
func ComputeMonthlyView(inputs []ReportInput, year int, month time.Month) MonthlyView {
	byDate := MergeByDate(inputs)
	view := MonthlyView{Year: year, Month: month}

	var total Metrics
	days := 0
	for _, bucket := range Buckets(year, month) {
		for _, day := range bucket.Days {
			metrics := byDate[day.Format(dateLayout)]
			bucket.Metrics = bucket.Metrics.Add(metrics)
			total = total.Add(metrics)

			date := day
			view.Rows = append(view.Rows, Row{
				Kind:    RowDay,
				Label:   day.Format(dateLayout),
				Date:    &date,
				Week:    bucket.Key,
				Days:    1,
				Metrics: metrics,
			})
		}
		days += len(bucket.Days)
		view.Rows = append(view.Rows, Row{
			Kind:    RowWeek,
			Label:   fmt.Sprintf("week %d (%s %d)", bucket.Key.Week, month, year),
			Week:    bucket.Key,
			Days:    len(bucket.Days),
			Metrics: bucket.Metrics,
		})
	}

	view.Rows = append(view.Rows, Row{
		Kind:    RowMonth,
		Label:   fmt.Sprintf("Total %s %d", month, year),
		Days:    days,
		Metrics: total,
	})
	return view
}
