package recap

import (
	"fmt"
	"time"
)

// WeekKey identifies an ISO-8601 week. Two dates belong to the same bucket
// when their keys are equal.
type WeekKey struct {
	Week int `json:"week"`
	Year int `json:"week_year"`
}

func (k WeekKey) String() string {
	return fmt.Sprintf("%d-W%02d", k.Year, k.Week)
}

// ISOWeek returns the ISO week of date. The week-year is the year of the
// Thursday of the date's Monday-start week, so early January days can belong
// to the last week of the previous year.
func ISOWeek(date time.Time) WeekKey {
	year, week := date.ISOWeek()
	return WeekKey{Week: week, Year: year}
}

// WeekBucket groups the in-month days of one ISO week.
type WeekBucket struct {
	Key     WeekKey
	Days    []time.Time
	Metrics Metrics
}

// MonthDays returns every calendar date of the month, day 1 first, at UTC midnight.
func MonthDays(year int, month time.Month) []time.Time {
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	days := make([]time.Time, 0, last)
	for day := 1; day <= last; day++ {
		days = append(days, time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
	}
	return days
}

// Buckets walks the month day by day and closes a bucket whenever the ISO
// week changes or the month ends. A week straddling two months only holds the
// days of the requested month.
func Buckets(year int, month time.Month) []WeekBucket {
	var (
		buckets []WeekBucket
		open    *WeekBucket
	)
	for _, day := range MonthDays(year, month) {
		key := ISOWeek(day)
		if open != nil && open.Key != key {
			buckets = append(buckets, *open)
			open = nil
		}
		if open == nil {
			open = &WeekBucket{Key: key}
		}
		open.Days = append(open.Days, day)
	}
	if open != nil {
		buckets = append(buckets, *open)
	}
	return buckets
}
