package recap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestISOWeek(t *testing.T) {
	tests := []struct {
		day  time.Time
		want WeekKey
	}{
		{day: date(2024, 1, 1), want: WeekKey{Week: 1, Year: 2024}},  // Monday
		{day: date(2023, 1, 1), want: WeekKey{Week: 52, Year: 2022}}, // Sunday
		{day: date(2021, 1, 1), want: WeekKey{Week: 53, Year: 2020}}, // Friday
		{day: date(2020, 1, 1), want: WeekKey{Week: 1, Year: 2020}},  // Wednesday
		{day: date(2024, 12, 30), want: WeekKey{Week: 1, Year: 2025}},
		{day: date(2026, 10, 16), want: WeekKey{Week: 42, Year: 2026}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ISOWeek(tt.day), tt.day.Format(dateLayout))
	}
}

func TestMonthDays(t *testing.T) {
	assert.Len(t, MonthDays(2024, time.February), 29)
	assert.Len(t, MonthDays(2023, time.February), 28)
	assert.Len(t, MonthDays(2024, time.April), 30)

	days := MonthDays(2024, time.January)
	require.Len(t, days, 31)
	assert.Equal(t, date(2024, 1, 1), days[0])
	assert.Equal(t, date(2024, 1, 31), days[30])
}

func TestBucketsPartitionTheMonth(t *testing.T) {
	for month := time.January; month <= time.December; month++ {
		buckets := Buckets(2024, month)
		var walked []time.Time
		for _, b := range buckets {
			require.NotEmpty(t, b.Days)
			for _, d := range b.Days {
				assert.Equal(t, b.Key, ISOWeek(d))
				assert.Equal(t, month, d.Month())
			}
			walked = append(walked, b.Days...)
		}
		assert.Equal(t, MonthDays(2024, month), walked, month.String())
	}
}

func TestBucketsStraddlingWeeks(t *testing.T) {
	// January 2023 starts on a Sunday, which closes ISO week 52 of 2022.
	buckets := Buckets(2023, time.January)
	require.Len(t, buckets, 6)
	assert.Equal(t, WeekKey{Week: 52, Year: 2022}, buckets[0].Key)
	assert.Equal(t, []time.Time{date(2023, 1, 1)}, buckets[0].Days)
	assert.Equal(t, WeekKey{Week: 1, Year: 2023}, buckets[1].Key)
	assert.Len(t, buckets[1].Days, 7)

	// The week of 2023-01-30 continues into February; only two days stay in January.
	last := buckets[len(buckets)-1]
	assert.Equal(t, WeekKey{Week: 5, Year: 2023}, last.Key)
	assert.Equal(t, []time.Time{date(2023, 1, 30), date(2023, 1, 31)}, last.Days)

	feb := Buckets(2023, time.February)
	assert.Equal(t, WeekKey{Week: 5, Year: 2023}, feb[0].Key)
	assert.Len(t, feb[0].Days, 5)
}

func TestWeekKeyString(t *testing.T) {
	assert.Equal(t, "2022-W52", WeekKey{Week: 52, Year: 2022}.String())
}
