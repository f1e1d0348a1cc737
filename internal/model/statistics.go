package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RestaurantCoverage aggregates the stored reports of one restaurant over a
// date range.
type RestaurantCoverage struct {
	RestaurantCode string
	ReportCount    int
	FirstDate      time.Time
	LastDate       time.Time
	NetRevenue     decimal.NullDecimal
}
