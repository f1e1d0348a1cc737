package service

import (
	"context"
	"fmt"
	"time"

	"restaurant-recap/internal/model"
	"restaurant-recap/internal/parser"
	"restaurant-recap/internal/recap"
	"restaurant-recap/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	minRecapYear = 2000
	maxRecapYear = 2100
)

type MonthlyRow struct {
	Kind    recap.RowKind        `json:"kind"`
	Label   string               `json:"label"`
	Date    string               `json:"date,omitempty"`
	Week    recap.WeekKey        `json:"week"`
	Days    int                  `json:"days"`
	Metrics recap.Metrics        `json:"metrics"`
	Derived recap.DerivedMetrics `json:"derived"`
}

type MonthlyRecap struct {
	Year           int          `json:"year"`
	Month          int          `json:"month"`
	RestaurantCode string       `json:"restaurant_code,omitempty"`
	ReportCount    int          `json:"report_count"`
	Rows           []MonthlyRow `json:"rows"`
}

// RecapService builds the monthly view of stored reports.
type RecapService interface {
	GetMonthly(ctx context.Context, sel recap.MonthSelection) (*MonthlyRecap, error)
	ExportMonthly(ctx context.Context, sel recap.MonthSelection) ([]byte, string, error)
}

type recapService struct {
	reportRepo repository.ReportRepository
}

func NewRecapService(reportRepo repository.ReportRepository) RecapService {
	return &recapService{reportRepo: reportRepo}
}

// GetMonthly reads the month from storage on every call; nothing is cached.
func (s *recapService) GetMonthly(ctx context.Context, sel recap.MonthSelection) (*MonthlyRecap, error) {
	if err := validateSelection(sel); err != nil {
		return nil, err
	}
	sel.RestaurantCode = parser.NormalizeRestaurantCode(sel.RestaurantCode)

	reports, err := s.reportRepo.GetMonthly(ctx, sel.Year, sel.Month, sel.RestaurantCode)
	if err != nil {
		return nil, mapError(err)
	}

	inputs := make([]recap.ReportInput, 0, len(reports))
	for i := range reports {
		inputs = append(inputs, ReportInput(&reports[i]))
	}
	view := recap.ComputeMonthlyView(inputs, sel.Year, sel.Month)

	res := &MonthlyRecap{
		Year:           sel.Year,
		Month:          int(sel.Month),
		RestaurantCode: sel.RestaurantCode,
		ReportCount:    len(reports),
		Rows:           make([]MonthlyRow, 0, len(view.Rows)),
	}
	for _, row := range view.Rows {
		out := MonthlyRow{
			Kind:    row.Kind,
			Label:   row.Label,
			Week:    row.Week,
			Days:    row.Days,
			Metrics: row.Metrics,
			Derived: recap.DeriveMetrics(row.Metrics),
		}
		if row.Date != nil {
			out.Date = row.Date.Format(dateLayout)
		}
		res.Rows = append(res.Rows, out)
	}
	return res, nil
}

// ReportInput is the aggregation view of a stored report. Realized revenue
// falls back to the net revenue total and customers to the transaction count
// when the KPI snapshot does not carry them.
func ReportInput(r *model.DailyReport) recap.ReportInput {
	m := recap.Metrics{
		NetRevenue:       r.NetRevenue,
		GrossRevenue:     r.GrossRevenue,
		TransactionCount: recap.IntPtrValue(r.TransactionCount),
	}
	if kpi := r.KPI; kpi != nil {
		m.PriorYearRevenue = kpi.PriorYearRevenue
		m.PriorYearVariance = kpi.PriorYearVariance
		m.ForecastRevenue = kpi.ForecastRevenue
		m.RealizedRevenue = kpi.RealizedRevenue
		m.Customers = kpi.Customers
		m.CustomersPriorYear = kpi.CustomersPriorYear
		m.DeliveryRevenue = kpi.DeliveryRevenue
		m.DeliveryRevenuePriorYear = kpi.DeliveryRevenuePriorYear
		m.DeliveryCustomers = kpi.DeliveryCustomers
		m.DeliveryCustomersPriorYear = kpi.DeliveryCustomersPriorYear
		m.ClickCollectRevenue = kpi.ClickCollectRevenue
		m.ClickCollectRevenuePriorYear = kpi.ClickCollectRevenuePriorYear
		m.ClickCollectCustomers = kpi.ClickCollectCustomers
		m.ClickCollectCustomersPriorYear = kpi.ClickCollectCustomersPriorYear
		m.CashDiscrepancy = kpi.CashDiscrepancy
	}
	m.RealizedRevenue = firstValid(m.RealizedRevenue, m.NetRevenue)
	m.Customers = firstValid(m.Customers, m.TransactionCount)

	return recap.ReportInput{
		RestaurantCode: r.RestaurantCode,
		Date:           dateOnly(r.ReportDate),
		Metrics:        m,
	}
}

func firstValid(values ...decimal.NullDecimal) decimal.NullDecimal {
	for _, v := range values {
		if v.Valid {
			return v
		}
	}
	return recap.Null
}

func validateSelection(sel recap.MonthSelection) error {
	if sel.Month < time.January || sel.Month > time.December {
		return fmt.Errorf("%w: month must be between 1 and 12", ErrValidation)
	}
	if sel.Year < minRecapYear || sel.Year > maxRecapYear {
		return fmt.Errorf("%w: year must be between %d and %d", ErrValidation, minRecapYear, maxRecapYear)
	}
	return nil
}
