package service

import (
	"context"
	"fmt"

	"restaurant-recap/internal/recap"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

type exportColumn struct {
	title string
	value func(MonthlyRow) decimal.NullDecimal
}

var exportColumns = []exportColumn{
	{"Net revenue", func(r MonthlyRow) decimal.NullDecimal { return r.Metrics.NetRevenue }},
	{"Gross revenue", func(r MonthlyRow) decimal.NullDecimal { return r.Metrics.GrossRevenue }},
	{"Transactions", func(r MonthlyRow) decimal.NullDecimal { return r.Metrics.TransactionCount }},
	{"Prior year revenue", func(r MonthlyRow) decimal.NullDecimal { return r.Metrics.PriorYearRevenue }},
	{"Forecast", func(r MonthlyRow) decimal.NullDecimal { return r.Metrics.ForecastRevenue }},
	{"Realized revenue", func(r MonthlyRow) decimal.NullDecimal { return r.Metrics.RealizedRevenue }},
	{"Forecast vs prior year", func(r MonthlyRow) decimal.NullDecimal { return r.Derived.ForecastVsPriorYear }},
	{"Realized vs prior year", func(r MonthlyRow) decimal.NullDecimal { return r.Derived.RealizedVsPriorYear }},
	{"Gap to forecast", func(r MonthlyRow) decimal.NullDecimal { return r.Derived.GapToForecast }},
	{"Gap to forecast %", func(r MonthlyRow) decimal.NullDecimal { return r.Derived.GapToForecastPct }},
	{"Customers", func(r MonthlyRow) decimal.NullDecimal { return r.Metrics.Customers }},
	{"Customers prior year", func(r MonthlyRow) decimal.NullDecimal { return r.Metrics.CustomersPriorYear }},
	{"Customers vs prior year", func(r MonthlyRow) decimal.NullDecimal { return r.Derived.CustomersVsPriorYearPct }},
	{"Basket", func(r MonthlyRow) decimal.NullDecimal { return r.Derived.BasketAverage }},
	{"Basket prior year", func(r MonthlyRow) decimal.NullDecimal { return r.Derived.BasketAveragePriorYear }},
	{"Basket vs prior year", func(r MonthlyRow) decimal.NullDecimal { return r.Derived.BasketVsPriorYearPct }},
	{"Delivery revenue", func(r MonthlyRow) decimal.NullDecimal { return r.Metrics.DeliveryRevenue }},
	{"Delivery vs prior year", func(r MonthlyRow) decimal.NullDecimal { return r.Derived.Delivery.RevenueVsPriorYearPct }},
	{"Delivery customers", func(r MonthlyRow) decimal.NullDecimal { return r.Metrics.DeliveryCustomers }},
	{"Delivery basket", func(r MonthlyRow) decimal.NullDecimal { return r.Derived.Delivery.BasketAverage }},
	{"Delivery share", func(r MonthlyRow) decimal.NullDecimal { return r.Derived.Delivery.SharePct }},
	{"Click & collect revenue", func(r MonthlyRow) decimal.NullDecimal { return r.Metrics.ClickCollectRevenue }},
	{"Click & collect vs prior year", func(r MonthlyRow) decimal.NullDecimal { return r.Derived.ClickCollect.RevenueVsPriorYearPct }},
	{"Click & collect customers", func(r MonthlyRow) decimal.NullDecimal { return r.Metrics.ClickCollectCustomers }},
	{"Click & collect basket", func(r MonthlyRow) decimal.NullDecimal { return r.Derived.ClickCollect.BasketAverage }},
	{"Click & collect share", func(r MonthlyRow) decimal.NullDecimal { return r.Derived.ClickCollect.SharePct }},
	{"Cash discrepancy", func(r MonthlyRow) decimal.NullDecimal { return r.Metrics.CashDiscrepancy }},
	{"Cash discrepancy % of revenue", func(r MonthlyRow) decimal.NullDecimal { return r.Derived.CashDiscrepancyPctOfRevenue }},
}

// ExportMonthly renders the monthly view as an .xlsx workbook. Null values
// are left as empty cells.
func (s *recapService) ExportMonthly(ctx context.Context, sel recap.MonthSelection) ([]byte, string, error) {
	view, err := s.GetMonthly(ctx, sel)
	if err != nil {
		return nil, "", err
	}

	scope := "ALL"
	if view.RestaurantCode != "" {
		scope = view.RestaurantCode
	}
	sheet := fmt.Sprintf("%04d-%02d", view.Year, view.Month)
	filename := fmt.Sprintf("recap_%s_%s.xlsx", scope, sheet)

	file := excelize.NewFile()
	defer file.Close()
	if err := file.SetSheetName(file.GetSheetName(0), sheet); err != nil {
		return nil, "", fmt.Errorf("failed to name sheet: %w", err)
	}

	header := []interface{}{"Row", "Kind", "ISO week", "Days"}
	for _, col := range exportColumns {
		header = append(header, col.title)
	}
	if err := file.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, "", fmt.Errorf("failed to write header: %w", err)
	}

	bold, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, "", fmt.Errorf("failed to create style: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(header))
	if err := file.SetCellStyle(sheet, "A1", lastCol+"1", bold); err != nil {
		return nil, "", fmt.Errorf("failed to style header: %w", err)
	}

	for i, row := range view.Rows {
		line := i + 2
		values := []interface{}{row.Label, string(row.Kind), row.Week.String(), row.Days}
		for _, col := range exportColumns {
			values = append(values, cellValue(col.value(row)))
		}
		cell, _ := excelize.CoordinatesToCellName(1, line)
		if err := file.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, "", fmt.Errorf("failed to write row %d: %w", line, err)
		}
		if row.Kind != recap.RowDay {
			if err := file.SetCellStyle(sheet, cell, fmt.Sprintf("%s%d", lastCol, line), bold); err != nil {
				return nil, "", fmt.Errorf("failed to style row %d: %w", line, err)
			}
		}
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), filename, nil
}

// cellValue keeps null distinct from zero: a null becomes an empty cell.
func cellValue(v decimal.NullDecimal) interface{} {
	if !v.Valid {
		return nil
	}
	f, _ := v.Decimal.Round(6).Float64()
	return f
}
