package parser

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"restaurant-recap/internal/model"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// kpiColumns maps accepted header spellings to the KPI field they fill.
var kpiColumns = map[string]string{
	"prior_year_revenue":                 "prior_year_revenue",
	"n1_ht":                              "prior_year_revenue",
	"prior_year_variance":                "prior_year_variance",
	"var_n1":                             "prior_year_variance",
	"forecast_revenue":                   "forecast_revenue",
	"prev_ht":                            "forecast_revenue",
	"realized_revenue":                   "realized_revenue",
	"ca_real":                            "realized_revenue",
	"customers":                          "customers",
	"clients":                            "customers",
	"customers_prior_year":               "customers_prior_year",
	"clients_n1":                         "customers_prior_year",
	"delivery_revenue":                   "delivery_revenue",
	"ca_delivery":                        "delivery_revenue",
	"delivery_revenue_prior_year":        "delivery_revenue_prior_year",
	"ca_delivery_n1":                     "delivery_revenue_prior_year",
	"delivery_customers":                 "delivery_customers",
	"client_delivery":                    "delivery_customers",
	"delivery_customers_prior_year":      "delivery_customers_prior_year",
	"client_delivery_n1":                 "delivery_customers_prior_year",
	"click_collect_revenue":              "click_collect_revenue",
	"ca_click_collect":                   "click_collect_revenue",
	"click_collect_revenue_prior_year":   "click_collect_revenue_prior_year",
	"cnc_n1":                             "click_collect_revenue_prior_year",
	"click_collect_customers":            "click_collect_customers",
	"client_click_collect":               "click_collect_customers",
	"click_collect_customers_prior_year": "click_collect_customers_prior_year",
	"client_n1":                          "click_collect_customers_prior_year",
	"cash_discrepancy":                   "cash_discrepancy",
	"cash_diff":                          "cash_discrepancy",
}

// ParseKPI reads the optional KPI snapshot: a header line and one value line,
// either as a semicolon CSV or as the first sheet of an .xlsx workbook.
// Unknown columns are ignored and missing ones stay null.
func ParseKPI(filename string, content []byte) (*model.DailyKPI, error) {
	var (
		raw record
		err error
	)
	if strings.EqualFold(filepath.Ext(filename), ".xlsx") {
		raw, err = readKPISheet(content)
	} else {
		raw, err = readKPICSV(content)
	}
	if err != nil {
		return nil, err
	}

	rec := make(record, len(raw))
	for column, value := range raw {
		if field, ok := kpiColumns[strings.ToLower(column)]; ok {
			rec[field] = value
		}
	}
	return kpiFromRecord(rec)
}

func readKPICSV(content []byte) (record, error) {
	records, err := readRecords(FileKPI, content)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s: expected a header and a value line", ErrMalformed, FileKPI)
	}
	return records[0], nil
}

func readKPISheet(content []byte) (record, error) {
	file, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: open excel file: %v", ErrMalformed, FileKPI, err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: %s: excel file has no sheets", ErrMalformed, FileKPI)
	}
	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: read sheet rows: %v", ErrMalformed, FileKPI, err)
	}

	var filled [][]string
	for _, row := range rows {
		if !blank(row) {
			filled = append(filled, row)
		}
	}
	if len(filled) < 2 {
		return nil, fmt.Errorf("%w: %s: expected a header and a value row", ErrMalformed, FileKPI)
	}
	rec := make(record, len(filled[0]))
	for i, column := range filled[0] {
		if i < len(filled[1]) {
			rec[strings.TrimSpace(column)] = filled[1][i]
		}
	}
	return rec, nil
}

func kpiFromRecord(rec record) (*model.DailyKPI, error) {
	f := newFieldReader(FileKPI, 2, rec)
	kpi := &model.DailyKPI{
		PriorYearRevenue:               f.decimal("prior_year_revenue"),
		PriorYearVariance:              f.decimal("prior_year_variance"),
		ForecastRevenue:                f.decimal("forecast_revenue"),
		RealizedRevenue:                f.decimal("realized_revenue"),
		Customers:                      f.decimal("customers"),
		CustomersPriorYear:             f.decimal("customers_prior_year"),
		DeliveryRevenue:                f.decimal("delivery_revenue"),
		DeliveryRevenuePriorYear:       f.decimal("delivery_revenue_prior_year"),
		DeliveryCustomers:              f.decimal("delivery_customers"),
		DeliveryCustomersPriorYear:     f.decimal("delivery_customers_prior_year"),
		ClickCollectRevenue:            f.decimal("click_collect_revenue"),
		ClickCollectRevenuePriorYear:   f.decimal("click_collect_revenue_prior_year"),
		ClickCollectCustomers:          f.decimal("click_collect_customers"),
		ClickCollectCustomersPriorYear: f.decimal("click_collect_customers_prior_year"),
		CashDiscrepancy:                f.decimal("cash_discrepancy"),
	}
	if f.err != nil {
		return nil, f.err
	}
	return kpi, nil
}

// hasValues reports whether any KPI column was filled.
func hasValues(kpi *model.DailyKPI) bool {
	for _, v := range []decimal.NullDecimal{
		kpi.PriorYearRevenue, kpi.PriorYearVariance, kpi.ForecastRevenue, kpi.RealizedRevenue,
		kpi.Customers, kpi.CustomersPriorYear, kpi.DeliveryRevenue, kpi.DeliveryRevenuePriorYear,
		kpi.DeliveryCustomers, kpi.DeliveryCustomersPriorYear, kpi.ClickCollectRevenue,
		kpi.ClickCollectRevenuePriorYear, kpi.ClickCollectCustomers,
		kpi.ClickCollectCustomersPriorYear, kpi.CashDiscrepancy,
	} {
		if v.Valid {
			return true
		}
	}
	return false
}
