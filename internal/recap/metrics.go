package recap

import "github.com/shopspring/decimal"

// Metrics is the raw field set carried by day, week and month rows.
// Every field is independently null until some contributing day reports it.
type Metrics struct {
	NetRevenue       decimal.NullDecimal `json:"net_revenue"`
	GrossRevenue     decimal.NullDecimal `json:"gross_revenue"`
	TransactionCount decimal.NullDecimal `json:"transaction_count"`

	PriorYearRevenue  decimal.NullDecimal `json:"prior_year_revenue"`
	PriorYearVariance decimal.NullDecimal `json:"prior_year_variance"`
	ForecastRevenue   decimal.NullDecimal `json:"forecast_revenue"`
	RealizedRevenue   decimal.NullDecimal `json:"realized_revenue"`

	Customers          decimal.NullDecimal `json:"customers"`
	CustomersPriorYear decimal.NullDecimal `json:"customers_prior_year"`

	DeliveryRevenue            decimal.NullDecimal `json:"delivery_revenue"`
	DeliveryRevenuePriorYear   decimal.NullDecimal `json:"delivery_revenue_prior_year"`
	DeliveryCustomers          decimal.NullDecimal `json:"delivery_customers"`
	DeliveryCustomersPriorYear decimal.NullDecimal `json:"delivery_customers_prior_year"`

	ClickCollectRevenue            decimal.NullDecimal `json:"click_collect_revenue"`
	ClickCollectRevenuePriorYear   decimal.NullDecimal `json:"click_collect_revenue_prior_year"`
	ClickCollectCustomers          decimal.NullDecimal `json:"click_collect_customers"`
	ClickCollectCustomersPriorYear decimal.NullDecimal `json:"click_collect_customers_prior_year"`

	CashDiscrepancy decimal.NullDecimal `json:"cash_discrepancy"`
}

func (m *Metrics) fields() []*decimal.NullDecimal {
	return []*decimal.NullDecimal{
		&m.NetRevenue, &m.GrossRevenue, &m.TransactionCount,
		&m.PriorYearRevenue, &m.PriorYearVariance, &m.ForecastRevenue, &m.RealizedRevenue,
		&m.Customers, &m.CustomersPriorYear,
		&m.DeliveryRevenue, &m.DeliveryRevenuePriorYear, &m.DeliveryCustomers, &m.DeliveryCustomersPriorYear,
		&m.ClickCollectRevenue, &m.ClickCollectRevenuePriorYear, &m.ClickCollectCustomers, &m.ClickCollectCustomersPriorYear,
		&m.CashDiscrepancy,
	}
}

// Add returns the field-by-field SumNullable of m and other.
func (m Metrics) Add(other Metrics) Metrics {
	out := m
	dst := out.fields()
	src := other.fields()
	for i := range dst {
		*dst[i] = SumNullable(*dst[i], *src[i])
	}
	return out
}

// IsEmpty reports whether no field carries a value.
func (m Metrics) IsEmpty() bool {
	for _, f := range m.fields() {
		if f.Valid {
			return false
		}
	}
	return true
}

// ChannelMetrics are the comparison ratios of one sales channel.
type ChannelMetrics struct {
	RevenueVsPriorYearPct   decimal.NullDecimal `json:"revenue_vs_prior_year_pct"`
	CustomersVsPriorYearPct decimal.NullDecimal `json:"customers_vs_prior_year_pct"`
	BasketAverage           decimal.NullDecimal `json:"basket_average"`
	BasketAveragePriorYear  decimal.NullDecimal `json:"basket_average_prior_year"`
	BasketVsPriorYearPct    decimal.NullDecimal `json:"basket_vs_prior_year_pct"`
	SharePct                decimal.NullDecimal `json:"share_pct"`
}

// DerivedMetrics is computed from a row on every read and never stored.
type DerivedMetrics struct {
	ForecastVsPriorYear     decimal.NullDecimal `json:"forecast_vs_prior_year"`
	RealizedVsPriorYear     decimal.NullDecimal `json:"realized_vs_prior_year"`
	GapToForecast           decimal.NullDecimal `json:"gap_to_forecast"`
	GapToForecastPct        decimal.NullDecimal `json:"gap_to_forecast_pct"`
	CustomersVsPriorYearPct decimal.NullDecimal `json:"customers_vs_prior_year_pct"`
	BasketAverage           decimal.NullDecimal `json:"basket_average"`
	BasketAveragePriorYear  decimal.NullDecimal `json:"basket_average_prior_year"`
	BasketVsPriorYearPct    decimal.NullDecimal `json:"basket_vs_prior_year_pct"`

	Delivery     ChannelMetrics `json:"delivery"`
	ClickCollect ChannelMetrics `json:"click_collect"`

	CashDiscrepancyPctOfRevenue decimal.NullDecimal `json:"cash_discrepancy_pct_of_revenue"`
}

// DeriveMetrics computes the comparison ratios of one aggregate row.
// It is pure and total: missing inputs or zero denominators yield null fields.
func DeriveMetrics(m Metrics) DerivedMetrics {
	gap := SubNullable(m.RealizedRevenue, m.ForecastRevenue)
	basket := SafeDivide(m.RealizedRevenue, m.Customers)
	basketPriorYear := SafeDivide(m.PriorYearRevenue, m.CustomersPriorYear)

	return DerivedMetrics{
		ForecastVsPriorYear:     pctChange(m.ForecastRevenue, m.PriorYearRevenue),
		RealizedVsPriorYear:     pctChange(m.RealizedRevenue, m.PriorYearRevenue),
		GapToForecast:           gap,
		GapToForecastPct:        SafeDivide(gap, m.ForecastRevenue),
		CustomersVsPriorYearPct: pctChange(m.Customers, m.CustomersPriorYear),
		BasketAverage:           basket,
		BasketAveragePriorYear:  basketPriorYear,
		BasketVsPriorYearPct:    pctChange(basket, basketPriorYear),

		Delivery: deriveChannel(
			m.DeliveryRevenue, m.DeliveryRevenuePriorYear,
			m.DeliveryCustomers, m.DeliveryCustomersPriorYear,
			m.RealizedRevenue,
		),
		ClickCollect: deriveChannel(
			m.ClickCollectRevenue, m.ClickCollectRevenuePriorYear,
			m.ClickCollectCustomers, m.ClickCollectCustomersPriorYear,
			m.RealizedRevenue,
		),

		CashDiscrepancyPctOfRevenue: SafeDivide(m.CashDiscrepancy, m.RealizedRevenue),
	}
}

func deriveChannel(revenue, revenuePriorYear, customers, customersPriorYear, total decimal.NullDecimal) ChannelMetrics {
	basket := SafeDivide(revenue, customers)
	basketPriorYear := SafeDivide(revenuePriorYear, customersPriorYear)
	return ChannelMetrics{
		RevenueVsPriorYearPct:   pctChange(revenue, revenuePriorYear),
		CustomersVsPriorYearPct: pctChange(customers, customersPriorYear),
		BasketAverage:           basket,
		BasketAveragePriorYear:  basketPriorYear,
		BasketVsPriorYearPct:    pctChange(basket, basketPriorYear),
		SharePct:                SafeDivide(revenue, total),
	}
}

// pctChange is (current - reference) / reference.
func pctChange(current, reference decimal.NullDecimal) decimal.NullDecimal {
	return SafeDivide(SubNullable(current, reference), reference)
}
