package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const DefaultClientCode = "BK"

// DailyReport is the canonical report of one restaurant for one calendar day.
// At most one row exists per (restaurant_code, report_date).
type DailyReport struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ClientCode     string    `gorm:"type:varchar(10);not null;default:'BK'" json:"client_code"`
	RestaurantCode string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_daily_reports_restaurant_date,priority:1" json:"restaurant_code"`
	ReportDate     time.Time `gorm:"type:date;not null;index;uniqueIndex:idx_daily_reports_restaurant_date,priority:2" json:"report_date"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Totals of the channel sales file
	NetRevenue       decimal.NullDecimal `gorm:"type:decimal(14,6)" json:"net_revenue"`
	GrossRevenue     decimal.NullDecimal `gorm:"type:decimal(14,6)" json:"gross_revenue"`
	TransactionCount *int64              `gorm:"type:integer" json:"transaction_count"`

	KPI *DailyKPI `gorm:"foreignKey:ReportID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"kpi"`

	ChannelSales     []ChannelSale     `gorm:"foreignKey:ReportID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"channel_sales"`
	ConsumptionModes []ConsumptionMode `gorm:"foreignKey:ReportID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"consumption_modes"`
	Corrections      []Correction      `gorm:"foreignKey:ReportID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"corrections"`
	Miscellaneous    []Miscellaneous   `gorm:"foreignKey:ReportID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"miscellaneous"`
	Payments         []Payment         `gorm:"foreignKey:ReportID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"payments"`
	Discounts        []Discount        `gorm:"foreignKey:ReportID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"discounts"`
	VATSummary       []VATSummary      `gorm:"foreignKey:ReportID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"vat_summary"`
	AnnexSales       []AnnexSale       `gorm:"foreignKey:ReportID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"annex_sales"`
}

// Key returns the human readable (restaurant, date) identity of the report.
func (r *DailyReport) Key() string {
	return r.RestaurantCode + "@" + r.ReportDate.Format("2006-01-02")
}

// DailyKPI is the year-over-year snapshot attached to a report. Every column is
// nullable: a value the source never reported stays NULL, never 0.
type DailyKPI struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"-"`
	ReportID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"-"`

	PriorYearRevenue  decimal.NullDecimal `gorm:"type:decimal(14,6)" json:"prior_year_revenue"`
	PriorYearVariance decimal.NullDecimal `gorm:"type:decimal(14,6)" json:"prior_year_variance"`
	ForecastRevenue   decimal.NullDecimal `gorm:"type:decimal(14,6)" json:"forecast_revenue"`
	RealizedRevenue   decimal.NullDecimal `gorm:"type:decimal(14,6)" json:"realized_revenue"`

	Customers          decimal.NullDecimal `gorm:"type:decimal(14,6)" json:"customers"`
	CustomersPriorYear decimal.NullDecimal `gorm:"type:decimal(14,6)" json:"customers_prior_year"`

	DeliveryRevenue            decimal.NullDecimal `gorm:"type:decimal(14,6)" json:"delivery_revenue"`
	DeliveryRevenuePriorYear   decimal.NullDecimal `gorm:"type:decimal(14,6)" json:"delivery_revenue_prior_year"`
	DeliveryCustomers          decimal.NullDecimal `gorm:"type:decimal(14,6)" json:"delivery_customers"`
	DeliveryCustomersPriorYear decimal.NullDecimal `gorm:"type:decimal(14,6)" json:"delivery_customers_prior_year"`

	ClickCollectRevenue            decimal.NullDecimal `gorm:"type:decimal(14,6)" json:"click_collect_revenue"`
	ClickCollectRevenuePriorYear   decimal.NullDecimal `gorm:"type:decimal(14,6)" json:"click_collect_revenue_prior_year"`
	ClickCollectCustomers          decimal.NullDecimal `gorm:"type:decimal(14,6)" json:"click_collect_customers"`
	ClickCollectCustomersPriorYear decimal.NullDecimal `gorm:"type:decimal(14,6)" json:"click_collect_customers_prior_year"`

	CashDiscrepancy decimal.NullDecimal `gorm:"type:decimal(14,6)" json:"cash_discrepancy"`
}

func (DailyKPI) TableName() string { return "daily_kpis" }
