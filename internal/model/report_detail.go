package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Consumption modes of the point-of-sale export
const (
	ModeEatIn    = "SP"
	ModeTakeAway = "AE"
)

// ChannelSale is one line of the sales-per-channel file. The line whose label
// is a total carries IsTotal and is the source of the report totals.
type ChannelSale struct {
	ID               uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"-"`
	ReportID         uuid.UUID           `gorm:"type:uuid;not null;index" json:"-"`
	ChannelLabel     string              `gorm:"type:varchar(120);not null" json:"channel_label"`
	IsTotal          bool                `gorm:"not null;default:false" json:"is_total"`
	TransactionCount *int64              `gorm:"type:integer" json:"transaction_count"`
	NetRevenue       decimal.NullDecimal `gorm:"type:decimal(14,6)" json:"net_revenue"`
	GrossRevenue     decimal.NullDecimal `gorm:"type:decimal(14,6)" json:"gross_revenue"`
	BasketNet        decimal.NullDecimal `gorm:"type:decimal(14,6)" json:"basket_net"`
	BasketGross      decimal.NullDecimal `gorm:"type:decimal(14,6)" json:"basket_gross"`
	NetTotalProfit   decimal.NullDecimal `gorm:"type:decimal(14,6)" json:"net_total_profit"`
}

type ConsumptionMode struct {
	ID               uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"-"`
	ReportID         uuid.UUID           `gorm:"type:uuid;not null;index" json:"-"`
	Mode             string              `gorm:"type:varchar(10);not null" json:"mode"` // SP / AE
	TransactionCount *int64              `gorm:"type:integer" json:"transaction_count"`
	RevenueExclTax   decimal.NullDecimal `gorm:"type:decimal(14,6)" json:"revenue_excl_tax"`
	RevenueInclTax   decimal.NullDecimal `gorm:"type:decimal(14,6)" json:"revenue_incl_tax"`
	Pct              decimal.NullDecimal `gorm:"type:decimal(14,6)" json:"pct"`
}

type Correction struct {
	ID       uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"-"`
	ReportID uuid.UUID           `gorm:"type:uuid;not null;index" json:"-"`
	Rate     decimal.NullDecimal `gorm:"type:decimal(14,6)" json:"rate"`
	Amount   decimal.NullDecimal `gorm:"type:decimal(14,6)" json:"amount"`
	Count    *int64              `gorm:"type:integer" json:"count"`
}

// Miscellaneous holds staff meals, open orders and cancellations.
type Miscellaneous struct {
	ID                uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"-"`
	ReportID          uuid.UUID           `gorm:"type:uuid;not null;index" json:"-"`
	StaffMealCount    *int64              `gorm:"type:integer" json:"staff_meal_count"`
	StaffMealValue    decimal.NullDecimal `gorm:"type:decimal(14,6)" json:"staff_meal_value"`
	StaffMealRate     decimal.NullDecimal `gorm:"type:decimal(14,6)" json:"staff_meal_rate"`
	OpenOrderCount    *int64              `gorm:"type:integer" json:"open_order_count"`
	OpenOrderAmount   decimal.NullDecimal `gorm:"type:decimal(14,6)" json:"open_order_amount"`
	OpenOrderRate     decimal.NullDecimal `gorm:"type:decimal(14,6)" json:"open_order_rate"`
	CancellationCount *int64              `gorm:"type:integer" json:"cancellation_count"`
	CancellationValue decimal.NullDecimal `gorm:"type:decimal(14,6)" json:"cancellation_amount"`
	CancellationRate  decimal.NullDecimal `gorm:"type:decimal(14,6)" json:"cancellation_rate"`
}

func (Miscellaneous) TableName() string { return "miscellaneous" }

type Payment struct {
	ID          uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"-"`
	ReportID    uuid.UUID           `gorm:"type:uuid;not null;index" json:"-"`
	PaymentType string              `gorm:"type:varchar(80);not null" json:"payment_type"`
	Expected    decimal.NullDecimal `gorm:"type:decimal(14,6)" json:"expected"`
	Collected   decimal.NullDecimal `gorm:"type:decimal(14,6)" json:"collected"`
	Counted     decimal.NullDecimal `gorm:"type:decimal(14,6)" json:"counted"`
	Discrepancy decimal.NullDecimal `gorm:"type:decimal(14,6)" json:"discrepancy"`
}

type Discount struct {
	ID              uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"-"`
	ReportID        uuid.UUID           `gorm:"type:uuid;not null;index" json:"-"`
	DiscountRate    decimal.NullDecimal `gorm:"type:decimal(14,6)" json:"discount_rate"`
	DiscountAmount  decimal.NullDecimal `gorm:"type:decimal(14,6)" json:"discount_amount"`
	DiscountCount   *int64              `gorm:"type:integer" json:"discount_count"`
	FreeSauceRate   decimal.NullDecimal `gorm:"type:decimal(14,6)" json:"free_sauce_rate"`
	FreeSauceAmount decimal.NullDecimal `gorm:"type:decimal(14,6)" json:"free_sauce_amount"`
	FreeSauceCount  *int64              `gorm:"type:integer" json:"free_sauce_count"`
}

type VATSummary struct {
	ID       uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"-"`
	ReportID uuid.UUID           `gorm:"type:uuid;not null;index" json:"-"`
	Label    string              `gorm:"type:varchar(30);not null" json:"label"`
	ExclTax  decimal.NullDecimal `gorm:"type:decimal(14,6)" json:"excl_tax"`
	VAT      decimal.NullDecimal `gorm:"column:vat;type:decimal(14,6)" json:"vat"`
	InclTax  decimal.NullDecimal `gorm:"type:decimal(14,6)" json:"incl_tax"`
}

func (VATSummary) TableName() string { return "vat_summaries" }

type AnnexSale struct {
	ID            uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"-"`
	ReportID      uuid.UUID           `gorm:"type:uuid;not null;index" json:"-"`
	Label         string              `gorm:"type:varchar(255);not null" json:"label"`
	Count         *int64              `gorm:"type:integer" json:"count"`
	AmountExclTax decimal.NullDecimal `gorm:"type:decimal(14,6)" json:"amount_excl_tax"`
	AmountInclTax decimal.NullDecimal `gorm:"type:decimal(14,6)" json:"amount_incl_tax"`
}
