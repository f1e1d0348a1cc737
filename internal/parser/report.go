package parser

import (
	"fmt"
	"strings"
	"time"

	"restaurant-recap/internal/model"
	"restaurant-recap/internal/recap"

	"github.com/shopspring/decimal"
)

// Names of the point-of-sale export files of one day.
const (
	FileChannelSales     = "caparprofit"
	FileConsumptionModes = "consommationparprofit"
	FileCorrections      = "corrections"
	FileMiscellaneous    = "divers"
	FilePayments         = "reglement"
	FileDiscounts        = "remises"
	FileVAT              = "tva"
	FileAnnexSales       = "vente_annexes"
	FileKPI              = "kpi"
)

// RequiredFiles is the complete file set of a daily report.
var RequiredFiles = []string{
	FileChannelSales,
	FileConsumptionModes,
	FileCorrections,
	FileMiscellaneous,
	FilePayments,
	FileDiscounts,
	FileVAT,
	FileAnnexSales,
}

// File is one uploaded export.
type File struct {
	Filename string
	Content  []byte
}

// Files maps a file name of RequiredFiles (or FileKPI) to its upload.
type Files map[string]File

// Missing returns the required names absent from the set, in RequiredFiles order.
func (f Files) Missing() []string {
	var missing []string
	for _, name := range RequiredFiles {
		if _, ok := f[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// Parse builds the report of restaurantCode for date from a complete file set.
// The returned report has no ID; children are attached for a cascading create.
func Parse(restaurantCode string, date time.Time, files Files) (*model.DailyReport, error) {
	if missing := files.Missing(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing files %s", ErrMalformed, strings.Join(missing, ", "))
	}

	report := &model.DailyReport{
		ClientCode:     model.DefaultClientCode,
		RestaurantCode: NormalizeRestaurantCode(restaurantCode),
		ReportDate:     date,
	}

	steps := []struct {
		name  string
		parse func([]record) error
	}{
		{FileChannelSales, func(rs []record) (err error) {
			report.ChannelSales, err = parseChannelSales(rs)
			return err
		}},
		{FileConsumptionModes, func(rs []record) (err error) {
			report.ConsumptionModes, err = parseConsumptionModes(rs)
			return err
		}},
		{FileCorrections, func(rs []record) (err error) {
			report.Corrections, err = parseCorrections(rs)
			return err
		}},
		{FileMiscellaneous, func(rs []record) (err error) {
			report.Miscellaneous, err = parseMiscellaneous(rs)
			return err
		}},
		{FilePayments, func(rs []record) (err error) {
			report.Payments, err = parsePayments(rs)
			return err
		}},
		{FileDiscounts, func(rs []record) (err error) {
			report.Discounts, err = parseDiscounts(rs)
			return err
		}},
		{FileVAT, func(rs []record) (err error) {
			report.VATSummary, err = parseVAT(rs)
			return err
		}},
		{FileAnnexSales, func(rs []record) (err error) {
			report.AnnexSales, err = parseAnnexSales(rs)
			return err
		}},
	}
	for _, step := range steps {
		records, err := readRecords(step.name, files[step.name].Content)
		if err != nil {
			return nil, err
		}
		if err := step.parse(records); err != nil {
			return nil, err
		}
	}

	report.NetRevenue, report.GrossRevenue, report.TransactionCount = channelTotals(report.ChannelSales)

	if kpi, ok := files[FileKPI]; ok {
		snapshot, err := ParseKPI(kpi.Filename, kpi.Content)
		if err != nil {
			return nil, err
		}
		if hasValues(snapshot) {
			report.KPI = snapshot
		}
	}
	return report, nil
}

// NormalizeRestaurantCode trims and upper-cases a restaurant code.
func NormalizeRestaurantCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsTotalLabel reports whether a channel label names the total line.
func IsTotalLabel(label string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(label)), "total")
}

// channelTotals reads the report totals from the total line, or sums the
// channel lines when the export has none.
func channelTotals(sales []model.ChannelSale) (net, gross decimal.NullDecimal, count *int64) {
	for _, s := range sales {
		if s.IsTotal {
			return s.NetRevenue, s.GrossRevenue, s.TransactionCount
		}
	}
	for _, s := range sales {
		net = recap.SumNullable(net, s.NetRevenue)
		gross = recap.SumNullable(gross, s.GrossRevenue)
		count = sumCounts(count, s.TransactionCount)
	}
	return net, gross, count
}

func sumCounts(a, b *int64) *int64 {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	n := *a + *b
	return &n
}

func parseChannelSales(records []record) ([]model.ChannelSale, error) {
	sales := make([]model.ChannelSale, 0, len(records))
	for i, rec := range records {
		f := newFieldReader(FileChannelSales, i+2, rec)
		sale := model.ChannelSale{
			ChannelLabel:     f.text("profit"),
			TransactionCount: f.int("tac"),
			NetRevenue:       f.decimal("net"),
			GrossRevenue:     f.decimal("ttc"),
			BasketNet:        f.decimal("panierMoyenNet"),
			BasketGross:      f.decimal("panierMoyenTTC"),
			NetTotalProfit:   f.decimal("netTotalProfit"),
		}
		if f.err != nil {
			return nil, f.err
		}
		sale.IsTotal = IsTotalLabel(sale.ChannelLabel)
		sales = append(sales, sale)
	}
	return sales, nil
}

// parseConsumptionModes splits the single line into eat-in and take-away rows.
func parseConsumptionModes(records []record) ([]model.ConsumptionMode, error) {
	if len(records) == 0 {
		return nil, nil
	}
	f := newFieldReader(FileConsumptionModes, 2, records[0])
	modes := make([]model.ConsumptionMode, 0, 2)
	for _, mode := range []string{model.ModeEatIn, model.ModeTakeAway} {
		modes = append(modes, model.ConsumptionMode{
			Mode:             mode,
			TransactionCount: f.int(mode + "_tac"),
			RevenueExclTax:   f.decimal(mode + "_caht"),
			RevenueInclTax:   f.decimal(mode + "_cattc"),
			Pct:              f.decimal(mode + "_pourcent"),
		})
	}
	if f.err != nil {
		return nil, f.err
	}
	return modes, nil
}

func parseCorrections(records []record) ([]model.Correction, error) {
	if len(records) == 0 {
		return nil, nil
	}
	f := newFieldReader(FileCorrections, 2, records[0])
	c := model.Correction{
		Rate:   f.decimal("tauxCorrection"),
		Amount: f.decimal("montantCorrection"),
		Count:  f.int("nombreCorrection"),
	}
	if f.err != nil {
		return nil, f.err
	}
	return []model.Correction{c}, nil
}

func parseMiscellaneous(records []record) ([]model.Miscellaneous, error) {
	if len(records) == 0 {
		return nil, nil
	}
	f := newFieldReader(FileMiscellaneous, 2, records[0])
	m := model.Miscellaneous{
		StaffMealCount:    f.int("nombreRepasEmployes"),
		StaffMealValue:    f.decimal("montantValoriseRepasEmployes"),
		StaffMealRate:     f.decimal("tauxRepasEmployes"),
		OpenOrderCount:    f.int("nombreCommandeOuvertes"),
		OpenOrderAmount:   f.decimal("montantCommandeOuvertes"),
		OpenOrderRate:     f.decimal("tauxCommandeOuvertes"),
		CancellationCount: f.int("nombreAnnulations"),
		CancellationValue: f.decimal("montantAnnulations"),
		CancellationRate:  f.decimal("tauxAnnulations"),
	}
	if f.err != nil {
		return nil, f.err
	}
	return []model.Miscellaneous{m}, nil
}

func parsePayments(records []record) ([]model.Payment, error) {
	payments := make([]model.Payment, 0, len(records))
	for i, rec := range records {
		f := newFieldReader(FilePayments, i+2, rec)
		p := model.Payment{
			PaymentType: f.text("type"),
			Expected:    f.decimal("theorique"),
			Collected:   f.decimal("preleve"),
			Counted:     f.decimal("compte"),
			Discrepancy: f.decimal("ecart"),
		}
		if f.err != nil {
			return nil, f.err
		}
		payments = append(payments, p)
	}
	return payments, nil
}

func parseDiscounts(records []record) ([]model.Discount, error) {
	if len(records) == 0 {
		return nil, nil
	}
	f := newFieldReader(FileDiscounts, 2, records[0])
	d := model.Discount{
		DiscountRate:    f.decimal("tauxRemises"),
		DiscountAmount:  f.decimal("montantRemises"),
		DiscountCount:   f.int("nombreRemises"),
		FreeSauceRate:   f.decimal("tauxSaucesOffertes"),
		FreeSauceAmount: f.decimal("montantSaucesOffertes"),
		FreeSauceCount:  f.int("nbrSaucesOffertes"),
	}
	if f.err != nil {
		return nil, f.err
	}
	return []model.Discount{d}, nil
}

func parseVAT(records []record) ([]model.VATSummary, error) {
	rows := make([]model.VATSummary, 0, len(records))
	for i, rec := range records {
		f := newFieldReader(FileVAT, i+2, rec)
		v := model.VATSummary{
			Label:   f.text("libelle"),
			ExclTax: f.decimal("HT"),
			VAT:     f.decimal("TVA"),
			InclTax: f.decimal("TTC"),
		}
		if f.err != nil {
			return nil, f.err
		}
		rows = append(rows, v)
	}
	return rows, nil
}

func parseAnnexSales(records []record) ([]model.AnnexSale, error) {
	sales := make([]model.AnnexSale, 0, len(records))
	for i, rec := range records {
		f := newFieldReader(FileAnnexSales, i+2, rec)
		a := model.AnnexSale{
			Label:         f.text("libelle"),
			Count:         f.int("nbr"),
			AmountExclTax: f.decimal("montantHT"),
			AmountInclTax: f.decimal("montantttc"),
		}
		if f.err != nil {
			return nil, f.err
		}
		sales = append(sales, a)
	}
	return sales, nil
}
