package parser

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseDecimal reads a number written with a comma or a dot as decimal
// separator and spaces as thousands separator. Empty input is null.
func ParseDecimal(raw string) (decimal.NullDecimal, error) {
	s := normalizeNumber(raw)
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("%w: invalid number %q", ErrMalformed, raw)
	}
	return decimal.NewNullDecimal(d), nil
}

// ParseInt reads a count. Fractional values are truncated toward zero.
func ParseInt(raw string) (*int64, error) {
	d, err := ParseDecimal(raw)
	if err != nil || !d.Valid {
		return nil, err
	}
	n := d.Decimal.IntPart()
	return &n, nil
}

func normalizeNumber(raw string) string {
	s := strings.TrimSpace(raw)
	return strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "", ",", ".").Replace(s)
}

// fieldReader collects the first conversion error of a record so parsers can
// read every column and check once.
type fieldReader struct {
	file string
	line int
	rec  record
	err  error
}

func newFieldReader(file string, line int, rec record) *fieldReader {
	return &fieldReader{file: file, line: line, rec: rec}
}

func (f *fieldReader) decimal(column string) decimal.NullDecimal {
	d, err := ParseDecimal(f.rec[column])
	f.fail(column, err)
	return d
}

func (f *fieldReader) int(column string) *int64 {
	n, err := ParseInt(f.rec[column])
	f.fail(column, err)
	return n
}

func (f *fieldReader) text(column string) string {
	return f.rec.text(column)
}

func (f *fieldReader) fail(column string, err error) {
	if err != nil && f.err == nil {
		f.err = fmt.Errorf("%s: line %d: column %s: %w", f.file, f.line, column, err)
	}
}
