package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// ErrMalformed is returned when a file or a value cannot be read.
var ErrMalformed = errors.New("malformed report file")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeText returns raw as UTF-8. Files are tried as UTF-8 with and without
// a byte order mark, then as latin-1 which accepts any byte sequence.
func decodeText(raw []byte) (string, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("%w: decode latin-1: %v", ErrMalformed, err)
	}
	return string(decoded), nil
}

// record is one CSV data line keyed by its header.
type record map[string]string

func (r record) text(column string) string {
	return strings.TrimSpace(r[column])
}

// readRecords reads a semicolon separated file with a header line.
// An empty file yields no records.
func readRecords(name string, raw []byte) ([]record, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	text, err := decodeText(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: read header: %v", ErrMalformed, name, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var records []record
	for line := 2; ; line++ {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: line %d: %v", ErrMalformed, name, line, err)
		}
		if blank(fields) {
			continue
		}
		rec := make(record, len(header))
		for i, column := range header {
			if i < len(fields) {
				rec[column] = fields[i]
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func blank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
