// Package extractor turns decoded DIRF and SPED ECF text into typed records.
// Lines that do not fit the expected layout are dropped without error; an
// empty result means "nothing to reconcile", not a failure.
package extractor

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"dirf-ecf-reconciliation/internal/domain"
)

// ErrUnknownFormat is returned when a caller asks for a format other than
// FormatDIRF or FormatECF.
var ErrUnknownFormat = errors.New("unknown source format")

// Format names a supported input layout.
type Format string

const (
	FormatDIRF Format = "dirf"
	FormatECF  Format = "ecf"
)

// ParseFormat validates a user supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatDIRF, FormatECF:
		return f, nil
	}
	return "", ErrUnknownFormat
}

// dirfLine matches: payer CNPJ, record type, payer name, delivery date
// (YYYYMMDD), income code, gross paid and withheld tax in cents.
// The numeric block is fixed width, so separators between its fields are
// optional.
var dirfLine = regexp.MustCompile(`^(\d{14})\s+(\d)\s+(.*?)\s{2,}(\d{8})\s*(\d{4})\s*(\d{15})\s*(\d{15})`)

const dirfDateLayout = "20060102"

// ParseDIRF extracts one WithholdingRecord per matching line. Components are
// left zero; see usecase.Allocate.
func ParseDIRF(text string) []domain.WithholdingRecord {
	var records []domain.WithholdingRecord
	for i, line := range splitLines(text) {
		record, ok := parseDIRFLine(line)
		if !ok {
			continue
		}
		record.Line = i + 1
		records = append(records, record)
	}
	return records
}

func parseDIRFLine(line string) (domain.WithholdingRecord, bool) {
	m := dirfLine.FindStringSubmatch(line)
	if m == nil {
		return domain.WithholdingRecord{}, false
	}

	date, err := time.Parse(dirfDateLayout, m[4])
	if err != nil {
		return domain.WithholdingRecord{}, false
	}
	code, err := strconv.Atoi(m[5])
	if err != nil {
		return domain.WithholdingRecord{}, false
	}
	gross, err := centsToDecimal(m[6])
	if err != nil {
		return domain.WithholdingRecord{}, false
	}
	withheld, err := centsToDecimal(m[7])
	if err != nil {
		return domain.WithholdingRecord{}, false
	}

	return domain.WithholdingRecord{
		PayerID:      m[1],
		RecordType:   m[2],
		PayerName:    strings.TrimSpace(m[3]),
		DeliveryDate: date,
		IncomeCode:   code,
		GrossAmount:  gross,
		Withheld:     withheld,
	}, true
}

// centsToDecimal reads an integer amount in minor units.
func centsToDecimal(digits string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(digits)
	if err != nil {
		return decimal.Zero, err
	}
	return v.Shift(-2), nil
}

// splitLines splits on \n, \r\n and lone \r.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
