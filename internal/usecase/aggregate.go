package usecase

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"dirf-ecf-reconciliation/internal/domain"
)

// KeyPolicy decides how taxpayer identifiers are normalized before grouping
// and joining.
type KeyPolicy string

const (
	// KeyTrim only strips surrounding whitespace.
	KeyTrim KeyPolicy = "trim"
	// KeyDigits keeps digits only, so "12.345.678/0001-90" equals "12345678000190".
	KeyDigits KeyPolicy = "digits"
)

// ParseKeyPolicy validates a policy name. Empty means KeyTrim.
func ParseKeyPolicy(s string) (KeyPolicy, error) {
	switch p := KeyPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return KeyTrim, nil
	case KeyTrim, KeyDigits:
		return p, nil
	default:
		return "", fmt.Errorf("unsupported key policy %q", s)
	}
}

// Normalize applies the policy to a raw identifier.
func (p KeyPolicy) Normalize(id string) string {
	id = strings.TrimSpace(id)
	if p != KeyDigits {
		return id
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, id)
}

// ECF Y570 field positions after splitting on '|'.
const (
	ecfTagField    = 1
	ecfIDField     = 2
	ecfNameField   = 3
	ecfIncomeField = 6
	ecfIRField     = 7
	ecfCSField     = 8
)

// groupInOrder buckets items by key and returns the keys in order of first
// appearance.
func groupInOrder[T any](items []T, key func(T) string) ([]string, map[string][]T) {
	var order []string
	groups := make(map[string][]T)
	for _, item := range items {
		k := key(item)
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], item)
	}
	return order, groups
}

// AggregateWithholding sums DIRF records per payer. Name and delivery date
// come from the first record of each payer; output follows first appearance.
func AggregateWithholding(records []domain.WithholdingRecord, policy KeyPolicy) []domain.WithholdingAggregate {
	order, groups := groupInOrder(records, func(r domain.WithholdingRecord) string {
		return policy.Normalize(r.PayerID)
	})

	out := make([]domain.WithholdingAggregate, 0, len(order))
	for _, key := range order {
		group := groups[key]
		agg := domain.WithholdingAggregate{
			TaxpayerID:   key,
			Name:         group[0].PayerName,
			DeliveryDate: group[0].DeliveryDate,
		}
		for _, r := range group {
			agg.Gross = agg.Gross.Add(r.GrossAmount)
			agg.IR = agg.IR.Add(r.Components.IR)
			agg.CS = agg.CS.Add(r.Components.CS)
		}
		out = append(out, agg)
	}
	return out
}

// Y570Rows returns the table rows tagged Y570.
func Y570Rows(table domain.BookkeepingTable) []domain.BookkeepingRow {
	var rows []domain.BookkeepingRow
	for _, row := range table.Rows {
		if row.Field(ecfTagField) == domain.EntryTagY570 {
			rows = append(rows, row)
		}
	}
	return rows
}

// AggregateBookkeeping sums the Y570 rows per payer. Amounts that are missing
// or unparseable count as zero.
func AggregateBookkeeping(rows []domain.BookkeepingRow, policy KeyPolicy) []domain.BookkeepingAggregate {
	order, groups := groupInOrder(rows, func(r domain.BookkeepingRow) string {
		return policy.Normalize(r.Field(ecfIDField))
	})

	out := make([]domain.BookkeepingAggregate, 0, len(order))
	for _, key := range order {
		group := groups[key]
		agg := domain.BookkeepingAggregate{
			TaxpayerID: key,
			Name:       group[0].Field(ecfNameField),
		}
		for _, r := range group {
			agg.Income = agg.Income.Add(ParseECFAmount(r.Field(ecfIncomeField)))
			agg.IR = agg.IR.Add(ParseECFAmount(r.Field(ecfIRField)))
			agg.CS = agg.CS.Add(ParseECFAmount(r.Field(ecfCSField)))
		}
		out = append(out, agg)
	}
	return out
}

// ParseECFAmount reads a decimal written with ',' as separator. Anything that
// does not parse is treated as zero.
func ParseECFAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(strings.Replace(s, ",", ".", 1))
	if s == "" {
		return decimal.Zero
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return v
}
