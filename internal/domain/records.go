package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Components holds the tax breakdown derived from a withheld amount.
type Components struct {
	PIS    decimal.Decimal `json:"pis"`
	COFINS decimal.Decimal `json:"cofins"`
	CS     decimal.Decimal `json:"cs"`
	IR     decimal.Decimal `json:"ir"`
	// Verification is withheld - (PIS+COFINS+CS+IR). It is the full withheld
	// amount for income codes outside the rule table.
	Verification decimal.Decimal `json:"verification"`
}

// WithholdingRecord represents one DIRF line.
type WithholdingRecord struct {
	PayerID      string          `json:"payer_id"`
	RecordType   string          `json:"record_type"`
	PayerName    string          `json:"payer_name"`
	DeliveryDate time.Time       `json:"delivery_date"`
	IncomeCode   int             `json:"income_code"`
	GrossAmount  decimal.Decimal `json:"gross_amount"`
	Withheld     decimal.Decimal `json:"withheld"`
	Line         int             `json:"line"`

	Components Components `json:"components"`
}

// EntryTagY570 marks the ECF rows that carry income and withheld tax per payer.
const EntryTagY570 = "Y570"

// BookkeepingRow is one pipe-delimited ECF line.
type BookkeepingRow struct {
	Fields []string `json:"fields"`
	Line   int      `json:"line"` // 1-based line in the source text
}

// Field returns the i-th field or "" when the row is shorter.
func (r BookkeepingRow) Field(i int) string {
	if i < 0 || i >= len(r.Fields) {
		return ""
	}
	return r.Fields[i]
}

// BookkeepingTable is the parsed ECF file.
type BookkeepingTable struct {
	Columns []string         `json:"columns"`
	Rows    []BookkeepingRow `json:"rows"`
	// Mismatches lists rows whose width differs from the first row and that
	// were left out of Rows.
	Mismatches []BookkeepingRow `json:"mismatches,omitempty"`
}

// Empty reports whether no rows were extracted.
func (t BookkeepingTable) Empty() bool {
	return len(t.Rows) == 0
}
