package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TotalLabel is placed in the identifier column of the grand-total row.
const TotalLabel = "TOTAL GERAL"

// WithholdingAggregate sums the DIRF records of a single payer.
type WithholdingAggregate struct {
	TaxpayerID   string          `json:"taxpayer_id"`
	Name         string          `json:"name"`
	DeliveryDate time.Time       `json:"delivery_date"`
	Gross        decimal.Decimal `json:"gross"`
	IR           decimal.Decimal `json:"ir"`
	CS           decimal.Decimal `json:"cs"`
}

// BookkeepingAggregate sums the Y570 rows of a single payer.
type BookkeepingAggregate struct {
	TaxpayerID string          `json:"taxpayer_id"`
	Name       string          `json:"name"`
	Income     decimal.Decimal `json:"income"`
	IR         decimal.Decimal `json:"ir"`
	CS         decimal.Decimal `json:"cs"`
}

// ReconciledRow is one line of the consolidated table.
// FiscalYear and DeliveryDate are nil when the payer has no DIRF records.
type ReconciledRow struct {
	FiscalYear   *int            `json:"fiscal_year,omitempty"`
	TaxpayerID   string          `json:"taxpayer_id"`
	Name         string          `json:"name"`
	DeliveryDate *time.Time      `json:"delivery_date,omitempty"`
	GrossDIRF    decimal.Decimal `json:"gross_dirf"`
	IncomeECF    decimal.Decimal `json:"income_ecf"`
	CSDIRF       decimal.Decimal `json:"cs_dirf"`
	CSECF        decimal.Decimal `json:"cs_ecf"`
	IRDIRF       decimal.Decimal `json:"ir_dirf"`
	IRECF        decimal.Decimal `json:"ir_ecf"`
	IRDiff       decimal.Decimal `json:"ir_diff"`
	CSLLDiff     decimal.Decimal `json:"csll_diff"`
}

// TotalRow sums every numeric column of the consolidated table.
type TotalRow struct {
	Label     string          `json:"label"`
	GrossDIRF decimal.Decimal `json:"gross_dirf"`
	IncomeECF decimal.Decimal `json:"income_ecf"`
	CSDIRF    decimal.Decimal `json:"cs_dirf"`
	CSECF     decimal.Decimal `json:"cs_ecf"`
	IRDIRF    decimal.Decimal `json:"ir_dirf"`
	IRECF     decimal.Decimal `json:"ir_ecf"`
	IRDiff    decimal.Decimal `json:"ir_diff"`
	CSLLDiff  decimal.Decimal `json:"csll_diff"`
}

// Summary provides high-level statistics of the reconciliation process.
type Summary struct {
	WithholdingRecords   int `json:"withholding_records"`
	BookkeepingRows      int `json:"bookkeeping_rows"`
	BookkeepingMismatch  int `json:"bookkeeping_mismatched_rows"`
	Y570Rows             int `json:"y570_rows"`
	TaxpayersDIRF        int `json:"taxpayers_dirf"`
	TaxpayersECF         int `json:"taxpayers_ecf"`
	TaxpayersBoth        int `json:"taxpayers_both"`
	UnknownIncomeRecords int `json:"unknown_income_code_records"`
}

// ReconciliationReport is the output of one run.
type ReconciliationReport struct {
	RunID       string              `json:"run_id,omitempty"`
	Summary     Summary             `json:"summary"`
	Rows        []ReconciledRow     `json:"rows"`
	Total       TotalRow            `json:"total"`
	Withholding []WithholdingRecord `json:"dirf"`
	Bookkeeping BookkeepingTable    `json:"ecf"`
}
