package gateway

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"dirf-ecf-reconciliation/internal/domain"
)

// Sheet names of the exported workbook.
const (
	SheetConsolidated = "Consolidado"
	SheetDIRF         = "DIRF"
	SheetECF          = "ECF"
)

// sheet is a rendered table. Cell values are string, int, time.Time,
// decimal.Decimal or nil for an absent value.
type sheet struct {
	name   string
	header []string
	rows   [][]any
	// moneyFrom is the first column holding currency, -1 for none.
	moneyFrom int
	dateCols  []int
}

var consolidatedHeader = []string{
	"Ano",
	"CNPJ/CPF",
	"NOME EMPRESARIAL",
	"DATA DIRF",
	"RENDIMENTO DIRF",
	"RENDIMENTO ECF",
	"CS DIRF(1,00)",
	"CS ECF(1,00)",
	"IR DIRF(1,20 / 1,50 / 4,80)",
	"IR ECF (1,20 / 1,50 / 4,80)",
	"DIF. IR",
	"DIF. CSLL",
}

var dirfHeader = []string{
	"CNPJ Fonte",
	"Tipo",
	"Nome da Fonte Pagadora",
	"Data Entrega",
	"Código Rendimento",
	"Valor Pago (R$)",
	"IRRF Retido (R$)",
	"PIS (0,65)",
	"COFINS (3,00)",
	"CS (1,00)",
	"IR (1,20 / 1,50 / 4,80)",
	"VERIFICACAO",
}

// consolidatedSheet lists the reconciled rows; the total row is appended when
// withTotal is set.
func consolidatedSheet(report *domain.ReconciliationReport, withTotal bool) sheet {
	s := sheet{name: SheetConsolidated, header: consolidatedHeader, moneyFrom: 4, dateCols: []int{3}}
	for _, r := range report.Rows {
		var year, date any
		if r.FiscalYear != nil {
			year = *r.FiscalYear
		}
		if r.DeliveryDate != nil {
			date = *r.DeliveryDate
		}
		s.rows = append(s.rows, []any{
			year, r.TaxpayerID, r.Name, date,
			r.GrossDIRF, r.IncomeECF, r.CSDIRF, r.CSECF, r.IRDIRF, r.IRECF, r.IRDiff, r.CSLLDiff,
		})
	}
	if withTotal {
		s.rows = append(s.rows, totalCells(report.Total))
	}
	return s
}

// totalSheet renders the grand total as a single-row table.
func totalSheet(total domain.TotalRow) sheet {
	return sheet{name: "Total Geral", header: consolidatedHeader, moneyFrom: 4, rows: [][]any{totalCells(total)}}
}

func totalCells(t domain.TotalRow) []any {
	return []any{
		nil, t.Label, nil, nil,
		t.GrossDIRF, t.IncomeECF, t.CSDIRF, t.CSECF, t.IRDIRF, t.IRECF, t.IRDiff, t.CSLLDiff,
	}
}

func dirfSheet(records []domain.WithholdingRecord) sheet {
	s := sheet{name: SheetDIRF, header: dirfHeader, moneyFrom: 5, dateCols: []int{3}}
	for _, r := range records {
		c := r.Components
		s.rows = append(s.rows, []any{
			r.PayerID, r.RecordType, r.PayerName, r.DeliveryDate, r.IncomeCode,
			r.GrossAmount, r.Withheld, c.PIS, c.COFINS, c.CS, c.IR, c.Verification,
		})
	}
	return s
}

func ecfSheet(table domain.BookkeepingTable) sheet {
	s := sheet{name: SheetECF, header: table.Columns, moneyFrom: -1}
	for _, r := range table.Rows {
		cells := make([]any, len(r.Fields))
		for i, f := range r.Fields {
			cells[i] = f
		}
		s.rows = append(s.rows, cells)
	}
	return s
}

// textCell renders a cell for on-screen output.
func textCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case time.Time:
		return x.Format(time.DateOnly)
	case decimal.Decimal:
		return x.StringFixed(2)
	default:
		return ""
	}
}
