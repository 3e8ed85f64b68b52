package gateway

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"dirf-ecf-reconciliation/internal/domain"
)

func sampleReport() *domain.ReconciliationReport {
	year := 2022
	date := time.Date(2023, 4, 15, 0, 0, 0, 0, time.UTC)
	d := decimal.RequireFromString

	rows := []domain.ReconciledRow{
		{
			FiscalYear: &year, TaxpayerID: "12345678901234", Name: "ACME PAGADORA", DeliveryDate: &date,
			GrossDIRF: d("100000.00"), IncomeECF: d("100000.00"), CSDIRF: d("107.53"), CSECF: d("100.00"),
			IRDIRF: d("0"), IRECF: d("0"), IRDiff: d("0"), CSLLDiff: d("7.53"),
		},
		{
			TaxpayerID: "98765432000199", Name: "SO ECF",
			IncomeECF: d("50.00"), IRECF: d("0.75"), IRDiff: d("-0.75"),
		},
	}
	return &domain.ReconciliationReport{
		RunID: "test",
		Rows:  rows,
		Total: domain.TotalRow{
			Label: domain.TotalLabel, GrossDIRF: d("100000.00"), IncomeECF: d("100050.00"),
			CSDIRF: d("107.53"), CSECF: d("100.00"), IRECF: d("0.75"), IRDiff: d("-0.75"), CSLLDiff: d("7.53"),
		},
		Withholding: []domain.WithholdingRecord{{
			PayerID: "12345678901234", RecordType: "1", PayerName: "ACME PAGADORA", DeliveryDate: date,
			IncomeCode: 4085, GrossAmount: d("100000.00"), Withheld: d("500.00"),
			Components: domain.Components{PIS: d("69.89"), COFINS: d("322.58"), CS: d("107.53"), Verification: d("0")},
		}},
		Bookkeeping: domain.BookkeepingTable{
			Columns: []string{"col_0", "col_1", "col_2"},
			Rows:    []domain.BookkeepingRow{{Fields: []string{"", "Y570", "98765432000199"}, Line: 1}},
		},
	}
}

func TestXLSXExporter_Write(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewXLSXExporter().Write(&buf, sampleReport()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetConsolidated, SheetDIRF, SheetECF}, f.GetSheetList())

	t.Run("consolidated sheet", func(t *testing.T) {
		rows, err := f.GetRows(SheetConsolidated, excelize.Options{RawCellValue: true})
		require.NoError(t, err)
		require.Len(t, rows, 4, "header, two rows and the total")

		assert.Equal(t, consolidatedHeader, rows[0])
		assert.Equal(t, "2022", rows[1][0])
		assert.Equal(t, "12345678901234", rows[1][1])
		assert.Equal(t, "ACME PAGADORA", rows[1][2])
		assert.Equal(t, "100000", rows[1][4])
		assert.Equal(t, "7.53", rows[1][11])

		assert.Equal(t, "", rows[2][0], "no year without DIRF data")
		assert.Equal(t, "SO ECF", rows[2][2])
		assert.Equal(t, "-0.75", rows[2][10])

		assert.Equal(t, domain.TotalLabel, rows[3][1])
		assert.Equal(t, "100050", rows[3][5])
	})

	t.Run("DIRF sheet", func(t *testing.T) {
		rows, err := f.GetRows(SheetDIRF, excelize.Options{RawCellValue: true})
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, dirfHeader, rows[0])
		assert.Equal(t, "4085", rows[1][4])
		assert.Equal(t, "69.89", rows[1][7])
	})

	t.Run("ECF sheet", func(t *testing.T) {
		rows, err := f.GetRows(SheetECF)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, []string{"col_0", "col_1", "col_2"}, rows[0])
		assert.Equal(t, []string{"", "Y570", "98765432000199"}, rows[1])
	})
}

func TestXLSXExporter_Export(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analise_dirf_ecf.xlsx")
	require.NoError(t, NewXLSXExporter().Export(context.Background(), path, sampleReport()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Len(t, f.GetSheetList(), 3)
}

func TestXLSXExporter_EmptyReport(t *testing.T) {
	var buf bytes.Buffer
	report := &domain.ReconciliationReport{Total: domain.TotalRow{Label: domain.TotalLabel}}
	require.NoError(t, NewXLSXExporter().Write(&buf, report))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetConsolidated)
	require.NoError(t, err)
	require.Len(t, rows, 2, "header and total")
	assert.Equal(t, domain.TotalLabel, rows[1][1])
}

func TestXLSXExporter_BadPath(t *testing.T) {
	err := NewXLSXExporter().Export(context.Background(), filepath.Join(t.TempDir(), "missing", "out.xlsx"), sampleReport())
	assert.Error(t, err)
}

func TestXLSXExporter_FailedExportRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analise_dirf_ecf.xlsx")
	report := sampleReport()
	// One column past the last one a worksheet can hold.
	report.Bookkeeping = domain.BookkeepingTable{
		Columns: make([]string, excelize.MaxColumns+1),
	}

	err := NewXLSXExporter().Export(context.Background(), path, report)
	require.Error(t, err)
	assert.NoFileExists(t, path)
}
