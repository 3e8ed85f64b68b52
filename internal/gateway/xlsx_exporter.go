package gateway

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"dirf-ecf-reconciliation/internal/domain"
)

const (
	moneyNumFmt = 4 // #,##0.00
	dateFormat  = "dd/mm/yyyy"
	colWidth    = 18
)

// XLSXExporter writes a report as a workbook with the Consolidado, DIRF and
// ECF sheets. The grand total is the last row of Consolidado.
type XLSXExporter struct{}

// NewXLSXExporter creates a new exporter instance.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// Export implements usecase.ReportExporter. A failed export leaves no file
// behind at path.
func (e *XLSXExporter) Export(ctx context.Context, path string, report *domain.ReconciliationReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := e.Write(out, report); err != nil {
		out.Close()
		os.Remove(path)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

// Write streams the workbook to w.
func (e *XLSXExporter) Write(w io.Writer, report *domain.ReconciliationReport) error {
	f := excelize.NewFile()
	defer f.Close()

	sheets := []sheet{
		consolidatedSheet(report, true),
		dirfSheet(report.Withholding),
		ecfSheet(report.Bookkeeping),
	}

	// A new workbook starts with a single default sheet; reuse it for the first.
	if err := f.SetSheetName(f.GetSheetName(0), sheets[0].name); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	for _, s := range sheets[1:] {
		if _, err := f.NewSheet(s.name); err != nil {
			return fmt.Errorf("failed to add sheet %s: %w", s.name, err)
		}
	}

	styles, err := newStyles(f)
	if err != nil {
		return err
	}
	for _, s := range sheets {
		if err := writeSheet(f, s, styles); err != nil {
			return fmt.Errorf("failed to write sheet %s: %w", s.name, err)
		}
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}
	return nil
}

type sheetStyles struct {
	header, money, date int
}

func newStyles(f *excelize.File) (sheetStyles, error) {
	var s sheetStyles
	var err error

	if s.header, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return s, fmt.Errorf("failed to create header style: %w", err)
	}
	if s.money, err = f.NewStyle(&excelize.Style{NumFmt: moneyNumFmt}); err != nil {
		return s, fmt.Errorf("failed to create money style: %w", err)
	}
	customDate := dateFormat
	if s.date, err = f.NewStyle(&excelize.Style{CustomNumFmt: &customDate}); err != nil {
		return s, fmt.Errorf("failed to create date style: %w", err)
	}
	return s, nil
}

func writeSheet(f *excelize.File, s sheet, styles sheetStyles) error {
	for i, title := range s.header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(s.name, cell, title); err != nil {
			return err
		}
	}
	if len(s.header) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(s.header), 1)
		if err := f.SetCellStyle(s.name, "A1", last, styles.header); err != nil {
			return err
		}
	}

	isDate := make(map[int]bool, len(s.dateCols))
	for _, c := range s.dateCols {
		isDate[c] = true
	}

	for r, row := range s.rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(s.name, cell, xlsxValue(v)); err != nil {
				return err
			}

			style := 0
			switch {
			case isDate[c]:
				style = styles.date
			case s.moneyFrom >= 0 && c >= s.moneyFrom:
				if _, ok := v.(decimal.Decimal); ok {
					style = styles.money
				}
			}
			if style != 0 {
				if err := f.SetCellStyle(s.name, cell, cell, style); err != nil {
					return err
				}
			}
		}
	}

	for i := range s.header {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(s.name, col, col, colWidth); err != nil {
			return err
		}
	}
	return nil
}

// xlsxValue converts a sheet cell into a value excelize stores natively.
func xlsxValue(v any) any {
	switch x := v.(type) {
	case nil:
		return ""
	case decimal.Decimal:
		return x.InexactFloat64()
	default:
		return x
	}
}
