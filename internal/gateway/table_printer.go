package gateway

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"dirf-ecf-reconciliation/internal/domain"
)

// OutputFormat selects how reports are printed.
type OutputFormat string

const (
	OutputTable OutputFormat = "table"
	OutputJSON  OutputFormat = "json"
)

// ParseOutputFormat validates a format name. Empty means OutputTable.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return OutputTable, nil
	case OutputTable, OutputJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format %q", s)
	}
}

// Messages shown instead of an empty table.
const (
	EmptyDIRFMessage = "No compatible records found in the DIRF file."
	EmptyECFMessage  = "The SPED ECF file is empty or invalid."
)

// Printer renders reports for on-screen inspection.
type Printer struct {
	w      io.Writer
	format OutputFormat
}

// NewPrinter creates a printer writing to w.
func NewPrinter(w io.Writer, format OutputFormat) *Printer {
	return &Printer{w: w, format: format}
}

// PrintReport writes the consolidated table followed by the grand total.
func (p *Printer) PrintReport(report *domain.ReconciliationReport) error {
	if p.format == OutputJSON {
		return p.printJSON(report)
	}

	if len(report.Withholding) == 0 {
		fmt.Fprintln(p.w, EmptyDIRFMessage)
	}
	if report.Bookkeeping.Empty() {
		fmt.Fprintln(p.w, EmptyECFMessage)
	}
	if n := report.Summary.BookkeepingMismatch; n > 0 {
		fmt.Fprintf(p.w, "%d ECF row(s) had an unexpected field count and were not reconciled.\n", n)
	}

	fmt.Fprintln(p.w, "Consolidação por CNPJ/CPF")
	if err := p.printSheet(consolidatedSheet(report, false)); err != nil {
		return err
	}
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, "Total Geral")
	return p.printSheet(totalSheet(report.Total))
}

// PrintWithholding writes the parsed DIRF records.
func (p *Printer) PrintWithholding(records []domain.WithholdingRecord) error {
	if p.format == OutputJSON {
		return p.printJSON(records)
	}
	if len(records) == 0 {
		_, err := fmt.Fprintln(p.w, EmptyDIRFMessage)
		return err
	}
	return p.printSheet(dirfSheet(records))
}

// PrintBookkeeping writes the parsed ECF table.
func (p *Printer) PrintBookkeeping(table domain.BookkeepingTable) error {
	if p.format == OutputJSON {
		return p.printJSON(table)
	}
	if table.Empty() {
		_, err := fmt.Fprintln(p.w, EmptyECFMessage)
		return err
	}
	return p.printSheet(ecfSheet(table))
}

func (p *Printer) printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to generate JSON output: %w", err)
	}
	_, err = fmt.Fprintln(p.w, string(output))
	return err
}

func (p *Printer) printSheet(s sheet) error {
	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(s.header, "\t"))
	for _, row := range s.rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = textCell(v)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}
