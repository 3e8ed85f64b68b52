package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"dirf-ecf-reconciliation/internal/domain"
	"dirf-ecf-reconciliation/internal/logger"
)

// ErrNoExporter is returned by Export when the usecase was built without one.
var ErrNoExporter = errors.New("no report exporter configured")

// Options tunes a reconciliation run.
type Options struct {
	KeyPolicy KeyPolicy
	RunID     string
}

// ReconciliationUseCase orchestrates the reconciliation process.
type ReconciliationUseCase struct {
	repo     SourceRepository
	exporter ReportExporter
	opts     Options
}

// NewReconciliationUseCase creates a new instance of the usecase. exporter may
// be nil when no file output is wanted.
func NewReconciliationUseCase(repo SourceRepository, exporter ReportExporter, opts Options) *ReconciliationUseCase {
	return &ReconciliationUseCase{repo: repo, exporter: exporter, opts: opts}
}

// Reconcile loads both files and reconciles them.
func (uc *ReconciliationUseCase) Reconcile(ctx context.Context, dirfPath, ecfPath string) (*domain.ReconciliationReport, error) {
	log := logger.FromContext(ctx)

	// Step 1: Data Ingestion
	records, err := uc.repo.GetWithholdingRecords(ctx, dirfPath)
	if err != nil {
		return nil, fmt.Errorf("could not get DIRF records: %w", err)
	}
	if len(records) == 0 {
		log.Warn("No compatible records found in DIRF file", "path", dirfPath)
	}

	table, err := uc.repo.GetBookkeepingTable(ctx, ecfPath)
	if err != nil {
		return nil, fmt.Errorf("could not get ECF table: %w", err)
	}
	if table.Empty() {
		log.Warn("ECF file is empty or invalid", "path", ecfPath)
	}
	if len(table.Mismatches) > 0 {
		log.Warn("ECF rows with unexpected field count were not reconciled",
			"path", ecfPath, "rows", len(table.Mismatches), "first_line", table.Mismatches[0].Line)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Step 2: Allocation, aggregation and join
	report := Reconcile(records, table, uc.opts)

	log.Info("Reconciliation finished",
		"dirf_records", report.Summary.WithholdingRecords,
		"ecf_rows", report.Summary.BookkeepingRows,
		"taxpayers", len(report.Rows),
		"unknown_income_codes", report.Summary.UnknownIncomeRecords)
	return report, nil
}

// Export hands the report to the configured exporter.
func (uc *ReconciliationUseCase) Export(ctx context.Context, path string, report *domain.ReconciliationReport) error {
	if uc.exporter == nil {
		return ErrNoExporter
	}
	if err := uc.exporter.Export(ctx, path, report); err != nil {
		return fmt.Errorf("could not export report to %s: %w", path, err)
	}
	logger.FromContext(ctx).Info("Report exported", "path", path)
	return nil
}

// Reconcile is the pure core of a run: it derives tax components for the DIRF
// records, aggregates both sources per taxpayer and outer-joins them. Inputs
// are not modified. Rows are ordered by taxpayer identifier.
func Reconcile(records []domain.WithholdingRecord, table domain.BookkeepingTable, opts Options) *domain.ReconciliationReport {
	policy := opts.KeyPolicy
	if policy == "" {
		policy = KeyTrim
	}

	allocated := make([]domain.WithholdingRecord, len(records))
	copy(allocated, records)
	unknown := AllocateAll(allocated)

	y570 := Y570Rows(table)
	dirfAggs := AggregateWithholding(allocated, policy)
	ecfAggs := AggregateBookkeeping(y570, policy)

	rows, both := join(dirfAggs, ecfAggs)

	return &domain.ReconciliationReport{
		RunID: opts.RunID,
		Summary: domain.Summary{
			WithholdingRecords:   len(allocated),
			BookkeepingRows:      len(table.Rows),
			BookkeepingMismatch:  len(table.Mismatches),
			Y570Rows:             len(y570),
			TaxpayersDIRF:        len(dirfAggs),
			TaxpayersECF:         len(ecfAggs),
			TaxpayersBoth:        both,
			UnknownIncomeRecords: unknown,
		},
		Rows:        rows,
		Total:       Total(rows),
		Withholding: allocated,
		Bookkeeping: table,
	}
}

// join outer-joins the aggregates on taxpayer identifier and returns the rows
// plus the number of identifiers present on both sides.
func join(dirf []domain.WithholdingAggregate, ecf []domain.BookkeepingAggregate) ([]domain.ReconciledRow, int) {
	dirfByID := make(map[string]domain.WithholdingAggregate, len(dirf))
	ecfByID := make(map[string]domain.BookkeepingAggregate, len(ecf))
	var keys []string

	for _, a := range dirf {
		dirfByID[a.TaxpayerID] = a
		keys = append(keys, a.TaxpayerID)
	}
	for _, b := range ecf {
		ecfByID[b.TaxpayerID] = b
		if _, ok := dirfByID[b.TaxpayerID]; !ok {
			keys = append(keys, b.TaxpayerID)
		}
	}
	sort.Strings(keys)

	rows := make([]domain.ReconciledRow, 0, len(keys))
	both := 0
	for _, key := range keys {
		a, inDIRF := dirfByID[key]
		b, inECF := ecfByID[key]
		if inDIRF && inECF {
			both++
		}

		row := domain.ReconciledRow{
			TaxpayerID: key,
			GrossDIRF:  a.Gross,
			IncomeECF:  b.Income,
			CSDIRF:     a.CS,
			CSECF:      b.CS,
			IRDIRF:     a.IR,
			IRECF:      b.IR,
		}
		row.Name = resolveName(a.Name, b.Name)
		if inDIRF {
			year := a.DeliveryDate.Year() - 1
			date := a.DeliveryDate
			row.FiscalYear = &year
			row.DeliveryDate = &date
		}
		row.IRDiff = row.IRDIRF.Sub(row.IRECF)
		row.CSLLDiff = row.CSDIRF.Sub(row.CSECF)
		rows = append(rows, row)
	}
	return rows, both
}

// resolveName prefers the DIRF name and falls back to the ECF one.
func resolveName(dirfName, ecfName string) string {
	if dirfName != "" {
		return dirfName
	}
	return ecfName
}

// Total sums every numeric column of rows.
func Total(rows []domain.ReconciledRow) domain.TotalRow {
	t := domain.TotalRow{Label: domain.TotalLabel}
	for _, r := range rows {
		t.GrossDIRF = t.GrossDIRF.Add(r.GrossDIRF)
		t.IncomeECF = t.IncomeECF.Add(r.IncomeECF)
		t.CSDIRF = t.CSDIRF.Add(r.CSDIRF)
		t.CSECF = t.CSECF.Add(r.CSECF)
		t.IRDIRF = t.IRDIRF.Add(r.IRDIRF)
		t.IRECF = t.IRECF.Add(r.IRECF)
		t.IRDiff = t.IRDiff.Add(r.IRDiff)
		t.CSLLDiff = t.CSLLDiff.Add(r.CSLLDiff)
	}
	return t
}
