package usecase

import (
	"context"

	"dirf-ecf-reconciliation/internal/domain"
)

// SourceRepository loads the two input files.
// The usecase layer depends on this interface, not on a concrete implementation.
//
//go:generate mockgen -destination=mocks/mock_repository.go -source=interface.go
type SourceRepository interface {
	GetWithholdingRecords(ctx context.Context, path string) ([]domain.WithholdingRecord, error)
	GetBookkeepingTable(ctx context.Context, path string) (domain.BookkeepingTable, error)
}

// ReportExporter writes a finished report somewhere, e.g. a spreadsheet.
type ReportExporter interface {
	Export(ctx context.Context, path string, report *domain.ReconciliationReport) error
}
