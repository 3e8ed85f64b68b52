package gateway

import (
	"context"
	"fmt"
	"os"

	"dirf-ecf-reconciliation/internal/domain"
	"dirf-ecf-reconciliation/internal/extractor"
)

// FileSourceRepository implements the SourceRepository interface for DIRF and
// SPED ECF text files on disk.
type FileSourceRepository struct {
	raggedPolicy extractor.RaggedRowPolicy
}

// NewFileSourceRepository creates a new repository instance.
func NewFileSourceRepository(raggedPolicy extractor.RaggedRowPolicy) *FileSourceRepository {
	return &FileSourceRepository{raggedPolicy: raggedPolicy}
}

// GetWithholdingRecords reads a DIRF file, always decoded as latin-1.
func (r *FileSourceRepository) GetWithholdingRecords(ctx context.Context, path string) ([]domain.WithholdingRecord, error) {
	data, err := readFile(ctx, path)
	if err != nil {
		return nil, err
	}
	text, err := extractor.DecodeLatin1(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode DIRF file %s: %w", path, err)
	}
	return extractor.ParseDIRF(text), nil
}

// GetBookkeepingTable reads a SPED ECF file, as UTF-8 when valid and latin-1
// otherwise.
func (r *FileSourceRepository) GetBookkeepingTable(ctx context.Context, path string) (domain.BookkeepingTable, error) {
	data, err := readFile(ctx, path)
	if err != nil {
		return domain.BookkeepingTable{}, err
	}
	text, err := extractor.DecodeUTF8OrLatin1(data)
	if err != nil {
		return domain.BookkeepingTable{}, fmt.Errorf("failed to decode ECF file %s: %w", path, err)
	}
	return extractor.ParseECF(text, r.raggedPolicy), nil
}

func readFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	return data, nil
}
