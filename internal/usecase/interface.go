package usecase

import (
	"context"

	"payment-reconciliation/internal/domain"
)

// LedgerExportReader reads the collections text export as decoded text.
type LedgerExportReader interface {
	ReadLedgerExport(ctx context.Context, path string) (string, error)
}

// UploadReader reads an uploaded payment sheet into rows of cells, header row first.
type UploadReader interface {
	ReadRows(ctx context.Context, path string) ([]domain.Row, error)
}

// LedgerRepository defines the interface for fetching the ledger extract.
// The usecase layer depends on these interfaces, not on a concrete implementation.
//
//go:generate mockgen -destination=mocks/mock_repository.go -source=interface.go
type LedgerRepository interface {
	GetLedgerMovements(ctx context.Context, period domain.Period) ([]domain.LedgerMovement, error)
}
