package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"payment-reconciliation/internal/domain"
	"payment-reconciliation/internal/normalize"
)

// JSONLedgerRepository serves the ledger extract from a JSON array of movements.
type JSONLedgerRepository struct {
	path string
}

// NewJSONLedgerRepository creates a repository reading the given file.
func NewJSONLedgerRepository(path string) *JSONLedgerRepository {
	return &JSONLedgerRepository{path: path}
}

// GetLedgerMovements returns the movements of the period in file order.
func (r *JSONLedgerRepository) GetLedgerMovements(ctx context.Context, period domain.Period) ([]domain.LedgerMovement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger extract %s: %w", r.path, err)
	}

	var movements []domain.LedgerMovement
	if err := json.Unmarshal(data, &movements); err != nil {
		return nil, fmt.Errorf("failed to decode ledger extract %s: %w", r.path, err)
	}

	if period.IsUnbounded() {
		return movements, nil
	}
	filtered := movements[:0]
	for _, m := range movements {
		if period.Contains(normalize.ParseLocalDate(m.MovementTime)) {
			filtered = append(filtered, m)
		}
	}
	return filtered, nil
}
