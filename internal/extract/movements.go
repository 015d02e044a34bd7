package extract

import (
	"strings"

	"payment-reconciliation/internal/domain"
	"payment-reconciliation/internal/normalize"
)

// LedgerEntriesFromMovements normalizes the records of the ledger extract. Only the date portion
// of the movement timestamp is kept. Nothing is filtered: every movement yields one entry, in order.
func LedgerEntriesFromMovements(movements []domain.LedgerMovement) []domain.LedgerEntry {
	entries := make([]domain.LedgerEntry, 0, len(movements))
	for _, m := range movements {
		amount := normalize.ParseMonetaryAmount(m.Amount)
		settlement := normalize.ParseLocalDate(m.SettlementDate)
		entries = append(entries, domain.LedgerEntry{
			Account:        strings.TrimSpace(m.Account),
			MovementDate:   normalize.ParseLocalDate(m.MovementTime),
			SettlementDate: settlement,
			Description:    strings.TrimSpace(m.Description),
			Operation:      ParseOperation(m.OperationCode, amount.IsNegative()),
			Amount:         amount.Abs(),
			Status:         domain.StatusFor(settlement),
		})
	}
	return entries
}

// ParseOperation maps an operation-type code such as "D", "DEB", "C" or "CREDITO" to an operation.
// Unknown codes fall back to the sign of the amount.
func ParseOperation(code string, negative bool) domain.OperationType {
	c := strings.ToUpper(strings.TrimSpace(code))
	switch {
	case c == "D" || strings.HasPrefix(c, "DEB"):
		return domain.OperationDebit
	case c == "C" || strings.HasPrefix(c, "CRED"):
		return domain.OperationCredit
	case negative:
		return domain.OperationDebit
	default:
		return domain.OperationCredit
	}
}
