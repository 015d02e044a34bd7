// Package report projects a match report into the summary consumed by presentation layers.
package report

import (
	"github.com/shopspring/decimal"

	"payment-reconciliation/internal/domain"
)

// Summarize builds the display summary of r. It never modifies r; member slices hold copies of
// the report items in report order.
func Summarize(r *domain.MatchReport) domain.ReconciliationSummary {
	summary := domain.ReconciliationSummary{
		Matched:     emptyCategory(),
		Divergent:   emptyCategory(),
		Unmatched:   emptyCategory(),
		Divergences: []domain.DivergenceDetail{},
		Ties:        []domain.TieDetail{},
	}
	if r == nil {
		return summary
	}

	summary.TotalImported = len(r.Items)
	for _, item := range r.Items {
		switch item.Outcome.Kind {
		case domain.OutcomeMatched:
			addTo(&summary.Matched, item)
		case domain.OutcomeDivergent:
			addTo(&summary.Divergent, item)
			if div := item.Outcome.Divergence; div != nil {
				summary.Divergences = append(summary.Divergences, domain.DivergenceDetail{
					Row:          item.Record.Row,
					Account:      ledgerAccount(item.Outcome),
					Amount:       item.Record.Amount,
					Reason:       div.Reason,
					LedgerDate:   div.LedgerDate,
					ImportedDate: div.ImportedDate,
				})
			}
		default:
			addTo(&summary.Unmatched, item)
		}

		if item.Outcome.Candidates > 1 {
			summary.Ties = append(summary.Ties, domain.TieDetail{
				Row:        item.Record.Row,
				Kind:       item.Outcome.Kind,
				Candidates: item.Outcome.Candidates,
			})
		}
	}
	return summary
}

func emptyCategory() domain.CategorySummary {
	return domain.CategorySummary{Total: decimal.Zero, Members: []domain.MatchItem{}}
}

func addTo(c *domain.CategorySummary, item domain.MatchItem) {
	c.Count++
	c.Total = c.Total.Add(item.Record.Amount)
	c.Members = append(c.Members, item)
}

func ledgerAccount(o domain.MatchOutcome) string {
	if o.Ledger == nil {
		return ""
	}
	return o.Ledger.Account
}
