// Package matcher pairs imported payment records with ledger entries.
//
// For every imported record the ledger is scanned twice, in the order supplied by the caller:
//  1. exact: amount within tolerance and the same calendar date -> Matched
//  2. relaxed: amount within tolerance only -> Divergent (DateMismatch)
//
// Records that satisfy neither pass are Unmatched. The first qualifying entry wins and ledger
// entries are never consumed, so one entry may back several imported records.
package matcher

import (
	"payment-reconciliation/internal/domain"
	"payment-reconciliation/internal/normalize"
	"payment-reconciliation/internal/observe"
)

// Option tunes a Match call.
type Option func(*Matcher)

// WithObserver reports every decision to o.
func WithObserver(o observe.Observer) Option {
	return func(m *Matcher) { m.observer = observe.OrNop(o) }
}

// Matcher holds the configuration of a reconciliation run. It keeps no state between runs.
type Matcher struct {
	observer observe.Observer
}

// New creates a Matcher.
func New(opts ...Option) *Matcher {
	m := &Matcher{observer: observe.Nop{}}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Match is a shorthand for New(opts...).Match(imported, ledger).
func Match(imported []domain.ImportedPaymentRecord, ledger []domain.LedgerEntry, opts ...Option) (*domain.MatchReport, error) {
	return New(opts...).Match(imported, ledger)
}

// Match pairs each imported record with at most one ledger entry. It returns domain.ErrEmptyLedger
// without looking at the imported records when ledger is empty. Neither slice is modified, and the
// outcomes point into ledger.
func (m *Matcher) Match(imported []domain.ImportedPaymentRecord, ledger []domain.LedgerEntry) (*domain.MatchReport, error) {
	if len(ledger) == 0 {
		return nil, domain.ErrEmptyLedger
	}

	report := &domain.MatchReport{Items: make([]domain.MatchItem, 0, len(imported))}
	for i, rec := range imported {
		outcome := decide(rec, ledger)
		switch outcome.Kind {
		case domain.OutcomeMatched:
			report.Counts.Matched++
		case domain.OutcomeDivergent:
			report.Counts.Divergent++
		default:
			report.Counts.Unmatched++
		}
		report.Items = append(report.Items, domain.MatchItem{Record: rec, Outcome: outcome})
		m.observer.MatchDecided(i, outcome)
	}
	return report, nil
}

// criterion decides whether a ledger entry qualifies for a record in one pass.
type criterion func(rec domain.ImportedPaymentRecord, entry domain.LedgerEntry) bool

func sameAmount(rec domain.ImportedPaymentRecord, entry domain.LedgerEntry) bool {
	return normalize.AmountsEqual(entry.Amount, rec.Amount.Abs())
}

func sameAmountAndDate(rec domain.ImportedPaymentRecord, entry domain.LedgerEntry) bool {
	return sameAmount(rec, entry) && entry.MovementDate.SameDay(rec.Date)
}

// scan returns the index of the first qualifying entry and how many entries qualify.
func scan(rec domain.ImportedPaymentRecord, ledger []domain.LedgerEntry, qualifies criterion) (first, count int) {
	first = -1
	for i := range ledger {
		if !qualifies(rec, ledger[i]) {
			continue
		}
		if first < 0 {
			first = i
		}
		count++
	}
	return first, count
}

func decide(rec domain.ImportedPaymentRecord, ledger []domain.LedgerEntry) domain.MatchOutcome {
	if idx, n := scan(rec, ledger, sameAmountAndDate); idx >= 0 {
		return domain.MatchOutcome{
			Kind:        domain.OutcomeMatched,
			Ledger:      &ledger[idx],
			LedgerIndex: idx,
			Candidates:  n,
		}
	}

	if idx, n := scan(rec, ledger, sameAmount); idx >= 0 {
		return domain.MatchOutcome{
			Kind:        domain.OutcomeDivergent,
			Ledger:      &ledger[idx],
			LedgerIndex: idx,
			Candidates:  n,
			Divergence: &domain.Divergence{
				Reason:       domain.ReasonDateMismatch,
				LedgerDate:   ledger[idx].MovementDate,
				ImportedDate: rec.Date,
			},
		}
	}

	return domain.MatchOutcome{Kind: domain.OutcomeUnmatched, LedgerIndex: -1}
}
