package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OutcomeKind classifies how an imported record was paired against the ledger.
type OutcomeKind string

const (
	OutcomeMatched   OutcomeKind = "MATCHED"
	OutcomeDivergent OutcomeKind = "DIVERGENT"
	OutcomeUnmatched OutcomeKind = "UNMATCHED"
)

// DivergenceReason explains a partial match.
type DivergenceReason string

const ReasonDateMismatch DivergenceReason = "DATE_MISMATCH"

// Divergence captures both conflicting values of a partial match.
type Divergence struct {
	Reason       DivergenceReason `json:"reason"`
	LedgerDate   LocalDate        `json:"ledger_date"`
	ImportedDate LocalDate        `json:"imported_date"`
}

// MatchOutcome is the result for a single imported record.
// Ledger points into the caller's ledger slice and is nil for Unmatched outcomes.
type MatchOutcome struct {
	Kind        OutcomeKind  `json:"kind"`
	Ledger      *LedgerEntry `json:"ledger,omitempty"`
	LedgerIndex int          `json:"ledger_index"`
	Divergence  *Divergence  `json:"divergence,omitempty"`

	// Candidates counts the ledger entries that satisfied the deciding pass. Above one means
	// the first in ledger order won a tie.
	Candidates int `json:"candidates,omitempty"`
}

// MatchItem pairs an imported record with its outcome.
type MatchItem struct {
	Record  ImportedPaymentRecord `json:"record"`
	Outcome MatchOutcome          `json:"outcome"`
}

// MatchCounts holds the aggregate counts per outcome category.
type MatchCounts struct {
	Matched   int `json:"matched"`
	Divergent int `json:"divergent"`
	Unmatched int `json:"unmatched"`
}

// MatchReport lists every imported record exactly once, in input order.
type MatchReport struct {
	Items  []MatchItem `json:"items"`
	Counts MatchCounts `json:"counts"`
}

// CategorySummary groups the items of one outcome category.
type CategorySummary struct {
	Count   int             `json:"count"`
	Total   decimal.Decimal `json:"total"`
	Members []MatchItem     `json:"members"`
}

// DivergenceDetail provides details on a single divergent record.
type DivergenceDetail struct {
	Row          int              `json:"row"`
	Account      string           `json:"account"`
	Amount       decimal.Decimal  `json:"amount"`
	Reason       DivergenceReason `json:"reason"`
	LedgerDate   LocalDate        `json:"ledger_date"`
	ImportedDate LocalDate        `json:"imported_date"`
}

// TieDetail flags a record whose ledger counterpart was chosen among several equal candidates.
type TieDetail struct {
	Row        int         `json:"row"`
	Kind       OutcomeKind `json:"kind"`
	Candidates int         `json:"candidates"`
}

// ReconciliationSummary is the display-oriented projection of a MatchReport.
type ReconciliationSummary struct {
	TotalImported int                `json:"total_imported"`
	Matched       CategorySummary    `json:"matched"`
	Divergent     CategorySummary    `json:"divergent"`
	Unmatched     CategorySummary    `json:"unmatched"`
	Divergences   []DivergenceDetail `json:"divergences"`
	Ties          []TieDetail        `json:"ties"`
}

// ReconciliationResult is the top-level structure returned by a reconciliation run.
type ReconciliationResult struct {
	RunID         string                `json:"run_id"`
	GeneratedAt   time.Time             `json:"generated_at"`
	Upload        string                `json:"upload"`
	LedgerEntries int                   `json:"ledger_entries"`
	Skipped       map[SkipReason]int    `json:"skipped"`
	Report        *MatchReport          `json:"report"`
	Summary       ReconciliationSummary `json:"summary"`
}

// ExportStats summarizes a ledger text export ingestion.
type ExportStats struct {
	RunID       string             `json:"run_id"`
	RecordCount int                `json:"record_count"`
	Skipped     map[SkipReason]int `json:"skipped"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	ProcessedAt time.Time          `json:"processed_at"`
	ResolvedBy  string             `json:"resolved_by"`
}

// ExportResult is the success/error envelope of a ledger text export ingestion.
type ExportResult struct {
	Success bool          `json:"success"`
	Error   string        `json:"error,omitempty"`
	Entries []LedgerEntry `json:"entries"`
	Stats   ExportStats   `json:"stats"`
}
