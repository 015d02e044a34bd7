// Package observe defines the extension points through which ingestion and matching report
// progress without logging from inside the business logic.
package observe

import (
	"context"
	"log/slog"
	"sync"

	"payment-reconciliation/internal/domain"
)

// Observer receives events at the defined extension points. Implementations must not
// influence the outcome of the operation that emits the event.
type Observer interface {
	// RowSkipped is called when a data-quality filter drops a row. row is 1-based and counts the header.
	RowSkipped(row int, reason domain.SkipReason)
	// FieldUnresolved is called for every logical field no header column could be mapped to.
	FieldUnresolved(field string, required bool)
	// MatchDecided is called once per imported record, in input order.
	MatchDecided(index int, outcome domain.MatchOutcome)
}

// Nop discards every event.
type Nop struct{}

func (Nop) RowSkipped(int, domain.SkipReason)     {}
func (Nop) FieldUnresolved(string, bool)          {}
func (Nop) MatchDecided(int, domain.MatchOutcome) {}

// OrNop returns o, or Nop when o is nil.
func OrNop(o Observer) Observer {
	if o == nil {
		return Nop{}
	}
	return o
}

// Slog forwards events to a structured logger at debug level, unresolved required fields at warn.
type Slog struct {
	logger *slog.Logger
}

// NewSlog creates an observer writing to logger, or to slog.Default when logger is nil.
func NewSlog(logger *slog.Logger) *Slog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Slog{logger: logger}
}

func (s *Slog) RowSkipped(row int, reason domain.SkipReason) {
	s.logger.Debug("row skipped", "row", row, "reason", string(reason))
}

func (s *Slog) FieldUnresolved(field string, required bool) {
	level := slog.LevelDebug
	if required {
		level = slog.LevelWarn
	}
	s.logger.Log(context.Background(), level, "field unresolved", "field", field, "required", required)
}

func (s *Slog) MatchDecided(index int, outcome domain.MatchOutcome) {
	attrs := []any{"index", index, "outcome", string(outcome.Kind)}
	if outcome.Ledger != nil {
		attrs = append(attrs, "ledger_index", outcome.LedgerIndex, "account", outcome.Ledger.Account)
	}
	if outcome.Candidates > 1 {
		attrs = append(attrs, "candidates", outcome.Candidates)
	}
	s.logger.Debug("match decided", attrs...)
}

// Event is a single observation captured by Recorder.
type Event struct {
	Kind     string
	Row      int
	Reason   domain.SkipReason
	Field    string
	Required bool
	Outcome  domain.OutcomeKind
}

// Recorder keeps every event in memory, mostly for tests and dry runs.
type Recorder struct {
	mu     sync.Mutex
	Events []Event
}

func (r *Recorder) RowSkipped(row int, reason domain.SkipReason) {
	r.add(Event{Kind: "row_skipped", Row: row, Reason: reason})
}

func (r *Recorder) FieldUnresolved(field string, required bool) {
	r.add(Event{Kind: "field_unresolved", Field: field, Required: required})
}

func (r *Recorder) MatchDecided(index int, outcome domain.MatchOutcome) {
	r.add(Event{Kind: "match_decided", Row: index, Outcome: outcome.Kind})
}

// Count returns how many events of the given kind were recorded.
func (r *Recorder) Count(kind string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.Events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func (r *Recorder) add(e Event) {
	r.mu.Lock()
	r.Events = append(r.Events, e)
	r.mu.Unlock()
}
