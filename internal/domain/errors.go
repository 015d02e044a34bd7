package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyLedger is returned when reconciliation is attempted without any ledger entries.
// It is distinct from a report where nothing matched: the caller most likely forgot to fetch the ledger.
var ErrEmptyLedger = errors.New("ledger is empty: fetch the ledger extract before reconciling")

// StructuralParseError reports input that lacks a recognizable shape. It aborts the whole ingestion.
type StructuralParseError struct {
	Source string
	Reason string
}

func (e *StructuralParseError) Error() string {
	if e.Source == "" {
		return "structural parse error: " + e.Reason
	}
	return fmt.Sprintf("structural parse error in %s: %s", e.Source, e.Reason)
}

// FieldUnresolvedError lists mandatory logical fields that no header column could be mapped to.
type FieldUnresolvedError struct {
	Fields  []string
	Headers []string
}

func (e *FieldUnresolvedError) Error() string {
	return fmt.Sprintf("required field(s) not found in header: %s (header: %s)",
		strings.Join(e.Fields, ", "), strings.Join(e.Headers, " | "))
}
