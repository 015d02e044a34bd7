// Package extract turns resolved tabular rows into canonical ledger entries and imported payment records.
package extract

import (
	"time"

	"github.com/google/uuid"

	"payment-reconciliation/internal/domain"
	"payment-reconciliation/internal/observe"
)

type options struct {
	observer observe.Observer
	now      func() time.Time
	newID    func() string
}

// Option tunes an extraction.
type Option func(*options)

// WithObserver routes skipped-row and unresolved-field events to o.
func WithObserver(o observe.Observer) Option {
	return func(opts *options) { opts.observer = observe.OrNop(o) }
}

// WithClock overrides the processing timestamp source.
func WithClock(now func() time.Time) Option {
	return func(opts *options) { opts.now = now }
}

// WithRunID overrides the run identifier generator.
func WithRunID(newID func() string) Option {
	return func(opts *options) { opts.newID = newID }
}

func buildOptions(opts []Option) options {
	o := options{
		observer: observe.Nop{},
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Skipped tallies dropped rows by reason.
type Skipped map[domain.SkipReason]int

// Total is the number of rows dropped for any reason.
func (s Skipped) Total() int {
	n := 0
	for _, c := range s {
		n += c
	}
	return n
}

func (s Skipped) add(o observe.Observer, line int, reason domain.SkipReason) {
	s[reason]++
	o.RowSkipped(line, reason)
}

// lineOf converts a data row index into a 1-based file line, the header being line 1.
func lineOf(dataIndex int) int { return dataIndex + 2 }

func isBlankRow(row domain.Row) bool {
	for _, cell := range row {
		switch v := cell.(type) {
		case nil:
		case string:
			if trimmed := trimSpaceQuotes(v); trimmed != "" {
				return false
			}
		default:
			return false
		}
	}
	return true
}
