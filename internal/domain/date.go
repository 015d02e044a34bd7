package domain

import (
	"encoding/json"
	"time"
)

const (
	isoLayout   = "2006-01-02"
	localLayout = "02/01/2006"
)

// LocalDate is a calendar date without time of day. The zero value means absent.
type LocalDate struct {
	t time.Time
}

// NewLocalDate builds a date from its calendar parts.
func NewLocalDate(year int, month time.Month, day int) LocalDate {
	return LocalDate{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf keeps the calendar portion of t as seen in t's own location.
func DateOf(t time.Time) LocalDate {
	if t.IsZero() {
		return LocalDate{}
	}
	y, m, d := t.Date()
	return NewLocalDate(y, m, d)
}

func (d LocalDate) IsAbsent() bool { return d.t.IsZero() }

// Time returns midnight UTC of the date, or the zero time when absent.
func (d LocalDate) Time() time.Time { return d.t }

// Equal reports value equality; two absent dates are equal.
func (d LocalDate) Equal(o LocalDate) bool { return d.t.Equal(o.t) }

// SameDay is true only when both dates are present and fall on the same day.
func (d LocalDate) SameDay(o LocalDate) bool {
	return !d.IsAbsent() && !o.IsAbsent() && d.t.Equal(o.t)
}

func (d LocalDate) Before(o LocalDate) bool { return d.t.Before(o.t) }
func (d LocalDate) After(o LocalDate) bool  { return d.t.After(o.t) }

// String renders YYYY-MM-DD, or an empty string when absent.
func (d LocalDate) String() string {
	if d.IsAbsent() {
		return ""
	}
	return d.t.Format(isoLayout)
}

// Format renders DD/MM/YYYY, or an empty string when absent.
func (d LocalDate) Format() string {
	if d.IsAbsent() {
		return ""
	}
	return d.t.Format(localLayout)
}

func (d LocalDate) MarshalJSON() ([]byte, error) {
	if d.IsAbsent() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *LocalDate) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == nil || *s == "" {
		*d = LocalDate{}
		return nil
	}
	t, err := time.Parse(isoLayout, *s)
	if err != nil {
		return err
	}
	*d = DateOf(t)
	return nil
}

// Period bounds a reconciliation run by movement date. An absent bound leaves that side open.
type Period struct {
	From LocalDate
	To   LocalDate
}

// Contains reports whether d falls within the period, both bounds inclusive. An absent date is
// only contained in an unbounded period.
func (p Period) Contains(d LocalDate) bool {
	if p.IsUnbounded() {
		return true
	}
	if d.IsAbsent() {
		return false
	}
	if !p.From.IsAbsent() && d.Before(p.From) {
		return false
	}
	return p.To.IsAbsent() || !d.After(p.To)
}

// IsUnbounded reports whether neither bound is set.
func (p Period) IsUnbounded() bool {
	return p.From.IsAbsent() && p.To.IsAbsent()
}
