// Package fieldmap maps logical field names to column positions of loosely structured tabular exports.
//
// Header labels are matched against an ordered list of alias groups per field (case-insensitive substring
// match). A table may also describe the fixed positional layout of a known export, which is used when the
// aliases fail to resolve every required field.
package fieldmap

import (
	"fmt"
	"strings"

	"payment-reconciliation/internal/domain"
	"payment-reconciliation/internal/normalize"
	"payment-reconciliation/internal/observe"
)

// Field is a logical field name.
type Field string

// Strategy tells how a Resolution was obtained.
type Strategy string

const (
	StrategyAlias      Strategy = "alias"
	StrategyPositional Strategy = "positional"
)

// FieldAliases lists the alias groups of one field in priority order.
type FieldAliases struct {
	Field    Field      `yaml:"field"`
	Groups   [][]string `yaml:"groups"`
	Required bool       `yaml:"required"`
}

// AliasTable is a versioned description of one export shape.
type AliasTable struct {
	Name    string         `yaml:"name"`
	Version string         `yaml:"version"`
	Fields  []FieldAliases `yaml:"fields"`

	// Positional is the fixed column order of the export, used as a fallback.
	Positional []Field `yaml:"positional"`
	// ReservedBlank pins a field to a column whose header label is deliberately blank.
	ReservedBlank map[Field]int `yaml:"reserved_blank"`
}

// Validate checks that the table is usable by the resolver.
func (t AliasTable) Validate() error {
	if len(t.Fields) == 0 {
		return fmt.Errorf("alias table %q has no fields", t.Name)
	}
	known := make(map[Field]bool, len(t.Fields))
	for _, fa := range t.Fields {
		if fa.Field == "" {
			return fmt.Errorf("alias table %q: field with empty name", t.Name)
		}
		if known[fa.Field] {
			return fmt.Errorf("alias table %q: field %q declared twice", t.Name, fa.Field)
		}
		known[fa.Field] = true
		for i, group := range fa.Groups {
			if len(group) == 0 {
				return fmt.Errorf("alias table %q: field %q has empty alias group %d", t.Name, fa.Field, i)
			}
		}
	}
	for _, f := range t.Positional {
		if !known[f] {
			return fmt.Errorf("alias table %q: positional field %q is not declared", t.Name, f)
		}
	}
	for f, pos := range t.ReservedBlank {
		if !known[f] {
			return fmt.Errorf("alias table %q: reserved field %q is not declared", t.Name, f)
		}
		if pos < 0 {
			return fmt.Errorf("alias table %q: reserved field %q has negative position", t.Name, f)
		}
	}
	return nil
}

// Required returns the required fields in table order.
func (t AliasTable) Required() []Field {
	var out []Field
	for _, fa := range t.Fields {
		if fa.Required {
			out = append(out, fa.Field)
		}
	}
	return out
}

func (t AliasTable) isRequired(f Field) bool {
	for _, fa := range t.Fields {
		if fa.Field == f {
			return fa.Required
		}
	}
	return false
}

// Columns maps resolved fields to zero-based column indexes.
type Columns map[Field]int

// Cell returns the cell of f in row, or nil when f is unresolved or the row is too short.
func (c Columns) Cell(row domain.Row, f Field) any {
	idx, ok := c[f]
	if !ok || idx < 0 || idx >= len(row) {
		return nil
	}
	return row[idx]
}

// Text is Cell rendered as trimmed text.
func (c Columns) Text(row domain.Row, f Field) string {
	return normalize.CellText(c.Cell(row, f))
}

// Resolution is the outcome of resolving one header row.
type Resolution struct {
	Columns    Columns
	Unresolved []Field
	Strategy   Strategy
}

// MissingRequired lists the unresolved fields that table marks as required.
func (r Resolution) MissingRequired(table AliasTable) []Field {
	var out []Field
	for _, f := range r.Unresolved {
		if table.isRequired(f) {
			out = append(out, f)
		}
	}
	return out
}

// Headers renders a header row as text. Matching normalization happens inside Resolve.
func Headers(header domain.Row) []string {
	out := make([]string, len(header))
	for i, cell := range header {
		out[i] = normalize.CellText(cell)
	}
	return out
}

// Resolve maps every field of table to a header column using aliases only.
//
// Fields are processed in table order. For each field the alias groups are tried in priority
// order; within a group the headers are scanned left to right and the first label containing
// any alias of the group wins. A column taken by an earlier field is not reused, and blank
// labels never match an alias. Reserved blank positions are assigned before any alias scan.
func Resolve(headers []string, table AliasTable) Resolution {
	labels := make([]string, len(headers))
	for i, h := range headers {
		labels[i] = normalize.HeaderLabel(h)
	}

	res := Resolution{Columns: make(Columns), Strategy: StrategyAlias}
	claimed := make(map[int]bool)

	for _, fa := range table.Fields {
		if pos, ok := table.ReservedBlank[fa.Field]; ok && pos < len(labels) && labels[pos] == "" {
			res.Columns[fa.Field] = pos
			claimed[pos] = true
		}
	}

	for _, fa := range table.Fields {
		if _, done := res.Columns[fa.Field]; done {
			continue
		}
		idx := scanGroups(labels, fa.Groups, claimed)
		if idx < 0 {
			res.Unresolved = append(res.Unresolved, fa.Field)
			continue
		}
		res.Columns[fa.Field] = idx
		claimed[idx] = true
	}
	return res
}

func scanGroups(labels []string, groups [][]string, claimed map[int]bool) int {
	for _, group := range groups {
		for idx, label := range labels {
			if label == "" || claimed[idx] {
				continue
			}
			for _, alias := range group {
				a := strings.ToUpper(strings.TrimSpace(alias))
				if a != "" && strings.Contains(label, a) {
					return idx
				}
			}
		}
	}
	return -1
}

// ResolvePositional maps the table's positional schema onto the header, ignoring labels.
func ResolvePositional(headers []string, table AliasTable) Resolution {
	res := Resolution{Columns: make(Columns), Strategy: StrategyPositional}
	for i, f := range table.Positional {
		if i < len(headers) {
			res.Columns[f] = i
		}
	}
	for _, fa := range table.Fields {
		if _, ok := res.Columns[fa.Field]; !ok {
			res.Unresolved = append(res.Unresolved, fa.Field)
		}
	}
	return res
}

// ResolveWithFallback prefers alias resolution and falls back to the positional schema when
// aliases leave a required field unresolved and the header is wide enough for the schema.
// When neither strategy covers every required field a *domain.FieldUnresolvedError is returned.
// The observer is told about every field left unresolved by the chosen strategy.
func ResolveWithFallback(headers []string, table AliasTable, obs observe.Observer) (Resolution, error) {
	obs = observe.OrNop(obs)

	res := Resolve(headers, table)
	missing := res.MissingRequired(table)
	if len(missing) > 0 && len(table.Positional) > 0 && len(headers) >= len(table.Positional) {
		res = ResolvePositional(headers, table)
		missing = res.MissingRequired(table)
	}

	for _, f := range res.Unresolved {
		obs.FieldUnresolved(string(f), table.isRequired(f))
	}

	if len(missing) > 0 {
		names := make([]string, len(missing))
		for i, f := range missing {
			names[i] = string(f)
		}
		return res, &domain.FieldUnresolvedError{Fields: names, Headers: headers}
	}
	return res, nil
}
