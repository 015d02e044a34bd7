package extract

import (
	"encoding/csv"
	"fmt"
	"strings"

	"payment-reconciliation/internal/domain"
)

const bom = "\ufeff"

// SplitDelimited splits a delimited text document into rows of string cells, one row per non-blank
// line. The header line must contain the delimiter, otherwise the document is rejected as a whole
// with a *domain.StructuralParseError.
func SplitDelimited(source, text string, delimiter rune) ([]domain.Row, error) {
	text = strings.TrimPrefix(text, bom)
	if strings.TrimSpace(text) == "" {
		return nil, &domain.StructuralParseError{Source: source, Reason: "document is empty"}
	}

	header := firstNonBlankLine(text)
	if !strings.ContainsRune(header, delimiter) {
		return nil, &domain.StructuralParseError{
			Source: source,
			Reason: fmt.Sprintf("expected delimiter %q not found in header", string(delimiter)),
		}
	}

	var rows []domain.Row
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, splitLine(line, delimiter))
	}
	return rows, nil
}

// splitLine reads one line as a record of its own. A line whose quoting is unbalanced is
// split on the delimiter as is, so a stray quote never reaches into the following lines.
func splitLine(line string, delimiter rune) domain.Row {
	reader := csv.NewReader(strings.NewReader(line))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	cells, err := reader.Read()
	if err != nil {
		cells = strings.Split(line, string(delimiter))
	}

	row := make(domain.Row, len(cells))
	for i, cell := range cells {
		row[i] = trimSpaceQuotes(cell)
	}
	return row
}

// SniffDelimiter picks ';' or ',' by counting occurrences in the first line, preferring ';'.
func SniffDelimiter(text string) rune {
	header := firstNonBlankLine(strings.TrimPrefix(text, bom))
	if strings.Count(header, ",") > strings.Count(header, ";") {
		return ','
	}
	return ';'
}

func firstNonBlankLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			return line
		}
	}
	return ""
}

func trimSpaceQuotes(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), `"`))
}
