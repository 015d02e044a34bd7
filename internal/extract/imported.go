package extract

import (
	"fmt"

	"payment-reconciliation/internal/domain"
	"payment-reconciliation/internal/fieldmap"
	"payment-reconciliation/internal/normalize"
)

// ExtractImportedRecords converts upload rows into imported payment records. Only blank rows are
// dropped; unparseable amounts become zero and unparseable dates become absent. The original cells
// are kept in the record's field bag, keyed by header label.
func ExtractImportedRecords(headers []string, rows []domain.Row, cols fieldmap.Columns, opts ...Option) ([]domain.ImportedPaymentRecord, Skipped) {
	o := buildOptions(opts)
	keys := fieldKeys(headers)
	skipped := make(Skipped)
	records := make([]domain.ImportedPaymentRecord, 0, len(rows))

	for i, row := range rows {
		line := lineOf(i)
		if isBlankRow(row) {
			skipped.add(o.observer, line, domain.SkipEmptyRow)
			continue
		}

		fields := make(map[string]string, len(row))
		for c, cell := range row {
			key := fmt.Sprintf("column_%d", c+1)
			if c < len(keys) {
				key = keys[c]
			}
			fields[key] = normalize.CellText(cell)
		}

		records = append(records, domain.ImportedPaymentRecord{
			Row:    line,
			Fields: fields,
			Amount: normalize.AbsoluteAmount(cols.Cell(row, fieldmap.Amount)),
			Date:   normalize.ParseLocalDate(cols.Cell(row, fieldmap.Date)),
		})
	}
	return records, skipped
}

// ImportUpload resolves the header row of an upload and extracts its records. The amount and date
// fields are mandatory; a *domain.FieldUnresolvedError is returned when either is missing.
func ImportUpload(source string, rows []domain.Row, table fieldmap.AliasTable, opts ...Option) ([]domain.ImportedPaymentRecord, Skipped, error) {
	if len(rows) == 0 {
		return nil, nil, &domain.StructuralParseError{Source: source, Reason: "upload has no header row"}
	}
	o := buildOptions(opts)

	headers := fieldmap.Headers(rows[0])
	res, err := fieldmap.ResolveWithFallback(headers, table, o.observer)
	if err != nil {
		return nil, nil, fmt.Errorf("could not resolve upload header of %s: %w", source, err)
	}

	records, skipped := ExtractImportedRecords(headers, rows[1:], res.Columns, opts...)
	return records, skipped, nil
}

// fieldKeys makes header labels usable as unique map keys.
func fieldKeys(headers []string) []string {
	keys := make([]string, len(headers))
	seen := make(map[string]bool, len(headers))
	for i, h := range headers {
		key := trimSpaceQuotes(h)
		if key == "" || seen[key] {
			key = fmt.Sprintf("column_%d", i+1)
		}
		seen[key] = true
		keys[i] = key
	}
	return keys
}
