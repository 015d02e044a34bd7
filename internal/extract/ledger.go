package extract

import (
	"strings"

	"github.com/shopspring/decimal"

	"payment-reconciliation/internal/domain"
	"payment-reconciliation/internal/fieldmap"
	"payment-reconciliation/internal/normalize"
)

// ExtractLedgerEntries converts data rows of the collections export into ledger entries.
//
// Rows with a blank invoice number or an amount of exactly zero are dropped; both are data
// quality filters of the export and only show up in the returned tally. Amounts are stored
// as absolute values and a negative invoice amount is taken as a debit.
func ExtractLedgerEntries(rows []domain.Row, cols fieldmap.Columns, opts ...Option) ([]domain.LedgerEntry, Skipped) {
	o := buildOptions(opts)
	skipped := make(Skipped)
	entries := make([]domain.LedgerEntry, 0, len(rows))

	for i, row := range rows {
		line := lineOf(i)
		if isBlankRow(row) {
			skipped.add(o.observer, line, domain.SkipEmptyRow)
			continue
		}

		invoice := cols.Text(row, fieldmap.Invoice)
		if invoice == "" {
			skipped.add(o.observer, line, domain.SkipBlankInvoice)
			continue
		}

		amount := normalize.ParseMonetaryAmount(cols.Cell(row, fieldmap.InvoiceAmount))
		if amount.IsZero() {
			skipped.add(o.observer, line, domain.SkipZeroAmount)
			continue
		}

		details := &domain.InvoiceDetails{
			ClientName:      cols.Text(row, fieldmap.ClientName),
			TaxID:           normalize.DigitsOnly(cols.Text(row, fieldmap.TaxID)),
			Company:         cols.Text(row, fieldmap.Company),
			Invoice:         invoice,
			Installment:     cols.Text(row, fieldmap.Installment),
			DocumentType:    cols.Text(row, fieldmap.DocumentType),
			Carrier:         cols.Text(row, fieldmap.Carrier),
			IssueDate:       normalize.ParseLocalDate(cols.Cell(row, fieldmap.IssueDate)),
			OriginalDueDate: normalize.ParseLocalDate(cols.Cell(row, fieldmap.OriginalDueDate)),
			DueDate:         normalize.ParseLocalDate(cols.Cell(row, fieldmap.DueDate)),
		}
		settlement := normalize.ParseLocalDate(cols.Cell(row, fieldmap.SettlementDate))

		entries = append(entries, domain.LedgerEntry{
			Account:        cols.Text(row, fieldmap.ClientCode),
			MovementDate:   movementDate(details),
			SettlementDate: settlement,
			Description:    describeInvoice(details),
			Operation:      operationForSign(amount),
			Amount:         amount.Abs(),
			Status:         domain.StatusFor(settlement),
			Invoice:        details,
		})
	}
	return entries, skipped
}

// movementDate is the due date, falling back to the original due date and then the issue date.
func movementDate(d *domain.InvoiceDetails) domain.LocalDate {
	for _, candidate := range []domain.LocalDate{d.DueDate, d.OriginalDueDate, d.IssueDate} {
		if !candidate.IsAbsent() {
			return candidate
		}
	}
	return domain.LocalDate{}
}

func describeInvoice(d *domain.InvoiceDetails) string {
	ref := "NF " + d.Invoice
	if d.Installment != "" {
		ref += "/" + d.Installment
	}
	return strings.TrimSpace(d.ClientName + " " + ref)
}

func operationForSign(amount decimal.Decimal) domain.OperationType {
	if amount.IsNegative() {
		return domain.OperationDebit
	}
	return domain.OperationCredit
}

// ParseLedgerExport ingests the semicolon-delimited collections export and wraps the outcome in a
// success/error envelope. Structural problems and unresolved mandatory fields fail the whole
// document; rows dropped by the data quality filters only lower the record count.
func ParseLedgerExport(source, text string, table fieldmap.AliasTable, opts ...Option) domain.ExportResult {
	o := buildOptions(opts)
	result := domain.ExportResult{
		Entries: []domain.LedgerEntry{},
		Stats: domain.ExportStats{
			RunID:       o.newID(),
			Skipped:     map[domain.SkipReason]int{},
			TotalAmount: decimal.Zero,
			ProcessedAt: o.now().UTC(),
		},
	}

	rows, err := SplitDelimited(source, text, ';')
	if err != nil {
		result.Error = err.Error()
		return result
	}

	res, err := fieldmap.ResolveWithFallback(fieldmap.Headers(rows[0]), table, o.observer)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	entries, skipped := ExtractLedgerEntries(rows[1:], res.Columns, opts...)
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Amount)
	}

	result.Success = true
	result.Entries = entries
	result.Stats.RecordCount = len(entries)
	result.Stats.Skipped = skipped
	result.Stats.TotalAmount = total
	result.Stats.ResolvedBy = string(res.Strategy)
	return result
}
