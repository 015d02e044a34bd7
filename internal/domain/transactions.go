package domain

import "github.com/shopspring/decimal"

// OperationType defines the nature of a ledger movement (DEBIT or CREDIT).
type OperationType string

const (
	OperationDebit  OperationType = "DEBIT"
	OperationCredit OperationType = "CREDIT"
)

// EntryStatus is derived from the presence of a settlement date.
type EntryStatus string

const (
	StatusOpen    EntryStatus = "OPEN"
	StatusSettled EntryStatus = "SETTLED"
)

// StatusFor returns Settled when the settlement date is present, Open otherwise.
func StatusFor(settlement LocalDate) EntryStatus {
	if settlement.IsAbsent() {
		return StatusOpen
	}
	return StatusSettled
}

// InvoiceDetails carries the columns specific to the collections text export.
type InvoiceDetails struct {
	ClientName      string    `json:"client_name"`
	TaxID           string    `json:"tax_id"`
	Company         string    `json:"company"`
	Invoice         string    `json:"invoice"`
	Installment     string    `json:"installment"`
	DocumentType    string    `json:"document_type"`
	Carrier         string    `json:"carrier"`
	IssueDate       LocalDate `json:"issue_date"`
	OriginalDueDate LocalDate `json:"original_due_date"`
	DueDate         LocalDate `json:"due_date"`
}

// LedgerEntry is a single movement from the authoritative internal ledger.
// Entries are never modified after extraction.
type LedgerEntry struct {
	Account        string          `json:"account"`
	MovementDate   LocalDate       `json:"movement_date"`
	SettlementDate LocalDate       `json:"settlement_date"`
	Description    string          `json:"description"`
	Operation      OperationType   `json:"operation"`
	Amount         decimal.Decimal `json:"amount"` // Never negative
	Status         EntryStatus     `json:"status"`

	// Only set for entries extracted from the collections text export.
	Invoice *InvoiceDetails `json:"invoice,omitempty"`
}

// ImportedPaymentRecord represents one row of an uploaded payment confirmation sheet.
type ImportedPaymentRecord struct {
	Row    int               `json:"row"`    // 1-based line in the upload, the header is line 1
	Fields map[string]string `json:"fields"` // original header label -> cell text
	Amount decimal.Decimal   `json:"amount"` // absolute value
	Date   LocalDate         `json:"date"`
}

// LedgerMovement is the shape handed over by the ledger extract collaborators.
// Amount holds either a number or a locale-formatted string.
type LedgerMovement struct {
	Account        string `json:"account"`
	MovementTime   string `json:"movement_time"`
	OperationCode  string `json:"operation_code"`
	Amount         any    `json:"amount"`
	SettlementDate string `json:"settlement_date"`
	Description    string `json:"description"`
}

// Row is one line of tabular input. Cells are string or float64 values.
type Row []any

// SkipReason names the data-quality filter that dropped a row.
type SkipReason string

const (
	SkipEmptyRow     SkipReason = "empty_row"
	SkipBlankInvoice SkipReason = "blank_invoice"
	SkipZeroAmount   SkipReason = "zero_amount"
)
