package fieldmap

// Ledger text export fields, in the export's fixed column order.
const (
	ClientCode      Field = "client_code"
	ClientName      Field = "client_name"
	TaxID           Field = "tax_id"
	Company         Field = "company"
	Invoice         Field = "invoice"
	Installment     Field = "installment"
	DocumentType    Field = "document_type"
	Carrier         Field = "carrier"
	IssueDate       Field = "issue_date"
	OriginalDueDate Field = "original_due_date"
	DueDate         Field = "due_date"
	SettlementDate  Field = "settlement_date"
	InvoiceAmount   Field = "invoice_amount"
)

// Payment upload fields.
const (
	Amount Field = "amount"
	Date   Field = "date"
)

const (
	LedgerExportTable  = "ledger_export"
	PaymentUploadTable = "payment_upload"
)

// Tables indexes alias tables by name.
type Tables map[string]AliasTable

// LedgerExport describes the semicolon-delimited collections export.
//
// Field order matters: specific fields claim their column before the generic aliases of later
// fields are scanned ("VENCIMENTO ORIGINAL" before "VENCIMENTO", "VALOR FATURA" before "FATURA").
func LedgerExport() AliasTable {
	return AliasTable{
		Name:    LedgerExportTable,
		Version: "2",
		Fields: []FieldAliases{
			{Field: InvoiceAmount, Required: true, Groups: [][]string{
				{"VALOR FATURA", "VLR FATURA", "VALOR DO TITULO", "VALOR TITULO", "VALOR TÍTULO"},
				{"VALOR", "VLR"},
			}},
			{Field: ClientCode, Required: true, Groups: [][]string{
				{"COD CLIENTE", "CÓD CLIENTE", "COD. CLIENTE", "CODIGO CLIENTE", "CÓDIGO CLIENTE"},
				{"CODIGO", "CÓDIGO", "COD"},
			}},
			{Field: TaxID, Groups: [][]string{
				{"CPF/CNPJ", "CNPJ/CPF"},
				{"CNPJ", "CPF"},
			}},
			{Field: ClientName, Groups: [][]string{
				{"NOME CLIENTE", "NOME DO CLIENTE", "RAZAO SOCIAL", "RAZÃO SOCIAL"},
				{"CLIENTE", "NOME"},
			}},
			{Field: Company, Groups: [][]string{
				{"EMPRESA"},
				{"FILIAL", "COMPANY"},
			}},
			{Field: Installment, Groups: [][]string{
				{"PARCELA"},
				{"PARC"},
			}},
			{Field: DocumentType, Groups: [][]string{
				{"TIPO DOC", "TIPO DE DOCUMENTO", "TIPO DOCUMENTO"},
				{"ESPECIE", "ESPÉCIE", "TIPO"},
			}},
			{Field: Invoice, Required: true, Groups: [][]string{
				{"NOTA FISCAL", "NUM NF", "Nº NF", "FATURA", "DUPLICATA"},
				{"TITULO", "TÍTULO", "NF", "DOCUMENTO"},
			}},
			{Field: Carrier, Groups: [][]string{
				{"PORTADOR"},
				{"BANCO", "CARTEIRA"},
			}},
			{Field: IssueDate, Groups: [][]string{
				{"DATA EMISSAO", "DATA EMISSÃO", "DT EMISSAO", "DT EMISSÃO", "EMISSAO", "EMISSÃO"},
			}},
			{Field: OriginalDueDate, Groups: [][]string{
				{"VENCIMENTO ORIGINAL", "VENC ORIGINAL", "VENC. ORIGINAL", "VENCTO ORIGINAL", "VENC ORIG"},
			}},
			{Field: DueDate, Groups: [][]string{
				{"VENCIMENTO", "VENCTO", "VENC"},
			}},
			{Field: SettlementDate, Groups: [][]string{
				{"DATA PAGAMENTO", "DATA BAIXA", "DT BAIXA", "LIQUIDACAO", "LIQUIDAÇÃO"},
				{"PAGAMENTO", "BAIXA"},
			}},
		},
		Positional: []Field{
			ClientCode, ClientName, TaxID, Company, Invoice, Installment, DocumentType,
			Carrier, IssueDate, OriginalDueDate, DueDate, SettlementDate, InvoiceAmount,
		},
		ReservedBlank: map[Field]int{ClientName: 1},
	}
}

// PaymentUpload describes the reconciliation spreadsheet, whose header names are not fixed.
func PaymentUpload() AliasTable {
	return AliasTable{
		Name:    PaymentUploadTable,
		Version: "1",
		Fields: []FieldAliases{
			{Field: Amount, Required: true, Groups: [][]string{
				{"TRANSACTION VALUE", "VALOR DA TRANSACAO", "VALOR DA TRANSAÇÃO", "VALOR PAGO", "PAID AMOUNT"},
				{"AMOUNT", "VALUE", "VALOR"},
			}},
			{Field: Date, Required: true, Groups: [][]string{
				{"PAYMENT DATE", "DATA PAGAMENTO", "DATA DO PAGAMENTO", "DT PAGAMENTO"},
				{"DATE", "DATA"},
				// Bare "DT" also matches labels such as "WIDTH"; it is tried only when no
				// header names a date outright.
				{"DT"},
			}},
		},
	}
}

// DefaultTables returns fresh copies of the built-in tables.
func DefaultTables() Tables {
	return Tables{
		LedgerExportTable:  LedgerExport(),
		PaymentUploadTable: PaymentUpload(),
	}
}
