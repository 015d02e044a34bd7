package extract

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payment-reconciliation/internal/domain"
	"payment-reconciliation/internal/fieldmap"
	"payment-reconciliation/internal/observe"
)

const exportHeader = `"COD CLIENTE";"";"CPF/CNPJ";"EMPRESA";"NOTA FISCAL";"PARCELA";"TIPO DOC";"PORTADOR";` +
	`"DATA EMISSAO";"VENCIMENTO ORIGINAL";"VENCIMENTO";"DATA PAGAMENTO";"VALOR FATURA"`

func exportText(lines ...string) string {
	return strings.Join(append([]string{exportHeader}, lines...), "\r\n")
}

func fixedClock() time.Time { return time.Date(2024, 2, 1, 9, 30, 0, 0, time.UTC) }

func TestExtractLedgerEntries(t *testing.T) {
	rows, err := SplitDelimited("export.txt", exportText(
		`"C001";"ACME LTDA";"12.345.678/0001-90";"01";"1001";"1";"DM";"ITAU";"02/01/2024";"15/01/2024";"15/01/2024";"16/01/2024";"1.234,56"`,
		`"C002";"BETA SA";"123.456.789-09";"01";"";"1";"DM";"ITAU";"02/01/2024";"20/01/2024";"20/01/2024";"";"500,00"`,
		`"C003";"GAMA ME";"";"01";"1003";"2";"DM";"ITAU";"02/01/2024";"25/01/2024";"25/01/2024";"";"0,00"`,
		`"C004";"DELTA";"";"02";"1004";"";"NC";"BB";"03/01/2024";"";"";"";"(50,00)"`,
	), ';')
	require.NoError(t, err)

	res := fieldmap.Resolve(fieldmap.Headers(rows[0]), fieldmap.LedgerExport())
	rec := &observe.Recorder{}

	entries, skipped := ExtractLedgerEntries(rows[1:], res.Columns, WithObserver(rec))

	require.Len(t, entries, 2)
	assert.Equal(t, Skipped{domain.SkipBlankInvoice: 1, domain.SkipZeroAmount: 1}, skipped)
	assert.Equal(t, 2, skipped.Total())
	assert.Equal(t, 2, rec.Count("row_skipped"))
	assert.Equal(t, 3, rec.Events[0].Row)
	assert.Equal(t, 4, rec.Events[1].Row)

	settled := entries[0]
	assert.Equal(t, "C001", settled.Account)
	assert.True(t, decimal.RequireFromString("1234.56").Equal(settled.Amount))
	assert.Equal(t, domain.OperationCredit, settled.Operation)
	assert.Equal(t, domain.StatusSettled, settled.Status)
	assert.Equal(t, "2024-01-15", settled.MovementDate.String())
	assert.Equal(t, "2024-01-16", settled.SettlementDate.String())
	assert.Equal(t, "ACME LTDA NF 1001/1", settled.Description)
	require.NotNil(t, settled.Invoice)
	assert.Equal(t, "12345678000190", settled.Invoice.TaxID)
	assert.Equal(t, "ITAU", settled.Invoice.Carrier)
	assert.Equal(t, "2024-01-02", settled.Invoice.IssueDate.String())

	open := entries[1]
	assert.Equal(t, "C004", open.Account)
	assert.Equal(t, domain.StatusOpen, open.Status)
	assert.Equal(t, domain.OperationDebit, open.Operation)
	assert.True(t, decimal.NewFromInt(50).Equal(open.Amount))
	assert.Equal(t, "2024-01-03", open.MovementDate.String(), "falls back to the issue date")
	assert.True(t, open.SettlementDate.IsAbsent())
	assert.Equal(t, "DELTA NF 1004", open.Description)
}

func TestExtractLedgerEntries_BlankAndShortRows(t *testing.T) {
	cols := fieldmap.Columns{fieldmap.Invoice: 0, fieldmap.InvoiceAmount: 5}
	rows := []domain.Row{
		{"", "", ""},
		{"NF1"},
		{"NF2", "", "", "", "", "10,00"},
	}

	entries, skipped := ExtractLedgerEntries(rows, cols)

	require.Len(t, entries, 1)
	assert.Equal(t, "NF2", entries[0].Invoice.Invoice)
	assert.Equal(t, Skipped{domain.SkipEmptyRow: 1, domain.SkipZeroAmount: 1}, skipped)
}

func TestParseLedgerExport(t *testing.T) {
	table := fieldmap.LedgerExport()
	clock := WithClock(fixedClock)
	runID := WithRunID(func() string { return "run-1" })

	t.Run("success envelope with stats", func(t *testing.T) {
		text := "\ufeff" + exportText(
			`C001;ACME;;01;1001;1;DM;ITAU;02/01/2024;15/01/2024;15/01/2024;;1.000,00`,
			`C002;BETA;;01;1002;1;DM;ITAU;02/01/2024;15/01/2024;15/01/2024;;234,56`,
			`C003;GAMA;;01;;1;DM;ITAU;02/01/2024;15/01/2024;15/01/2024;;99,00`,
			``,
		)

		got := ParseLedgerExport("export.txt", text, table, clock, runID)

		assert.True(t, got.Success)
		assert.Empty(t, got.Error)
		assert.Len(t, got.Entries, 2)
		assert.Equal(t, 2, got.Stats.RecordCount)
		assert.Equal(t, "run-1", got.Stats.RunID)
		assert.Equal(t, fixedClock(), got.Stats.ProcessedAt)
		assert.Equal(t, "alias", got.Stats.ResolvedBy)
		assert.Equal(t, 1, got.Stats.Skipped[domain.SkipBlankInvoice])
		assert.True(t, decimal.RequireFromString("1234.56").Equal(got.Stats.TotalAmount))
	})

	t.Run("missing delimiter", func(t *testing.T) {
		got := ParseLedgerExport("export.txt", "COD CLIENTE,NOTA FISCAL,VALOR\nC1,1,10", table, clock, runID)

		assert.False(t, got.Success)
		assert.Contains(t, got.Error, `expected delimiter ";" not found in header`)
		assert.Empty(t, got.Entries)
		assert.Equal(t, "run-1", got.Stats.RunID)
	})

	t.Run("empty document", func(t *testing.T) {
		got := ParseLedgerExport("export.txt", "  \n ", table, clock, runID)

		assert.False(t, got.Success)
		assert.Contains(t, got.Error, "document is empty")
	})

	t.Run("positional fallback for unknown vocabulary", func(t *testing.T) {
		header := "A;B;C;D;E;F;G;H;I;J;K;L;M"
		text := header + "\nC9;NOVA;;01;900;1;DM;ITAU;01/03/2024;10/03/2024;11/03/2024;;75,50"

		got := ParseLedgerExport("export.txt", text, table, clock, runID)

		require.True(t, got.Success, got.Error)
		assert.Equal(t, "positional", got.Stats.ResolvedBy)
		require.Len(t, got.Entries, 1)
		assert.Equal(t, "C9", got.Entries[0].Account)
		assert.Equal(t, "NOVA", got.Entries[0].Invoice.ClientName)
		assert.Equal(t, "2024-03-11", got.Entries[0].MovementDate.String())
	})

	t.Run("mandatory field unresolved", func(t *testing.T) {
		got := ParseLedgerExport("export.txt", "CLIENTE;NOME\nC1;X", table, clock, runID)

		assert.False(t, got.Success)
		assert.Contains(t, got.Error, "invoice_amount")
	})
}

func TestSplitDelimited(t *testing.T) {
	rows, err := SplitDelimited("x", "a ;\"b\";c\n\n1;2", ';')
	require.NoError(t, err)
	assert.Equal(t, []domain.Row{{"a", "b", "c"}, {"1", "2"}}, rows)

	_, err = SplitDelimited("x", "a|b|c", ';')
	var structural *domain.StructuralParseError
	assert.ErrorAs(t, err, &structural)
}

func TestSplitDelimited_LineOriented(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []domain.Row
	}{
		{
			name: "stray leading quote stays on its line",
			text: "A;B;C\n1;\"X;3\n4;5;6\n7;8;9\n",
			want: []domain.Row{{"A", "B", "C"}, {"1", "X", "3"}, {"4", "5", "6"}, {"7", "8", "9"}},
		},
		{
			name: "unescaped quote inside a name",
			text: "\"COD\";\"NOME\"\r\n\"C001\";\"ACME \"FILIAL\" LTDA\"\r\n\"C002\";\"BETA\"\r\n",
			want: []domain.Row{{"COD", "NOME"}, {"C001", `ACME "FILIAL" LTDA`}, {"C002", "BETA"}},
		},
		{
			name: "quoted delimiter is kept in the cell",
			text: "valor,data\n\"250,50\",16/01/2024\n",
			want: []domain.Row{{"valor", "data"}, {"250,50", "16/01/2024"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := SplitDelimited("x", tt.text, SniffDelimiter(tt.text))

			require.NoError(t, err)
			assert.Equal(t, tt.want, rows)
		})
	}
}

func TestSniffDelimiter(t *testing.T) {
	assert.Equal(t, ';', SniffDelimiter("a;b;c"))
	assert.Equal(t, ',', SniffDelimiter("a,b;c,d"))
	assert.Equal(t, ';', SniffDelimiter("\n\nvalor;data"))
}
