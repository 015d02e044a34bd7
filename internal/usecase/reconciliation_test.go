package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payment-reconciliation/internal/domain"
	"payment-reconciliation/internal/observe"
	"payment-reconciliation/internal/usecase"
	mock_usecase "payment-reconciliation/internal/usecase/mocks"
)

var (
	fixedNow = time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	period   = domain.Period{
		From: domain.NewLocalDate(2024, time.January, 1),
		To:   domain.NewLocalDate(2024, time.January, 31),
	}
)

type fixture struct {
	exports *mock_usecase.MockLedgerExportReader
	uploads *mock_usecase.MockUploadReader
	ledger  *mock_usecase.MockLedgerRepository
	events  *observe.Recorder
	uc      *usecase.ReconciliationUseCase
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		exports: mock_usecase.NewMockLedgerExportReader(ctrl),
		uploads: mock_usecase.NewMockUploadReader(ctrl),
		ledger:  mock_usecase.NewMockLedgerRepository(ctrl),
		events:  &observe.Recorder{},
	}
	f.uc = usecase.NewReconciliationUseCase(f.exports, f.uploads, f.ledger,
		usecase.WithObserver(f.events),
		usecase.WithClock(func() time.Time { return fixedNow }),
		usecase.WithRunID(func() string { return "run-1" }),
	)
	return f
}

func TestReconciliationUseCase_Reconcile(t *testing.T) {
	f := newFixture(t)
	upload := []domain.Row{
		{"DATA PAGAMENTO", "VALOR PAGO", "CLIENTE"},
		{45306.0, 100.0, "ACME"},
		{"16/01/2024", "R$ 250,50", "BETA"},
		{"", "", ""},
		{"20/01/2024", "999,99", "GAMA"},
	}
	movements := []domain.LedgerMovement{
		{Account: "A1", MovementTime: "2024-01-15T10:00:00", OperationCode: "C", Amount: 100.0},
		{Account: "A2", MovementTime: "2024-01-20", OperationCode: "C", Amount: "250,50"},
	}

	gomock.InOrder(
		f.uploads.EXPECT().ReadRows(gomock.Any(), "payments.xlsx").Return(upload, nil),
		f.ledger.EXPECT().GetLedgerMovements(gomock.Any(), period).Return(movements, nil),
	)

	got, err := f.uc.Reconcile(context.Background(), "payments.xlsx", period)

	require.NoError(t, err)
	assert.Equal(t, "run-1", got.RunID)
	assert.Equal(t, fixedNow, got.GeneratedAt)
	assert.Equal(t, "payments.xlsx", got.Upload)
	assert.Equal(t, 2, got.LedgerEntries)
	assert.Equal(t, map[domain.SkipReason]int{domain.SkipEmptyRow: 1}, got.Skipped)

	require.Len(t, got.Report.Items, 3)
	items := got.Report.Items
	assert.Equal(t, []int{2, 3, 5}, []int{items[0].Record.Row, items[1].Record.Row, items[2].Record.Row})
	assert.Equal(t, domain.OutcomeMatched, items[0].Outcome.Kind)
	assert.Equal(t, "A1", items[0].Outcome.Ledger.Account)
	assert.Equal(t, domain.OutcomeDivergent, items[1].Outcome.Kind)
	assert.Equal(t, "2024-01-20", items[1].Outcome.Divergence.LedgerDate.String())
	assert.Equal(t, "2024-01-16", items[1].Outcome.Divergence.ImportedDate.String())
	assert.Equal(t, domain.OutcomeUnmatched, items[2].Outcome.Kind)
	assert.Equal(t, "GAMA", items[2].Record.Fields["CLIENTE"])

	assert.Equal(t, domain.MatchCounts{Matched: 1, Divergent: 1, Unmatched: 1}, got.Report.Counts)
	assert.Equal(t, 3, got.Summary.TotalImported)
	assert.True(t, decimal.RequireFromString("999.99").Equal(got.Summary.Unmatched.Total))
	require.Len(t, got.Summary.Divergences, 1)
	assert.Equal(t, "A2", got.Summary.Divergences[0].Account)

	assert.Equal(t, 3, f.events.Count("match_decided"))
	assert.Equal(t, 1, f.events.Count("row_skipped"))
}

func TestReconciliationUseCase_Reconcile_Errors(t *testing.T) {
	ctx := context.Background()
	header := domain.Row{"DATA PAGAMENTO", "VALOR PAGO"}
	readErr := errors.New("disk on fire")

	t.Run("empty ledger is reported distinctly", func(t *testing.T) {
		f := newFixture(t)
		f.uploads.EXPECT().ReadRows(gomock.Any(), "p.csv").Return([]domain.Row{header, {"15/01/2024", "10,00"}}, nil)
		f.ledger.EXPECT().GetLedgerMovements(gomock.Any(), period).Return(nil, nil)

		got, err := f.uc.Reconcile(ctx, "p.csv", period)

		assert.ErrorIs(t, err, domain.ErrEmptyLedger)
		assert.Nil(t, got)
	})

	t.Run("empty ledger even with an empty upload", func(t *testing.T) {
		f := newFixture(t)
		f.uploads.EXPECT().ReadRows(gomock.Any(), "p.csv").Return([]domain.Row{header}, nil)
		f.ledger.EXPECT().GetLedgerMovements(gomock.Any(), period).Return([]domain.LedgerMovement{}, nil)

		_, err := f.uc.Reconcile(ctx, "p.csv", period)

		assert.ErrorIs(t, err, domain.ErrEmptyLedger)
	})

	t.Run("upload read failure", func(t *testing.T) {
		f := newFixture(t)
		f.uploads.EXPECT().ReadRows(gomock.Any(), "p.csv").Return(nil, readErr)

		_, err := f.uc.Reconcile(ctx, "p.csv", period)

		assert.ErrorIs(t, err, readErr)
	})

	t.Run("mandatory upload field missing", func(t *testing.T) {
		f := newFixture(t)
		f.uploads.EXPECT().ReadRows(gomock.Any(), "p.csv").Return([]domain.Row{{"CLIENTE", "OBS"}, {"ACME", "x"}}, nil)

		_, err := f.uc.Reconcile(ctx, "p.csv", period)

		var unresolved *domain.FieldUnresolvedError
		require.True(t, errors.As(err, &unresolved))
		assert.ElementsMatch(t, []string{"amount", "date"}, unresolved.Fields)
		assert.Equal(t, 2, f.events.Count("field_unresolved"))
	})

	t.Run("upload without header", func(t *testing.T) {
		f := newFixture(t)
		f.uploads.EXPECT().ReadRows(gomock.Any(), "p.csv").Return(nil, nil)

		_, err := f.uc.Reconcile(ctx, "p.csv", period)

		var structural *domain.StructuralParseError
		assert.True(t, errors.As(err, &structural))
	})

	t.Run("ledger failure", func(t *testing.T) {
		f := newFixture(t)
		f.uploads.EXPECT().ReadRows(gomock.Any(), "p.csv").Return([]domain.Row{header}, nil)
		f.ledger.EXPECT().GetLedgerMovements(gomock.Any(), period).Return(nil, readErr)

		_, err := f.uc.Reconcile(ctx, "p.csv", period)

		assert.ErrorIs(t, err, readErr)
		assert.NotErrorIs(t, err, domain.ErrEmptyLedger)
	})
}

func TestReconciliationUseCase_ImportLedgerExport(t *testing.T) {
	ctx := context.Background()
	export := strings.Join([]string{
		`"COD CLIENTE";"";"CPF/CNPJ";"EMPRESA";"NOTA FISCAL";"PARCELA";"TIPO DOC";"PORTADOR";"DATA EMISSAO";"VENCIMENTO ORIGINAL";"VENCIMENTO";"DATA PAGAMENTO";"VALOR FATURA"`,
		`"C001";"ACME LTDA";"12.345.678/0001-90";"01";"1001";"1";"DM";"ITAU";"02/01/2024";"15/01/2024";"15/01/2024";"";"1.234,56"`,
		`"C002";"BETA SA";"";"01";"";"1";"DM";"ITAU";"02/01/2024";"20/01/2024";"20/01/2024";"";"500,00"`,
	}, "\r\n")

	t.Run("success", func(t *testing.T) {
		f := newFixture(t)
		f.exports.EXPECT().ReadLedgerExport(gomock.Any(), "export.txt").Return(export, nil)

		got, err := f.uc.ImportLedgerExport(ctx, "export.txt")

		require.NoError(t, err)
		assert.True(t, got.Success)
		assert.Empty(t, got.Error)
		require.Len(t, got.Entries, 1)
		assert.Equal(t, "C001", got.Entries[0].Account)
		assert.Equal(t, "run-1", got.Stats.RunID)
		assert.Equal(t, fixedNow, got.Stats.ProcessedAt)
		assert.Equal(t, 1, got.Stats.RecordCount)
		assert.Equal(t, 1, got.Stats.Skipped[domain.SkipBlankInvoice])
		assert.True(t, decimal.RequireFromString("1234.56").Equal(got.Stats.TotalAmount))
		assert.Equal(t, "alias", got.Stats.ResolvedBy)
	})

	t.Run("structural failure lands in the envelope", func(t *testing.T) {
		f := newFixture(t)
		f.exports.EXPECT().ReadLedgerExport(gomock.Any(), "export.txt").Return("no separator here\nat all", nil)

		got, err := f.uc.ImportLedgerExport(ctx, "export.txt")

		require.NoError(t, err)
		assert.False(t, got.Success)
		assert.Contains(t, got.Error, "structural parse error")
		assert.Empty(t, got.Entries)
	})

	t.Run("read failure", func(t *testing.T) {
		f := newFixture(t)
		f.exports.EXPECT().ReadLedgerExport(gomock.Any(), "export.txt").Return("", errors.New("permission denied"))

		_, err := f.uc.ImportLedgerExport(ctx, "export.txt")

		assert.Error(t, err)
	})
}
