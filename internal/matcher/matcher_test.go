package matcher

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payment-reconciliation/internal/domain"
	"payment-reconciliation/internal/normalize"
	"payment-reconciliation/internal/observe"
)

func day(d int) domain.LocalDate { return domain.NewLocalDate(2024, time.January, d) }

func ledgerEntry(account, amount string, date domain.LocalDate) domain.LedgerEntry {
	return domain.LedgerEntry{
		Account:      account,
		MovementDate: date,
		Operation:    domain.OperationCredit,
		Amount:       decimal.RequireFromString(amount),
		Status:       domain.StatusOpen,
	}
}

// imported builds a record the way the extractor does, from raw cell values.
func imported(row int, amount, date any) domain.ImportedPaymentRecord {
	return domain.ImportedPaymentRecord{
		Row:    row,
		Fields: map[string]string{"valor": normalize.CellText(amount), "data": normalize.CellText(date)},
		Amount: normalize.AbsoluteAmount(amount),
		Date:   normalize.ParseLocalDate(date),
	}
}

func TestMatch(t *testing.T) {
	ledger := []domain.LedgerEntry{
		ledgerEntry("A1", "100.00", day(15)),
		ledgerEntry("A2", "250.50", day(20)),
	}

	tests := []struct {
		name         string
		record       domain.ImportedPaymentRecord
		wantKind     domain.OutcomeKind
		wantIndex    int
		wantImported domain.LocalDate
	}{
		{
			name:      "same amount and date",
			record:    imported(2, "100,00", "15/01/2024"),
			wantKind:  domain.OutcomeMatched,
			wantIndex: 0,
		},
		{
			name:         "same amount, different date",
			record:       imported(2, "100,00", "16/01/2024"),
			wantKind:     domain.OutcomeDivergent,
			wantIndex:    0,
			wantImported: day(16),
		},
		{
			name:      "amount within tolerance",
			record:    imported(2, 250.505, "20/01/2024"),
			wantKind:  domain.OutcomeMatched,
			wantIndex: 1,
		},
		{
			name:      "accounting negative matches by absolute value",
			record:    imported(2, "(250,50)", "2024-01-20"),
			wantKind:  domain.OutcomeMatched,
			wantIndex: 1,
		},
		{
			name:      "amount off by one cent",
			record:    imported(2, "100,01", "15/01/2024"),
			wantKind:  domain.OutcomeUnmatched,
			wantIndex: -1,
		},
		{
			name:      "amount matches nothing",
			record:    imported(2, "999,99", "15/01/2024"),
			wantKind:  domain.OutcomeUnmatched,
			wantIndex: -1,
		},
		{
			name:      "absent date can only diverge",
			record:    imported(2, "100,00", "sem data"),
			wantKind:  domain.OutcomeDivergent,
			wantIndex: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := Match([]domain.ImportedPaymentRecord{tt.record}, ledger)
			require.NoError(t, err)
			require.Len(t, report.Items, 1)

			got := report.Items[0].Outcome
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.wantIndex, got.LedgerIndex)
			assert.Equal(t, tt.record, report.Items[0].Record)

			switch tt.wantKind {
			case domain.OutcomeUnmatched:
				assert.Nil(t, got.Ledger)
				assert.Nil(t, got.Divergence)
			case domain.OutcomeMatched:
				assert.Same(t, &ledger[tt.wantIndex], got.Ledger)
				assert.Nil(t, got.Divergence)
			case domain.OutcomeDivergent:
				assert.Same(t, &ledger[tt.wantIndex], got.Ledger)
				require.NotNil(t, got.Divergence)
				assert.Equal(t, domain.ReasonDateMismatch, got.Divergence.Reason)
				assert.Equal(t, ledger[tt.wantIndex].MovementDate, got.Divergence.LedgerDate)
				assert.Equal(t, tt.wantImported, got.Divergence.ImportedDate)
			}
		})
	}
}

func TestMatch_DivergenceCapturesBothDates(t *testing.T) {
	ledger := []domain.LedgerEntry{ledgerEntry("A1", "100.00", day(15))}

	report, err := Match([]domain.ImportedPaymentRecord{imported(2, "100,00", "16/01/2024")}, ledger)

	require.NoError(t, err)
	div := report.Items[0].Outcome.Divergence
	require.NotNil(t, div)
	assert.Equal(t, "2024-01-15", div.LedgerDate.String())
	assert.Equal(t, "2024-01-16", div.ImportedDate.String())
}

func TestMatch_EmptyLedger(t *testing.T) {
	records := []domain.ImportedPaymentRecord{imported(2, "100,00", "15/01/2024")}

	for _, ledger := range [][]domain.LedgerEntry{nil, {}} {
		report, err := Match(records, ledger)

		assert.True(t, errors.Is(err, domain.ErrEmptyLedger))
		assert.Nil(t, report)
	}
}

func TestMatch_FirstMatchWinsAndEntriesAreNotConsumed(t *testing.T) {
	ledger := []domain.LedgerEntry{
		ledgerEntry("OTHER", "10.00", day(1)),
		ledgerEntry("FIRST", "100.00", day(15)),
		ledgerEntry("SECOND", "100.00", day(15)),
		ledgerEntry("LATER-DATE", "100.00", day(18)),
	}
	records := []domain.ImportedPaymentRecord{
		imported(2, "100,00", "15/01/2024"),
		imported(3, "100,00", "15/01/2024"),
		imported(4, "100,00", "18/01/2024"),
		imported(5, "100,00", "30/01/2024"),
	}

	report, err := Match(records, ledger)
	require.NoError(t, err)

	assert.Equal(t, "FIRST", report.Items[0].Outcome.Ledger.Account)
	assert.Equal(t, 2, report.Items[0].Outcome.Candidates)
	assert.Equal(t, "FIRST", report.Items[1].Outcome.Ledger.Account, "ledger entries are never claimed")
	assert.Equal(t, "LATER-DATE", report.Items[2].Outcome.Ledger.Account, "exact date beats earlier amount-only candidates")
	assert.Equal(t, 1, report.Items[2].Outcome.Candidates)
	assert.Equal(t, domain.OutcomeDivergent, report.Items[3].Outcome.Kind)
	assert.Equal(t, "FIRST", report.Items[3].Outcome.Ledger.Account)
	assert.Equal(t, 3, report.Items[3].Outcome.Candidates)

	assert.Equal(t, domain.MatchCounts{Matched: 3, Divergent: 1}, report.Counts)
	assert.Equal(t, "OTHER", ledger[0].Account, "ledger order is left untouched")
}

func TestMatch_EveryRecordAppearsOnceInOrder(t *testing.T) {
	ledger := []domain.LedgerEntry{ledgerEntry("A", "1.00", day(1))}
	records := []domain.ImportedPaymentRecord{
		imported(2, "1,00", "01/01/2024"),
		imported(3, "2,00", "01/01/2024"),
		imported(4, "1,00", "02/01/2024"),
		imported(5, "", ""),
	}

	report, err := Match(records, ledger)
	require.NoError(t, err)

	require.Len(t, report.Items, len(records))
	for i, item := range report.Items {
		assert.Equal(t, records[i].Row, item.Record.Row)
	}
	counts := report.Counts
	assert.Equal(t, len(records), counts.Matched+counts.Divergent+counts.Unmatched)
	assert.Equal(t, domain.MatchCounts{Matched: 1, Divergent: 1, Unmatched: 2}, counts)
}

func TestMatch_Deterministic(t *testing.T) {
	ledger := []domain.LedgerEntry{
		ledgerEntry("A", "50.00", day(3)),
		ledgerEntry("B", "50.00", day(4)),
		ledgerEntry("C", "75.25", day(5)),
	}
	records := []domain.ImportedPaymentRecord{
		imported(2, "50,00", "04/01/2024"),
		imported(3, "50,00", "09/01/2024"),
		imported(4, "75,25", "05/01/2024"),
		imported(5, "80,00", "05/01/2024"),
	}

	first, err := Match(records, ledger)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Match(records, ledger)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestMatch_EmptyImported(t *testing.T) {
	report, err := Match(nil, []domain.LedgerEntry{ledgerEntry("A", "1.00", day(1))})

	require.NoError(t, err)
	assert.Empty(t, report.Items)
	assert.Equal(t, domain.MatchCounts{}, report.Counts)
}

func TestMatch_Observer(t *testing.T) {
	rec := &observe.Recorder{}
	ledger := []domain.LedgerEntry{ledgerEntry("A", "1.00", day(1))}
	records := []domain.ImportedPaymentRecord{
		imported(2, "1,00", "01/01/2024"),
		imported(3, "3,00", "01/01/2024"),
	}

	_, err := New(WithObserver(rec)).Match(records, ledger)
	require.NoError(t, err)

	require.Equal(t, 2, rec.Count("match_decided"))
	assert.Equal(t, domain.OutcomeMatched, rec.Events[0].Outcome)
	assert.Equal(t, 1, rec.Events[1].Row)
	assert.Equal(t, domain.OutcomeUnmatched, rec.Events[1].Outcome)
}
