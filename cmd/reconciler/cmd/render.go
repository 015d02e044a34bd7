package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"payment-reconciliation/internal/domain"
)

const (
	colorGreen   lipgloss.Color = "#a6e3a1"
	colorYellow  lipgloss.Color = "#f9e2af"
	colorRed     lipgloss.Color = "#f38ba8"
	colorPeach   lipgloss.Color = "#fab387"
	colorSubtext lipgloss.Color = "#a6adc8"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorSubtext)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorSubtext)
	tieStyle    = lipgloss.NewStyle().Foreground(colorPeach)

	kindStyles = map[domain.OutcomeKind]lipgloss.Style{
		domain.OutcomeMatched:   lipgloss.NewStyle().Foreground(colorGreen),
		domain.OutcomeDivergent: lipgloss.NewStyle().Foreground(colorYellow),
		domain.OutcomeUnmatched: lipgloss.NewStyle().Foreground(colorRed),
	}
)

// Column widths of the item table.
const (
	rowWidth     = 6
	kindWidth    = 10
	amountWidth  = 14
	dateWidth    = 12
	accountWidth = 16
)

func cell(s string, width int, style lipgloss.Style) string {
	return style.Width(width).Render(s)
}

// renderResult prints the summary followed by one line per imported record.
func renderResult(w io.Writer, r *domain.ReconciliationResult) {
	s := r.Summary

	fmt.Fprintln(w, titleStyle.Render("Reconciliation "+r.RunID))
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("upload %s, %d ledger entries, generated %s",
		r.Upload, r.LedgerEntries, r.GeneratedAt.Format("2006-01-02 15:04:05"))))
	fmt.Fprintln(w)

	for _, c := range []struct {
		kind domain.OutcomeKind
		sum  domain.CategorySummary
	}{
		{domain.OutcomeMatched, s.Matched},
		{domain.OutcomeDivergent, s.Divergent},
		{domain.OutcomeUnmatched, s.Unmatched},
	} {
		fmt.Fprintln(w,
			cell(string(c.kind), kindWidth, kindStyles[c.kind])+
				cell(strconv.Itoa(c.sum.Count), rowWidth, lipgloss.NewStyle().Align(lipgloss.Right))+
				cell(c.sum.Total.StringFixed(2), amountWidth, lipgloss.NewStyle().Align(lipgloss.Right)))
	}
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("%d imported records, %d rows skipped", s.TotalImported, skippedTotal(r.Skipped))))

	if r.Report == nil || len(r.Report.Items) == 0 {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w,
		cell("ROW", rowWidth, headerStyle)+
			cell("OUTCOME", kindWidth, headerStyle)+
			cell("AMOUNT", amountWidth, headerStyle.Align(lipgloss.Right))+"  "+
			cell("DATE", dateWidth, headerStyle)+
			cell("LEDGER DATE", dateWidth, headerStyle)+
			cell("ACCOUNT", accountWidth, headerStyle)+
			headerStyle.Render("NOTE"))

	for _, item := range r.Report.Items {
		o := item.Outcome
		ledgerDate, account := "", ""
		if o.Ledger != nil {
			ledgerDate = o.Ledger.MovementDate.Format()
			account = o.Ledger.Account
		}

		var notes []string
		if o.Divergence != nil {
			notes = append(notes, string(o.Divergence.Reason))
		}
		if o.Candidates > 1 {
			notes = append(notes, tieStyle.Render(fmt.Sprintf("tie: %d candidates", o.Candidates)))
		}

		fmt.Fprintln(w,
			cell(strconv.Itoa(item.Record.Row), rowWidth, lipgloss.NewStyle())+
				cell(string(o.Kind), kindWidth, kindStyles[o.Kind])+
				cell(item.Record.Amount.StringFixed(2), amountWidth, lipgloss.NewStyle().Align(lipgloss.Right))+"  "+
				cell(dash(item.Record.Date.Format()), dateWidth, lipgloss.NewStyle())+
				cell(dash(ledgerDate), dateWidth, lipgloss.NewStyle())+
				cell(dash(account), accountWidth, lipgloss.NewStyle())+
				strings.Join(notes, ", "))
	}
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func skippedTotal(skipped map[domain.SkipReason]int) int {
	n := 0
	for _, c := range skipped {
		n += c
	}
	return n
}
