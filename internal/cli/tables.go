package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/ledgercast/ledgercast/internal/journal"
	"github.com/ledgercast/ledgercast/internal/model"
)

const tableDateLayout = "2006-01-02"

// RenderBalances prints the balance time series as an aligned table.
// Forecast rows are dimmed so recorded history stands out.
func RenderBalances(out io.Writer, rows []model.BalanceRow) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer func() { _ = w.Flush() }()

	writeHeader(w, "Date", "Category", "Diff", "Balance", "")

	for _, row := range rows {
		note := ""
		if row.Scheduled {
			note = SubtleStyle.Render("forecast")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			row.Date.Format(tableDateLayout),
			row.Type.DisplayName(),
			styleAmount(row.Diff, row.Scheduled),
			styleAmount(row.Balance, row.Scheduled),
			note)
	}
}

// RenderTransactions prints the flat transaction table.
func RenderTransactions(out io.Writer, rows []model.TransactionRow) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer func() { _ = w.Flush() }()

	writeHeader(w, "Date", "Description", "From", "To", "Type", "Value", "")

	for _, row := range rows {
		note := ""
		if row.IsScheduled {
			note = SubtleStyle.Render("forecast")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			row.Date.Format(tableDateLayout),
			row.Description,
			row.FromAccount,
			row.ToAccount,
			row.Type.DisplayName(),
			row.Value.StringFixed(2),
			note)
	}
}

// RenderAccounts prints the chart of accounts.
func RenderAccounts(out io.Writer, accounts []journal.Account) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer func() { _ = w.Flush() }()

	writeHeader(w, "Account", "Type", "GUID")

	for _, account := range accounts {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			account.Fullname,
			string(account.Type),
			SubtleStyle.Render(account.GUID))
	}
}

func writeHeader(w io.Writer, columns ...string) {
	styled := make([]string, len(columns))
	dashes := make([]string, len(columns))
	for i, column := range columns {
		styled[i] = BoldStyle.Render(column)
		dashes[i] = strings.Repeat("-", len(column))
	}
	fmt.Fprintln(w, strings.Join(styled, "\t"))
	fmt.Fprintln(w, strings.Join(dashes, "\t"))
}

func styleAmount(value decimal.Decimal, scheduled bool) string {
	text := value.StringFixed(2)
	if scheduled {
		return SubtleStyle.Render(text)
	}
	if value.IsNegative() {
		return DebitStyle.Render(text)
	}
	return CreditStyle.Render(text)
}
