package main

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/ledgercast/ledgercast/internal/cli"
	"github.com/ledgercast/ledgercast/internal/common"
	"github.com/ledgercast/ledgercast/internal/export"
	"github.com/ledgercast/ledgercast/internal/model"
)

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "List the simplified transactions of the reporting window",
		Long: `Flatten the window into one row per simplified transaction: recorded
records first, then the scheduled occurrences that no recorded record has
already fulfilled. Use --csv or --json to export instead of printing.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			start, end, err := parseWindow(
				mustString(cmd, "start"), mustString(cmd, "end"))
			if err != nil {
				return err
			}

			book, cfg, err := openBook()
			if err != nil {
				return err
			}
			defer func() { _ = book.Close() }()

			fallback, _ := cmd.Flags().GetBool("expense-fallback")
			journal := buildJournal(book, cfg, fallback)

			data, err := journal.TransactionData(cmd.Context(), start, end)
			if err != nil {
				return fmt.Errorf("failed to build transaction list: %w", err)
			}

			for _, warning := range data.Warnings {
				common.LogWarn("record excluded from listing", common.Fields{
					"record":      warning.RecordGUID,
					"description": warning.Description,
					"reason":      warning.Err.Error(),
				})
			}

			rows := data.Rows()

			if path := mustString(cmd, "csv"); path != "" {
				return exportCSV(path, rows)
			}
			if path := mustString(cmd, "json"); path != "" {
				return exportJSON(path, rows)
			}

			fmt.Println(cli.TitleStyle.Render(cli.LedgerIcon + " Transactions " +
				start.Format(windowLayout) + " to " + end.Format(windowLayout)))
			cli.RenderTransactions(os.Stdout, rows)
			return nil
		},
	}

	cmd.Flags().String("start", "", "window start date (YYYY-MM-DD, default: first of this month)")
	cmd.Flags().String("end", "", "window end date (YYYY-MM-DD, default: three months out)")
	cmd.Flags().Bool("expense-fallback", false, "classify unmatchable recorded records as expenses instead of dropping them")
	cmd.Flags().String("csv", "", "write the rows to a CSV file instead of printing")
	cmd.Flags().String("json", "", "write the rows to a JSON file instead of printing")

	return cmd
}

func exportCSV(path string, rows []model.TransactionRow) error {
	bar := progressbar.NewOptions(len(rows),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Exporting transactions..."),
	)

	writer := &export.CSVWriter{OnRow: func() { _ = bar.Add(1) }}
	if err := writer.WriteToFile(path, rows); err != nil {
		return err
	}
	_ = bar.Finish()
	fmt.Fprintln(os.Stderr)

	common.LogInfo("exported transactions", common.Fields{"path": path, "rows": len(rows)})
	return nil
}

func exportJSON(path string, rows []model.TransactionRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if err := export.WriteJSON(f, rows); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to flush output file %q: %w", path, err)
	}

	common.LogInfo("exported transactions", common.Fields{"path": path, "rows": len(rows)})
	return nil
}
