package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ledgercast/ledgercast/internal/cli"
	"github.com/ledgercast/ledgercast/internal/common"
)

func forecastCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Project the checkings and liability balances forward",
		Long: `Build the balance time series for the reporting window: recorded history
plus the scheduled transactions expanded into future occurrences. Days where
the forecast diverges from the recorded balance get a second, dimmed row.`,
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
				common.LogError(err, "failed to build forecast", common.Fields{
					"start": start.Format(windowLayout),
					"end":   end.Format(windowLayout),
				})
				return err
			}

			for _, warning := range data.Warnings {
				common.LogWarn("record excluded from forecast", common.Fields{
					"record":      warning.RecordGUID,
					"description": warning.Description,
					"reason":      warning.Err.Error(),
				})
				fmt.Fprintln(os.Stderr, cli.FormatWarning(warning.Description+": "+warning.Err.Error()))
			}

			fmt.Println(cli.TitleStyle.Render(cli.ForecastIcon + " Balance forecast " +
				start.Format(windowLayout) + " to " + end.Format(windowLayout)))
			cli.RenderBalances(os.Stdout, data.BalanceSeries())
			return nil
		},
	}

	cmd.Flags().String("start", "", "window start date (YYYY-MM-DD, default: first of this month)")
	cmd.Flags().String("end", "", "window end date (YYYY-MM-DD, default: three months out)")
	cmd.Flags().Bool("expense-fallback", false, "classify unmatchable recorded records as expenses instead of dropping them")

	return cmd
}

func mustString(cmd *cobra.Command, name string) string {
	value, _ := cmd.Flags().GetString(name)
	return value
}
