package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ledgercast/ledgercast/internal/classify"
	"github.com/ledgercast/ledgercast/internal/common"
	"github.com/ledgercast/ledgercast/internal/config"
	"github.com/ledgercast/ledgercast/internal/gnucash"
	"github.com/ledgercast/ledgercast/internal/report"
)

const windowLayout = "2006-01-02"

// openBook loads the report configuration and opens the configured book.
func openBook() (*gnucash.Book, *config.ReportConfig, error) {
	cfg, err := config.LoadReportConfig()
	if err != nil {
		return nil, nil, err
	}

	book, err := gnucash.Open(cfg.BookPath)
	if err != nil {
		return nil, nil, common.NewUserError("could not open book "+cfg.BookPath, err)
	}

	slog.Debug("opened book", "path", cfg.BookPath)
	return book, cfg, nil
}

// buildJournal wires the classifier and report pipeline over an open book.
func buildJournal(book *gnucash.Book, cfg *config.ReportConfig, expenseFallback bool) *report.Journal {
	var opts []classify.Option
	if expenseFallback {
		opts = append(opts, classify.WithExpenseFallback())
	}

	// Opening balances hang off the checkings parent; without it the
	// series starts from zero and transfers are invisible.
	var reportCfg *report.Config
	if cfg.CheckingsParentGUID != "" {
		reportCfg = &report.Config{
			CheckingsParentGUID:   cfg.CheckingsParentGUID,
			LiabilitiesParentGUID: cfg.LiabilitiesParentGUID,
		}
	}

	return report.NewJournal(book, classify.New(opts...), reportCfg)
}

// parseWindow resolves the reporting window. Defaults cover the current
// month plus a three-month forecast horizon.
func parseWindow(startFlag, endFlag string) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 4, -1)

	if startFlag != "" {
		parsed, err := time.Parse(windowLayout, startFlag)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --start %q: %w", startFlag, err)
		}
		start = parsed
	}
	if endFlag != "" {
		parsed, err := time.Parse(windowLayout, endFlag)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --end %q: %w", endFlag, err)
		}
		end = parsed
	}
	return start, end, nil
}
