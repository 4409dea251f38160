package report

import (
	"context"
	"fmt"
	"time"

	"github.com/ledgercast/ledgercast/internal/classify"
	"github.com/ledgercast/ledgercast/internal/common"
	"github.com/ledgercast/ledgercast/internal/journal"
	"github.com/ledgercast/ledgercast/internal/model"
	"github.com/ledgercast/ledgercast/internal/recurrence"
)

// Config selects the parent accounts whose balances seed the series.
type Config struct {
	CheckingsParentGUID   string
	LiabilitiesParentGUID string // optional
}

// Journal orchestrates one report build: gateway fetch, occurrence
// expansion, daily aggregation. Each call is independent; no state is
// carried between windows.
type Journal struct {
	gateway    journal.Gateway
	aggregator *Aggregator
	config     *Config
}

// NewJournal creates a Journal over a gateway. config may be nil, in which
// case the series starts from zero and transfers are invisible.
func NewJournal(gateway journal.Gateway, classifier *classify.Classifier, config *Config) *Journal {
	return &Journal{
		gateway:    gateway,
		aggregator: NewAggregator(classifier),
		config:     config,
	}
}

// TransactionData is the fully aggregated input of one reporting window.
type TransactionData struct {
	Days     []DaySet
	Config   *model.SeriesConfig
	Warnings []classify.Warning
}

// BalanceSeries folds the window into the output time series.
func (td *TransactionData) BalanceSeries() []model.BalanceRow {
	return BuildSeries(td.Days, td.Config)
}

// Rows renders the window as the flat tabular form.
func (td *TransactionData) Rows() []model.TransactionRow {
	return FlatRows(td.Days)
}

// TransactionData fetches and aggregates the window [start, end].
func (j *Journal) TransactionData(ctx context.Context, start, end time.Time) (*TransactionData, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end %s before start %s",
			common.ErrInvalidRange, end.Format("2006-01-02"), start.Format("2006-01-02"))
	}

	recorded, err := j.gateway.Transactions(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recorded transactions: %w", err)
	}

	templates, err := j.gateway.Scheduled(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch scheduled transactions: %w", err)
	}

	var occurrences []Occurrences
	for _, sx := range templates {
		dates, err := recurrence.Occurrences(sx.Recurrence, start, end)
		if err != nil {
			return nil, fmt.Errorf("template %s (%s): %w", sx.GUID, sx.Name, err)
		}
		if len(dates) == 0 {
			continue
		}
		occurrences = append(occurrences, Occurrences{Template: sx, Dates: dates})
	}

	days, warnings, err := j.aggregator.Days(recorded, occurrences)
	if err != nil {
		return nil, err
	}

	seriesConfig, err := j.seriesConfig(ctx, start)
	if err != nil {
		return nil, err
	}

	return &TransactionData{
		Days:     days,
		Config:   seriesConfig,
		Warnings: warnings,
	}, nil
}

// seriesConfig resolves the opening balances as of the day before the
// window, when parent accounts are configured.
func (j *Journal) seriesConfig(ctx context.Context, start time.Time) (*model.SeriesConfig, error) {
	if j.config == nil {
		return nil, nil
	}

	checkings, err := j.gateway.Account(ctx, j.config.CheckingsParentGUID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve checkings parent: %w", err)
	}

	openingDate := start.AddDate(0, 0, -1)
	openingBalance, err := j.gateway.BalanceAsOf(ctx, checkings.GUID, openingDate)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve opening balance: %w", err)
	}

	config := &model.SeriesConfig{
		OpeningDate:     openingDate,
		OpeningBalance:  openingBalance,
		CheckingsParent: checkings.Fullname,
	}

	if j.config.LiabilitiesParentGUID != "" {
		liability, err := j.gateway.Account(ctx, j.config.LiabilitiesParentGUID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve liabilities parent: %w", err)
		}
		openingLiability, err := j.gateway.BalanceAsOf(ctx, liability.GUID, openingDate)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve opening liability: %w", err)
		}
		config.OpeningLiability = &openingLiability
	}

	return config, nil
}
