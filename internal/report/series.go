package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgercast/ledgercast/internal/model"
)

// runningTotals is the accumulator for one category, threaded explicitly
// through the fold over the day sequence.
type runningTotals struct {
	recorded  decimal.Decimal
	scheduled decimal.Decimal
}

// step advances the category by one day's delta and returns the rows to
// emit: the recorded row always, a scheduled row only when the forecast
// total diverges from the recorded one.
func (r *runningTotals) step(balanceType model.BalanceType, date time.Time, delta model.Balance) []model.BalanceRow {
	r.recorded = r.recorded.Add(delta.Recorded)
	rows := []model.BalanceRow{{
		Date:    date,
		Type:    balanceType,
		Diff:    delta.Recorded,
		Balance: r.recorded,
	}}

	r.scheduled = r.scheduled.Add(delta.Scheduled)
	if !r.scheduled.Equal(r.recorded) {
		rows = append(rows, model.BalanceRow{
			Date:      date,
			Type:      balanceType,
			Diff:      delta.Scheduled.Sub(delta.Recorded),
			Balance:   r.scheduled,
			Scheduled: true,
		})
	}
	return rows
}

// seed initializes both totals and produces the opening row.
func (r *runningTotals) seed(balanceType model.BalanceType, date time.Time, opening decimal.Decimal) model.BalanceRow {
	r.recorded = opening
	r.scheduled = opening
	return model.BalanceRow{
		Date:    date,
		Type:    balanceType,
		Diff:    decimal.Zero,
		Balance: opening,
	}
}

// BuildSeries folds the sorted day sets into the balance time series.
// The output concatenates all checkings rows followed by all liability
// rows; consumers relying on the series have always seen the two category
// blocks whole, so the order is kept rather than interleaved by date.
func BuildSeries(days []DaySet, config *model.SeriesConfig) []model.BalanceRow {
	var checkings, liability runningTotals
	var checkingsRows, liabilityRows []model.BalanceRow
	var checkingsParent string

	if config != nil {
		checkingsParent = config.CheckingsParent
		checkingsRows = append(checkingsRows, checkings.seed(
			model.BalanceCheckings, config.OpeningDate, config.OpeningBalance))
		if config.OpeningLiability != nil {
			liabilityRows = append(liabilityRows, liability.seed(
				model.BalanceLiabilities, config.OpeningDate, *config.OpeningLiability))
		}
	}

	for _, day := range days {
		data := day.Balance(checkingsParent)
		if data.Checkings != nil {
			checkingsRows = append(checkingsRows, checkings.step(
				model.BalanceCheckings, day.Date, *data.Checkings)...)
		}
		if data.Liability != nil {
			liabilityRows = append(liabilityRows, liability.step(
				model.BalanceLiabilities, day.Date, *data.Liability)...)
		}
	}

	return append(checkingsRows, liabilityRows...)
}

// FlatRows renders the day sets as the flat tabular form used by audit and
// listing views, one row per simplified transaction.
func FlatRows(days []DaySet) []model.TransactionRow {
	var rows []model.TransactionRow
	for _, day := range days {
		for _, tr := range day.Transactions {
			rows = append(rows, model.TransactionRow{
				Date:        day.Date,
				Description: tr.Description,
				FromAccount: tr.FromAccount,
				ToAccount:   tr.ToAccount,
				Type:        tr.Type,
				Value:       tr.Value,
				IsScheduled: tr.IsScheduled,
			})
		}
	}
	return rows
}
