// Package report groups classified transactions by day and folds them into
// the recorded/scheduled balance time series.
package report

import (
	"sort"
	"time"

	"github.com/ledgercast/ledgercast/internal/classify"
	"github.com/ledgercast/ledgercast/internal/journal"
	"github.com/ledgercast/ledgercast/internal/model"
)

// Occurrences pairs a scheduled-transaction template with the concrete
// dates it lands on inside the reporting window.
type Occurrences struct {
	Template journal.ScheduledTransaction
	Dates    []time.Time
}

// DaySet is a date plus its classified transactions: recorded ones first in
// input order, then the still-pending scheduled ones in input order.
type DaySet struct {
	Date         time.Time
	Transactions []model.SimpleTransaction
}

// Aggregator builds the per-day transaction sets for a window.
type Aggregator struct {
	classifier *classify.Classifier
}

// NewAggregator creates an Aggregator around a classifier.
func NewAggregator(classifier *classify.Classifier) *Aggregator {
	return &Aggregator{classifier: classifier}
}

type dayBucket struct {
	recorded  []journal.Transaction
	scheduled []journal.ScheduledTransaction
}

// Days buckets the inputs by date and classifies them, one DaySet per
// distinct date, sorted ascending. A scheduled occurrence is dropped when a
// recorded record on the same date back-references its template; each
// recorded record consumes at most one occurrence. Recorded records that
// fail classification are excluded and surfaced as warnings; a failing
// scheduled template aborts the build.
func (a *Aggregator) Days(recorded []journal.Transaction, scheduled []Occurrences) ([]DaySet, []classify.Warning, error) {
	buckets := make(map[time.Time]*dayBucket)
	bucket := func(date time.Time) *dayBucket {
		day := midnight(date)
		b, ok := buckets[day]
		if !ok {
			b = &dayBucket{}
			buckets[day] = b
		}
		return b
	}

	for _, tx := range recorded {
		b := bucket(tx.PostDate)
		b.recorded = append(b.recorded, tx)
	}
	for _, occ := range scheduled {
		for _, date := range occ.Dates {
			b := bucket(date)
			b.scheduled = append(b.scheduled, occ.Template)
		}
	}

	dates := make([]time.Time, 0, len(buckets))
	for date := range buckets {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	days := make([]DaySet, 0, len(dates))
	var warnings []classify.Warning
	for _, date := range dates {
		b := buckets[date]
		day := DaySet{Date: date}

		// Templates already materialized as recorded records on this date
		// are consumed once per matching record.
		consumed := make(map[string]int)
		for _, tx := range b.recorded {
			if tx.ScheduledGUID != "" {
				consumed[tx.ScheduledGUID]++
			}
		}

		for _, tx := range b.recorded {
			transactions, warns, err := a.classifier.Record(tx)
			if err != nil {
				warnings = append(warnings, classify.Warning{
					RecordGUID:  tx.GUID,
					Description: tx.Description,
					Err:         err,
				})
				continue
			}
			warnings = append(warnings, warns...)
			day.Transactions = append(day.Transactions, transactions...)
		}

		for _, sx := range b.scheduled {
			if consumed[sx.GUID] > 0 {
				consumed[sx.GUID]--
				continue
			}
			transactions, err := a.classifier.Scheduled(sx)
			if err != nil {
				return nil, warnings, err
			}
			day.Transactions = append(day.Transactions, transactions...)
		}

		days = append(days, day)
	}
	return days, warnings, nil
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
