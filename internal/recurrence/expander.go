// Package recurrence expands recurring-transaction rules into concrete
// occurrence dates within a bounded reporting window.
package recurrence

import (
	"fmt"
	"time"

	"github.com/ledgercast/ledgercast/internal/common"
	"github.com/ledgercast/ledgercast/internal/journal"
)

// Occurrences expands a recurrence rule into the ordered dates that fall
// inside [start, end] inclusive. Generation starts at the rule's anchor and
// advances by the rule's multiplier of months or years; for month periods an
// anchor day missing from the target month is clamped to that month's last
// day. The result is finite because the window is bounded.
func Occurrences(rec journal.Recurrence, start, end time.Time) ([]time.Time, error) {
	if rec.Multiplier <= 0 {
		return nil, fmt.Errorf("%w: multiplier must be positive, got %d",
			common.ErrUnsupportedRecurrence, rec.Multiplier)
	}
	switch rec.PeriodType {
	case journal.PeriodMonth, journal.PeriodEndOfMonth, journal.PeriodYear:
	default:
		return nil, fmt.Errorf("%w: unknown period type %q",
			common.ErrUnsupportedRecurrence, rec.PeriodType)
	}

	var occurrences []time.Time
	anchor := midnight(rec.Start)
	cur := anchor
	for !cur.After(end) {
		if !cur.Before(start) {
			occurrences = append(occurrences, cur)
		}
		cur = next(rec, anchor, cur)
	}
	return occurrences, nil
}

// next computes the occurrence following prev. The anchor's day of month is
// carried, so a clamped February occurrence does not drag later months down
// to day 28.
func next(rec journal.Recurrence, anchor, prev time.Time) time.Time {
	year, month, _ := prev.Date()

	switch rec.PeriodType {
	case journal.PeriodYear:
		return clampedDate(year+rec.Multiplier, month, anchor.Day())
	case journal.PeriodEndOfMonth:
		year, month = addMonths(year, month, rec.Multiplier)
		return clampedDate(year, month, 31)
	default: // journal.PeriodMonth
		year, month = addMonths(year, month, rec.Multiplier)
		return clampedDate(year, month, anchor.Day())
	}
}

func addMonths(year int, month time.Month, n int) (int, time.Month) {
	m := int(month) - 1 + n
	return year + m/12, time.Month(m%12 + 1)
}

// clampedDate builds a date, clamping the day to the month's length.
func clampedDate(year int, month time.Month, day int) time.Time {
	if last := daysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
