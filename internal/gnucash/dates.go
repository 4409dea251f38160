package gnucash

import (
	"fmt"
	"time"
)

// GnuCash has stored timestamps in a few layouts over the years; newer books
// use the spaced form, older ones a compact digit run, and pure dates show
// up in schedule columns.
var bookTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"20060102150405",
	"2006-01-02",
	"20060102",
}

// parseBookTime parses a timestamp column, returning a UTC midnight-or-later
// time.
func parseBookTime(s string) (time.Time, error) {
	for _, layout := range bookTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized book timestamp %q", s)
}

// midnight truncates a book timestamp to its calendar date.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
