package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance carries the certain (recorded) and forecast (scheduled) delta or
// running total for one account category on one date. The scheduled figure
// always includes the recorded one: it is the balance the category reaches
// once pending scheduled transactions materialize.
type Balance struct {
	Recorded  decimal.Decimal
	Scheduled decimal.Decimal
}

// BalanceData groups the per-category balances of a single day. A nil
// category means no activity of that category on the day, which is distinct
// from a zero-valued Balance.
type BalanceData struct {
	Checkings *Balance
	Liability *Balance
}

// BalanceRow is one row of the balance time series. Rows are ordered but not
// keyed: a date can appear twice for a category when the recorded and
// scheduled totals diverge.
type BalanceRow struct {
	Date      time.Time
	Type      BalanceType
	Diff      decimal.Decimal
	Balance   decimal.Decimal
	Scheduled bool
}

// SeriesConfig seeds the balance series with opening balances resolved from
// the ledger, and carries the account-path prefix that decides whether a
// transfer is checkings-relevant.
type SeriesConfig struct {
	OpeningDate      time.Time
	CheckingsParent  string
	OpeningBalance   decimal.Decimal
	OpeningLiability *decimal.Decimal
}
