package journal

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Gateway defines the contract with the external accounting book. The core
// is a read-only transform over the data it supplies; gateway errors are
// propagated unmodified.
type Gateway interface {
	// Transactions returns the recorded transactions posted inside the
	// inclusive date range.
	Transactions(ctx context.Context, start, end time.Time) ([]Transaction, error)

	// Scheduled returns the enabled scheduled-transaction templates that are
	// active for the range: started on or before start, and either
	// open-ended or not yet finished at start.
	Scheduled(ctx context.Context, start, end time.Time) ([]ScheduledTransaction, error)

	// Account resolves an account by guid.
	Account(ctx context.Context, guid string) (*Account, error)

	// Accounts lists the chart of accounts.
	Accounts(ctx context.Context) ([]Account, error)

	// BalanceAsOf returns the balance of an account, including its
	// descendants, at the end of the given date.
	BalanceAsOf(ctx context.Context, guid string, at time.Time) (decimal.Decimal, error)
}
