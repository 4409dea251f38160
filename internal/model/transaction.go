package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SimpleTransaction is a classified economic event derived from one
// value-group of a double-entry record or a scheduled-transaction template.
// It is immutable once created.
type SimpleTransaction struct {
	Description     string
	FromAccount     string
	FromAccountGUID string
	ToAccount       string
	ToAccountGUID   string
	Type            TransactionType
	Value           decimal.Decimal
	IsScheduled     bool
}

// Validate checks the invariants a classifier must uphold.
func (t *SimpleTransaction) Validate() error {
	if t.Value.IsNegative() {
		return fmt.Errorf("value must be non-negative, got %s", t.Value)
	}
	if _, err := ParseTransactionType(string(t.Type)); err != nil {
		return err
	}
	return nil
}

// TransactionRow is one row of the flat tabular form exposed for audit and
// listing views. It round-trips losslessly through the export package.
type TransactionRow struct {
	Date        time.Time
	Description string
	FromAccount string
	ToAccount   string
	Type        TransactionType
	Value       decimal.Decimal
	IsScheduled bool
}
