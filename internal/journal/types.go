// Package journal defines the boundary to the external accounting book:
// the raw ledger types and the Gateway interface that supplies them.
package journal

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType mirrors the external chart-of-accounts taxonomy.
type AccountType string

// Account type constants from the external taxonomy.
const (
	AccountBank      AccountType = "BANK"
	AccountAsset     AccountType = "ASSET"
	AccountLiability AccountType = "LIABILITY"
	AccountExpense   AccountType = "EXPENSE"
	AccountIncome    AccountType = "INCOME"
	AccountEquity    AccountType = "EQUITY"
	AccountCash      AccountType = "CASH"
	AccountCredit    AccountType = "CREDIT"
)

// Account is a node of the external chart of accounts.
type Account struct {
	GUID     string
	Name     string
	Fullname string // colon-joined path, e.g. "Assets:Checkings"
	Type     AccountType
}

// Split is one leg of a double-entry record. The sign of Value determines
// the leg role: positive is a debit, negative is a credit.
type Split struct {
	Account *Account
	Value   decimal.Decimal
}

// IsDebit reports whether the split is the debit leg of its value-group.
func (s Split) IsDebit() bool { return s.Value.IsPositive() }

// IsCredit reports whether the split is the credit leg of its value-group.
func (s Split) IsCredit() bool { return s.Value.IsNegative() }

// Transaction is an already-posted ledger entry with fixed splits.
type Transaction struct {
	GUID        string
	PostDate    time.Time
	Description string
	Splits      []Split
	// ScheduledGUID back-references the scheduled-transaction template this
	// record fulfills, when the book tracked that. Empty otherwise.
	ScheduledGUID string
}

// PeriodType enumerates the recurrence periods the book can express.
type PeriodType string

// Recurrence period constants.
const (
	PeriodMonth      PeriodType = "month"
	PeriodEndOfMonth PeriodType = "end_of_month"
	PeriodYear       PeriodType = "year"
)

// Recurrence is a recurring-occurrence rule anchored at a start date.
type Recurrence struct {
	Start      time.Time
	PeriodType PeriodType
	Multiplier int
}

// TemplateSplit is one slot of a scheduled-transaction template. A slot
// carries either a fixed numeric amount or a formula expression for the
// debit or credit side; the unused side is zero and empty.
type TemplateSplit struct {
	Account       *Account
	Debit         decimal.Decimal
	Credit        decimal.Decimal
	DebitFormula  string
	CreditFormula string
}

// ScheduledTransaction is a recurring-transaction template.
type ScheduledTransaction struct {
	GUID       string
	Name       string
	Enabled    bool
	Start      time.Time
	End        *time.Time // nil means open-ended
	Recurrence Recurrence
	Splits     []TemplateSplit
}
