// Package model defines the core domain models used throughout the application.
package model

import "fmt"

// TransactionType indicates the economic meaning of a simplified transaction.
type TransactionType string

// Transaction type constants. These are stable string tags and are safe to
// persist or round-trip through serialized forms.
const (
	TypeExpense        TransactionType = "expense"
	TypeIncome         TransactionType = "income"
	TypeLiability      TransactionType = "liability"
	TypeQuittance      TransactionType = "quittance"
	TypeTransfer       TransactionType = "transfer"
	TypeOpeningBalance TransactionType = "opening_balance"
)

// ParseTransactionType converts a stable string tag back into a TransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(s) {
	case TypeExpense, TypeIncome, TypeLiability, TypeQuittance, TypeTransfer, TypeOpeningBalance:
		return TransactionType(s), nil
	default:
		return "", fmt.Errorf("unknown transaction type %q", s)
	}
}

// DisplayName returns the human-readable label used in tables.
func (t TransactionType) DisplayName() string {
	switch t {
	case TypeExpense:
		return "Expense"
	case TypeIncome:
		return "Income"
	case TypeLiability:
		return "Liability"
	case TypeQuittance:
		return "Quittance"
	case TypeTransfer:
		return "Transfer"
	case TypeOpeningBalance:
		return "Opening Balance"
	default:
		return string(t)
	}
}

// BalanceType indicates which account category a balance row refers to.
type BalanceType string

// Balance type constants.
const (
	BalanceCheckings   BalanceType = "checkings"
	BalanceLiabilities BalanceType = "liabilities"
)

// DisplayName returns the human-readable label used in tables.
func (b BalanceType) DisplayName() string {
	switch b {
	case BalanceCheckings:
		return "Checkings"
	case BalanceLiabilities:
		return "Liabilities"
	default:
		return string(b)
	}
}
