package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgercast/ledgercast/internal/journal"
)

// Test chart of accounts shared across the package tests.
var (
	checkingsAcct = &journal.Account{GUID: "guid-checkings", Name: "Checkings", Fullname: "Assets:Checkings", Type: journal.AccountBank}
	savingsAcct   = &journal.Account{GUID: "guid-savings", Name: "Savings", Fullname: "Assets:Savings", Type: journal.AccountAsset}
	foodAcct      = &journal.Account{GUID: "guid-food", Name: "Food", Fullname: "Expenses:Food", Type: journal.AccountExpense}
	salaryAcct    = &journal.Account{GUID: "guid-salary", Name: "Salary", Fullname: "Income:Salary", Type: journal.AccountIncome}
	cardAcct      = &journal.Account{GUID: "guid-card", Name: "CreditCard", Fullname: "Liabilities:CreditCard", Type: journal.AccountLiability}
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func split(account *journal.Account, value string) journal.Split {
	return journal.Split{Account: account, Value: dec(value)}
}

// expenseRecord builds a recorded checkings expense of the given value.
func expenseRecord(guid string, day time.Time, value string) journal.Transaction {
	return journal.Transaction{
		GUID:        guid,
		PostDate:    day,
		Description: "expense " + guid,
		Splits:      []journal.Split{split(foodAcct, value), split(checkingsAcct, "-" + value)},
	}
}

// incomeRecord builds a recorded income of the given value.
func incomeRecord(guid string, day time.Time, value string) journal.Transaction {
	return journal.Transaction{
		GUID:        guid,
		PostDate:    day,
		Description: "income " + guid,
		Splits:      []journal.Split{split(checkingsAcct, value), split(salaryAcct, "-" + value)},
	}
}

// quittanceRecord builds a recorded credit-card payment.
func quittanceRecord(guid string, day time.Time, value string) journal.Transaction {
	return journal.Transaction{
		GUID:        guid,
		PostDate:    day,
		Description: "card payment " + guid,
		Splits:      []journal.Split{split(cardAcct, value), split(checkingsAcct, "-" + value)},
	}
}

// liabilityRecord builds a recorded expense paid with the credit card.
func liabilityRecord(guid string, day time.Time, value string) journal.Transaction {
	return journal.Transaction{
		GUID:        guid,
		PostDate:    day,
		Description: "card expense " + guid,
		Splits:      []journal.Split{split(foodAcct, value), split(cardAcct, "-" + value)},
	}
}

// transferRecord builds a recorded checkings-to-savings transfer.
func transferRecord(guid string, day time.Time, value string) journal.Transaction {
	return journal.Transaction{
		GUID:        guid,
		PostDate:    day,
		Description: "transfer " + guid,
		Splits:      []journal.Split{split(savingsAcct, value), split(checkingsAcct, "-" + value)},
	}
}

// scheduledExpense builds an enabled monthly expense template.
func scheduledExpense(guid, name, value string, anchor time.Time) journal.ScheduledTransaction {
	return journal.ScheduledTransaction{
		GUID:    guid,
		Name:    name,
		Enabled: true,
		Start:   anchor,
		Recurrence: journal.Recurrence{
			Start:      anchor,
			PeriodType: journal.PeriodMonth,
			Multiplier: 1,
		},
		Splits: []journal.TemplateSplit{
			{Account: foodAcct, Debit: dec(value)},
			{Account: checkingsAcct, Credit: dec(value)},
		},
	}
}

// scheduledIncome builds an enabled monthly income template.
func scheduledIncome(guid, name, value string, anchor time.Time) journal.ScheduledTransaction {
	return journal.ScheduledTransaction{
		GUID:    guid,
		Name:    name,
		Enabled: true,
		Start:   anchor,
		Recurrence: journal.Recurrence{
			Start:      anchor,
			PeriodType: journal.PeriodMonth,
			Multiplier: 1,
		},
		Splits: []journal.TemplateSplit{
			{Account: checkingsAcct, Debit: dec(value)},
			{Account: salaryAcct, Credit: dec(value)},
		},
	}
}
