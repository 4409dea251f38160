package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MockGateway is an in-memory Gateway used in tests and demos.
type MockGateway struct {
	Recorded  []Transaction
	Templates []ScheduledTransaction
	Book      map[string]*Account
	Balances  map[string]decimal.Decimal // guid -> balance regardless of date
}

// NewMockGateway creates an empty mock gateway.
func NewMockGateway() *MockGateway {
	return &MockGateway{
		Book:     make(map[string]*Account),
		Balances: make(map[string]decimal.Decimal),
	}
}

// AddAccount registers an account and returns it for fixture building.
func (m *MockGateway) AddAccount(guid, fullname string, accountType AccountType) *Account {
	a := &Account{GUID: guid, Name: fullname, Fullname: fullname, Type: accountType}
	m.Book[guid] = a
	return a
}

// Transactions returns recorded transactions posted within the range.
func (m *MockGateway) Transactions(_ context.Context, start, end time.Time) ([]Transaction, error) {
	var out []Transaction
	for _, tx := range m.Recorded {
		if !tx.PostDate.Before(start) && !tx.PostDate.After(end) {
			out = append(out, tx)
		}
	}
	return out, nil
}

// Scheduled returns the active enabled templates for the range.
func (m *MockGateway) Scheduled(_ context.Context, start, _ time.Time) ([]ScheduledTransaction, error) {
	var out []ScheduledTransaction
	for _, sx := range m.Templates {
		if !sx.Enabled || sx.Start.After(start) {
			continue
		}
		if sx.End != nil && sx.End.Before(start) {
			continue
		}
		out = append(out, sx)
	}
	return out, nil
}

// Account resolves an account by guid.
func (m *MockGateway) Account(_ context.Context, guid string) (*Account, error) {
	a, ok := m.Book[guid]
	if !ok {
		return nil, fmt.Errorf("account %s: not found", guid)
	}
	return a, nil
}

// Accounts lists the registered accounts.
func (m *MockGateway) Accounts(_ context.Context) ([]Account, error) {
	out := make([]Account, 0, len(m.Book))
	for _, a := range m.Book {
		out = append(out, *a)
	}
	return out, nil
}

// BalanceAsOf returns the fixture balance for the account.
func (m *MockGateway) BalanceAsOf(_ context.Context, guid string, _ time.Time) (decimal.Decimal, error) {
	if _, ok := m.Book[guid]; !ok {
		return decimal.Zero, fmt.Errorf("account %s: not found", guid)
	}
	return m.Balances[guid], nil
}
