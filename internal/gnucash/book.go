// Package gnucash implements the journal.Gateway interface on top of a
// GnuCash sqlite book. The book is opened read-only; this package never
// writes to it.
package gnucash

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgercast/ledgercast/internal/common"
	"github.com/ledgercast/ledgercast/internal/journal"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Book is a read-only connection to a GnuCash sqlite file.
type Book struct {
	db       *sql.DB
	path     string
	accounts map[string]*journal.Account
}

// Open opens a GnuCash sqlite book and loads its chart of accounts.
func Open(path string) (*Book, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: book path is required", common.ErrInvalidConfig)
	}

	db, err := sql.Open("sqlite3", path+"?mode=ro&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open book: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping book: %w", err)
	}

	book := &Book{db: db, path: path}
	if err := book.loadAccounts(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return book, nil
}

// Close closes the underlying database connection.
func (b *Book) Close() error {
	return b.db.Close()
}

// loadAccounts caches the chart of accounts with resolved full names. Root
// and template accounts do not contribute path segments.
func (b *Book) loadAccounts(ctx context.Context) error {
	rows, err := b.db.QueryContext(ctx, `
		SELECT guid, name, account_type, COALESCE(parent_guid, '')
		FROM accounts
	`)
	if err != nil {
		return fmt.Errorf("failed to query accounts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	type rawAccount struct {
		guid       string
		name       string
		acctType   string
		parentGUID string
	}
	raw := make(map[string]rawAccount)
	for rows.Next() {
		var a rawAccount
		if err := rows.Scan(&a.guid, &a.name, &a.acctType, &a.parentGUID); err != nil {
			return fmt.Errorf("failed to scan account: %w", err)
		}
		raw[a.guid] = a
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate accounts: %w", err)
	}

	var fullname func(guid string) string
	fullname = func(guid string) string {
		a, ok := raw[guid]
		if !ok || a.acctType == "ROOT" {
			return ""
		}
		parent := fullname(a.parentGUID)
		if parent == "" {
			return a.name
		}
		return parent + ":" + a.name
	}

	b.accounts = make(map[string]*journal.Account, len(raw))
	for guid, a := range raw {
		if a.acctType == "ROOT" {
			continue
		}
		b.accounts[guid] = &journal.Account{
			GUID:     guid,
			Name:     a.name,
			Fullname: fullname(guid),
			Type:     journal.AccountType(a.acctType),
		}
	}
	return nil
}

// Account resolves an account by guid.
func (b *Book) Account(_ context.Context, guid string) (*journal.Account, error) {
	account, ok := b.accounts[guid]
	if !ok {
		return nil, fmt.Errorf("account %s: %w", guid, common.ErrNotFound)
	}
	return account, nil
}

// Accounts lists the chart of accounts sorted by full name.
func (b *Book) Accounts(_ context.Context) ([]journal.Account, error) {
	out := make([]journal.Account, 0, len(b.accounts))
	for _, a := range b.accounts {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Fullname < out[j].Fullname })
	return out, nil
}

// BalanceAsOf sums the split values of an account and its descendants up to
// the end of the given date. Credit-natured accounts report their natural
// positive balance.
func (b *Book) BalanceAsOf(ctx context.Context, guid string, at time.Time) (decimal.Decimal, error) {
	account, ok := b.accounts[guid]
	if !ok {
		return decimal.Zero, fmt.Errorf("account %s: %w", guid, common.ErrNotFound)
	}

	// post_date layouts do not collate together across book generations,
	// so the cutoff is applied after parsing instead of in SQL.
	rows, err := b.db.QueryContext(ctx, `
		WITH RECURSIVE subaccounts(guid) AS (
			SELECT guid FROM accounts WHERE guid = ?
			UNION ALL
			SELECT a.guid FROM accounts a
			JOIN subaccounts sa ON a.parent_guid = sa.guid
		)
		SELECT s.value_num, s.value_denom, t.post_date
		FROM splits s
		JOIN subaccounts sa ON sa.guid = s.account_guid
		JOIN transactions t ON t.guid = s.tx_guid
	`, guid)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to query balance: %w", err)
	}
	defer func() { _ = rows.Close() }()

	cutoff := endOfDay(at)
	balance := decimal.Zero
	for rows.Next() {
		var num, denom int64
		var postDate string
		if err := rows.Scan(&num, &denom, &postDate); err != nil {
			return decimal.Zero, fmt.Errorf("failed to scan split value: %w", err)
		}
		posted, err := parseBookTime(postDate)
		if err != nil {
			return decimal.Zero, err
		}
		if posted.After(cutoff) {
			continue
		}
		value, err := rationalValue(num, denom)
		if err != nil {
			return decimal.Zero, err
		}
		balance = balance.Add(value)
	}
	if err := rows.Err(); err != nil {
		return decimal.Zero, fmt.Errorf("failed to iterate splits: %w", err)
	}

	if creditNatured(account.Type) {
		balance = balance.Neg()
	}
	return balance, nil
}

// rationalValue converts a GnuCash num/denom pair into a decimal.
func rationalValue(num, denom int64) (decimal.Decimal, error) {
	if denom == 0 {
		return decimal.Zero, fmt.Errorf("split value with zero denominator")
	}
	return decimal.NewFromInt(num).Div(decimal.NewFromInt(denom)), nil
}

// creditNatured reports whether an account type grows on the credit side,
// so its natural balance is the negated split sum.
func creditNatured(t journal.AccountType) bool {
	switch t {
	case journal.AccountLiability, journal.AccountCredit, journal.AccountIncome, journal.AccountEquity:
		return true
	case "PAYABLE":
		return true
	default:
		return false
	}
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, time.UTC)
}
