package gnucash

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ledgercast/ledgercast/internal/journal"
)

// Transactions returns the recorded transactions posted inside the
// inclusive date range, with splits resolved against the account cache and
// scheduled-template back-references attached. The post_date layout varies
// across book generations and the layouts do not collate together, so the
// window filter and the ordering happen after parsing, not in SQL.
func (b *Book) Transactions(ctx context.Context, start, end time.Time) ([]journal.Transaction, error) {
	rows, err := b.db.QueryContext(ctx, `
		SELECT guid, post_date, description
		FROM transactions
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	windowEnd := endOfDay(end)
	var transactions []journal.Transaction
	for rows.Next() {
		var guid, postDate, description string
		if err := rows.Scan(&guid, &postDate, &description); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		posted, err := parseBookTime(postDate)
		if err != nil {
			return nil, fmt.Errorf("transaction %s: %w", guid, err)
		}
		if posted.Before(start) || posted.After(windowEnd) {
			continue
		}
		transactions = append(transactions, journal.Transaction{
			GUID:        guid,
			PostDate:    midnight(posted),
			Description: description,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	if len(transactions) == 0 {
		return nil, nil
	}

	sort.Slice(transactions, func(i, j int) bool {
		if !transactions[i].PostDate.Equal(transactions[j].PostDate) {
			return transactions[i].PostDate.Before(transactions[j].PostDate)
		}
		return transactions[i].GUID < transactions[j].GUID
	})
	index := make(map[string]int, len(transactions))
	for i, tx := range transactions {
		index[tx.GUID] = i
	}

	if err := b.attachSplits(ctx, transactions, index); err != nil {
		return nil, err
	}
	if err := b.attachScheduledRefs(ctx, transactions, index); err != nil {
		return nil, err
	}
	return transactions, nil
}

// attachSplits loads every split in rowid order; the index keeps only the
// ones belonging to transactions inside the window.
func (b *Book) attachSplits(ctx context.Context, transactions []journal.Transaction, index map[string]int) error {
	rows, err := b.db.QueryContext(ctx, `
		SELECT tx_guid, account_guid, value_num, value_denom
		FROM splits
		ORDER BY rowid
	`)
	if err != nil {
		return fmt.Errorf("failed to query splits: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var txGUID, accountGUID string
		var num, denom int64
		if err := rows.Scan(&txGUID, &accountGUID, &num, &denom); err != nil {
			return fmt.Errorf("failed to scan split: %w", err)
		}
		i, ok := index[txGUID]
		if !ok {
			continue
		}
		account, ok := b.accounts[accountGUID]
		if !ok {
			return fmt.Errorf("split of transaction %s references unknown account %s", txGUID, accountGUID)
		}
		value, err := rationalValue(num, denom)
		if err != nil {
			return fmt.Errorf("transaction %s: %w", txGUID, err)
		}
		transactions[i].Splits = append(transactions[i].Splits, journal.Split{
			Account: account,
			Value:   value,
		})
	}
	return rows.Err()
}

// attachScheduledRefs resolves the from-sched-xaction slots GnuCash writes
// on transactions created from a scheduled template.
func (b *Book) attachScheduledRefs(ctx context.Context, transactions []journal.Transaction, index map[string]int) error {
	rows, err := b.db.QueryContext(ctx, `
		SELECT obj_guid, guid_val
		FROM slots
		WHERE name = 'from-sched-xaction' AND guid_val IS NOT NULL
	`)
	if err != nil {
		return fmt.Errorf("failed to query scheduled back-references: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var txGUID, sxGUID string
		if err := rows.Scan(&txGUID, &sxGUID); err != nil {
			return fmt.Errorf("failed to scan scheduled back-reference: %w", err)
		}
		if i, ok := index[txGUID]; ok {
			transactions[i].ScheduledGUID = sxGUID
		}
	}
	return rows.Err()
}
