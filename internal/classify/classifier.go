// Package classify converts raw double-entry records and scheduled-transaction
// templates into simplified transactions with an economic type.
package classify

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ledgercast/ledgercast/internal/common"
	"github.com/ledgercast/ledgercast/internal/journal"
	"github.com/ledgercast/ledgercast/internal/model"
)

// Warning carries a degraded-classification diagnostic: a record that was
// excluded, or one recovered through the expense fallback. The caller
// decides whether to log or reject them.
type Warning struct {
	RecordGUID  string
	Description string
	Err         error
}

// Classifier derives simplified transactions from raw ledger records.
type Classifier struct {
	expenseFallback bool
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithExpenseFallback makes the classifier recover from an unclassifiable
// account pair on a recorded record by defaulting to an expense and
// returning a Warning, instead of failing the record. Scheduled templates
// never get this fallback: a malformed forecast cannot be guessed.
func WithExpenseFallback() Option {
	return func(c *Classifier) { c.expenseFallback = true }
}

// New creates a Classifier.
func New(opts ...Option) *Classifier {
	c := &Classifier{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// leg is one side of a value-group under construction.
type leg struct {
	account *journal.Account
	ok      bool
}

// valueGroup collects the debit and credit legs sharing one magnitude.
type valueGroup struct {
	value decimal.Decimal
	to    leg
	from  leg
}

// Record classifies a recorded double-entry record. A record whose splits
// carry several distinct magnitudes is treated as several independent
// simplified transactions, one per magnitude, in first-seen order.
func (c *Classifier) Record(tx journal.Transaction) ([]model.SimpleTransaction, []Warning, error) {
	groups, order := groupSplits(tx.Splits)
	if len(order) == 0 {
		return nil, nil, fmt.Errorf("%w: record %s has no valued splits",
			common.ErrMalformedTransaction, tx.GUID)
	}

	transactions := make([]model.SimpleTransaction, 0, len(order))
	var warnings []Warning
	for _, key := range order {
		group := groups[key]
		if !group.to.ok || !group.from.ok {
			return nil, nil, fmt.Errorf("%w: record %s is missing a debit or credit leg for value %s",
				common.ErrMalformedTransaction, tx.GUID, group.value)
		}

		txType, err := typeForPair(group.to.account.Type, group.from.account.Type)
		if err != nil {
			if !c.expenseFallback {
				return nil, nil, fmt.Errorf("record %s: %w", tx.GUID, err)
			}
			txType = model.TypeExpense
			warnings = append(warnings, Warning{
				RecordGUID:  tx.GUID,
				Description: tx.Description,
				Err:         err,
			})
		}

		transactions = append(transactions, model.SimpleTransaction{
			Value:           group.value,
			Description:     tx.Description,
			FromAccount:     group.from.account.Fullname,
			FromAccountGUID: group.from.account.GUID,
			ToAccount:       group.to.account.Fullname,
			ToAccountGUID:   group.to.account.GUID,
			Type:            txType,
		})
	}
	return transactions, warnings, nil
}

// Scheduled classifies a scheduled-transaction template using its slot
// amounts. Formula-bearing slots are evaluated; an unclassifiable account
// pair is fatal here regardless of the fallback option.
func (c *Classifier) Scheduled(sx journal.ScheduledTransaction) ([]model.SimpleTransaction, error) {
	splits := make([]journal.Split, 0, len(sx.Splits))
	for _, slot := range sx.Splits {
		value, err := slotValue(slot)
		if err != nil {
			return nil, fmt.Errorf("template %s (%s): %w", sx.GUID, sx.Name, err)
		}
		splits = append(splits, journal.Split{Account: slot.Account, Value: value})
	}

	groups, order := groupSplits(splits)
	if len(order) == 0 {
		return nil, fmt.Errorf("%w: template %s has no valued slots",
			common.ErrMalformedTransaction, sx.GUID)
	}

	transactions := make([]model.SimpleTransaction, 0, len(order))
	for _, key := range order {
		group := groups[key]
		if !group.to.ok || !group.from.ok {
			return nil, fmt.Errorf("%w: template %s is missing a debit or credit slot for value %s",
				common.ErrMalformedTransaction, sx.GUID, group.value)
		}

		txType, err := typeForPair(group.to.account.Type, group.from.account.Type)
		if err != nil {
			return nil, fmt.Errorf("template %s: %w", sx.GUID, err)
		}

		transactions = append(transactions, model.SimpleTransaction{
			Value:           group.value,
			Description:     sx.Name,
			FromAccount:     group.from.account.Fullname,
			FromAccountGUID: group.from.account.GUID,
			ToAccount:       group.to.account.Fullname,
			ToAccountGUID:   group.to.account.GUID,
			Type:            txType,
			IsScheduled:     true,
		})
	}
	return transactions, nil
}

// slotValue resolves a template slot into a signed split value: positive
// for the debit side, negative for the credit side.
func slotValue(slot journal.TemplateSplit) (decimal.Decimal, error) {
	switch {
	case slot.Debit.IsPositive():
		return slot.Debit, nil
	case slot.Credit.IsPositive():
		return slot.Credit.Neg(), nil
	case slot.DebitFormula != "":
		v, err := EvalFormula(slot.DebitFormula)
		if err != nil {
			return decimal.Zero, err
		}
		return v, nil
	case slot.CreditFormula != "":
		v, err := EvalFormula(slot.CreditFormula)
		if err != nil {
			return decimal.Zero, err
		}
		return v.Neg(), nil
	default:
		return decimal.Zero, nil
	}
}

// groupSplits buckets splits by the absolute magnitude of their value,
// keeping first-seen order of each distinct magnitude. Zero-valued splits
// carry no leg and are ignored.
func groupSplits(splits []journal.Split) (map[string]*valueGroup, []string) {
	groups := make(map[string]*valueGroup)
	var order []string
	for _, split := range splits {
		if split.Value.IsZero() {
			continue
		}
		key := split.Value.Abs().String()
		group, seen := groups[key]
		if !seen {
			group = &valueGroup{value: split.Value.Abs()}
			groups[key] = group
			order = append(order, key)
		}
		if split.IsDebit() {
			group.to = leg{account: split.Account, ok: true}
		} else {
			group.from = leg{account: split.Account, ok: true}
		}
	}
	return groups, order
}

// typeForPair derives the economic type from the account types of the two
// legs. The cases are checked in order.
func typeForPair(to, from journal.AccountType) (model.TransactionType, error) {
	switch {
	case to == journal.AccountLiability:
		return model.TypeQuittance, nil
	case to == journal.AccountExpense && from == journal.AccountLiability:
		return model.TypeLiability, nil
	case to == journal.AccountExpense:
		return model.TypeExpense, nil
	case isAssetLike(to) && isAssetLike(from):
		return model.TypeTransfer, nil
	case isAssetLike(to):
		return model.TypeIncome, nil
	default:
		return "", fmt.Errorf("%w: to=%s from=%s", common.ErrUnclassifiableAccounts, to, from)
	}
}

func isAssetLike(t journal.AccountType) bool {
	return t == journal.AccountBank || t == journal.AccountAsset
}
