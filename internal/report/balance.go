package report

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ledgercast/ledgercast/internal/model"
)

// categoryDelta accumulates one category's delta for a single day. The
// scheduled figure absorbs every transaction; the recorded one only the
// non-scheduled portion.
type categoryDelta struct {
	recorded  decimal.Decimal
	scheduled decimal.Decimal
	touched   bool
}

func (d *categoryDelta) apply(value decimal.Decimal, isScheduled bool) {
	d.scheduled = d.scheduled.Add(value)
	if !isScheduled {
		d.recorded = d.recorded.Add(value)
	}
	d.touched = true
}

func (d *categoryDelta) balance() *model.Balance {
	if !d.touched {
		return nil
	}
	return &model.Balance{Recorded: d.recorded, Scheduled: d.scheduled}
}

// Balance computes the day's balance delta per category. checkingsParent is
// the account-path prefix deciding whether a transfer is checkings-relevant;
// when empty, transfers never affect the series. A nil category in the
// result means the day had no activity of that category, as opposed to
// activity that netted to zero.
func (d DaySet) Balance(checkingsParent string) model.BalanceData {
	var checkings, liability categoryDelta

	for _, tr := range d.Transactions {
		switch tr.Type {
		case model.TypeExpense:
			checkings.apply(tr.Value.Neg(), tr.IsScheduled)
		case model.TypeIncome:
			checkings.apply(tr.Value, tr.IsScheduled)
		case model.TypeLiability:
			liability.apply(tr.Value, tr.IsScheduled)
		case model.TypeQuittance:
			// A quittance is a liability paydown and a checkings outflow
			// at the same time.
			liability.apply(tr.Value.Neg(), tr.IsScheduled)
			checkings.apply(tr.Value.Neg(), tr.IsScheduled)
		case model.TypeTransfer:
			if checkingsParent == "" {
				continue
			}
			fromTracked := underParent(tr.FromAccount, checkingsParent)
			toTracked := underParent(tr.ToAccount, checkingsParent)
			switch {
			case fromTracked && !toTracked:
				checkings.apply(tr.Value.Neg(), tr.IsScheduled)
			case toTracked && !fromTracked:
				checkings.apply(tr.Value, tr.IsScheduled)
			}
		}
	}

	return model.BalanceData{
		Checkings: checkings.balance(),
		Liability: liability.balance(),
	}
}

// underParent matches on path-segment boundaries, so parent
// "Assets:Checkings" covers the account itself and its children but not a
// sibling like "Assets:CheckingsOld".
func underParent(fullname, parent string) bool {
	return fullname == parent || strings.HasPrefix(fullname, parent+":")
}
