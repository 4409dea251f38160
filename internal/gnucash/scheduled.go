package gnucash

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ledgercast/ledgercast/internal/journal"
)

// Scheduled returns the enabled scheduled-transaction templates active for
// the window: started on or before start and not finished before it.
func (b *Book) Scheduled(ctx context.Context, start, _ time.Time) ([]journal.ScheduledTransaction, error) {
	rows, err := b.db.QueryContext(ctx, `
		SELECT guid, name, enabled, start_date, COALESCE(end_date, ''), template_act_guid
		FROM schedxactions
		WHERE enabled = 1
		ORDER BY guid
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query scheduled transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	type rawTemplate struct {
		guid         string
		name         string
		templateAcct string
		start        time.Time
		end          *time.Time
	}
	var raw []rawTemplate
	for rows.Next() {
		var guid, name, startDate, endDate, templateAcct string
		var enabled bool
		if err := rows.Scan(&guid, &name, &enabled, &startDate, &endDate, &templateAcct); err != nil {
			return nil, fmt.Errorf("failed to scan scheduled transaction: %w", err)
		}
		sxStart, err := parseBookTime(startDate)
		if err != nil {
			return nil, fmt.Errorf("template %s: %w", guid, err)
		}
		if sxStart.After(start) {
			continue
		}
		var sxEnd *time.Time
		if endDate != "" {
			parsed, err := parseBookTime(endDate)
			if err != nil {
				return nil, fmt.Errorf("template %s: %w", guid, err)
			}
			if parsed.Before(start) {
				continue
			}
			end := midnight(parsed)
			sxEnd = &end
		}
		raw = append(raw, rawTemplate{
			guid:         guid,
			name:         name,
			templateAcct: templateAcct,
			start:        midnight(sxStart),
			end:          sxEnd,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate scheduled transactions: %w", err)
	}

	templates := make([]journal.ScheduledTransaction, 0, len(raw))
	for _, r := range raw {
		rec, err := b.recurrence(ctx, r.guid)
		if err != nil {
			return nil, err
		}
		slots, err := b.templateSplits(ctx, r.templateAcct)
		if err != nil {
			return nil, fmt.Errorf("template %s (%s): %w", r.guid, r.name, err)
		}
		templates = append(templates, journal.ScheduledTransaction{
			GUID:       r.guid,
			Name:       r.name,
			Enabled:    true,
			Start:      r.start,
			End:        r.end,
			Recurrence: rec,
			Splits:     slots,
		})
	}
	return templates, nil
}

func (b *Book) recurrence(ctx context.Context, sxGUID string) (journal.Recurrence, error) {
	var mult int
	var periodType, periodStart string
	err := b.db.QueryRowContext(ctx, `
		SELECT recurrence_mult, recurrence_period_type, recurrence_period_start
		FROM recurrences
		WHERE obj_guid = ?
	`, sxGUID).Scan(&mult, &periodType, &periodStart)
	if err == sql.ErrNoRows {
		return journal.Recurrence{}, fmt.Errorf("template %s has no recurrence", sxGUID)
	}
	if err != nil {
		return journal.Recurrence{}, fmt.Errorf("failed to query recurrence for %s: %w", sxGUID, err)
	}

	anchor, err := parseBookTime(periodStart)
	if err != nil {
		return journal.Recurrence{}, fmt.Errorf("template %s: %w", sxGUID, err)
	}
	return journal.Recurrence{
		Start:      midnight(anchor),
		PeriodType: journal.PeriodType(periodType),
		Multiplier: mult,
	}, nil
}

// templateSplits loads the slot frames of the template account's splits.
// Each split carries a sched-xaction frame whose children name the target
// account and the debit/credit amount, numeric or formula.
func (b *Book) templateSplits(ctx context.Context, templateAcctGUID string) ([]journal.TemplateSplit, error) {
	rows, err := b.db.QueryContext(ctx, `
		SELECT guid FROM splits WHERE account_guid = ? ORDER BY rowid
	`, templateAcctGUID)
	if err != nil {
		return nil, fmt.Errorf("failed to query template splits: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var splitGUIDs []string
	for rows.Next() {
		var guid string
		if err := rows.Scan(&guid); err != nil {
			return nil, fmt.Errorf("failed to scan template split: %w", err)
		}
		splitGUIDs = append(splitGUIDs, guid)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate template splits: %w", err)
	}

	slots := make([]journal.TemplateSplit, 0, len(splitGUIDs))
	for _, guid := range splitGUIDs {
		slot, err := b.templateSlot(ctx, guid)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

func (b *Book) templateSlot(ctx context.Context, splitGUID string) (journal.TemplateSplit, error) {
	rows, err := b.db.QueryContext(ctx, `
		SELECT child.name, COALESCE(child.string_val, ''), COALESCE(child.guid_val, ''),
		       COALESCE(child.numeric_val_num, 0), COALESCE(child.numeric_val_denom, 1)
		FROM slots frame
		JOIN slots child ON child.obj_guid = frame.guid_val
		WHERE frame.obj_guid = ? AND frame.name = 'sched-xaction'
	`, splitGUID)
	if err != nil {
		return journal.TemplateSplit{}, fmt.Errorf("failed to query slot frame of split %s: %w", splitGUID, err)
	}
	defer func() { _ = rows.Close() }()

	var slot journal.TemplateSplit
	for rows.Next() {
		var name, stringVal, guidVal string
		var num, denom int64
		if err := rows.Scan(&name, &stringVal, &guidVal, &num, &denom); err != nil {
			return journal.TemplateSplit{}, fmt.Errorf("failed to scan slot of split %s: %w", splitGUID, err)
		}
		switch name {
		case "sched-xaction/account":
			account, ok := b.accounts[guidVal]
			if !ok {
				return journal.TemplateSplit{}, fmt.Errorf("split %s references unknown account %s", splitGUID, guidVal)
			}
			slot.Account = account
		case "sched-xaction/debit-numeric":
			value, err := rationalValue(num, denom)
			if err != nil {
				return journal.TemplateSplit{}, fmt.Errorf("split %s: %w", splitGUID, err)
			}
			slot.Debit = value
		case "sched-xaction/credit-numeric":
			value, err := rationalValue(num, denom)
			if err != nil {
				return journal.TemplateSplit{}, fmt.Errorf("split %s: %w", splitGUID, err)
			}
			slot.Credit = value
		case "sched-xaction/debit-formula":
			slot.DebitFormula = stringVal
		case "sched-xaction/credit-formula":
			slot.CreditFormula = stringVal
		}
	}
	if err := rows.Err(); err != nil {
		return journal.TemplateSplit{}, fmt.Errorf("failed to iterate slots of split %s: %w", splitGUID, err)
	}

	// A numeric side that is present makes the matching formula redundant;
	// GnuCash writes both for plain amounts.
	if !slot.Debit.IsZero() {
		slot.DebitFormula = ""
	}
	if !slot.Credit.IsZero() {
		slot.CreditFormula = ""
	}
	return slot, nil
}
