package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgercast/ledgercast/internal/model"
)

// jsonRow is the wire form of a transaction row. Amounts are decimal
// strings and dates are calendar dates so the form survives re-encoding
// without drift.
type jsonRow struct {
	Date        string `json:"date"`
	Description string `json:"description,omitempty"`
	From        string `json:"from,omitempty"`
	To          string `json:"to,omitempty"`
	Type        string `json:"type"`
	Value       string `json:"value"`
	Scheduled   bool   `json:"scheduled,omitempty"`
}

// WriteJSON writes rows as an indented JSON array.
func WriteJSON(out io.Writer, rows []model.TransactionRow) error {
	wire := make([]jsonRow, 0, len(rows))
	for _, row := range rows {
		wire = append(wire, jsonRow{
			Date:        row.Date.Format(dateLayout),
			Description: row.Description,
			From:        row.FromAccount,
			To:          row.ToAccount,
			Type:        string(row.Type),
			Value:       row.Value.String(),
			Scheduled:   row.IsScheduled,
		})
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(wire); err != nil {
		return fmt.Errorf("failed to encode rows: %w", err)
	}
	return nil
}

// ReadJSON parses rows previously written by WriteJSON.
func ReadJSON(in io.Reader) ([]model.TransactionRow, error) {
	var wire []jsonRow
	if err := json.NewDecoder(in).Decode(&wire); err != nil {
		return nil, fmt.Errorf("failed to decode rows: %w", err)
	}

	rows := make([]model.TransactionRow, 0, len(wire))
	for i, w := range wire {
		date, err := time.Parse(dateLayout, w.Date)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid date %q: %w", i, w.Date, err)
		}
		txType, err := model.ParseTransactionType(w.Type)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		value, err := parseAmount(w.Value)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		rows = append(rows, model.TransactionRow{
			Date:        date,
			Description: w.Description,
			FromAccount: w.From,
			ToAccount:   w.To,
			Type:        txType,
			Value:       value,
			IsScheduled: w.Scheduled,
		})
	}
	return rows, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return value, nil
}
