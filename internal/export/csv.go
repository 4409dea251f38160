// Package export serializes the flat transaction table to CSV and JSON.
// Both formats round-trip losslessly: dates are ISO-8601, amounts are
// decimal strings, and types are the stable string tags.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/ledgercast/ledgercast/internal/model"
)

const dateLayout = "2006-01-02"

var csvHeader = []string{"Date", "Description", "From", "To", "Type", "Value", "Scheduled"}

// CSVWriter writes transaction rows in CSV format.
type CSVWriter struct {
	// OnRow, when set, is called after each row is written. The CLI hangs
	// a progress bar on it.
	OnRow func()
}

// WriteToFile writes rows to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, rows []model.TransactionRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if err := w.Write(f, rows); err != nil {
		return err
	}
	return f.Close()
}

// Write writes rows in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, rows []model.TransactionRow) error {
	writer := csv.NewWriter(out)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.Date.Format(dateLayout),
			row.Description,
			row.FromAccount,
			row.ToAccount,
			string(row.Type),
			row.Value.String(),
			strconv.FormatBool(row.IsScheduled),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
		if w.OnRow != nil {
			w.OnRow()
		}
	}

	// Flush buffers into out; a write failure only surfaces here.
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// ReadCSV parses rows previously written by CSVWriter.
func ReadCSV(in io.Reader) ([]model.TransactionRow, error) {
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = len(csvHeader)

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("missing CSV header")
	}

	rows := make([]model.TransactionRow, 0, len(records)-1)
	for i, record := range records[1:] {
		row, err := parseCSVRecord(record)
		if err != nil {
			return nil, fmt.Errorf("CSV row %d: %w", i+1, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseCSVRecord(record []string) (model.TransactionRow, error) {
	date, err := time.Parse(dateLayout, record[0])
	if err != nil {
		return model.TransactionRow{}, fmt.Errorf("invalid date %q: %w", record[0], err)
	}
	txType, err := model.ParseTransactionType(record[4])
	if err != nil {
		return model.TransactionRow{}, err
	}
	value, err := parseAmount(record[5])
	if err != nil {
		return model.TransactionRow{}, err
	}
	scheduled, err := strconv.ParseBool(record[6])
	if err != nil {
		return model.TransactionRow{}, fmt.Errorf("invalid scheduled flag %q: %w", record[6], err)
	}
	return model.TransactionRow{
		Date:        date,
		Description: record[1],
		FromAccount: record[2],
		ToAccount:   record[3],
		Type:        txType,
		Value:       value,
		IsScheduled: scheduled,
	}, nil
}
