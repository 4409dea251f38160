package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgercast/ledgercast/internal/model"
)

func sampleRows() []model.TransactionRow {
	return []model.TransactionRow{
		{
			Date:        time.Date(2021, 9, 5, 0, 0, 0, 0, time.UTC),
			Description: "september salary",
			FromAccount: "Income:Salary",
			ToAccount:   "Assets:Checkings",
			Type:        model.TypeIncome,
			Value:       decimal.RequireFromString("1200"),
		},
		{
			Date:        time.Date(2021, 9, 15, 0, 0, 0, 0, time.UTC),
			Description: "rent, apartment",
			FromAccount: "Assets:Checkings",
			ToAccount:   "Expenses:Rent",
			Type:        model.TypeExpense,
			Value:       decimal.RequireFromString("830.04"),
			IsScheduled: true,
		},
		{
			Date:        time.Date(2021, 9, 20, 0, 0, 0, 0, time.UTC),
			Description: `said "thanks"`,
			FromAccount: "Assets:Checkings",
			ToAccount:   "Assets:Savings",
			Type:        model.TypeTransfer,
			Value:       decimal.RequireFromString("0.01"),
		},
	}
}

func TestCSV_RoundTrip(t *testing.T) {
	rows := sampleRows()

	var buf bytes.Buffer
	writer := &CSVWriter{}
	require.NoError(t, writer.Write(&buf, rows))

	got, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestCSV_Output(t *testing.T) {
	var buf bytes.Buffer
	writer := &CSVWriter{}
	require.NoError(t, writer.Write(&buf, sampleRows()[:1]))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Date,Description,From,To,Type,Value,Scheduled", lines[0])
	assert.Equal(t, "2021-09-05,september salary,Income:Salary,Assets:Checkings,income,1200,false", lines[1])
}

func TestCSV_OnRowCallback(t *testing.T) {
	var calls int
	writer := &CSVWriter{OnRow: func() { calls++ }}
	require.NoError(t, writer.Write(&bytes.Buffer{}, sampleRows()))
	assert.Equal(t, 3, calls)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestCSV_WriteFailureSurfaces(t *testing.T) {
	writer := &CSVWriter{}
	err := writer.Write(failingWriter{}, sampleRows())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestCSV_WriteToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.csv")
	writer := &CSVWriter{}
	require.NoError(t, writer.WriteToFile(path, sampleRows()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	got, err := ReadCSV(f)
	require.NoError(t, err)
	assert.Equal(t, sampleRows(), got)
}

func TestReadCSV_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty input", input: ""},
		{name: "bad date", input: "Date,Description,From,To,Type,Value,Scheduled\nyesterday,a,b,c,expense,1,false\n"},
		{name: "bad type", input: "Date,Description,From,To,Type,Value,Scheduled\n2021-09-05,a,b,c,spending,1,false\n"},
		{name: "bad amount", input: "Date,Description,From,To,Type,Value,Scheduled\n2021-09-05,a,b,c,expense,lots,false\n"},
		{name: "bad flag", input: "Date,Description,From,To,Type,Value,Scheduled\n2021-09-05,a,b,c,expense,1,perhaps\n"},
		{name: "short row", input: "Date,Description,From,To,Type,Value,Scheduled\n2021-09-05,a,b\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestJSON_RoundTrip(t *testing.T) {
	rows := sampleRows()

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, rows))

	got, err := ReadJSON(&buf)
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestJSON_ValuesStayExact(t *testing.T) {
	// Decimal strings must survive re-encoding without float drift.
	rows := []model.TransactionRow{{
		Date:  time.Date(2021, 9, 1, 0, 0, 0, 0, time.UTC),
		Type:  model.TypeExpense,
		Value: decimal.RequireFromString("830.04"),
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, rows))
	assert.Contains(t, buf.String(), `"value": "830.04"`)
}

func TestReadJSON_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "not json", input: "a csv file"},
		{name: "bad date", input: `[{"date":"soon","type":"expense","value":"1"}]`},
		{name: "bad type", input: `[{"date":"2021-09-05","type":"spending","value":"1"}]`},
		{name: "bad amount", input: `[{"date":"2021-09-05","type":"expense","value":"lots"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}
