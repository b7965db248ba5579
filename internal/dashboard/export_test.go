package dashboard

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"options-trade-log-go/internal/models"
)

func TestExportCSVEmptySet(t *testing.T) {
	v := loadedView(nil, 20)

	var buf bytes.Buffer
	err := v.ExportCSV(&buf)
	assert.ErrorIs(t, err, ErrNoTrades)
	assert.Zero(t, buf.Len()) // nothing written, no empty download
}

func TestExportCSV(t *testing.T) {
	v := loadedView([]models.Trade{
		{ID: 1, Symbol: "AAPL", TradeDate: day("2024-01-05"), StrikePrice: 150,
			OptionType: "Call", Quantity: 2, BuyPrice: 1.5, SellPrice: 2.0, PL: 1.0, ReturnPct: 33.33},
		{ID: 2, Symbol: "TSLA", TradeDate: day("2024-01-10"), StrikePrice: 200,
			OptionType: "Put", Quantity: 1, BuyPrice: 5.0, SellPrice: 2.5, PL: -2.5, ReturnPct: -50.0},
	}, 20)

	var buf bytes.Buffer
	require.NoError(t, v.ExportCSV(&buf))
	out := buf.String()

	reader := csv.NewReader(strings.NewReader(out))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)

	assert.Equal(t, csvHeader, records[0])
	assert.Equal(t, []string{"2024-01-05", "AAPL", "150.00", "Call", "2", "1.50", "2.00", "1.00", "33.33"}, records[1])
	assert.Equal(t, []string{"2024-01-10", "TSLA", "200.00", "Put", "1", "5.00", "2.50", "-2.50", "-50.00"}, records[2])

	// Trailing summary block with correct totals.
	assert.Contains(t, out, "SUMMARY")
	assert.Contains(t, out, "Total Trades,2")
	assert.Contains(t, out, "Win Rate,50.00%")
	assert.Contains(t, out, "Total P/L,-1.50")
}

func TestWriteReportEmptySet(t *testing.T) {
	v := loadedView(nil, 20)

	var buf bytes.Buffer
	assert.ErrorIs(t, v.WriteReport(&buf), ErrNoTrades)
}

func TestWriteReport(t *testing.T) {
	v := loadedView(testTrades(), 20)

	var buf bytes.Buffer
	require.NoError(t, v.WriteReport(&buf))
	out := buf.String()

	assert.Contains(t, out, "All Trades Report")
	assert.Contains(t, out, "AAPL")
	assert.Contains(t, out, "NVDA")
	assert.Contains(t, out, "$2.50")  // total P/L
	assert.Contains(t, out, "50.00%") // win rate
}
