package dashboard

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// ErrNoTrades means the filtered set is empty. Export callers surface it as
// a warning instead of producing an empty file.
var ErrNoTrades = errors.New("no trades to export")

var csvHeader = []string{
	"Date", "Symbol", "Strike Price", "Option Type", "Quantity",
	"Buy Price", "Sell Price", "P/L", "Return %",
}

// ExportCSV writes the filtered trades plus a trailing summary block
// (total trades, win rate, total P/L) as CSV.
func (v *View) ExportCSV(w io.Writer) error {
	if len(v.filtered) == 0 {
		return ErrNoTrades
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, t := range v.filtered {
		row := []string{
			t.TradeDate.Format("2006-01-02"),
			t.Symbol,
			strconv.FormatFloat(t.StrikePrice, 'f', 2, 64),
			t.OptionType,
			strconv.Itoa(t.Quantity),
			strconv.FormatFloat(t.BuyPrice, 'f', 2, 64),
			strconv.FormatFloat(t.SellPrice, 'f', 2, 64),
			strconv.FormatFloat(t.PL, 'f', 2, 64),
			strconv.FormatFloat(t.ReturnPct, 'f', 2, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	s := v.Summarize()
	summary := [][]string{
		{},
		{"SUMMARY"},
		{"Total Trades", strconv.Itoa(s.TotalTrades)},
		{"Win Rate", strconv.FormatFloat(s.WinRate, 'f', 2, 64) + "%"},
		{"Total P/L", strconv.FormatFloat(s.TotalPL, 'f', 2, 64)},
	}
	for _, row := range summary {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv summary: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
