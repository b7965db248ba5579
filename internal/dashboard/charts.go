package dashboard

import (
	"fmt"
	"sort"

	"options-trade-log-go/internal/models"
)

// Series is one chart projection: parallel labels and values. Projections
// are rebuilt from scratch on every data change; no chart state survives a
// reload or filter.
type Series struct {
	Labels []string
	Values []float64
}

// PieTotals is the profit-vs-loss breakdown. Losses carries the absolute
// value of the summed losing trades.
type PieTotals struct {
	Profits float64
	Losses  float64
}

func tradeLabel(t models.Trade) string {
	return fmt.Sprintf("%s (%s)", t.Symbol, t.TradeDate.Format("Jan 2, 2006"))
}

// PLBars projects per-trade profit/loss bars in filtered order.
func (v *View) PLBars() Series {
	var s Series
	for _, t := range v.filtered {
		s.Labels = append(s.Labels, tradeLabel(t))
		s.Values = append(s.Values, t.PL)
	}
	return s
}

// CumulativePL projects the running P/L total in filtered order.
func (v *View) CumulativePL() Series {
	var s Series
	var running float64
	for _, t := range v.filtered {
		running += t.PL
		s.Labels = append(s.Labels, tradeLabel(t))
		s.Values = append(s.Values, running)
	}
	return s
}

// ProfitLossTotals sums winning and losing trades separately.
func (v *View) ProfitLossTotals() PieTotals {
	var p PieTotals
	for _, t := range v.filtered {
		if t.PL > 0 {
			p.Profits += t.PL
		} else if t.PL < 0 {
			p.Losses += -t.PL
		}
	}
	return p
}

// TimeSeries projects per-trade P/L sorted chronologically by trade date.
func (v *View) TimeSeries() Series {
	sorted := append([]models.Trade(nil), v.filtered...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TradeDate.Before(sorted[j].TradeDate)
	})

	var s Series
	for _, t := range sorted {
		s.Labels = append(s.Labels, t.TradeDate.Format("Jan 2, 2006"))
		s.Values = append(s.Values, t.PL)
	}
	return s
}
