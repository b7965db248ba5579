package dashboard

import (
	"context"
	"fmt"
	"time"

	"options-trade-log-go/internal/models"
)

// View is the dashboard's single view-state holder: the full fetched trade
// set, the date-filtered subsequence derived from it, and the current page.
// Load and the filter operations replace the derived state wholesale; nothing
// is patched in place.
type View struct {
	client   *Client
	all      []models.Trade
	filtered []models.Trade
	page     int
	pageSize int
}

// Summary are the headline metrics derived from the filtered trades.
type Summary struct {
	TotalTrades  int
	Wins         int
	WinRate      float64 // percent of trades with pl > 0
	AvgReturnPct float64 // mean of return_pct
	TotalPL      float64
}

// NewView creates an empty view backed by the given API client.
func NewView(client *Client, pageSize int) *View {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &View{client: client, page: 1, pageSize: pageSize}
}

// Load fetches all trades for the authenticated user, resets the filter to
// the full set and goes back to page 1.
func (v *View) Load(ctx context.Context) error {
	list, err := v.client.ListTrades(ctx)
	if err != nil {
		return fmt.Errorf("load trades: %w", err)
	}
	v.all = list
	v.filtered = append([]models.Trade(nil), list...)
	v.page = 1
	return nil
}

// FilterAll resets the filtered set to the full fetched set.
func (v *View) FilterAll() {
	v.filtered = append([]models.Trade(nil), v.all...)
	v.page = 1
}

// FilterDays keeps trades whose date falls within the last n days.
func (v *View) FilterDays(days int) {
	cutoff := time.Now().AddDate(0, 0, -days)
	v.filtered = v.filtered[:0:0]
	for _, t := range v.all {
		if !t.TradeDate.Before(cutoff) {
			v.filtered = append(v.filtered, t)
		}
	}
	v.page = 1
}

// FilterRange keeps trades with from <= trade_date <= to, bounds inclusive.
func (v *View) FilterRange(from, to time.Time) {
	v.filtered = v.filtered[:0:0]
	for _, t := range v.all {
		if !t.TradeDate.Before(from) && !t.TradeDate.After(to) {
			v.filtered = append(v.filtered, t)
		}
	}
	v.page = 1
}

// All returns the full fetched set.
func (v *View) All() []models.Trade { return v.all }

// Filtered returns the current filtered set.
func (v *View) Filtered() []models.Trade { return v.filtered }

// TotalPages reports how many pages the filtered set spans. An empty set
// still has one (empty) page.
func (v *View) TotalPages() int {
	if len(v.filtered) == 0 {
		return 1
	}
	return (len(v.filtered) + v.pageSize - 1) / v.pageSize
}

// CurrentPage returns the 1-based page number.
func (v *View) CurrentPage() int { return v.page }

// SetPage moves to the given page. Out-of-range requests are no-ops.
func (v *View) SetPage(page int) {
	if page < 1 || page > v.TotalPages() {
		return
	}
	v.page = page
}

// NextPage advances one page if there is one.
func (v *View) NextPage() { v.SetPage(v.page + 1) }

// PrevPage goes back one page if there is one.
func (v *View) PrevPage() { v.SetPage(v.page - 1) }

// Page returns the slice of filtered trades for the current page.
func (v *View) Page() []models.Trade {
	start := (v.page - 1) * v.pageSize
	if start >= len(v.filtered) {
		return nil
	}
	end := start + v.pageSize
	if end > len(v.filtered) {
		end = len(v.filtered)
	}
	return v.filtered[start:end]
}

// Summarize derives the headline metrics from the filtered set. All values
// are zero when the set is empty.
func (v *View) Summarize() Summary {
	var s Summary
	s.TotalTrades = len(v.filtered)
	for _, t := range v.filtered {
		if t.PL > 0 {
			s.Wins++
		}
		s.TotalPL += t.PL
		s.AvgReturnPct += t.ReturnPct
	}
	if s.TotalTrades > 0 {
		s.WinRate = float64(s.Wins) / float64(s.TotalTrades) * 100
		s.AvgReturnPct /= float64(s.TotalTrades)
	} else {
		s.AvgReturnPct = 0
	}
	return s
}
