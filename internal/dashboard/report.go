package dashboard

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"options-trade-log-go/internal/models"
)

// reportData feeds the printable report template.
type reportData struct {
	Generated string
	Summary   Summary
	Trades    []models.Trade
}

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("$%.2f", v) },
	"pct":   func(v float64) string { return fmt.Sprintf("%.2f%%", v) },
	"date":  func(t time.Time) string { return t.Format("Jan 2, 2006") },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<title>All Trades - Options Trade Log</title>
<style>
body { font-family: sans-serif; margin: 20px; }
.summary { display: flex; gap: 20px; margin-bottom: 20px; }
.summary div { border: 1px solid #ddd; border-radius: 8px; padding: 12px; text-align: center; }
table { width: 100%; border-collapse: collapse; }
th, td { border: 1px solid #ddd; padding: 8px; text-align: center; }
.profit { color: #28a745; font-weight: bold; }
.loss { color: #dc3545; font-weight: bold; }
</style>
</head>
<body>
<h1>All Trades Report</h1>
<p>Generated on {{.Generated}}</p>
<div class="summary">
<div><h3>{{.Summary.TotalTrades}}</h3><p>Total Trades</p></div>
<div><h3 class="{{if ge .Summary.TotalPL 0.0}}profit{{else}}loss{{end}}">{{money .Summary.TotalPL}}</h3><p>Total P/L</p></div>
<div><h3>{{pct .Summary.WinRate}}</h3><p>Win Rate</p></div>
<div><h3>{{.Summary.Wins}}</h3><p>Winning Trades</p></div>
</div>
<table>
<thead>
<tr><th>Date</th><th>Symbol</th><th>Strike</th><th>Type</th><th>Qty</th><th>Buy Price</th><th>Sell Price</th><th>P/L</th><th>Return %</th></tr>
</thead>
<tbody>
{{range .Trades}}
<tr>
<td>{{date .TradeDate}}</td>
<td><strong>{{.Symbol}}</strong></td>
<td>{{money .StrikePrice}}</td>
<td>{{.OptionType}}</td>
<td>{{.Quantity}}</td>
<td>{{money .BuyPrice}}</td>
<td>{{money .SellPrice}}</td>
<td class="{{if ge .PL 0.0}}profit{{else}}loss{{end}}">{{money .PL}}</td>
<td class="{{if ge .ReturnPct 0.0}}profit{{else}}loss{{end}}">{{pct .ReturnPct}}</td>
</tr>
{{end}}
</tbody>
</table>
</body>
</html>
`))

// WriteReport renders the filtered trades as a printable HTML report.
func (v *View) WriteReport(w io.Writer) error {
	if len(v.filtered) == 0 {
		return ErrNoTrades
	}
	data := reportData{
		Generated: time.Now().Format("Jan 2, 2006"),
		Summary:   v.Summarize(),
		Trades:    v.filtered,
	}
	if err := reportTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}
