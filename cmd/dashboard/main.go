package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"options-trade-log-go/internal/config"
	"options-trade-log-go/internal/dashboard"
	"options-trade-log-go/internal/logger"
)

const usage = `Usage: dashboard <command> [flags]

Commands:
  register  -email -password          create an account
  login     -email -password          log in and cache the session
  logout                              drop the cached session
  list      [filter flags] [-page N]  show one page of trades
  summary   [filter flags]            show headline metrics and chart data
  add       -date -symbol -type -strike -qty -buy -sell
  edit      -id <id> -date -symbol -type -strike -qty -buy -sell
  delete    -id <id>
  export    -out file [filter flags]  write filtered trades as CSV
  report    -out file [filter flags]  write a printable HTML report

Filter flags: -range <days|all>  or  -from YYYY-MM-DD -to YYYY-MM-DD
`

type app struct {
	client      *dashboard.Client
	view        *View
	log         *zap.Logger
	sessionPath string
}

// View aliases the dashboard view state so command helpers read naturally.
type View = dashboard.View

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	home, _ := os.UserHomeDir()
	a := &app{
		client:      dashboard.NewClient(&cfg.Dashboard, log),
		log:         log,
		sessionPath: filepath.Join(home, ".tradelog-session.json"),
	}
	a.view = dashboard.NewView(a.client, cfg.Dashboard.PageSize)

	ctx := context.Background()
	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		if errors.Is(err, dashboard.ErrUnauthorized) || errors.Is(err, dashboard.ErrNoSession) {
			fmt.Fprintln(os.Stderr, "Session expired or missing. Please login again.")
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return a.register(ctx, args)
	case "login":
		return a.login(ctx, args)
	case "logout":
		if err := dashboard.ClearSession(a.sessionPath); err != nil {
			return err
		}
		fmt.Println("Logged out successfully")
		return nil
	case "list":
		return a.list(ctx, args)
	case "summary":
		return a.summary(ctx, args)
	case "add":
		return a.add(ctx, args)
	case "edit":
		return a.edit(ctx, args)
	case "delete":
		return a.delete(ctx, args)
	case "export":
		return a.export(ctx, args)
	case "report":
		return a.report(ctx, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

// restoreSession installs the cached token on the client.
func (a *app) restoreSession() error {
	s, err := dashboard.LoadSession(a.sessionPath)
	if err != nil {
		return err
	}
	a.client.SetToken(s.Token)
	return nil
}

func credentialFlags(name string) (*flag.FlagSet, *string, *string) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	return fs, email, password
}

func (a *app) register(ctx context.Context, args []string) error {
	fs, email, password := credentialFlags("register")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.client.Register(ctx, *email, *password); err != nil {
		return err
	}
	fmt.Println("User registered")
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	fs, email, password := credentialFlags("login")
	if err := fs.Parse(args); err != nil {
		return err
	}
	token, err := a.client.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	if err := dashboard.SaveSession(a.sessionPath, dashboard.Session{Token: token, Email: *email}); err != nil {
		return err
	}
	fmt.Println("Logged in as", *email)
	return nil
}

// filterFlags registers the shared date-range flags on fs and returns an
// apply func that loads trades and applies the selected filter.
func (a *app) filterFlags(fs *flag.FlagSet) func(ctx context.Context) error {
	rangeDays := fs.Int("range", 0, "keep trades from the last N days (0 = all)")
	from := fs.String("from", "", "custom range start (YYYY-MM-DD)")
	to := fs.String("to", "", "custom range end (YYYY-MM-DD)")

	return func(ctx context.Context) error {
		if err := a.restoreSession(); err != nil {
			return err
		}
		if err := a.view.Load(ctx); err != nil {
			return err
		}
		if *from != "" || *to != "" {
			fromDate, err := time.Parse("2006-01-02", *from)
			if err != nil {
				return fmt.Errorf("parse -from: %w", err)
			}
			toDate, err := time.Parse("2006-01-02", *to)
			if err != nil {
				return fmt.Errorf("parse -to: %w", err)
			}
			if fromDate.After(toDate) {
				return errors.New("-from cannot be after -to")
			}
			a.view.FilterRange(fromDate, toDate)
		} else if *rangeDays > 0 {
			a.view.FilterDays(*rangeDays)
		}
		return nil
	}
}

func (a *app) list(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	page := fs.Int("page", 1, "page number")
	apply := a.filterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := apply(ctx); err != nil {
		return err
	}
	a.view.SetPage(*page)

	rows := a.view.Page()
	if len(rows) == 0 {
		fmt.Println("No trades found.")
		return nil
	}
	fmt.Printf("%-5s %-11s %-8s %-9s %-5s %-4s %-9s %-10s %-9s %-9s\n",
		"ID", "Date", "Symbol", "Strike", "Type", "Qty", "Buy", "Sell", "P/L", "Return%")
	for _, t := range rows {
		fmt.Printf("%-5d %-11s %-8s %-9.2f %-5s %-4d %-9.2f %-10.2f %-+9.2f %-+9.2f\n",
			t.ID, t.TradeDate.Format("2006-01-02"), t.Symbol, t.StrikePrice,
			t.OptionType, t.Quantity, t.BuyPrice, t.SellPrice, t.PL, t.ReturnPct)
	}
	fmt.Printf("Page %d of %d (%d trades)\n",
		a.view.CurrentPage(), a.view.TotalPages(), len(a.view.Filtered()))
	return nil
}

func (a *app) summary(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	apply := a.filterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := apply(ctx); err != nil {
		return err
	}

	s := a.view.Summarize()
	fmt.Printf("Total Trades: %d\n", s.TotalTrades)
	fmt.Printf("Win Rate:     %.1f%%\n", s.WinRate)
	fmt.Printf("Avg Return:   %+.2f%%\n", s.AvgReturnPct)
	fmt.Printf("Total P/L:    %+.2f\n", s.TotalPL)

	pie := a.view.ProfitLossTotals()
	fmt.Printf("Profits vs Losses: +%.2f / -%.2f\n", pie.Profits, pie.Losses)

	cumulative := a.view.CumulativePL()
	if n := len(cumulative.Values); n > 0 {
		fmt.Printf("Cumulative P/L after %d trades: %+.2f\n", n, cumulative.Values[n-1])
	}
	return nil
}

func tradeFlags(name string) (*flag.FlagSet, func() (date, symbol, optType string, strike float64, qty int, buy, sell float64)) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	date := fs.String("date", "", "trade date (YYYY-MM-DD)")
	symbol := fs.String("symbol", "", "ticker symbol")
	optType := fs.String("type", "", "option type (Call or Put)")
	strike := fs.Float64("strike", 0, "strike price")
	qty := fs.Int("qty", 0, "contract quantity")
	buy := fs.Float64("buy", 0, "buy price")
	sell := fs.Float64("sell", 0, "sell price")
	return fs, func() (string, string, string, float64, int, float64, float64) {
		return *date, *symbol, *optType, *strike, *qty, *buy, *sell
	}
}

func (a *app) add(ctx context.Context, args []string) error {
	fs, fields := tradeFlags("add")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.restoreSession(); err != nil {
		return err
	}
	date, symbol, optType, strike, qty, buy, sell := fields()
	in := dashboard.NewInput(date, symbol, optType, strike, qty, buy, sell)
	if err := a.client.CreateTrade(ctx, in); err != nil {
		return err
	}
	fmt.Println("Trade added successfully")
	return nil
}

func (a *app) edit(ctx context.Context, args []string) error {
	fs, fields := tradeFlags("edit")
	id := fs.Uint("id", 0, "trade id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.restoreSession(); err != nil {
		return err
	}
	date, symbol, optType, strike, qty, buy, sell := fields()
	in := dashboard.NewInput(date, symbol, optType, strike, qty, buy, sell)
	if err := a.client.UpdateTrade(ctx, uint(*id), in); err != nil {
		return err
	}
	fmt.Println("Trade updated successfully")
	return nil
}

func (a *app) delete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	id := fs.Uint("id", 0, "trade id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.restoreSession(); err != nil {
		return err
	}
	if err := a.client.DeleteTrade(ctx, uint(*id)); err != nil {
		return err
	}
	fmt.Println("Trade deleted successfully")
	return nil
}

func (a *app) export(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	out := fs.String("out", "", "output file (defaults to trade_log_<date>.csv)")
	apply := a.filterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := apply(ctx); err != nil {
		return err
	}

	path := *out
	if path == "" {
		path = fmt.Sprintf("trade_log_%s.csv", time.Now().Format("2006-01-02"))
	}
	return a.writeFile(path, a.view.ExportCSV, "No trades to export!")
}

func (a *app) report(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	out := fs.String("out", "trades_report.html", "output file")
	apply := a.filterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := apply(ctx); err != nil {
		return err
	}
	return a.writeFile(*out, a.view.WriteReport, "No trades to display!")
}

// writeFile runs an export into path. On an empty filtered set it warns and
// writes nothing, so no empty download is produced.
func (a *app) writeFile(path string, write func(w io.Writer) error, emptyWarning string) error {
	if len(a.view.Filtered()) == 0 {
		fmt.Fprintln(os.Stderr, emptyWarning)
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := write(f); err != nil {
		return err
	}
	fmt.Println("Wrote", path)
	return nil
}
