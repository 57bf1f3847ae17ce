package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"StockDashboard/internal/dashboard"
	"StockDashboard/internal/model"
	"StockDashboard/internal/notifier"
	"StockDashboard/internal/recorder"

	"github.com/google/subcommands"
)

type showCmd struct {
	sel selectionFlags
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "compute and print the dashboard once" }
func (*showCmd) Usage() string {
	return `dashboard show [-symbols AAPL,TSLA] [-start <date>] [-end <date>] [-shares AAPL=10] [-alert TSLA=200] [-format markdown|plain|json]

  Fetches history and latest prices, then prints summary, trend, portfolio,
  alerts and candlestick tables.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) { c.sel.register(f) }

func (c *showCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := c.sel.load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	now := time.Now()
	sel, err := cfg.BuildSelection(now)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	warnOutsideUniverse(cfg, sel.Symbols)

	gw := newGateway(cfg)
	log.Printf("[INFO] data source: %s", gw.Name())
	d, err := dashboard.NewPipeline(gw, cfg.DataSource.Timeout).Compute(ctx, sel)
	if errors.Is(err, dashboard.ErrInvalidSelection) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := notifier.Render(os.Stdout, d, renderOptions(cfg)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if cfg.Database.SQLitePath != "" && d.Status == model.StatusReady {
		rec, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, run not recorded: %v", err)
			return subcommands.ExitSuccess
		}
		defer rec.Close()
		if err := rec.RecordRun(recorder.NewRunRecord(d, gw.Name(), now)); err != nil {
			log.Printf("[ERROR] record run %s: %v", d.RunID, err)
		}
	}
	return subcommands.ExitSuccess
}
