package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"StockDashboard/internal/config"
	"StockDashboard/internal/dashboard"
	"StockDashboard/internal/model"
	"StockDashboard/internal/recorder"
	"StockDashboard/internal/scheduler"

	"github.com/google/subcommands"
)

type watchCmd struct {
	sel   selectionFlags
	cron  string
	noRun bool
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "recompute the dashboard on a schedule" }
func (*watchCmd) Usage() string {
	return `dashboard watch [-cron "0 */5 * * * 1-5"] [-no-initial] [selection flags]

  Runs a pass immediately, then on every cron tick until interrupted.
  Failed passes are logged and retried on the next tick.
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	c.sel.register(f)
	f.StringVar(&c.cron, "cron", "", "Six-field cron spec (defaults to schedule.refresh_cron)")
	f.BoolVar(&c.noRun, "no-initial", false, "Wait for the first tick instead of running immediately")
}

func (c *watchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := c.sel.load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	spec := cfg.Schedule.RefreshCron
	if c.cron != "" {
		spec = c.cron
	}

	gw := newGateway(cfg)
	log.Printf("[INFO] data source: %s", gw.Name())

	rec := openRecorder(cfg)
	defer rec.Close()

	selection := func(now time.Time) (model.Selection, error) {
		sel, err := cfg.BuildSelection(now)
		if err == nil {
			warnOutsideUniverse(cfg, sel.Symbols)
		}
		return sel, err
	}

	sched := scheduler.NewScheduler(ctx, dashboard.NewPipeline(gw, cfg.DataSource.Timeout), selection, rec, os.Stdout, renderOptions(cfg))
	if err := sched.RegisterRefresh(spec); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	sched.Start()
	defer sched.Stop()

	if !c.noRun {
		sched.RunNow()
	}

	log.Printf("[INFO] watching (%s). Press Ctrl+C to stop.", spec)
	<-ctx.Done()
	log.Println("[INFO] shutdown signal received, stopping...")
	return subcommands.ExitSuccess
}

func openRecorder(cfg *config.Config) recorder.Recorder {
	if cfg.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
	if err != nil {
		log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
		return recorder.NewNoopRecorder()
	}
	return sr
}
