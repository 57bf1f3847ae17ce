// Package scheduler drives watch mode: the dashboard is recomputed on a
// cron schedule and every pass is rendered and recorded.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"StockDashboard/internal/dashboard"
	"StockDashboard/internal/model"
	"StockDashboard/internal/notifier"
	"StockDashboard/internal/recorder"

	"github.com/robfig/cron/v3"
)

// ErrPassRunning is returned by Refresh when another pass has not finished.
var ErrPassRunning = errors.New("previous pass still running")

// SelectionFunc builds the selection of a pass. It is called on every tick
// so that relative dates such as "today" move forward.
type SelectionFunc func(now time.Time) (model.Selection, error)

// Scheduler manages the refresh task.
type Scheduler struct {
	Cron      *cron.Cron
	Pipeline  *dashboard.Pipeline
	Selection SelectionFunc
	Recorder  recorder.Recorder
	Out       io.Writer
	Render    notifier.Options
	Ctx       context.Context

	running sync.Mutex // held for the duration of a pass
	pending sync.WaitGroup

	mu   sync.Mutex
	last *model.Dashboard
	now  func() time.Time
}

// NewScheduler creates a new Scheduler. At most one pass runs at a time;
// a tick that fires during a pass is skipped.
func NewScheduler(ctx context.Context, p *dashboard.Pipeline, sel SelectionFunc, rec recorder.Recorder, out io.Writer, opts notifier.Options) *Scheduler {
	logger := cron.PrintfLogger(log.Default())
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(logger))),
		Pipeline:  p,
		Selection: sel,
		Recorder:  rec,
		Out:       out,
		Render:    opts,
		Ctx:       ctx,
		now:       time.Now,
	}
}

// RegisterRefresh registers the refresh task under a six-field cron spec.
func (s *Scheduler) RegisterRefresh(spec string) error {
	if _, err := s.Cron.AddFunc(spec, func() { s.Refresh() }); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for running passes to finish,
// including one started by RunNow.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.pending.Wait()
	log.Println("[INFO] scheduler stopped")
}

// RunNow starts a pass in the background without waiting for a tick.
func (s *Scheduler) RunNow() {
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		s.Refresh()
	}()
}

// Last returns the most recent successful dashboard, or nil.
func (s *Scheduler) Last() *model.Dashboard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Refresh runs one pass. Failures are logged and the previous dashboard is
// kept; the next tick starts from scratch. When another pass is still
// running, Refresh returns ErrPassRunning without fetching.
func (s *Scheduler) Refresh() error {
	if !s.running.TryLock() {
		log.Println("[INFO] refresh skipped: previous pass still running")
		return ErrPassRunning
	}
	defer s.running.Unlock()

	at := s.now()
	sel, err := s.Selection(at)
	if err != nil {
		log.Printf("[ERROR] refresh selection: %v", err)
		return err
	}

	d, err := s.Pipeline.Compute(s.Ctx, sel)
	if err != nil {
		log.Printf("[ERROR] refresh: %v", err)
		return err
	}

	s.mu.Lock()
	s.last = d
	s.mu.Unlock()

	if err := notifier.Render(s.Out, d, s.Render); err != nil {
		log.Printf("[ERROR] render run %s: %v", d.RunID, err)
	}

	if d.Status != model.StatusReady {
		return nil
	}
	if err := s.Recorder.RecordRun(recorder.NewRunRecord(d, s.Pipeline.Gateway.Name(), at)); err != nil {
		log.Printf("[ERROR] record run %s: %v", d.RunID, err)
	}
	return nil
}
