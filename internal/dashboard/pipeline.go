// Package dashboard runs one computation pass: fetch, normalize, derive.
package dashboard

import (
	"context"
	"log"
	"time"

	"StockDashboard/internal/calculator"
	"StockDashboard/internal/collector"
	"StockDashboard/internal/metrics"
	"StockDashboard/internal/model"
	"StockDashboard/internal/series"

	"github.com/google/uuid"
)

// DefaultTimeout bounds each gateway call.
const DefaultTimeout = 30 * time.Second

// Pipeline computes a Dashboard from a Selection. It holds no state between
// passes; every call to Compute starts from scratch.
type Pipeline struct {
	Gateway   collector.Gateway
	Timeout   time.Duration
	SMAWindow int
}

// NewPipeline creates a pipeline using the 20-day SMA.
func NewPipeline(gw collector.Gateway, timeout time.Duration) *Pipeline {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Pipeline{Gateway: gw, Timeout: timeout, SMAWindow: calculator.SMAWindow}
}

// Compute runs one pass.
//
// An empty selection returns a dashboard in StatusAwaitingInput without
// calling the gateway. Symbols without history are listed in Omitted and
// symbols without a latest price in Portfolio.Unresolved; neither aborts the
// pass. The returned error is either ErrInvalidSelection or a
// *collector.ProviderError.
func (p *Pipeline) Compute(ctx context.Context, sel model.Selection) (*model.Dashboard, error) {
	sel, err := Prepare(sel)
	if err != nil {
		return nil, err
	}
	d := &model.Dashboard{RunID: uuid.NewString(), Selection: sel}
	if sel.IsEmpty() {
		log.Printf("[INFO] run %s: no symbol selected, awaiting input", d.RunID)
		d.Status = model.StatusAwaitingInput
		return d, nil
	}
	log.Printf("[INFO] run %s: %d symbols %s..%s via %s", d.RunID, len(sel.Symbols),
		sel.Start.Format("2006-01-02"), sel.End.Format("2006-01-02"), p.Gateway.Name())

	// History
	raw, err := p.fetchRange(ctx, sel)
	if err != nil {
		return nil, err
	}
	set, omitted, err := series.Normalize(sel.Symbols, raw)
	if err != nil {
		return nil, collector.NewProviderError("normalize range", sel.Symbols, err)
	}
	for _, sym := range omitted {
		log.Printf("[WARN] run %s: no history for %s, omitted", d.RunID, sym)
	}
	d.Series = set
	d.Omitted = omitted
	d.SMA = make(map[model.Symbol]model.SmaSeries, len(set))
	d.Summaries = make(map[model.Symbol]model.SeriesSummary, len(set))
	window := p.SMAWindow
	if window <= 0 {
		window = calculator.SMAWindow
	}
	for sym, s := range set {
		d.SMA[sym] = calculator.SMASeries(s, window)
		d.Summaries[sym] = calculator.Summarize(s)
	}

	// Latest prices
	rawLatest, err := p.fetchLatest(ctx, sel.Symbols)
	if err != nil {
		return nil, err
	}
	prices, err := metrics.ResolveLatest(sel.Symbols, rawLatest)
	if err != nil {
		return nil, collector.NewProviderError("resolve latest", sel.Symbols, err)
	}
	d.Portfolio = metrics.Valuate(sel.Symbols, sel.Shares, prices)
	d.Alerts = metrics.EvaluateAlerts(sel.Symbols, sel.Thresholds, prices)
	for _, a := range d.Alerts {
		log.Printf("[INFO] run %s: alert %s %s > %s", d.RunID, a.Symbol, a.CurrentPrice, a.Threshold)
	}

	d.Status = model.StatusReady
	return d, nil
}

func (p *Pipeline) fetchRange(ctx context.Context, sel model.Selection) (model.RawSeriesResponse, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()
	raw, err := p.Gateway.FetchRange(ctx, sel.Symbols, sel.Start, sel.End)
	if err != nil {
		return nil, collector.NewProviderError("fetch range", sel.Symbols, err)
	}
	return raw, nil
}

func (p *Pipeline) fetchLatest(ctx context.Context, symbols []model.Symbol) (model.RawLatestResponse, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()
	raw, err := p.Gateway.FetchLatest(ctx, symbols)
	if err != nil {
		return nil, collector.NewProviderError("fetch latest", symbols, err)
	}
	return raw, nil
}

func (p *Pipeline) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.Timeout <= 0 {
		return context.WithTimeout(ctx, DefaultTimeout)
	}
	return context.WithTimeout(ctx, p.Timeout)
}
