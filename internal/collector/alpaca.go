package collector

import (
	"context"
	"fmt"
	"time"

	"StockDashboard/internal/model"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/shopspring/decimal"
)

// AlpacaGateway implements Gateway using the Alpaca market data API (IEX feed).
type AlpacaGateway struct {
	Client *marketdata.Client
}

// NewAlpacaGateway creates a gateway with optional proxy support. An empty
// baseURL selects the default endpoint.
func NewAlpacaGateway(apiKey, apiSecret, baseURL, proxyURL string, timeout time.Duration) *AlpacaGateway {
	return &AlpacaGateway{
		Client: marketdata.NewClient(marketdata.ClientOpts{
			APIKey:     apiKey,
			APISecret:  apiSecret,
			BaseURL:    baseURL,
			HTTPClient: newHTTPClient(proxyURL, timeout),
		}),
	}
}

func (g *AlpacaGateway) Name() string { return "alpaca" }

func tickers(symbols []model.Symbol) []string {
	out := make([]string, len(symbols))
	for i, s := range symbols {
		out[i] = string(s)
	}
	return out
}

// FetchRange fetches adjusted daily bars in [start, end).
func (g *AlpacaGateway) FetchRange(ctx context.Context, symbols []model.Symbol, start, end time.Time) (model.RawSeriesResponse, error) {
	var bars map[string][]marketdata.Bar
	err := withContext(ctx, func() (err error) {
		bars, err = g.Client.GetMultiBars(tickers(symbols), marketdata.GetBarsRequest{
			TimeFrame:  marketdata.OneDay,
			Adjustment: marketdata.All,
			Start:      start,
			End:        end,
			Feed:       marketdata.IEX,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("alpaca bars: %w", err)
	}

	tables := make(map[model.Symbol]model.Table, len(symbols))
	for _, sym := range symbols {
		var t model.Table
		for _, b := range bars[string(sym)] {
			if !b.Timestamp.Before(end) {
				continue
			}
			t.Append(b.Timestamp.UTC(), b.Open, b.High, b.Low, b.Close, float64(b.Volume))
		}
		tables[sym] = t
	}
	return shapeSeries(symbols, tables), nil
}

// FetchLatest returns the close of the latest daily bar of each symbol.
func (g *AlpacaGateway) FetchLatest(ctx context.Context, symbols []model.Symbol) (model.RawLatestResponse, error) {
	var latest map[string]marketdata.Bar
	err := withContext(ctx, func() (err error) {
		latest, err = g.Client.GetLatestBars(tickers(symbols), marketdata.GetLatestBarRequest{
			Feed: marketdata.IEX,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("alpaca latest bars: %w", err)
	}

	prices := make(map[model.Symbol]decimal.Decimal, len(latest))
	for _, sym := range symbols {
		b, ok := latest[string(sym)]
		if !ok || b.Close <= 0 {
			continue
		}
		prices[sym] = decimal.NewFromFloat(b.Close)
	}
	return shapeLatest(symbols, prices), nil
}

// withContext runs call and gives up when ctx is done. The Alpaca client
// does not accept a context; an abandoned call ends at the HTTP client
// timeout.
func withContext(ctx context.Context, call func() error) error {
	done := make(chan error, 1)
	go func() { done <- call() }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
