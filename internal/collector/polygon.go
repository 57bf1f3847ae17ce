package collector

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"StockDashboard/internal/model"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"
	"github.com/shopspring/decimal"
)

// PolygonGateway implements Gateway using the Polygon.io aggregates API.
type PolygonGateway struct {
	Client *polygon.Client
}

// NewPolygonGateway creates a gateway with optional proxy support.
func NewPolygonGateway(apiKey, proxyURL string, timeout time.Duration) *PolygonGateway {
	return newPolygonGateway(apiKey, newHTTPClient(proxyURL, timeout))
}

func newPolygonGateway(apiKey string, hc *http.Client) *PolygonGateway {
	return &PolygonGateway{Client: polygon.NewWithClient(apiKey, hc)}
}

func (g *PolygonGateway) Name() string { return "polygon" }

// FetchRange fetches adjusted daily aggregates in [start, end).
func (g *PolygonGateway) FetchRange(ctx context.Context, symbols []model.Symbol, start, end time.Time) (model.RawSeriesResponse, error) {
	tables := make(map[model.Symbol]model.Table, len(symbols))
	for _, sym := range symbols {
		params := models.ListAggsParams{
			Ticker:     string(sym),
			Multiplier: 1,
			Timespan:   models.Day,
			From:       models.Millis(start),
			To:         models.Millis(end),
		}.WithAdjusted(true).WithOrder(models.Asc).WithLimit(50000)

		var t model.Table
		iter := g.Client.ListAggs(ctx, params)
		for iter.Next() {
			a := iter.Item()
			ts := time.Time(a.Timestamp)
			if !ts.Before(end) {
				continue
			}
			t.Append(ts.UTC(), a.Open, a.High, a.Low, a.Close, a.Volume)
		}
		if err := iter.Err(); err != nil {
			return nil, fmt.Errorf("polygon aggs %s: %w", sym, err)
		}
		if t.Len() == 0 {
			log.Printf("[WARN] polygon: no data for %s", sym)
		}
		tables[sym] = t
	}
	return shapeSeries(symbols, tables), nil
}

// FetchLatest returns the previous session close of each symbol.
func (g *PolygonGateway) FetchLatest(ctx context.Context, symbols []model.Symbol) (model.RawLatestResponse, error) {
	prices := make(map[model.Symbol]decimal.Decimal, len(symbols))
	for _, sym := range symbols {
		params := models.GetPreviousCloseAggParams{Ticker: string(sym)}.WithAdjusted(true)
		res, err := g.Client.GetPreviousCloseAgg(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("polygon previous close %s: %w", sym, err)
		}
		if len(res.Results) == 0 || res.Results[0].Close <= 0 {
			log.Printf("[WARN] polygon: no quote for %s", sym)
			continue
		}
		prices[sym] = decimal.NewFromFloat(res.Results[0].Close)
	}
	return shapeLatest(symbols, prices), nil
}
