package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sort"
	"time"

	"StockDashboard/internal/model"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// DefaultQuotePath extracts the price from a quote response.
const DefaultQuotePath = "$.price"

// RestGateway implements Gateway against a generic REST market data API.
//
//	GET {base}/api/v1/bars/daily?symbol=X&from=YYYY-MM-DD&to=YYYY-MM-DD
//	GET {base}/api/v1/quote?symbol=X
//
// The quote response layout varies between deployments, so the price is
// located with a JSONPath expression.
type RestGateway struct {
	BaseURL   string
	APIKey    string
	QuotePath string
	Client    *http.Client
}

// NewRestGateway creates a new gateway with optional proxy support.
func NewRestGateway(baseURL, apiKey, quotePath, proxyURL string, timeout time.Duration) *RestGateway {
	if quotePath == "" {
		quotePath = DefaultQuotePath
	}
	return &RestGateway{
		BaseURL:   baseURL,
		APIKey:    apiKey,
		QuotePath: quotePath,
		Client:    newHTTPClient(proxyURL, timeout),
	}
}

func (g *RestGateway) Name() string { return "rest" }

// restBar is the expected JSON shape of a daily bar.
type restBar struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

func (g *RestGateway) header() http.Header {
	h := http.Header{}
	if g.APIKey != "" {
		h.Set("Authorization", "Bearer "+g.APIKey)
	}
	return h
}

func (g *RestGateway) FetchRange(ctx context.Context, symbols []model.Symbol, start, end time.Time) (model.RawSeriesResponse, error) {
	tables := make(map[model.Symbol]model.Table, len(symbols))
	for _, sym := range symbols {
		endpoint := fmt.Sprintf("%s/api/v1/bars/daily?symbol=%s&from=%s&to=%s",
			g.BaseURL, url.QueryEscape(string(sym)), start.Format(time.DateOnly), end.Format(time.DateOnly))
		body, err := get(ctx, g.Client, endpoint, g.header())
		if errors.Is(err, errNoData) {
			log.Printf("[WARN] rest: no data for %s", sym)
			tables[sym] = model.Table{}
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("fetch bars %s: %w", sym, err)
		}
		var bars []restBar
		if err := json.Unmarshal(body, &bars); err != nil {
			return nil, fmt.Errorf("decode bars %s: %w", sym, err)
		}
		sort.Slice(bars, func(i, j int) bool { return bars[i].Timestamp < bars[j].Timestamp })
		var t model.Table
		for _, b := range bars {
			t.Append(time.Unix(b.Timestamp, 0).UTC(), b.Open, b.High, b.Low, b.Close, b.Volume)
		}
		tables[sym] = t
	}
	return shapeSeries(symbols, tables), nil
}

func (g *RestGateway) FetchLatest(ctx context.Context, symbols []model.Symbol) (model.RawLatestResponse, error) {
	prices := make(map[model.Symbol]decimal.Decimal, len(symbols))
	for _, sym := range symbols {
		endpoint := fmt.Sprintf("%s/api/v1/quote?symbol=%s", g.BaseURL, url.QueryEscape(string(sym)))
		body, err := get(ctx, g.Client, endpoint, g.header())
		if errors.Is(err, errNoData) {
			log.Printf("[WARN] rest: no quote for %s", sym)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("fetch quote %s: %w", sym, err)
		}
		var obj any
		if err := json.Unmarshal(body, &obj); err != nil {
			return nil, fmt.Errorf("decode quote %s: %w", sym, err)
		}
		price, err := g.extractPrice(obj)
		if err != nil {
			log.Printf("[WARN] rest: quote for %s: %v", sym, err)
			continue
		}
		prices[sym] = price
	}
	return shapeLatest(symbols, prices), nil
}

func (g *RestGateway) extractPrice(obj any) (decimal.Decimal, error) {
	v, err := jsonpath.Get(g.QuotePath, obj)
	if err != nil {
		return decimal.Zero, fmt.Errorf("path %q: %w", g.QuotePath, err)
	}
	// jsonpath may answer a list of one element
	if list, ok := v.([]any); ok {
		if len(list) == 0 {
			return decimal.Zero, fmt.Errorf("path %q: no match", g.QuotePath)
		}
		v = list[0]
	}
	switch p := v.(type) {
	case float64:
		return decimal.NewFromFloat(p), nil
	case string:
		return decimal.NewFromString(p)
	default:
		return decimal.Zero, fmt.Errorf("path %q: not a number: %v", g.QuotePath, v)
	}
}
