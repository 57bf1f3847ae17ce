package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"StockDashboard/internal/model"

	"github.com/shopspring/decimal"
)

const yahooBaseURL = "https://query1.finance.yahoo.com"

// YahooGateway implements Gateway using the Yahoo Finance chart API.
// Symbols are fetched one after another; prices are split and dividend
// adjusted.
type YahooGateway struct {
	BaseURL   string
	Client    *http.Client
	SymbolMap map[model.Symbol]string // maps internal symbol to Yahoo ticker
}

// NewYahooGateway creates a new Yahoo Finance gateway.
func NewYahooGateway(proxyURL string, timeout time.Duration) *YahooGateway {
	return &YahooGateway{
		BaseURL: yahooBaseURL,
		Client:  newHTTPClient(proxyURL, timeout),
		SymbolMap: map[model.Symbol]string{
			"SPX500": "^GSPC",
			"SPX":    "^GSPC",
			"SP500":  "^GSPC",
		},
	}
}

func (g *YahooGateway) Name() string { return "yahoo" }

func (g *YahooGateway) yahooSymbol(symbol model.Symbol) string {
	if mapped, ok := g.SymbolMap[symbol]; ok {
		return mapped
	}
	return string(symbol)
}

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
				AdjClose []struct {
					AdjClose []interface{} `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// toFloat converts a JSON number; null becomes NaN.
func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return math.NaN()
	}
}

func at(values []interface{}, i int) float64 {
	if i >= len(values) {
		return math.NaN()
	}
	return toFloat(values[i])
}

func (g *YahooGateway) fetchChart(ctx context.Context, symbol model.Symbol, query url.Values) (model.Table, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", g.BaseURL, url.PathEscape(g.yahooSymbol(symbol)), query.Encode())

	body, err := get(ctx, g.Client, u, http.Header{"User-Agent": {"Mozilla/5.0"}})
	if err != nil {
		return model.Table{}, err
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return model.Table{}, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		if chart.Chart.Error.Code == "Not Found" {
			return model.Table{}, errNoData
		}
		return model.Table{}, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return model.Table{}, nil
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	var adj []interface{}
	if len(result.Indicators.AdjClose) > 0 {
		adj = result.Indicators.AdjClose[0].AdjClose
	}

	var t model.Table
	for i, ts := range result.Timestamp {
		o, h, l, c := at(quote.Open, i), at(quote.High, i), at(quote.Low, i), at(quote.Close, i)
		// auto adjust: scale OHLC by adjclose/close
		if a := at(adj, i); !math.IsNaN(a) && !math.IsNaN(c) && c != 0 {
			ratio := a / c
			o, h, l, c = o*ratio, h*ratio, l*ratio, a
		}
		t.Append(time.Unix(ts, 0).UTC(), o, h, l, c, at(quote.Volume, i))
	}
	return t, nil
}

// FetchRange fetches daily bars in [start, end). The end day is excluded.
func (g *YahooGateway) FetchRange(ctx context.Context, symbols []model.Symbol, start, end time.Time) (model.RawSeriesResponse, error) {
	tables := make(map[model.Symbol]model.Table, len(symbols))
	for _, sym := range symbols {
		q := url.Values{}
		q.Set("interval", "1d")
		q.Set("period1", strconv.FormatInt(start.Unix(), 10))
		q.Set("period2", strconv.FormatInt(end.Unix(), 10))
		t, err := g.fetchChart(ctx, sym, q)
		if errors.Is(err, errNoData) {
			log.Printf("[WARN] yahoo: no data for %s", sym)
			t = model.Table{}
		} else if err != nil {
			return nil, fmt.Errorf("yahoo fetch %s: %w", sym, err)
		}
		tables[sym] = t
	}
	return shapeSeries(symbols, tables), nil
}

// FetchLatest returns the last close of the current trading day.
func (g *YahooGateway) FetchLatest(ctx context.Context, symbols []model.Symbol) (model.RawLatestResponse, error) {
	prices := make(map[model.Symbol]decimal.Decimal, len(symbols))
	for _, sym := range symbols {
		q := url.Values{}
		q.Set("interval", "1d")
		q.Set("range", "1d")
		t, err := g.fetchChart(ctx, sym, q)
		if errors.Is(err, errNoData) {
			log.Printf("[WARN] yahoo: no quote for %s", sym)
			continue
		} else if err != nil {
			return nil, fmt.Errorf("yahoo quote %s: %w", sym, err)
		}
		for i := t.Len() - 1; i >= 0; i-- {
			if !math.IsNaN(t.Close[i]) {
				prices[sym] = decimal.NewFromFloat(t.Close[i])
				break
			}
		}
	}
	return shapeLatest(symbols, prices), nil
}
