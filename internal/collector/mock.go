package collector

import (
	"context"
	"hash/fnv"
	"math"
	"time"

	"StockDashboard/internal/model"

	"github.com/shopspring/decimal"
)

// MockGateway returns controllable fixed data for development and testing.
//
// When Tables is nil, deterministic weekday bars are generated for every
// symbol. When Latest is nil, the latest price is the last close of the
// symbol's table (or a generated base price).
type MockGateway struct {
	Tables    map[model.Symbol]model.Table
	Latest    map[model.Symbol]decimal.Decimal
	RangeErr  error
	LatestErr error

	RangeCalls  int
	LatestCalls int
}

func (m *MockGateway) Name() string { return "mock" }

func (m *MockGateway) FetchRange(ctx context.Context, symbols []model.Symbol, start, end time.Time) (model.RawSeriesResponse, error) {
	m.RangeCalls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.RangeErr != nil {
		return nil, m.RangeErr
	}
	tables := make(map[model.Symbol]model.Table, len(symbols))
	for _, sym := range symbols {
		if m.Tables == nil {
			tables[sym] = GenerateTable(basePrice(sym), start, end)
			continue
		}
		tables[sym] = m.Tables[sym]
	}
	return shapeSeries(symbols, tables), nil
}

func (m *MockGateway) FetchLatest(ctx context.Context, symbols []model.Symbol) (model.RawLatestResponse, error) {
	m.LatestCalls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.LatestErr != nil {
		return nil, m.LatestErr
	}
	prices := make(map[model.Symbol]decimal.Decimal, len(symbols))
	for _, sym := range symbols {
		switch {
		case m.Latest != nil:
			if p, ok := m.Latest[sym]; ok {
				prices[sym] = p
			}
		case m.Tables != nil:
			t := m.Tables[sym]
			for i := t.Len() - 1; i >= 0; i-- {
				if !math.IsNaN(t.Close[i]) {
					prices[sym] = decimal.NewFromFloat(t.Close[i])
					break
				}
			}
		default:
			prices[sym] = decimal.NewFromFloat(basePrice(sym))
		}
	}
	return shapeLatest(symbols, prices), nil
}

// GenerateTable builds one bar per weekday in [start, end) oscillating
// around basePrice.
func GenerateTable(basePrice float64, start, end time.Time) model.Table {
	var days []time.Time
	for d := start.UTC().Truncate(24 * time.Hour); d.Before(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		days = append(days, d)
	}
	var t model.Table
	count := len(days)
	for i, d := range days {
		p := round2(basePrice * (1 + float64(i-count/2)*0.001))
		t.Append(d, round2(p*0.999), round2(p*1.005), round2(p*0.995), p, 1000000)
	}
	return t
}

func basePrice(sym model.Symbol) float64 {
	h := fnv.New32a()
	h.Write([]byte(sym))
	return float64(50 + h.Sum32()%450)
}

func round2(f float64) float64 { return math.Round(f*100) / 100 }
