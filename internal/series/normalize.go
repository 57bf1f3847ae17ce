// Package series turns provider responses into uniform per-symbol series.
package series

import (
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"time"

	"StockDashboard/internal/model"

	"github.com/shopspring/decimal"
)

// ErrShapeMismatch is returned when the response shape does not fit the
// number of requested symbols.
var ErrShapeMismatch = errors.New("response shape does not match request")

// Normalize converts a range response into a SeriesSet.
//
// Requested symbols without any usable row are left out of the set and
// returned as omitted, in request order. The only error is a response whose
// shape cannot belong to the request.
func Normalize(symbols []model.Symbol, raw model.RawSeriesResponse) (model.SeriesSet, []model.Symbol, error) {
	tables, err := tablesBySymbol(symbols, raw)
	if err != nil {
		return nil, nil, err
	}

	set := make(model.SeriesSet, len(symbols))
	var omitted []model.Symbol
	for _, sym := range symbols {
		t, ok := tables[sym]
		if !ok {
			omitted = append(omitted, sym)
			continue
		}
		bars := Bars(t)
		if len(bars) == 0 {
			omitted = append(omitted, sym)
			continue
		}
		set[sym] = model.SymbolSeries{Symbol: sym, Bars: bars}
	}
	return set, omitted, nil
}

func tablesBySymbol(symbols []model.Symbol, raw model.RawSeriesResponse) (map[model.Symbol]model.Table, error) {
	switch r := raw.(type) {
	case model.FlatSeries:
		if len(symbols) != 1 {
			return nil, fmt.Errorf("%w: flat table for %d symbols", ErrShapeMismatch, len(symbols))
		}
		return map[model.Symbol]model.Table{symbols[0]: r.Table}, nil
	case model.NestedSeries:
		return r, nil
	case nil:
		return nil, fmt.Errorf("%w: empty response", ErrShapeMismatch)
	default:
		return nil, fmt.Errorf("%w: unknown response %T", ErrShapeMismatch, raw)
	}
}

// Bars converts table rows into daily bars ordered by ascending date.
//
// Rows without a close are dropped, as are rows with a negative value.
// A missing open, high or low falls back to the close and a missing volume
// to zero. Dates are truncated to the UTC calendar day; when a day appears
// twice the later row wins.
func Bars(t model.Table) []model.DailyBar {
	byDay := make(map[time.Time]model.DailyBar, t.Len())
	for i := 0; i < t.Len(); i++ {
		c := column(t.Close, i)
		if math.IsNaN(c) || math.IsInf(c, 0) {
			continue
		}
		o, h, l := orElse(column(t.Open, i), c), orElse(column(t.High, i), c), orElse(column(t.Low, i), c)
		v := column(t.Volume, i)
		if math.IsNaN(v) {
			v = 0
		}
		if math.IsInf(v, 0) || v >= math.MaxInt64 {
			log.Printf("[WARN] dropping row %s with volume out of range", t.Dates[i].Format(time.DateOnly))
			continue
		}
		if c < 0 || o < 0 || h < 0 || l < 0 || v < 0 {
			log.Printf("[WARN] dropping row %s with negative value", t.Dates[i].Format(time.DateOnly))
			continue
		}
		day := truncateDay(t.Dates[i])
		byDay[day] = model.DailyBar{
			Date:   day,
			Open:   decimal.NewFromFloat(o),
			High:   decimal.NewFromFloat(h),
			Low:    decimal.NewFromFloat(l),
			Close:  decimal.NewFromFloat(c),
			Volume: int64(math.Round(v)),
		}
	}

	bars := make([]model.DailyBar, 0, len(byDay))
	for _, b := range byDay {
		bars = append(bars, b)
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars
}

func column(values []float64, i int) float64 {
	if i >= len(values) {
		return math.NaN()
	}
	return values[i]
}

func orElse(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
