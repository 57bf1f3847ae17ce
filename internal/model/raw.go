package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Table is a columnar block of daily rows as returned by a provider.
// Missing values are NaN.
type Table struct {
	Dates  []time.Time
	Open   []float64
	High   []float64
	Low    []float64
	Close  []float64
	Volume []float64
}

func (t Table) Len() int { return len(t.Dates) }

// Append adds one row to the table.
func (t *Table) Append(date time.Time, open, high, low, close, volume float64) {
	t.Dates = append(t.Dates, date)
	t.Open = append(t.Open, open)
	t.High = append(t.High, high)
	t.Low = append(t.Low, low)
	t.Close = append(t.Close, close)
	t.Volume = append(t.Volume, volume)
}

// RawSeriesResponse is the result of a historical range fetch. It is either
// a FlatSeries (one symbol requested) or a NestedSeries (several symbols).
type RawSeriesResponse interface {
	rawSeries()
}

// FlatSeries is the single-symbol shape: one table indexed by date.
type FlatSeries struct {
	Table Table
}

// NestedSeries is the multi-symbol shape: one table per symbol.
type NestedSeries map[Symbol]Table

func (FlatSeries) rawSeries()   {}
func (NestedSeries) rawSeries() {}

// RawLatestResponse is the result of a latest-price fetch. It is either a
// LatestScalar (one symbol requested) or a LatestMap (several symbols).
type RawLatestResponse interface {
	rawLatest()
}

// LatestScalar is the single-symbol shape. Price.Valid is false when the
// provider had no quote.
type LatestScalar struct {
	Price decimal.NullDecimal
}

// LatestMap is the multi-symbol shape keyed by symbol.
type LatestMap map[Symbol]decimal.Decimal

func (LatestScalar) rawLatest() {}
func (LatestMap) rawLatest()    {}
