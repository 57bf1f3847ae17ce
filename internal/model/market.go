package model

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Symbol is an uppercase equity ticker such as "AAPL".
type Symbol string

// NewSymbol normalizes user input into a Symbol.
func NewSymbol(s string) Symbol {
	return Symbol(strings.ToUpper(strings.TrimSpace(s)))
}

func (s Symbol) String() string { return string(s) }

// SortSymbols sorts symbols in place and returns them.
func SortSymbols(symbols []Symbol) []Symbol {
	sort.Slice(symbols, func(i, j int) bool { return symbols[i] < symbols[j] })
	return symbols
}

// DailyBar represents one trading day of one symbol.
type DailyBar struct {
	Date   time.Time
	Open   decimal.Decimal
	High   decimal.Decimal
	Low    decimal.Decimal
	Close  decimal.Decimal
	Volume int64
}

// SymbolSeries holds the daily bars of one symbol, dates strictly increasing.
type SymbolSeries struct {
	Symbol Symbol
	Bars   []DailyBar
}

func (s SymbolSeries) Len() int { return len(s.Bars) }

// Closes returns the close prices in series order.
func (s SymbolSeries) Closes() []decimal.Decimal {
	closes := make([]decimal.Decimal, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// Last returns the most recent bar.
func (s SymbolSeries) Last() (DailyBar, bool) {
	if len(s.Bars) == 0 {
		return DailyBar{}, false
	}
	return s.Bars[len(s.Bars)-1], true
}

// SeriesSet maps every symbol the gateway returned data for to its series.
type SeriesSet map[Symbol]SymbolSeries

// Symbols returns the symbols of the set in lexical order.
func (s SeriesSet) Symbols() []Symbol {
	symbols := make([]Symbol, 0, len(s))
	for sym := range s {
		symbols = append(symbols, sym)
	}
	return SortSymbols(symbols)
}

// SeriesSummary describes a series over the fetched date range.
type SeriesSummary struct {
	Bars      int
	From      time.Time
	To        time.Time
	First     decimal.Decimal
	Last      decimal.Decimal
	ChangePct decimal.Decimal
	High      decimal.Decimal
	Low       decimal.Decimal
	// LastSMA is the moving average at the last bar; invalid for short series.
	LastSMA decimal.NullDecimal
}
