// Package metrics derives portfolio valuations and price alerts from the
// latest available prices.
package metrics

import (
	"errors"
	"fmt"

	"StockDashboard/internal/model"

	"github.com/shopspring/decimal"
)

// ErrMissingPrice is returned for a symbol without a latest price.
var ErrMissingPrice = errors.New("price unavailable")

// ErrShapeMismatch is returned when a latest-price response does not fit
// the number of requested symbols.
var ErrShapeMismatch = errors.New("latest price shape does not match request")

// LatestPrices is a uniform per-symbol price lookup.
type LatestPrices map[model.Symbol]decimal.Decimal

// Price returns the latest price of sym or ErrMissingPrice.
func (p LatestPrices) Price(sym model.Symbol) (decimal.Decimal, error) {
	price, ok := p[sym]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s: %w", sym, ErrMissingPrice)
	}
	return price, nil
}

// ResolveLatest normalizes a latest-price response into LatestPrices.
// A scalar answer for a single requested symbol becomes a one-entry map.
// Only requested symbols are kept; a negative quote is treated as missing.
func ResolveLatest(symbols []model.Symbol, raw model.RawLatestResponse) (LatestPrices, error) {
	prices := make(LatestPrices, len(symbols))
	switch r := raw.(type) {
	case model.LatestScalar:
		if len(symbols) != 1 {
			return nil, fmt.Errorf("%w: scalar for %d symbols", ErrShapeMismatch, len(symbols))
		}
		if r.Price.Valid && !r.Price.Decimal.IsNegative() {
			prices[symbols[0]] = r.Price.Decimal
		}
	case model.LatestMap:
		for _, sym := range symbols {
			if p, ok := r[sym]; ok && !p.IsNegative() {
				prices[sym] = p
			}
		}
	case nil:
		return nil, fmt.Errorf("%w: empty response", ErrShapeMismatch)
	default:
		return nil, fmt.Errorf("%w: unknown response %T", ErrShapeMismatch, raw)
	}
	return prices, nil
}
