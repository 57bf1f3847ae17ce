package collector

import (
	"StockDashboard/internal/model"

	"github.com/shopspring/decimal"
)

// shapeSeries returns the provider shape for the number of requested symbols.
func shapeSeries(symbols []model.Symbol, tables map[model.Symbol]model.Table) model.RawSeriesResponse {
	if len(symbols) == 1 {
		return model.FlatSeries{Table: tables[symbols[0]]}
	}
	return model.NestedSeries(tables)
}

// shapeLatest is the latest-price counterpart of shapeSeries. Symbols
// without a quote are left out of prices.
func shapeLatest(symbols []model.Symbol, prices map[model.Symbol]decimal.Decimal) model.RawLatestResponse {
	if len(symbols) == 1 {
		p, ok := prices[symbols[0]]
		if !ok {
			return model.LatestScalar{}
		}
		return model.LatestScalar{Price: decimal.NewNullDecimal(p)}
	}
	return model.LatestMap(prices)
}
