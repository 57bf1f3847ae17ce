package collector

import (
	"context"
	"time"

	"StockDashboard/internal/model"
)

// Gateway fetches daily market data for a set of symbols.
//
// The shape of a response depends on the number of requested symbols:
// one symbol yields model.FlatSeries / model.LatestScalar, several symbols
// yield model.NestedSeries / model.LatestMap. A symbol the provider has no
// data for is returned empty (or absent) rather than as an error.
type Gateway interface {
	FetchRange(ctx context.Context, symbols []model.Symbol, start, end time.Time) (model.RawSeriesResponse, error)
	FetchLatest(ctx context.Context, symbols []model.Symbol) (model.RawLatestResponse, error)
	Name() string
}
