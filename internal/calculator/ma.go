package calculator

import (
	"errors"

	"StockDashboard/internal/model"

	"github.com/shopspring/decimal"
)

// SMAWindow is the moving average window used by the candlestick view.
const SMAWindow = 20

// CalculateSMA computes the simple moving average of the last period prices.
func CalculateSMA(prices []decimal.Decimal, period int) (decimal.Decimal, error) {
	if period <= 0 {
		return decimal.Zero, errors.New("period must be positive")
	}
	if len(prices) < period {
		return decimal.Zero, errors.New("not enough data for SMA calculation")
	}
	return decimal.Sum(decimal.Zero, prices[len(prices)-period:]...).Div(decimal.NewFromInt(int64(period))), nil
}

// SMASeries computes the rolling simple moving average of the closes of a
// series. The result has one point per bar; the first period-1 points are
// undefined. A non-positive period yields only undefined points.
func SMASeries(series model.SymbolSeries, period int) model.SmaSeries {
	out := make(model.SmaSeries, series.Len())
	closes := extractCloses(series.Bars)
	n := decimal.NewFromInt(int64(period))

	sum := decimal.Zero
	for i, b := range series.Bars {
		out[i].Date = b.Date
		if period <= 0 {
			continue
		}
		sum = sum.Add(closes[i])
		if i >= period {
			sum = sum.Sub(closes[i-period])
		}
		if i >= period-1 {
			out[i].Value = decimal.NewNullDecimal(sum.Div(n))
		}
	}
	return out
}

func extractCloses(bars []model.DailyBar) []decimal.Decimal {
	closes := make([]decimal.Decimal, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
