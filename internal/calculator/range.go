package calculator

import (
	"StockDashboard/internal/model"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Summarize scans the whole series for its range high/low, the change
// between the first and last close and the SMAWindow average at the last
// bar. An empty series yields a zero summary.
func Summarize(series model.SymbolSeries) model.SeriesSummary {
	if series.Len() == 0 {
		return model.SeriesSummary{}
	}
	first, last := series.Bars[0], series.Bars[series.Len()-1]
	s := model.SeriesSummary{
		Bars:  series.Len(),
		From:  first.Date,
		To:    last.Date,
		First: first.Close,
		Last:  last.Close,
		High:  first.High,
		Low:   first.Low,
	}
	for _, b := range series.Bars[1:] {
		if b.High.GreaterThan(s.High) {
			s.High = b.High
		}
		if b.Low.LessThan(s.Low) {
			s.Low = b.Low
		}
	}
	if avg, err := CalculateSMA(series.Closes(), SMAWindow); err == nil {
		s.LastSMA = decimal.NewNullDecimal(avg)
	}
	if !first.Close.IsZero() {
		s.ChangePct = last.Close.Sub(first.Close).Div(first.Close).Mul(hundred).Round(2)
	}
	return s
}
