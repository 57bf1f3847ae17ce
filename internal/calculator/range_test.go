package calculator

import (
	"testing"

	"StockDashboard/internal/model"

	"github.com/shopspring/decimal"
)

func TestSummarize(t *testing.T) {
	s := makeSeries(100, 90, 120, 110)
	s.Bars[2].High = decimal.NewFromInt(125)
	s.Bars[1].Low = decimal.NewFromInt(85)

	sum := Summarize(s)
	if sum.Bars != 4 {
		t.Errorf("Bars = %d", sum.Bars)
	}
	if !sum.High.Equal(decimal.NewFromInt(125)) || !sum.Low.Equal(decimal.NewFromInt(85)) {
		t.Errorf("range = %s..%s, want 85..125", sum.Low, sum.High)
	}
	if !sum.ChangePct.Equal(decimal.NewFromInt(10)) {
		t.Errorf("ChangePct = %s, want 10", sum.ChangePct)
	}
	if !sum.From.Equal(s.Bars[0].Date) || !sum.To.Equal(s.Bars[3].Date) {
		t.Error("From/To should span the series")
	}
}

func TestSummarize_Empty(t *testing.T) {
	if got := Summarize(model.SymbolSeries{}); got.Bars != 0 || !got.High.IsZero() {
		t.Errorf("empty summary = %+v", got)
	}
}

func TestSummarize_LastSMA(t *testing.T) {
	if got := Summarize(makeSeries(pseudoCloses(19)...)); got.LastSMA.Valid {
		t.Errorf("19 bars should leave LastSMA undefined, got %s", got.LastSMA.Decimal)
	}

	s := makeSeries(pseudoCloses(30)...)
	got := Summarize(s)
	if !got.LastSMA.Valid {
		t.Fatal("30 bars should define LastSMA")
	}
	sma := SMASeries(s, SMAWindow)
	if want := sma[len(sma)-1].Value.Decimal; !got.LastSMA.Decimal.Equal(want) {
		t.Errorf("LastSMA = %s, want %s (last point of SMASeries)", got.LastSMA.Decimal, want)
	}
}
