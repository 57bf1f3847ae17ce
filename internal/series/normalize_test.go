package series

import (
	"errors"
	"math"
	"testing"
	"time"

	"StockDashboard/internal/model"

	"github.com/google/go-cmp/cmp"
)

func day(n int) time.Time {
	return time.Date(2023, 1, 2, 14, 30, 0, 0, time.UTC).AddDate(0, 0, n)
}

func table(n int, base float64) model.Table {
	var t model.Table
	for i := 0; i < n; i++ {
		p := base + float64(i)
		t.Append(day(i), p-0.5, p+1, p-1, p, float64(1000*(i+1)))
	}
	return t
}

func TestNormalize_ShapeInvariance(t *testing.T) {
	tbl := table(5, 100)
	symbols := []model.Symbol{"AAPL"}

	flat, _, err := Normalize(symbols, model.FlatSeries{Table: tbl})
	if err != nil {
		t.Fatalf("flat: %v", err)
	}
	nested, _, err := Normalize(symbols, model.NestedSeries{"AAPL": tbl})
	if err != nil {
		t.Fatalf("nested: %v", err)
	}
	if diff := cmp.Diff(flat, nested); diff != "" {
		t.Errorf("flat and nested shapes differ (-flat +nested):\n%s", diff)
	}
	if flat["AAPL"].Len() != 5 {
		t.Errorf("expected 5 bars, got %d", flat["AAPL"].Len())
	}
}

func TestNormalize_EmptySymbolOmitted(t *testing.T) {
	raw := model.NestedSeries{
		"AAPL": {},
		"MSFT": table(5, 250),
	}
	set, omitted, err := Normalize([]model.Symbol{"AAPL", "MSFT"}, raw)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(set) != 1 {
		t.Fatalf("expected only MSFT, got %v", set.Symbols())
	}
	if set["MSFT"].Len() != 5 {
		t.Errorf("MSFT bars = %d, want 5", set["MSFT"].Len())
	}
	if diff := cmp.Diff([]model.Symbol{"AAPL"}, omitted); diff != "" {
		t.Errorf("omitted mismatch:\n%s", diff)
	}
}

func TestNormalize_MissingKeyOmitted(t *testing.T) {
	set, omitted, err := Normalize([]model.Symbol{"IBM", "INTC"}, model.NestedSeries{"INTC": table(2, 30)})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if _, ok := set["IBM"]; ok {
		t.Error("IBM should be absent")
	}
	if len(omitted) != 1 || omitted[0] != "IBM" {
		t.Errorf("omitted = %v", omitted)
	}
}

func TestNormalize_ShapeMismatch(t *testing.T) {
	tests := []struct {
		name    string
		symbols []model.Symbol
		raw     model.RawSeriesResponse
	}{
		{"flat for two symbols", []model.Symbol{"AAPL", "MSFT"}, model.FlatSeries{Table: table(1, 1)}},
		{"nil response", []model.Symbol{"AAPL"}, nil},
	}
	for _, tt := range tests {
		if _, _, err := Normalize(tt.symbols, tt.raw); !errors.Is(err, ErrShapeMismatch) {
			t.Errorf("%s: expected ErrShapeMismatch, got %v", tt.name, err)
		}
	}
}

func TestBars_CleansRows(t *testing.T) {
	var tbl model.Table
	tbl.Append(day(2), 10, 11, 9, 10.5, 100)
	tbl.Append(day(0), math.NaN(), math.NaN(), math.NaN(), 8, math.NaN()) // gaps fall back
	tbl.Append(day(1), 1, 1, 1, math.NaN(), 100)                          // no close: dropped
	tbl.Append(day(3), 1, 1, -1, 1, 100)                                  // negative: dropped
	tbl.Append(day(2).Add(time.Hour), 10, 12, 9, 11, 200)                 // same day: later wins

	bars := Bars(tbl)
	if len(bars) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(bars))
	}
	if !bars[0].Date.Before(bars[1].Date) {
		t.Error("bars must be ascending")
	}
	first := bars[0]
	if first.Open.String() != "8" || first.High.String() != "8" || first.Low.String() != "8" || first.Volume != 0 {
		t.Errorf("gap fallback wrong: %+v", first)
	}
	if bars[1].Close.String() != "11" || bars[1].Volume != 200 {
		t.Errorf("duplicate day should keep the later row: %+v", bars[1])
	}
	if bars[1].Date.Hour() != 0 {
		t.Errorf("date should be truncated to the day: %s", bars[1].Date)
	}
}

func TestBars_VolumeOutOfRange(t *testing.T) {
	tests := []struct {
		name   string
		volume float64
		keep   bool
	}{
		{"positive infinity", math.Inf(1), false},
		{"negative infinity", math.Inf(-1), false},
		{"above int64", 1e19, false},
		{"exactly 2^63", math.Exp2(63), false},
		{"large but valid", 1e18, true},
	}
	for _, tt := range tests {
		var tbl model.Table
		tbl.Append(day(0), 10, 11, 9, 10, tt.volume)
		bars := Bars(tbl)
		if tt.keep {
			if len(bars) != 1 || bars[0].Volume <= 0 {
				t.Errorf("%s: bars = %+v, want one bar with positive volume", tt.name, bars)
			}
			continue
		}
		if len(bars) != 0 {
			t.Errorf("%s: row should be dropped, got volume %d", tt.name, bars[0].Volume)
		}
	}
}
