package metrics

import (
	"errors"
	"testing"

	"StockDashboard/internal/model"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestResolveLatest(t *testing.T) {
	tests := []struct {
		name    string
		symbols []model.Symbol
		raw     model.RawLatestResponse
		want    LatestPrices
		wantErr error
	}{
		{
			name:    "scalar for one symbol",
			symbols: []model.Symbol{"AAPL"},
			raw:     model.LatestScalar{Price: decimal.NewNullDecimal(d("150.00"))},
			want:    LatestPrices{"AAPL": d("150")},
		},
		{
			name:    "invalid scalar",
			symbols: []model.Symbol{"AAPL"},
			raw:     model.LatestScalar{},
			want:    LatestPrices{},
		},
		{
			name:    "map keeps requested symbols only",
			symbols: []model.Symbol{"AAPL", "TSLA"},
			raw:     model.LatestMap{"AAPL": d("150"), "TSLA": d("205.5"), "IBM": d("1")},
			want:    LatestPrices{"AAPL": d("150"), "TSLA": d("205.5")},
		},
		{
			name:    "map for one symbol",
			symbols: []model.Symbol{"AAPL"},
			raw:     model.LatestMap{"AAPL": d("150")},
			want:    LatestPrices{"AAPL": d("150")},
		},
		{
			name:    "scalar for two symbols",
			symbols: []model.Symbol{"AAPL", "TSLA"},
			raw:     model.LatestScalar{Price: decimal.NewNullDecimal(d("1"))},
			wantErr: ErrShapeMismatch,
		},
		{
			name:    "nil",
			symbols: []model.Symbol{"AAPL"},
			wantErr: ErrShapeMismatch,
		},
	}
	for _, tt := range tests {
		got, err := ResolveLatest(tt.symbols, tt.raw)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("%s: err = %v, want %v", tt.name, err, tt.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: %v", tt.name, err)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("%s: (-want +got)\n%s", tt.name, diff)
		}
	}
}

func TestLatestPrices_MissingIsError(t *testing.T) {
	_, err := LatestPrices{}.Price("AAPL")
	if !errors.Is(err, ErrMissingPrice) {
		t.Errorf("expected ErrMissingPrice, got %v", err)
	}
}

func TestValuate_SingleHolding(t *testing.T) {
	p := Valuate([]model.Symbol{"AAPL"}, map[model.Symbol]int64{"AAPL": 10}, LatestPrices{"AAPL": d("150.00")})
	e, ok := p.Entry("AAPL")
	if !ok || !e.Resolved {
		t.Fatalf("AAPL entry missing or unresolved: %+v", e)
	}
	if !e.Value.Equal(d("1500")) {
		t.Errorf("value = %s, want 1500.00", e.Value)
	}
	if !p.Total.Equal(d("1500")) {
		t.Errorf("total = %s, want 1500.00", p.Total)
	}
}

func TestValuate_UnresolvedExcluded(t *testing.T) {
	symbols := []model.Symbol{"AAPL", "TSLA", "MSFT"}
	shares := map[model.Symbol]int64{"AAPL": 2, "TSLA": 3}
	p := Valuate(symbols, shares, LatestPrices{"AAPL": d("100"), "MSFT": d("300")})

	if !p.Total.Equal(d("200")) {
		t.Errorf("total = %s, want 200", p.Total)
	}
	if diff := cmp.Diff([]model.Symbol{"TSLA"}, p.Unresolved); diff != "" {
		t.Errorf("unresolved:\n%s", diff)
	}
	if len(p.Entries) != 3 {
		t.Fatalf("every selected symbol should have an entry, got %d", len(p.Entries))
	}
	tsla, _ := p.Entry("TSLA")
	if tsla.Resolved || !tsla.Value.IsZero() {
		t.Errorf("TSLA should be unresolved: %+v", tsla)
	}
	msft, _ := p.Entry("MSFT")
	if !msft.Resolved || msft.Shares != 0 || !msft.Value.IsZero() {
		t.Errorf("MSFT zero shares should be resolved with zero value: %+v", msft)
	}
	for i, sym := range symbols {
		if p.Entries[i].Symbol != sym {
			t.Errorf("entry %d = %s, want %s", i, p.Entries[i].Symbol, sym)
		}
	}
}

func TestEvaluateAlerts(t *testing.T) {
	tests := []struct {
		name      string
		threshold string
		price     string
		fire      bool
	}{
		{"above", "200.00", "205.50", true},
		{"equal is not above", "205.50", "205.50", false},
		{"below", "210", "205.50", false},
		{"disabled", "0", "205.50", false},
		{"disabled huge price", "0", "99999999", false},
	}
	for _, tt := range tests {
		events := EvaluateAlerts(
			[]model.Symbol{"TSLA"},
			map[model.Symbol]decimal.Decimal{"TSLA": d(tt.threshold)},
			LatestPrices{"TSLA": d(tt.price)},
		)
		if fired := len(events) == 1; fired != tt.fire {
			t.Errorf("%s: fired=%v, want %v", tt.name, fired, tt.fire)
			continue
		}
		if tt.fire {
			want := model.AlertEvent{Symbol: "TSLA", Threshold: d(tt.threshold), CurrentPrice: d(tt.price)}
			if diff := cmp.Diff(want, events[0]); diff != "" {
				t.Errorf("%s: event (-want +got)\n%s", tt.name, diff)
			}
		}
	}
}

func TestEvaluateAlerts_MissingPriceAndUnset(t *testing.T) {
	events := EvaluateAlerts(
		[]model.Symbol{"AAPL", "TSLA", "IBM"},
		map[model.Symbol]decimal.Decimal{"AAPL": d("1"), "TSLA": d("1")},
		LatestPrices{"TSLA": d("2"), "IBM": d("500")},
	)
	if len(events) != 1 || events[0].Symbol != "TSLA" {
		t.Errorf("expected only TSLA, got %+v", events)
	}
}
