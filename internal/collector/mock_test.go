package collector

import (
	"context"
	"testing"
	"time"

	"StockDashboard/internal/model"
)

func TestGenerateTable_Weekdays(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) // Monday
	tbl := GenerateTable(100, start, start.AddDate(0, 0, 14))
	if tbl.Len() != 10 {
		t.Fatalf("expected 10 weekdays, got %d", tbl.Len())
	}
	for _, d := range tbl.Dates {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			t.Errorf("weekend bar generated: %s", d)
		}
	}
}

func TestMockGateway_Shapes(t *testing.T) {
	m := &MockGateway{}
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ctx := context.Background()

	if raw, _ := m.FetchRange(ctx, []model.Symbol{"AAPL"}, start, start.AddDate(0, 1, 0)); raw == nil {
		t.Fatal("nil response")
	} else if _, ok := raw.(model.FlatSeries); !ok {
		t.Errorf("single symbol: got %T", raw)
	}
	if raw, _ := m.FetchRange(ctx, []model.Symbol{"AAPL", "MSFT"}, start, start.AddDate(0, 1, 0)); raw == nil {
		t.Fatal("nil response")
	} else if _, ok := raw.(model.NestedSeries); !ok {
		t.Errorf("multi symbol: got %T", raw)
	}
	if m.RangeCalls != 2 {
		t.Errorf("RangeCalls = %d, want 2", m.RangeCalls)
	}
}
