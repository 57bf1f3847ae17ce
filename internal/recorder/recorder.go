package recorder

import (
	"time"

	"StockDashboard/internal/model"

	"github.com/shopspring/decimal"
)

// RunRecord is the write-only history row of one dashboard pass.
type RunRecord struct {
	RunID      string
	Timestamp  time.Time
	Provider   string
	Symbols    []model.Symbol
	Start      time.Time
	End        time.Time
	Total      decimal.Decimal
	Omitted    []model.Symbol
	Unresolved []model.Symbol
	Positions  []model.PortfolioEntry
	Alerts     []model.AlertEvent
}

// NewRunRecord captures the parts of d worth keeping.
func NewRunRecord(d *model.Dashboard, provider string, at time.Time) *RunRecord {
	return &RunRecord{
		RunID:      d.RunID,
		Timestamp:  at,
		Provider:   provider,
		Symbols:    d.Selection.Symbols,
		Start:      d.Selection.Start,
		End:        d.Selection.End,
		Total:      d.Portfolio.Total,
		Omitted:    d.Omitted,
		Unresolved: d.Portfolio.Unresolved,
		Positions:  d.Portfolio.Entries,
		Alerts:     d.Alerts,
	}
}

// Recorder persists run history for later analysis. Nothing in the
// application reads it back.
type Recorder interface {
	RecordRun(rec *RunRecord) error
	Close() error
}
