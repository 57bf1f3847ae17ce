package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Selection is the user input of one computation pass.
type Selection struct {
	Symbols    []Symbol
	Start      time.Time
	End        time.Time
	Shares     map[Symbol]int64
	Thresholds map[Symbol]decimal.Decimal
}

// IsEmpty reports whether no symbol is selected.
func (s Selection) IsEmpty() bool { return len(s.Symbols) == 0 }

// Status tells the presentation layer what to show.
type Status string

const (
	StatusReady         Status = "READY"
	StatusAwaitingInput Status = "AWAITING_INPUT"
)

// Dashboard is everything the presentation layer may consume for one pass.
type Dashboard struct {
	RunID     string
	Status    Status
	Selection Selection
	Series    SeriesSet
	SMA       map[Symbol]SmaSeries
	Summaries map[Symbol]SeriesSummary
	Omitted   []Symbol
	Portfolio Portfolio
	Alerts    []AlertEvent
}
