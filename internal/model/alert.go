package model

import "github.com/shopspring/decimal"

// AlertThreshold configures a price alert. A zero threshold disables it.
type AlertThreshold struct {
	Symbol    Symbol
	Threshold decimal.Decimal
}

// Enabled reports whether the threshold is configured.
func (a AlertThreshold) Enabled() bool { return a.Threshold.IsPositive() }

// AlertEvent is raised when the current price is strictly above the threshold.
type AlertEvent struct {
	Symbol       Symbol
	Threshold    decimal.Decimal
	CurrentPrice decimal.Decimal
}
