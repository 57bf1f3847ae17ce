package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SmaPoint is one entry of a moving average aligned to a series date.
// Value.Valid is false while the window is not yet full.
type SmaPoint struct {
	Date  time.Time
	Value decimal.NullDecimal
}

// SmaSeries has one point per bar of the series it was computed from.
type SmaSeries []SmaPoint
