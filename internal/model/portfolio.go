package model

import "github.com/shopspring/decimal"

// PortfolioEntry is the valuation of one selected symbol.
// Resolved is false when no latest price was available; UnitPrice and
// Value are then zero and must not be displayed as prices.
type PortfolioEntry struct {
	Symbol    Symbol
	Shares    int64
	UnitPrice decimal.Decimal
	Value     decimal.Decimal
	Resolved  bool
}

// Portfolio holds the valuation of the whole selection.
type Portfolio struct {
	Entries    []PortfolioEntry
	Total      decimal.Decimal
	Unresolved []Symbol
}

// Entry returns the entry for sym.
func (p Portfolio) Entry(sym Symbol) (PortfolioEntry, bool) {
	for _, e := range p.Entries {
		if e.Symbol == sym {
			return e, true
		}
	}
	return PortfolioEntry{}, false
}
