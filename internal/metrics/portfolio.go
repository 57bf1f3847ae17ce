package metrics

import (
	"log"

	"StockDashboard/internal/model"

	"github.com/shopspring/decimal"
)

// Valuate values every selected symbol at its latest price.
//
// Entries follow the order of symbols. Unset shares count as zero. A symbol
// without a price gets an unresolved entry, is listed in Unresolved and is
// left out of Total.
func Valuate(symbols []model.Symbol, shares map[model.Symbol]int64, prices LatestPrices) model.Portfolio {
	p := model.Portfolio{
		Entries: make([]model.PortfolioEntry, 0, len(symbols)),
		Total:   decimal.Zero,
	}
	for _, sym := range symbols {
		n := shares[sym]
		entry := model.PortfolioEntry{Symbol: sym, Shares: n}

		price, err := prices.Price(sym)
		if err != nil {
			log.Printf("[WARN] valuation: %v", err)
			p.Unresolved = append(p.Unresolved, sym)
			p.Entries = append(p.Entries, entry)
			continue
		}
		entry.UnitPrice = price
		entry.Value = price.Mul(decimal.NewFromInt(n))
		entry.Resolved = true
		p.Entries = append(p.Entries, entry)
		p.Total = p.Total.Add(entry.Value)
	}
	return p
}
