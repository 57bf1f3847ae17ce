package metrics

import (
	"StockDashboard/internal/model"

	"github.com/shopspring/decimal"
)

// EvaluateAlerts returns one event per symbol whose latest price is strictly
// above its threshold. Thresholds of zero are disabled; symbols without a
// price never alert. Events follow the order of symbols.
func EvaluateAlerts(symbols []model.Symbol, thresholds map[model.Symbol]decimal.Decimal, prices LatestPrices) []model.AlertEvent {
	var events []model.AlertEvent
	for _, sym := range symbols {
		th := model.AlertThreshold{Symbol: sym, Threshold: thresholds[sym]}
		if !th.Enabled() {
			continue
		}
		price, err := prices.Price(sym)
		if err != nil {
			continue
		}
		if price.GreaterThan(th.Threshold) {
			events = append(events, model.AlertEvent{
				Symbol:       sym,
				Threshold:    th.Threshold,
				CurrentPrice: price,
			})
		}
	}
	return events
}
