package notifier

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"StockDashboard/internal/model"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultTail is the number of trailing trading days shown per table.
const DefaultTail = 10

// usd formats a price the way the dashboard displays money.
func usd(d decimal.Decimal) string {
	return money.New(d.Shift(2).Round(0).IntPart(), money.USD).Display()
}

// FormatReport renders the whole dashboard as markdown.
func FormatReport(d *model.Dashboard, tail int) string {
	if tail <= 0 {
		tail = DefaultTail
	}
	var b strings.Builder
	b.WriteString("# 📊 Stock Dashboard with Portfolio Tracker\n\n")

	if d.Status == model.StatusAwaitingInput {
		b.WriteString("👈 Please select at least one stock.\n")
		return b.String()
	}

	sel := d.Selection
	b.WriteString(fmt.Sprintf("_%s → %s · %s_\n\n", sel.Start.Format("2006-01-02"), sel.End.Format("2006-01-02"), joinSymbols(sel.Symbols)))
	if len(d.Omitted) > 0 {
		b.WriteString(fmt.Sprintf("> ⚠️ No data for %s\n\n", joinSymbols(d.Omitted)))
	}

	b.WriteString(FormatSummary(d))
	b.WriteString(FormatTrend(d, tail))
	b.WriteString(FormatPortfolio(d.Portfolio))
	b.WriteString(FormatAlerts(d.Alerts))
	b.WriteString(FormatCandlesticks(d, tail))
	return b.String()
}

// FormatSummary lists per-symbol range statistics.
func FormatSummary(d *model.Dashboard) string {
	var b strings.Builder
	b.WriteString("## 📋 Summary\n\n")
	b.WriteString("| Symbol | Days | First | Last | Change | Low | High | SMA20 |\n")
	b.WriteString("|:---|---:|---:|---:|---:|---:|---:|---:|\n")
	for _, sym := range d.Series.Symbols() {
		s := d.Summaries[sym]
		avg := "-"
		if s.LastSMA.Valid {
			avg = usd(s.LastSMA.Decimal)
		}
		b.WriteString(fmt.Sprintf("| %s | %d | %s | %s | %s%% | %s | %s | %s |\n",
			sym, s.Bars, usd(s.First), usd(s.Last), s.ChangePct.StringFixed(2), usd(s.Low), usd(s.High), avg))
	}
	b.WriteString("\n")
	return b.String()
}

// FormatTrend renders the closing price and volume views side by side for
// the last tail trading days across all symbols.
func FormatTrend(d *model.Dashboard, tail int) string {
	symbols := d.Series.Symbols()
	dates := unionDates(d.Series, tail)
	closes := make(map[model.Symbol]map[time.Time]model.DailyBar, len(symbols))
	for _, sym := range symbols {
		closes[sym] = make(map[time.Time]model.DailyBar, d.Series[sym].Len())
		for _, bar := range d.Series[sym].Bars {
			closes[sym][bar.Date] = bar
		}
	}

	var b strings.Builder
	header := "| Date |"
	align := "|:---|"
	for _, sym := range symbols {
		header += " " + string(sym) + " |"
		align += "---:|"
	}

	b.WriteString("## 📈 Closing Price Trend\n\n")
	b.WriteString(header + "\n" + align + "\n")
	for _, day := range dates {
		row := "| " + day.Format("2006-01-02") + " |"
		for _, sym := range symbols {
			if bar, ok := closes[sym][day]; ok {
				row += " " + usd(bar.Close) + " |"
			} else {
				row += " - |"
			}
		}
		b.WriteString(row + "\n")
	}

	b.WriteString("\n## 📊 Volume Traded\n\n")
	b.WriteString(header + "\n" + align + "\n")
	for _, day := range dates {
		row := "| " + day.Format("2006-01-02") + " |"
		for _, sym := range symbols {
			if bar, ok := closes[sym][day]; ok {
				row += fmt.Sprintf(" %d |", bar.Volume)
			} else {
				row += " - |"
			}
		}
		b.WriteString(row + "\n")
	}
	b.WriteString("\n")
	return b.String()
}

// FormatPortfolio renders one line per selected symbol and the total.
func FormatPortfolio(p model.Portfolio) string {
	var b strings.Builder
	b.WriteString("## 💼 Portfolio Value\n\n")
	for _, e := range p.Entries {
		if !e.Resolved {
			b.WriteString(fmt.Sprintf("- %s: %d × price unavailable\n", e.Symbol, e.Shares))
			continue
		}
		b.WriteString(fmt.Sprintf("- %s: %d × %s = %s\n", e.Symbol, e.Shares, usd(e.UnitPrice), usd(e.Value)))
	}
	b.WriteString(fmt.Sprintf("\n**📊 Total Portfolio Value: %s**\n", usd(p.Total)))
	if len(p.Unresolved) > 0 {
		b.WriteString(fmt.Sprintf("\n_Excluded (price unavailable): %s_\n", joinSymbols(p.Unresolved)))
	}
	b.WriteString("\n")
	return b.String()
}

// FormatAlerts renders triggered alerts.
func FormatAlerts(alerts []model.AlertEvent) string {
	var b strings.Builder
	b.WriteString("## 🔔 Alerts\n\n")
	if len(alerts) == 0 {
		b.WriteString("No alert triggered.\n\n")
		return b.String()
	}
	for _, a := range alerts {
		b.WriteString(fmt.Sprintf("- 🚨 %s crossed %s → Current: %s\n", a.Symbol, usd(a.Threshold), usd(a.CurrentPrice)))
	}
	b.WriteString("\n")
	return b.String()
}

// FormatCandlesticks renders OHLC with the moving average for each symbol.
func FormatCandlesticks(d *model.Dashboard, tail int) string {
	var b strings.Builder
	b.WriteString("## 🕯 Candlestick Chart with 20-Day SMA\n")
	for _, sym := range d.Series.Symbols() {
		s := d.Series[sym]
		sma := d.SMA[sym]
		from := s.Len() - tail
		if from < 0 {
			from = 0
		}
		b.WriteString(fmt.Sprintf("\n### %s\n\n", sym))
		b.WriteString("| Date | Open | High | Low | Close | SMA20 |\n")
		b.WriteString("|:---|---:|---:|---:|---:|---:|\n")
		for i := from; i < s.Len(); i++ {
			bar := s.Bars[i]
			avg := "-"
			if i < len(sma) && sma[i].Value.Valid {
				avg = usd(sma[i].Value.Decimal)
			}
			b.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s |\n",
				bar.Date.Format("2006-01-02"), usd(bar.Open), usd(bar.High), usd(bar.Low), usd(bar.Close), avg))
		}
	}
	return b.String()
}

// unionDates returns the last n distinct dates across the set, ascending.
func unionDates(set model.SeriesSet, n int) []time.Time {
	seen := make(map[time.Time]bool)
	var dates []time.Time
	for _, s := range set {
		for _, bar := range s.Bars {
			if !seen[bar.Date] {
				seen[bar.Date] = true
				dates = append(dates, bar.Date)
			}
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	if len(dates) > n {
		dates = dates[len(dates)-n:]
	}
	return dates
}

func joinSymbols(symbols []model.Symbol) string {
	names := make([]string, len(symbols))
	for i, s := range symbols {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
