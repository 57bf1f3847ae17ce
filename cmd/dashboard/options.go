package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"StockDashboard/internal/collector"
	"StockDashboard/internal/config"
	"StockDashboard/internal/model"
	"StockDashboard/internal/notifier"
)

const defaultConfigPath = "configs/dashboard.yaml"

// selectionFlags are shared by the commands that compute a dashboard.
// Flags left empty keep the configured value.
type selectionFlags struct {
	configPath string
	symbols    string
	start      string
	end        string
	shares     string
	alerts     string
	format     string
	provider   string
}

func (s *selectionFlags) register(f *flag.FlagSet) {
	f.StringVar(&s.configPath, "config", "", "Config file (defaults to $CONFIG_PATH or "+defaultConfigPath+")")
	f.StringVar(&s.symbols, "symbols", "", "Comma separated symbols, e.g. AAPL,TSLA")
	f.StringVar(&s.start, "start", "", "Start date (YYYY-MM-DD)")
	f.StringVar(&s.end, "end", "", "End date (YYYY-MM-DD or today)")
	f.StringVar(&s.shares, "shares", "", "Shares held, e.g. AAPL=10,TSLA=5")
	f.StringVar(&s.alerts, "alert", "", "Alert thresholds, e.g. TSLA=200")
	f.StringVar(&s.format, "format", "", "Output format: markdown, plain or json")
	f.StringVar(&s.provider, "provider", "", "Data provider: yahoo, alpaca, polygon, rest or mock")
}

// load reads the config and applies the flags on top of it.
func (s *selectionFlags) load() (*config.Config, error) {
	cfgPath := s.configPath
	if cfgPath == "" {
		cfgPath = defaultConfigPath
		if v := os.Getenv("CONFIG_PATH"); v != "" {
			cfgPath = v
		}
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	if s.symbols != "" {
		cfg.Selection.Symbols = splitList(s.symbols)
	}
	if s.start != "" {
		cfg.Selection.Start = s.start
	}
	if s.end != "" {
		cfg.Selection.End = s.end
	}
	if s.shares != "" {
		shares, err := parsePairs(s.shares, func(v string) (int64, error) { return strconv.ParseInt(v, 10, 64) })
		if err != nil {
			return nil, fmt.Errorf("-shares: %w", err)
		}
		cfg.Selection.Shares = shares
	}
	if s.alerts != "" {
		alerts, err := parsePairs(s.alerts, func(v string) (float64, error) { return strconv.ParseFloat(v, 64) })
		if err != nil {
			return nil, fmt.Errorf("-alert: %w", err)
		}
		cfg.Selection.Alerts = alerts
	}
	if s.format != "" {
		cfg.Output.Format = s.format
	}
	if s.provider != "" {
		cfg.DataSource.Provider = s.provider
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func renderOptions(cfg *config.Config) notifier.Options {
	return notifier.Options{Format: cfg.Output.Format, Style: cfg.Output.Style, Tail: cfg.Output.Tail}
}

// warnOutsideUniverse logs symbols that are not offered for selection.
// They are still computed.
func warnOutsideUniverse(cfg *config.Config, symbols []model.Symbol) {
	for _, sym := range symbols {
		if !cfg.InUniverse(sym) {
			log.Printf("[WARN] %s is not in the configured universe", sym)
		}
	}
}

func newGateway(cfg *config.Config) collector.Gateway {
	ds := cfg.DataSource
	switch ds.Provider {
	case config.ProviderAlpaca:
		return collector.NewAlpacaGateway(ds.APIKey, ds.APISecret, ds.BaseURL, cfg.Proxy, ds.Timeout)
	case config.ProviderPolygon:
		return collector.NewPolygonGateway(ds.APIKey, cfg.Proxy, ds.Timeout)
	case config.ProviderREST:
		return collector.NewRestGateway(ds.BaseURL, ds.APIKey, ds.QuotePath, cfg.Proxy, ds.Timeout)
	case config.ProviderMock:
		return &collector.MockGateway{}
	default:
		return collector.NewYahooGateway(cfg.Proxy, ds.Timeout)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parsePairs parses "A=1,B=2" into a map.
func parsePairs[V any](s string, parse func(string) (V, error)) (map[string]V, error) {
	out := make(map[string]V)
	for _, part := range splitList(s) {
		key, value, ok := strings.Cut(part, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%q is not SYMBOL=VALUE", part)
		}
		v, err := parse(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		out[key] = v
	}
	return out, nil
}
