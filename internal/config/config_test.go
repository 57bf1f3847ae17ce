package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"StockDashboard/internal/model"

	"github.com/shopspring/decimal"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dashboard.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Selection.Symbols) != 2 || cfg.Selection.Symbols[0] != "AAPL" || cfg.Selection.Symbols[1] != "TSLA" {
		t.Errorf("default symbols = %v", cfg.Selection.Symbols)
	}
	if cfg.Selection.Start != "2023-01-01" {
		t.Errorf("default start = %q", cfg.Selection.Start)
	}
	if cfg.DataSource.Provider != ProviderYahoo {
		t.Errorf("default provider = %q", cfg.DataSource.Provider)
	}
	if cfg.DataSource.Timeout != 30*time.Second {
		t.Errorf("default timeout = %v", cfg.DataSource.Timeout)
	}
	if cfg.Output.Format != "markdown" || cfg.Output.Tail != 10 {
		t.Errorf("default output = %+v", cfg.Output)
	}
	if len(cfg.Universe) != len(DefaultUniverse) {
		t.Errorf("default universe has %d symbols", len(cfg.Universe))
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, `
selection:
  symbols: [msft, nvda]
  start: 2024-01-02
  end: 2024-03-01
  shares:
    MSFT: 5
  alerts:
    NVDA: 900.5
data_source:
  provider: mock
  timeout: 5s
output:
  format: json
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataSource.Provider != ProviderMock || cfg.DataSource.Timeout != 5*time.Second {
		t.Errorf("data_source = %+v", cfg.DataSource)
	}

	sel, err := cfg.BuildSelection(time.Now())
	if err != nil {
		t.Fatalf("BuildSelection: %v", err)
	}
	if len(sel.Symbols) != 2 || sel.Symbols[0] != "MSFT" || sel.Symbols[1] != "NVDA" {
		t.Errorf("symbols = %v", sel.Symbols)
	}
	if want := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC); !sel.Start.Equal(want) {
		t.Errorf("start = %v, want %v", sel.Start, want)
	}
	if sel.Shares["MSFT"] != 5 {
		t.Errorf("shares = %v", sel.Shares)
	}
	if th := sel.Thresholds["NVDA"]; !th.Equal(decimal.RequireFromString("900.5")) {
		t.Errorf("threshold = %s", th)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
data_source:
  provider: yahoo
`)
	t.Setenv("DASHBOARD_DATA_SOURCE_PROVIDER", "rest")
	t.Setenv("DASHBOARD_DATA_SOURCE_BASE_URL", "http://quotes.local")
	t.Setenv("DASHBOARD_SELECTION_SYMBOLS", "IBM,INTC")
	t.Setenv("DASHBOARD_SELECTION_SHARES", "IBM:3,INTC:7")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataSource.Provider != ProviderREST {
		t.Errorf("provider = %q, want rest", cfg.DataSource.Provider)
	}
	if cfg.DataSource.BaseURL != "http://quotes.local" {
		t.Errorf("base_url = %q", cfg.DataSource.BaseURL)
	}
	if len(cfg.Selection.Symbols) != 2 || cfg.Selection.Symbols[0] != "IBM" {
		t.Errorf("symbols = %v", cfg.Selection.Symbols)
	}
	if cfg.Selection.Shares["INTC"] != 7 {
		t.Errorf("shares = %v", cfg.Selection.Shares)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"unknown provider", func(c *Config) { c.DataSource.Provider = "bloomberg" }, true},
		{"rest without base url", func(c *Config) { c.DataSource.Provider = ProviderREST }, true},
		{"alpaca without keys", func(c *Config) { c.DataSource.Provider = ProviderAlpaca }, true},
		{"polygon without key", func(c *Config) { c.DataSource.Provider = ProviderPolygon }, true},
		{"alpaca with keys", func(c *Config) {
			c.DataSource.Provider = ProviderAlpaca
			c.DataSource.APIKey = "key"
			c.DataSource.APISecret = "secret"
		}, false},
		{"bad start date", func(c *Config) { c.Selection.Start = "01/02/2024" }, true},
		{"negative shares", func(c *Config) { c.Selection.Shares = map[string]int64{"AAPL": -1} }, true},
		{"negative alert", func(c *Config) { c.Selection.Alerts = map[string]float64{"AAPL": -5} }, true},
		{"unknown format", func(c *Config) { c.Output.Format = "html" }, true},
		{"shares twice for one symbol", func(c *Config) { c.Selection.Shares = map[string]int64{"aapl": 1, "AAPL": 2} }, true},
		{"alerts twice for one symbol", func(c *Config) { c.Selection.Alerts = map[string]float64{"TSLA": 1, "tsla": 2} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			tt.mutate(cfg)
			err = cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBuildSelectionToday(t *testing.T) {
	cfg := &Config{}
	cfg.Selection.Start = "2024-05-01"
	cfg.Selection.End = "today"
	today := time.Date(2024, 6, 14, 15, 30, 0, 0, time.UTC)

	sel, err := cfg.BuildSelection(today)
	if err != nil {
		t.Fatalf("BuildSelection: %v", err)
	}
	if want := time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC); !sel.End.Equal(want) {
		t.Errorf("end = %v, want %v", sel.End, want)
	}
	if len(sel.Symbols) != 0 {
		t.Errorf("symbols = %v, want none", sel.Symbols)
	}
}

func TestInUniverse(t *testing.T) {
	cfg := &Config{Universe: DefaultUniverse}
	if !cfg.InUniverse(model.Symbol("AAPL")) {
		t.Error("AAPL should be in the default universe")
	}
	if cfg.InUniverse(model.Symbol("GME")) {
		t.Error("GME should not be in the default universe")
	}
}
