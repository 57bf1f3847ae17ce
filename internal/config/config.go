package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"StockDashboard/internal/model"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// DefaultUniverse is the list of symbols offered for selection.
var DefaultUniverse = []string{"AAPL", "MSFT", "GOOGL", "AMZN", "TSLA", "META", "NVDA", "NFLX", "IBM", "INTC"}

// Providers understood by DataSource.Provider.
const (
	ProviderYahoo   = "yahoo"
	ProviderAlpaca  = "alpaca"
	ProviderPolygon = "polygon"
	ProviderREST    = "rest"
	ProviderMock    = "mock"
)

// Config holds all application configuration.
type Config struct {
	Selection struct {
		Symbols []string           `yaml:"symbols"`
		Start   string             `yaml:"start"`
		End     string             `yaml:"end"`
		Shares  map[string]int64   `yaml:"shares"`
		Alerts  map[string]float64 `yaml:"alerts"`
	} `yaml:"selection"`
	Universe   []string `yaml:"universe"`
	DataSource struct {
		Provider  string        `yaml:"provider"`
		BaseURL   string        `yaml:"base_url" split_words:"true"`
		APIKey    string        `yaml:"api_key" split_words:"true"`
		APISecret string        `yaml:"api_secret" split_words:"true"`
		QuotePath string        `yaml:"quote_path" split_words:"true"`
		Timeout   time.Duration `yaml:"timeout"`
	} `yaml:"data_source" split_words:"true"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron" split_words:"true"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Output struct {
		Format string `yaml:"format"`
		Style  string `yaml:"style"`
		Tail   int    `yaml:"tail"`
	} `yaml:"output"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies .env and environment
// variable overrides (prefix DASHBOARD_, e.g. DASHBOARD_DATA_SOURCE_PROVIDER or
// DASHBOARD_SELECTION_SHARES=AAPL:10,TSLA:2),
// then defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// .env is optional
	_ = godotenv.Load()
	if err := envconfig.Process("DASHBOARD", cfg); err != nil {
		return nil, fmt.Errorf("environment overrides: %w", err)
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" && cfg.Proxy == "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Selection.Symbols == nil {
		cfg.Selection.Symbols = []string{"AAPL", "TSLA"}
	}
	if cfg.Selection.Start == "" {
		cfg.Selection.Start = "2023-01-01"
	}
	if len(cfg.Universe) == 0 {
		cfg.Universe = DefaultUniverse
	}
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = ProviderYahoo
	}
	if cfg.DataSource.Timeout == 0 {
		cfg.DataSource.Timeout = 30 * time.Second
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "0 */5 * * * 1-5"
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = "markdown"
	}
	if cfg.Output.Tail == 0 {
		cfg.Output.Tail = 10
	}

	return cfg, nil
}

// Validate checks that all fields are usable.
func (c *Config) Validate() error {
	switch c.DataSource.Provider {
	case ProviderYahoo, ProviderMock:
	case ProviderREST:
		if c.DataSource.BaseURL == "" {
			return fmt.Errorf("data_source.base_url is required for provider %q", c.DataSource.Provider)
		}
	case ProviderPolygon:
		if c.DataSource.APIKey == "" {
			return fmt.Errorf("data_source.api_key is required for provider %q", c.DataSource.Provider)
		}
	case ProviderAlpaca:
		if c.DataSource.APIKey == "" || c.DataSource.APISecret == "" {
			return fmt.Errorf("data_source.api_key and data_source.api_secret are required for provider %q", c.DataSource.Provider)
		}
	default:
		return fmt.Errorf("data_source.provider %q is not supported", c.DataSource.Provider)
	}
	if c.DataSource.Timeout < 0 {
		return fmt.Errorf("data_source.timeout must be positive")
	}
	if _, err := c.BuildSelection(time.Now()); err != nil {
		return err
	}
	switch c.Output.Format {
	case "markdown", "plain", "json":
	default:
		return fmt.Errorf("output.format %q is not supported", c.Output.Format)
	}
	return nil
}

// BuildSelection builds the pipeline input. An empty end date means today.
func (c *Config) BuildSelection(today time.Time) (model.Selection, error) {
	sel := model.Selection{
		Shares:     make(map[model.Symbol]int64, len(c.Selection.Shares)),
		Thresholds: make(map[model.Symbol]decimal.Decimal, len(c.Selection.Alerts)),
	}
	for _, s := range c.Selection.Symbols {
		sel.Symbols = append(sel.Symbols, model.NewSymbol(s))
	}

	var err error
	if sel.Start, err = parseDate(c.Selection.Start, today); err != nil {
		return model.Selection{}, fmt.Errorf("selection.start: %w", err)
	}
	if sel.End, err = parseDate(c.Selection.End, today); err != nil {
		return model.Selection{}, fmt.Errorf("selection.end: %w", err)
	}

	for s, n := range c.Selection.Shares {
		if n < 0 {
			return model.Selection{}, fmt.Errorf("selection.shares.%s must not be negative", s)
		}
		sym := model.NewSymbol(s)
		if _, dup := sel.Shares[sym]; dup {
			return model.Selection{}, fmt.Errorf("selection.shares: %s given twice", sym)
		}
		sel.Shares[sym] = n
	}
	for s, th := range c.Selection.Alerts {
		if th < 0 {
			return model.Selection{}, fmt.Errorf("selection.alerts.%s must not be negative", s)
		}
		sym := model.NewSymbol(s)
		if _, dup := sel.Thresholds[sym]; dup {
			return model.Selection{}, fmt.Errorf("selection.alerts: %s given twice", sym)
		}
		sel.Thresholds[sym] = decimal.NewFromFloat(th)
	}
	return sel, nil
}

// InUniverse reports whether sym is one of the offered symbols.
func (c *Config) InUniverse(sym model.Symbol) bool {
	for _, u := range c.Universe {
		if strings.EqualFold(u, string(sym)) {
			return true
		}
	}
	return false
}

func parseDate(s string, today time.Time) (time.Time, error) {
	if s == "" || s == "today" {
		y, m, d := today.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse("2006-01-02", s)
}
