// Package config loads the advisor configuration from a YAML file with
// environment variable substitution and optional .env support.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/laptop-advisor/pkg/catalog"
	"github.com/donaldgifford/laptop-advisor/pkg/deals"
	"github.com/donaldgifford/laptop-advisor/pkg/market"
	score "github.com/donaldgifford/laptop-advisor/pkg/scorer"
)

// Catalog source drivers.
const (
	DriverCSV      = "csv"
	DriverXLSX     = "xlsx"
	DriverPostgres = "postgres"
)

// Config is the top-level application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	Catalog       CatalogConfig       `yaml:"catalog"`
	Scoring       ScoringConfig       `yaml:"scoring"`
	Deals         DealsConfig         `yaml:"deals"`
	Market        market.Options      `yaml:"market"`
	Schedule      ScheduleConfig      `yaml:"schedule"`
	Notifications NotificationsConfig `yaml:"notifications"`
	API           APIConfig           `yaml:"api"`
	Telemetry     TelemetryConfig     `yaml:"telemetry"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// Addr returns host:port.
func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig defines PostgreSQL connection settings. It is only
// required when the catalog driver is postgres or for the import command.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	PoolSize int    `yaml:"pool_size"`
}

// DSN returns a PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s pool_max_conns=%d",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode, d.PoolSize,
	)
}

// CatalogConfig selects where raw listings come from and how they are
// normalized.
type CatalogConfig struct {
	Driver       string              `yaml:"driver"` // csv, xlsx, postgres
	Path         string              `yaml:"path"`
	Sheet        string              `yaml:"sheet"`
	Encoding     string              `yaml:"encoding"` // utf-8, windows-1254, iso-8859-9
	Delimiter    string              `yaml:"delimiter"`
	TablesPath   string              `yaml:"tables_path"`
	CacheTTL     time.Duration       `yaml:"cache_ttl"`
	AnomalyRules []AnomalyRuleConfig `yaml:"anomaly_rules"`
}

// AnomalyRuleConfig flags listings of a GPU priced below a ceiling.
type AnomalyRuleConfig struct {
	Name     string  `yaml:"name"`
	GPU      string  `yaml:"gpu"`
	MaxPrice float64 `yaml:"max_price"`
	Reason   string  `yaml:"reason"`
}

// Rules converts the configured anomaly rules. An empty list yields the
// built-in rules.
func (c *CatalogConfig) Rules() []catalog.AnomalyRule {
	if len(c.AnomalyRules) == 0 {
		return catalog.DefaultAnomalyRules()
	}
	rules := make([]catalog.AnomalyRule, 0, len(c.AnomalyRules))
	for _, r := range c.AnomalyRules {
		rules = append(rules, catalog.UnderpricedGPURule(r.Name, r.GPU, r.MaxPrice, r.Reason))
	}
	return rules
}

// ScoringConfig defines component weights and the recommendation count.
type ScoringConfig struct {
	Weights ScoringWeights `yaml:"weights"`
	TopK    int            `yaml:"top_k"`
}

// ScoringWeights defines the maximum points of each scoring component.
// A field left out of the file keeps its default; an explicit 0 turns the
// component off.
type ScoringWeights struct {
	PriceFit         *float64 `yaml:"price_fit"`
	PricePerformance *float64 `yaml:"price_performance"`
	Purpose          *float64 `yaml:"purpose"`
	Performance      *float64 `yaml:"performance"`
	Battery          *float64 `yaml:"battery"`
	Portability      *float64 `yaml:"portability"`
	RAM              *float64 `yaml:"ram"`
	SSD              *float64 `yaml:"ssd"`
	Brand            *float64 `yaml:"brand"`
}

// ToWeights converts to the scorer's weight set, filling unset fields from
// score.DefaultWeights.
func (w ScoringWeights) ToWeights() score.Weights {
	d := score.DefaultWeights()
	return score.Weights{
		PriceFit:         orDefault(w.PriceFit, d.PriceFit),
		PricePerformance: orDefault(w.PricePerformance, d.PricePerformance),
		Purpose:          orDefault(w.Purpose, d.Purpose),
		Performance:      orDefault(w.Performance, d.Performance),
		Battery:          orDefault(w.Battery, d.Battery),
		Portability:      orDefault(w.Portability, d.Portability),
		RAM:              orDefault(w.RAM, d.RAM),
		SSD:              orDefault(w.SSD, d.SSD),
		Brand:            orDefault(w.Brand, d.Brand),
	}
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

// DealsConfig tunes the deal detector.
type DealsConfig struct {
	Threshold      *float64 `yaml:"threshold"`
	MaxResults     int      `yaml:"max_results"`
	FallbackMarkup float64  `yaml:"fallback_markup"`
	PerfTolerance  float64  `yaml:"perf_tolerance"`
	RAMToleranceGB int      `yaml:"ram_tolerance_gb"`
	DigestSize     int      `yaml:"digest_size"`
}

// DealThreshold returns the configured threshold, or the detector default
// when none was set. A configured 0 is kept.
func (d DealsConfig) DealThreshold() float64 {
	return orDefault(d.Threshold, deals.DefaultThreshold)
}

// ScheduleConfig defines cron intervals.
type ScheduleConfig struct {
	RefreshInterval time.Duration `yaml:"refresh_interval"`
}

// NotificationsConfig defines notification targets.
type NotificationsConfig struct {
	Discord DiscordConfig `yaml:"discord"`
}

// DiscordConfig defines Discord webhook settings.
type DiscordConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
}

// APIConfig defines API surface settings.
type APIConfig struct {
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig defines the API token bucket, applied only when Enabled.
type RateLimitConfig struct {
	Enabled   bool    `yaml:"enabled"`
	PerSecond float64 `yaml:"per_second"`
	Burst     int     `yaml:"burst"`
}

// TelemetryConfig defines OpenTelemetry export settings.
type TelemetryConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Endpoint    string  `yaml:"endpoint"`
	Insecure    bool    `yaml:"insecure"`
	ServiceName string  `yaml:"service_name"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file. A .env file in the working
// directory is loaded first without overriding variables already set, then
// environment variables are substituted into the YAML.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return Parse(data)
}

// Parse expands environment variables in data, then unmarshals, defaults
// and validates it.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Default returns a configuration with every default applied and the CSV
// driver reading catalog.csv.
func Default() *Config {
	cfg := &Config{Catalog: CatalogConfig{Path: "catalog.csv"}}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyDatabaseDefaults(&cfg.Database)
	applyCatalogDefaults(&cfg.Catalog)
	applyScoringDefaults(&cfg.Scoring)
	applyDealsDefaults(&cfg.Deals)
	applyMarketDefaults(&cfg.Market)
	applyScheduleDefaults(&cfg.Schedule)
	applyRateLimitDefaults(&cfg.API.RateLimit)
	applyTelemetryDefaults(&cfg.Telemetry)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applyDatabaseDefaults(d *DatabaseConfig) {
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	if d.PoolSize == 0 {
		d.PoolSize = 10
	}
}

func applyCatalogDefaults(c *CatalogConfig) {
	if c.Driver == "" {
		c.Driver = DriverCSV
	}
	c.Driver = strings.ToLower(c.Driver)
	if c.Encoding == "" {
		c.Encoding = "utf-8"
	}
	if c.Delimiter == "" {
		c.Delimiter = ","
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = 10 * time.Minute
	}
}

func applyScoringDefaults(s *ScoringConfig) {
	if s.TopK == 0 {
		s.TopK = score.DefaultTopK
	}
}

func applyDealsDefaults(d *DealsConfig) {
	if d.Threshold == nil {
		t := deals.DefaultThreshold
		d.Threshold = &t
	}
	if d.MaxResults == 0 {
		d.MaxResults = deals.DefaultMaxResults
	}
	if d.FallbackMarkup == 0 {
		d.FallbackMarkup = deals.DefaultFallbackMarkup
	}
	if d.PerfTolerance == 0 {
		d.PerfTolerance = deals.DefaultPerfTolerance
	}
	if d.RAMToleranceGB == 0 {
		d.RAMToleranceGB = deals.DefaultRAMToleranceGB
	}
	if d.DigestSize == 0 {
		d.DigestSize = 5
	}
}

func applyMarketDefaults(m *market.Options) {
	defaults := market.DefaultOptions()
	if m.BudgetCeiling == 0 {
		m.BudgetCeiling = defaults.BudgetCeiling
	}
	if m.HighEndFloor == 0 {
		m.HighEndFloor = defaults.HighEndFloor
	}
	if m.PremiumBrands == nil {
		m.PremiumBrands = defaults.PremiumBrands
	}
	if m.HistogramBins == 0 {
		m.HistogramBins = defaults.HistogramBins
	}
	if m.TopGPUs == 0 {
		m.TopGPUs = defaults.TopGPUs
	}
}

func applyScheduleDefaults(s *ScheduleConfig) {
	if s.RefreshInterval == 0 {
		s.RefreshInterval = 30 * time.Minute
	}
}

func applyRateLimitDefaults(r *RateLimitConfig) {
	if r.PerSecond == 0 {
		r.PerSecond = 20
	}
	if r.Burst == 0 {
		r.Burst = 40
	}
}

func applyTelemetryDefaults(t *TelemetryConfig) {
	if t.Endpoint == "" {
		t.Endpoint = "localhost:4317"
	}
	if t.ServiceName == "" {
		t.ServiceName = "laptop-advisor"
	}
	if t.SampleRatio == 0 {
		t.SampleRatio = 1
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	switch cfg.Catalog.Driver {
	case DriverCSV, DriverXLSX:
		if cfg.Catalog.Path == "" {
			errs = append(errs, fmt.Errorf("catalog.path is required when driver is %s", cfg.Catalog.Driver))
		}
	case DriverPostgres:
		errs = append(errs, validateDatabase(&cfg.Database)...)
	default:
		errs = append(errs, fmt.Errorf(
			"catalog.driver must be one of: csv, xlsx, postgres (got %q)",
			cfg.Catalog.Driver,
		))
	}
	if len([]rune(cfg.Catalog.Delimiter)) != 1 {
		errs = append(errs, fmt.Errorf("catalog.delimiter must be a single character (got %q)", cfg.Catalog.Delimiter))
	}
	if cfg.Catalog.CacheTTL < 0 {
		errs = append(errs, fmt.Errorf("catalog.cache_ttl must not be negative"))
	}
	for i, r := range cfg.Catalog.AnomalyRules {
		if r.Name == "" || r.GPU == "" || r.MaxPrice <= 0 {
			errs = append(errs, fmt.Errorf("catalog.anomaly_rules[%d] needs name, gpu and a positive max_price", i))
		}
	}

	if err := cfg.Scoring.Weights.ToWeights().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("scoring.weights: %w", err))
	}
	if cfg.Scoring.TopK < 0 {
		errs = append(errs, fmt.Errorf("scoring.top_k must not be negative"))
	}

	if t := cfg.Deals.DealThreshold(); t < 0 || t > 100 {
		errs = append(errs, fmt.Errorf("deals.threshold must be within 0..100 (got %v)", t))
	}
	if cfg.Deals.FallbackMarkup < 1 {
		errs = append(errs, fmt.Errorf("deals.fallback_markup must be at least 1 (got %v)", cfg.Deals.FallbackMarkup))
	}
	if cfg.Deals.PerfTolerance < 0 || cfg.Deals.RAMToleranceGB < 0 {
		errs = append(errs, fmt.Errorf("deals tolerances must not be negative"))
	}

	if cfg.Market.BudgetCeiling >= cfg.Market.HighEndFloor {
		errs = append(errs, fmt.Errorf("market.budget_ceiling must be below market.high_end_floor"))
	}

	if cfg.Notifications.Discord.Enabled && cfg.Notifications.Discord.WebhookURL == "" {
		errs = append(errs, fmt.Errorf("notifications.discord.webhook_url is required when discord is enabled"))
	}

	if cfg.API.RateLimit.Enabled && cfg.API.RateLimit.PerSecond < 0 {
		errs = append(errs, fmt.Errorf("api.rate_limit.per_second must not be negative"))
	}

	if cfg.Telemetry.SampleRatio < 0 || cfg.Telemetry.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf("telemetry.sample_ratio must be within 0..1"))
	}

	return errors.Join(errs...)
}

// ValidateDatabase reports missing connection settings.
func ValidateDatabase(d *DatabaseConfig) error {
	return errors.Join(validateDatabase(d)...)
}

func validateDatabase(d *DatabaseConfig) []error {
	var errs []error
	if d.Host == "" {
		errs = append(errs, fmt.Errorf("database.host is required"))
	}
	if d.Name == "" {
		errs = append(errs, fmt.Errorf("database.name is required"))
	}
	if d.User == "" {
		errs = append(errs, fmt.Errorf("database.user is required"))
	}
	return errs
}
