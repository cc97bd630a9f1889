// Package config loads city-stats configuration from defaults, an optional
// YAML file, an optional .env file and CITYSTATS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"city-stats/internal/chart"
	"city-stats/internal/decision"
	"city-stats/internal/history"
	"city-stats/internal/reporting"
	"city-stats/internal/scoring"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CITYSTATS_"

// Config is the complete application configuration.
type Config struct {
	History     HistoryConfig       `yaml:"history"`
	Thresholds  decision.Thresholds `yaml:"thresholds"`
	Breakpoints scoring.Breakpoints `yaml:"breakpoints"`
	Reports     ReportsConfig       `yaml:"reports"`
	Storage     StorageConfig       `yaml:"storage"`
	Server      ServerConfig        `yaml:"server"`
}

// HistoryConfig sizes the snapshot store.
type HistoryConfig struct {
	Capacity     int `yaml:"capacity"`
	PersistLimit int `yaml:"persist_limit"`
}

// ReportsConfig tunes report building and export.
type ReportsConfig struct {
	MaintenanceThreshold float64 `yaml:"maintenance_threshold"`
	MaxLineSeries        int     `yaml:"max_line_series"`
	ExportDir            string  `yaml:"export_dir"`
}

// StorageConfig selects the optional save-state backends.
type StorageConfig struct {
	PostgresDSN   string `yaml:"postgres_dsn"`
	SQLitePath    string `yaml:"sqlite_path"`
	ClickhouseDSN string `yaml:"clickhouse_dsn"`
	SaveDir       string `yaml:"save_dir"`
}

// ServerConfig configures the HTTP service.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		History: HistoryConfig{
			Capacity:     history.DefaultCapacity,
			PersistLimit: history.DefaultPersistLimit,
		},
		Thresholds:  decision.DefaultThresholds(),
		Breakpoints: scoring.DefaultBreakpoints(),
		Reports: ReportsConfig{
			MaintenanceThreshold: reporting.DefaultMaintenanceThreshold,
			MaxLineSeries:        chart.DefaultMaxLineSeries,
			ExportDir:            reporting.DefaultExportDir,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if
// path is non-empty), then envFile (if it exists), then the environment.
// The result is validated.
func Load(path, envFile string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	ints := []struct {
		key string
		dst *int
	}{
		{"HISTORY_CAPACITY", &c.History.Capacity},
		{"PERSIST_LIMIT", &c.History.PersistLimit},
		{"MAX_LINE_SERIES", &c.Reports.MaxLineSeries},
	}
	for _, e := range ints {
		if v, ok := os.LookupEnv(EnvPrefix + e.key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", EnvPrefix, e.key, err)
			}
			*e.dst = n
		}
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"MAINTENANCE_THRESHOLD", &c.Reports.MaintenanceThreshold},
		{"CASH_BELOW", &c.Thresholds.CashBelow},
		{"DEBT_RATIO_ABOVE", &c.Thresholds.DebtRatioAbove},
	}
	for _, e := range floats {
		if v, ok := os.LookupEnv(EnvPrefix + e.key); ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%s%s: %w", EnvPrefix, e.key, err)
			}
			*e.dst = f
		}
	}

	strs := []struct {
		key string
		dst *string
	}{
		{"EXPORT_DIR", &c.Reports.ExportDir},
		{"POSTGRES_DSN", &c.Storage.PostgresDSN},
		{"SQLITE_PATH", &c.Storage.SQLitePath},
		{"CLICKHOUSE_DSN", &c.Storage.ClickhouseDSN},
		{"SAVE_DIR", &c.Storage.SaveDir},
		{"SERVER_ADDR", &c.Server.Addr},
	}
	for _, e := range strs {
		if v, ok := os.LookupEnv(EnvPrefix + e.key); ok {
			*e.dst = v
		}
	}
	return nil
}

// Validate rejects configurations the report manager cannot run with.
func (c Config) Validate() error {
	if c.History.Capacity <= 0 {
		return fmt.Errorf("history capacity must be positive, got %d", c.History.Capacity)
	}
	if c.History.PersistLimit <= 0 {
		return fmt.Errorf("persist limit must be positive, got %d", c.History.PersistLimit)
	}
	if c.History.PersistLimit > c.History.Capacity {
		return fmt.Errorf("persist limit %d exceeds history capacity %d", c.History.PersistLimit, c.History.Capacity)
	}
	if c.Reports.MaxLineSeries <= 0 {
		return fmt.Errorf("max line series must be positive, got %d", c.Reports.MaxLineSeries)
	}
	b := c.Breakpoints
	if !(b.A > b.B && b.B > b.C) {
		return fmt.Errorf("grade breakpoints must be strictly descending, got A=%v B=%v C=%v", b.A, b.B, b.C)
	}
	if c.Reports.ExportDir == "" {
		return errors.New("export dir must not be empty")
	}
	return nil
}

// ManagerOptions converts the configuration into report manager options.
func (c Config) ManagerOptions(logger *log.Logger) reporting.ManagerOptions {
	thresholds := c.Thresholds
	breakpoints := c.Breakpoints
	return reporting.ManagerOptions{
		HistoryCapacity:      c.History.Capacity,
		PersistLimit:         c.History.PersistLimit,
		Thresholds:           &thresholds,
		Breakpoints:          &breakpoints,
		MaintenanceThreshold: c.Reports.MaintenanceThreshold,
		MaxLineSeries:        c.Reports.MaxLineSeries,
		ExportDir:            c.Reports.ExportDir,
		Logger:               logger,
	}
}
