// Package config loads and validates the application configuration.
package config

import (
	"fmt"
	"math"

	"github.com/spf13/viper"
)

// MonthsPerYear converts annualized figures to monthly ones.
const MonthsPerYear = 12

// Config represents the complete application configuration.
type Config struct {
	Simulation SimulationConfig `mapstructure:"simulation"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// SimulationConfig holds the scenario grid and evaluation parameters.
// Trend returns and the dividend yield are annualized; crash magnitudes are
// monthly returns applied exactly once at the crash month.
type SimulationConfig struct {
	InitialPrice        float64   `mapstructure:"initial_price"`
	Months              int       `mapstructure:"months"`
	TotalInvestment     float64   `mapstructure:"total_investment"`
	AnnualDividendYield float64   `mapstructure:"annual_dividend_yield"`
	AnnualTrendReturns  []float64 `mapstructure:"annual_trend_returns"`
	CrashMagnitudes     []float64 `mapstructure:"crash_magnitudes"`
}

// StorageConfig holds the optional run archive configuration.
type StorageConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DBPath  string `mapstructure:"db_path"`
	MaxRuns int    `mapstructure:"max_runs"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from the optional file at path and environment
// variables. An empty path uses the built-in defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("DCABENCH")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values for all configuration options.
func setDefaults(v *viper.Viper) {
	// Simulation defaults: a 2-year horizon with six annualized trends and
	// eight crash magnitudes. Annual trend 0 coincides with crash magnitude
	// 0, which is the single permitted overlap and yields one plateau model.
	v.SetDefault("simulation.initial_price", 100.0)
	v.SetDefault("simulation.months", 24)
	v.SetDefault("simulation.total_investment", 12000.0)
	v.SetDefault("simulation.annual_dividend_yield", 0.02)
	v.SetDefault("simulation.annual_trend_returns", []float64{-0.10, -0.05, 0.0, 0.05, 0.10, 0.15})
	v.SetDefault("simulation.crash_magnitudes", []float64{-0.50, -0.40, -0.30, -0.25, -0.20, -0.15, -0.10, 0.0})

	// Storage defaults: the run archive is opt-in.
	v.SetDefault("storage.enabled", false)
	v.SetDefault("storage.db_path", "./data/dcabench.db")
	v.SetDefault("storage.max_runs", 100)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// Validate checks that all configuration values are valid.
func (c *Config) Validate() error {
	// Validate Simulation config
	if c.Simulation.InitialPrice <= 0 {
		return fmt.Errorf("simulation.initial_price must be positive")
	}
	if c.Simulation.Months < 2 {
		return fmt.Errorf("simulation.months must be at least 2")
	}
	if c.Simulation.TotalInvestment <= 0 {
		return fmt.Errorf("simulation.total_investment must be positive")
	}
	if c.Simulation.AnnualDividendYield < 0 || c.Simulation.AnnualDividendYield >= 1 {
		return fmt.Errorf("simulation.annual_dividend_yield must be in [0, 1)")
	}
	if len(c.Simulation.AnnualTrendReturns) == 0 {
		return fmt.Errorf("simulation.annual_trend_returns must contain at least one value")
	}
	if len(c.Simulation.CrashMagnitudes) == 0 {
		return fmt.Errorf("simulation.crash_magnitudes must contain at least one value")
	}
	for _, r := range c.Simulation.AnnualTrendReturns {
		if r <= -1 {
			return fmt.Errorf("simulation.annual_trend_returns must stay above -100%%, got %v", r)
		}
	}
	for _, m := range c.Simulation.CrashMagnitudes {
		if m <= -1 {
			return fmt.Errorf("simulation.crash_magnitudes must stay above -100%%, got %v", m)
		}
	}

	// Validate Storage config
	if c.Storage.Enabled {
		if c.Storage.DBPath == "" {
			return fmt.Errorf("storage.db_path is required when storage is enabled")
		}
		if c.Storage.MaxRuns < 1 {
			return fmt.Errorf("storage.max_runs must be at least 1")
		}
	}

	// Validate Logging config
	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	return nil
}

// MonthlyInvestment is the fixed DCA contribution: the lump-sum amount
// spread evenly over the horizon.
func (c *SimulationConfig) MonthlyInvestment() float64 {
	return c.TotalInvestment / float64(c.Months)
}

// MonthlyDividendYield converts the annualized dividend yield to the
// pro-rata monthly rate.
func (c *SimulationConfig) MonthlyDividendYield() float64 {
	return c.AnnualDividendYield / MonthsPerYear
}

// MonthlyTrendReturns converts each annualized trend return to its
// compounding monthly equivalent, (1+annual)^(1/12)-1, preserving order.
func (c *SimulationConfig) MonthlyTrendReturns() []float64 {
	monthly := make([]float64, len(c.AnnualTrendReturns))
	for i, annual := range c.AnnualTrendReturns {
		monthly[i] = math.Pow(1+annual, 1.0/MonthsPerYear) - 1
	}
	return monthly
}
