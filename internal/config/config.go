// Package config loads application configuration from file and environment.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vanam-labs/plantation-cli/internal/estimator"
	"github.com/vanam-labs/plantation-cli/internal/optimizer"
	"github.com/vanam-labs/plantation-cli/internal/store"
	"github.com/vanam-labs/plantation-cli/internal/suitability"
)

// Config holds the full application configuration.
type Config struct {
	Estimator   EstimatorConfig   `yaml:"estimator" mapstructure:"estimator"`
	Suitability SuitabilityConfig `yaml:"suitability" mapstructure:"suitability"`
	Optimizer   optimizer.Config  `yaml:"optimizer" mapstructure:"optimizer"`
	Species     SpeciesConfig     `yaml:"species" mapstructure:"species"`
	Tambo       TamboConfig       `yaml:"tambo" mapstructure:"tambo"`
	Store       StoreConfig       `yaml:"store" mapstructure:"store"`
	Server      ServerConfig      `yaml:"server" mapstructure:"server"`
	Export      ExportConfig      `yaml:"export" mapstructure:"export"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
}

// EstimatorConfig selects and tunes the environmental estimator.
type EstimatorConfig struct {
	// Mode is "local" or "remote".
	Mode string `yaml:"mode" mapstructure:"mode"`

	Local estimator.LocalConfig `yaml:"local" mapstructure:"local"`
}

// SuitabilityConfig tunes scoring.
type SuitabilityConfig struct {
	Weights suitability.Weights `yaml:"weights" mapstructure:"weights"`

	// JitterAmplitude adds per-cell score noise; zero keeps scores exact.
	JitterAmplitude float64 `yaml:"jitter_amplitude" mapstructure:"jitter_amplitude"`
}

// SpeciesConfig points at an optional species rule table override.
type SpeciesConfig struct {
	RulesPath string `yaml:"rules_path" mapstructure:"rules_path"`
}

// TamboConfig holds remote suitability API settings.
type TamboConfig struct {
	Key       string  `yaml:"key" mapstructure:"key"`
	BaseURL   string  `yaml:"base_url" mapstructure:"base_url"`
	RateLimit float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
}

// StoreConfig configures the run-history database backend.
type StoreConfig struct {
	Driver      string            `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string            `yaml:"database_url" mapstructure:"database_url"`
	Pool        *store.PoolConfig `yaml:"pool" mapstructure:"pool"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// ExportConfig configures output file writing.
type ExportConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("PLANTATION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("estimator.mode", "local")
	v.SetDefault("estimator.local.rows", estimator.DefaultRows)
	v.SetDefault("estimator.local.cols", estimator.DefaultCols)
	v.SetDefault("estimator.local.sampler.ndvi_mean", 0.65)
	v.SetDefault("estimator.local.sampler.water_mean", 0.55)
	v.SetDefault("estimator.local.sampler.soil_mean", 0.65)
	v.SetDefault("estimator.local.sampler.base_spread", 0.12)
	v.SetDefault("estimator.local.sampler.cell_spread", 0.05)
	v.SetDefault("estimator.local.classifier_noise", 0.05)
	v.SetDefault("estimator.local.fallback_to_demo", true)
	v.SetDefault("suitability.weights.ndvi", 0.4)
	v.SetDefault("suitability.weights.water", 0.3)
	v.SetDefault("suitability.weights.soil", 0.3)
	v.SetDefault("suitability.jitter_amplitude", 0.0)
	v.SetDefault("optimizer.points", optimizer.DefaultPoints)
	v.SetDefault("optimizer.min_spacing_m", optimizer.DefaultMinSpacingM)
	v.SetDefault("optimizer.threshold", optimizer.DefaultThreshold)
	v.SetDefault("tambo.base_url", "https://api.tambo.dev")
	v.SetDefault("tambo.rate_limit", 5.0)
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "plantation.db")
	v.SetDefault("server.port", 8080)
	v.SetDefault("export.dir", "exports")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	if err := cfg.Suitability.Weights.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
