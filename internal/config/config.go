// Package config loads camscope configuration from file and environment and
// initializes the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Analysis AnalysisConfig `yaml:"analysis" mapstructure:"analysis"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// AnalysisConfig holds the default parameters for the analysis commands.
// Command-line flags override these per invocation.
type AnalysisConfig struct {
	EpsilonMeters      float64 `yaml:"epsilon_meters" mapstructure:"epsilon_meters"`
	MinPoints          int     `yaml:"min_points" mapstructure:"min_points"`
	BufferRadiusMeters float64 `yaml:"buffer_radius_meters" mapstructure:"buffer_radius_meters"`
	GridSize           int     `yaml:"grid_size" mapstructure:"grid_size"`
	Workers            int     `yaml:"workers" mapstructure:"workers"`
	IsolatedMeters     float64 `yaml:"isolated_meters" mapstructure:"isolated_meters"`
	TightMeters        float64 `yaml:"tight_meters" mapstructure:"tight_meters"`
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
	v.SetEnvPrefix("CAMSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("analysis.epsilon_meters", 500.0)
	v.SetDefault("analysis.min_points", 3)
	v.SetDefault("analysis.buffer_radius_meters", 50.0)
	v.SetDefault("analysis.grid_size", 100)
	v.SetDefault("analysis.workers", 4)
	v.SetDefault("analysis.isolated_meters", 1000.0)
	v.SetDefault("analysis.tight_meters", 200.0)

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
