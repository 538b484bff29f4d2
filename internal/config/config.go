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
	Catalog CatalogConfig `yaml:"catalog" mapstructure:"catalog"`
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Lexicon LexiconConfig `yaml:"lexicon" mapstructure:"lexicon"`
	Match   MatchConfig   `yaml:"match" mapstructure:"match"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// CatalogConfig configures where scheme records are loaded from. When
// DatabaseURL is empty or unreachable the catalog falls back to the
// bundled JSON file.
type CatalogConfig struct {
	DatabaseURL  string `yaml:"database_url" mapstructure:"database_url"`
	FallbackPath string `yaml:"fallback_path" mapstructure:"fallback_path"`
}

// StoreConfig configures the query log backend. Driver is "postgres",
// "sqlite", or "none".
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// LexiconConfig points at an optional YAML file of keyword overrides
// merged on top of the built-in lexicon.
type LexiconConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// MatchConfig holds the eligibility scoring weights and the limits
// applied when shaping the final ranked result list.
type MatchConfig struct {
	CategoryWeight        int `yaml:"category_weight" mapstructure:"category_weight"`
	CanonicalBonus        int `yaml:"canonical_bonus" mapstructure:"canonical_bonus"`
	GeneralCategoryPoints int `yaml:"general_category_points" mapstructure:"general_category_points"`
	StudentNoisePenalty   int `yaml:"student_noise_penalty" mapstructure:"student_noise_penalty"`
	OccupationWeight      int `yaml:"occupation_weight" mapstructure:"occupation_weight"`
	OccupationWildcard    int `yaml:"occupation_wildcard" mapstructure:"occupation_wildcard"`
	IncomeWeight          int `yaml:"income_weight" mapstructure:"income_weight"`
	AgeWeight             int `yaml:"age_weight" mapstructure:"age_weight"`
	StateWeight           int `yaml:"state_weight" mapstructure:"state_weight"`
	NationalWeight        int `yaml:"national_weight" mapstructure:"national_weight"`
	MinScore              int `yaml:"min_score" mapstructure:"min_score"`
	CoreFloor             int `yaml:"core_floor" mapstructure:"core_floor"`
	MaxResults            int `yaml:"max_results" mapstructure:"max_results"`
	MaxHigh               int `yaml:"max_high" mapstructure:"max_high"`
	MaxMedium             int `yaml:"max_medium" mapstructure:"max_medium"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port           int     `yaml:"port" mapstructure:"port"`
	RateLimitRPS   float64 `yaml:"rate_limit_rps" mapstructure:"rate_limit_rps"`
	RateLimitBurst int     `yaml:"rate_limit_burst" mapstructure:"rate_limit_burst"`
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
	v.SetEnvPrefix("SCHEME")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("catalog.fallback_path", "data/fallback_schemes.json")
	v.SetDefault("store.driver", "none")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.rate_limit_rps", 10)
	v.SetDefault("server.rate_limit_burst", 20)
	v.SetDefault("match.category_weight", 40)
	v.SetDefault("match.canonical_bonus", 25)
	v.SetDefault("match.general_category_points", 20)
	v.SetDefault("match.student_noise_penalty", 20)
	v.SetDefault("match.occupation_weight", 30)
	v.SetDefault("match.occupation_wildcard", 10)
	v.SetDefault("match.income_weight", 30)
	v.SetDefault("match.age_weight", 20)
	v.SetDefault("match.state_weight", 30)
	v.SetDefault("match.national_weight", 10)
	v.SetDefault("match.min_score", 40)
	v.SetDefault("match.core_floor", 75)
	v.SetDefault("match.max_results", 5)
	v.SetDefault("match.max_high", 2)
	v.SetDefault("match.max_medium", 2)

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
