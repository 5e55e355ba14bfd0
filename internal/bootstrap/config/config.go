package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"last30days/internal/bootstrap/logging"
	"last30days/internal/errs"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Search   SearchConfig   `mapstructure:"search"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Database DatabaseConfig `mapstructure:"database"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
}

type OpenAIConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type SearchConfig struct {
	Mode         string `mapstructure:"mode"`
	Depth        string `mapstructure:"depth"`
	Days         int    `mapstructure:"days"`
	ProfilesFile string `mapstructure:"profiles_file"`
	BirdBinary   string `mapstructure:"bird_binary"`
}

type CacheConfig struct {
	TTLHours      int `mapstructure:"ttl_hours"`
	ModelTTLHours int `mapstructure:"model_ttl_hours"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

func Load(ctx context.Context, configFile string) (Config, error) {
	if ctx == nil {
		return Config{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return Config{}, errs.Wrap(err, "check context")
	}

	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.config"))

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("LAST30DAYS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The bare OPENAI_API_KEY is the conventional spelling; accept both.
	_ = v.BindEnv("openai.api_key", "LAST30DAYS_OPENAI_API_KEY", "OPENAI_API_KEY")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile == "" && errors.As(err, &notFound) {
			// Keep default and env-backed config when no file is provided.
			logging.Warn(logCtx, "config file not found, fallback to defaults and env")
		} else {
			return Config{}, errs.Wrap(err, "read config")
		}
	} else {
		logging.Info(logCtx, "using config file", slog.String("path", v.ConfigFileUsed()))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errs.Wrap(err, "unmarshal config")
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}

	logging.Info(
		logCtx,
		"config loaded",
		slog.String("app", cfg.App.Name),
		slog.String("mode", cfg.Search.Mode),
		slog.String("depth", cfg.Search.Depth),
	)

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "last30days")
	v.SetDefault("app.env", "local")
	v.SetDefault("openai.model", "")
	v.SetDefault("search.mode", "both")
	v.SetDefault("search.depth", "default")
	v.SetDefault("search.days", 30)
	v.SetDefault("search.profiles_file", "")
	v.SetDefault("search.bird_binary", "bird")
	v.SetDefault("cache.ttl_hours", 24)
	v.SetDefault("cache.model_ttl_hours", 24)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "data/last30days.db")
}

func validate(cfg Config) error {
	if cfg.Database.DSN == "" {
		return errors.New("database.dsn is required")
	}

	switch cfg.Search.Mode {
	case "reddit", "x", "both":
	default:
		return fmt.Errorf("unsupported search.mode %q", cfg.Search.Mode)
	}

	if cfg.Search.Days <= 0 {
		return errors.New("search.days must be positive")
	}
	if cfg.Cache.TTLHours <= 0 {
		return errors.New("cache.ttl_hours must be positive")
	}
	if cfg.Cache.ModelTTLHours <= 0 {
		return errors.New("cache.model_ttl_hours must be positive")
	}

	return nil
}
