// Package config loads mangiato settings from defaults, an optional config
// file, MANGIATO_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/nonibytes/mangiato/internal/nutrition"
	"github.com/nonibytes/mangiato/mangiato/budget"
)

const EnvPrefix = "MANGIATO"

type Config struct {
	Backend      string `mapstructure:"backend"`
	DB           string `mapstructure:"db"`
	Schema       string `mapstructure:"schema"`
	SQLiteDriver string `mapstructure:"sqlite_driver"`

	Log       LogConfig       `mapstructure:"log"`
	Nutrition NutritionConfig `mapstructure:"nutrition"`
	Defaults  DefaultsConfig  `mapstructure:"defaults"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type NutritionConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	BaseURL string        `mapstructure:"base_url"`
	AppID   string        `mapstructure:"app_id"`
	AppKey  string        `mapstructure:"app_key"`
	RPS     float64       `mapstructure:"rps"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type DefaultsConfig struct {
	MaxCalories float64 `mapstructure:"max_calories"`
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"config":               "config",
	"backend":              "backend",
	"db":                   "db",
	"schema":               "schema",
	"sqlite-driver":        "sqlite_driver",
	"log-level":            "log.level",
	"log-format":           "log.format",
	"nutrition":            "nutrition.enabled",
	"nutrition-url":        "nutrition.base_url",
	"nutrition-app-id":     "nutrition.app_id",
	"nutrition-app-key":    "nutrition.app_key",
	"nutrition-rps":        "nutrition.rps",
	"nutrition-timeout":    "nutrition.timeout",
	"default-max-calories": "defaults.max_calories",
}

// RegisterFlags adds the configuration flags to fs. Their defaults are only
// used for help output; the effective defaults come from setDefaults.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "path to a yaml, toml or json config file")
	fs.String("backend", "sqlite", "storage backend: sqlite or postgres")
	fs.String("db", "mangiato.db", "sqlite file path or postgres DSN")
	fs.String("schema", "mangiato", "postgres schema")
	fs.String("sqlite-driver", "sqlite", "sqlite driver: sqlite (pure Go) or sqlite3 (cgo)")
	fs.String("log-level", "info", "log level: debug, info, warn or error")
	fs.String("log-format", "text", "log format: text or json")
	fs.Bool("nutrition", false, "estimate missing calories with the nutrition service")
	fs.String("nutrition-url", nutrition.DefaultBaseURL, "nutrition service base url")
	fs.String("nutrition-app-id", "", "nutrition service application id")
	fs.String("nutrition-app-key", "", "nutrition service application key")
	fs.Float64("nutrition-rps", nutrition.DefaultRPS, "nutrition requests per second")
	fs.Duration("nutrition-timeout", nutrition.DefaultTimeout, "nutrition request timeout")
	fs.Float64("default-max-calories", budget.DefaultMaxCalories, "daily maximum given to new users")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("config", "")
	v.SetDefault("backend", "sqlite")
	v.SetDefault("db", "mangiato.db")
	v.SetDefault("schema", "mangiato")
	v.SetDefault("sqlite_driver", "sqlite")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("nutrition.enabled", false)
	v.SetDefault("nutrition.base_url", nutrition.DefaultBaseURL)
	v.SetDefault("nutrition.app_id", "")
	v.SetDefault("nutrition.app_key", "")
	v.SetDefault("nutrition.rps", nutrition.DefaultRPS)
	v.SetDefault("nutrition.timeout", nutrition.DefaultTimeout)
	v.SetDefault("defaults.max_calories", budget.DefaultMaxCalories)
}

// Load resolves the configuration. fs may be nil; otherwise only flags the
// user actually set override the other sources.
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			f := fs.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("mangiato")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values no later stage can recover from.
func (c Config) Validate() error {
	switch c.Backend {
	case "sqlite":
		switch c.SQLiteDriver {
		case "sqlite", "sqlite3":
		default:
			return fmt.Errorf("unknown sqlite driver %q", c.SQLiteDriver)
		}
	case "postgres":
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	if c.DB == "" {
		return errors.New("db must not be empty")
	}
	if c.Defaults.MaxCalories <= 0 {
		return fmt.Errorf("defaults.max_calories must be positive, got %v", c.Defaults.MaxCalories)
	}
	if c.Nutrition.RPS < 0 {
		return fmt.Errorf("nutrition.rps must not be negative, got %v", c.Nutrition.RPS)
	}
	if c.Nutrition.Enabled && (c.Nutrition.AppID == "" || c.Nutrition.AppKey == "") {
		return errors.New("nutrition is enabled but app_id or app_key is missing")
	}
	return nil
}
