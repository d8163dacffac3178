package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env          string
	Port         string
	DBDSN        string
	TemplatesDir string
	LogFile      string
	LogLevel     string
	LogFormat    string
	RateLimit    int           // requests per minute per client
	SessionTTL   time.Duration // idle time before a cart session is dropped
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")
	v.SetDefault("port", "8080")
	v.SetDefault("db_dsn", "storefront.db") // sqlite file in project root
	v.SetDefault("templates_dir", "./web/templates")
	v.SetDefault("log_file", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("rate_limit", 120)
	v.SetDefault("session_ttl", "30m")
}

// Load reads, lowest to highest priority: defaults, an optional
// storefront.toml in the working directory, STOREFRONT_* env vars.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("storefront")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}
	return fromViper(v)
}

// LoadFile is Load with an explicit config file path.
func LoadFile(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := Config{
		Env:          v.GetString("env"),
		Port:         v.GetString("port"),
		DBDSN:        v.GetString("db_dsn"),
		TemplatesDir: v.GetString("templates_dir"),
		LogFile:      v.GetString("log_file"),
		LogLevel:     v.GetString("log_level"),
		LogFormat:    v.GetString("log_format"),
		RateLimit:    v.GetInt("rate_limit"),
		SessionTTL:   v.GetDuration("session_ttl"),
	}
	if cfg.Port == "" {
		return Config{}, errors.New("config: port must not be empty")
	}
	if cfg.RateLimit <= 0 {
		return Config{}, fmt.Errorf("config: rate_limit must be positive, got %d", cfg.RateLimit)
	}
	if cfg.SessionTTL <= 0 {
		return Config{}, fmt.Errorf("config: session_ttl must be positive, got %s", cfg.SessionTTL)
	}
	return cfg, nil
}

func (c Config) Addr() string { return ":" + c.Port }
