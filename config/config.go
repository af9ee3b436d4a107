package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. BOOKARR_GOODREADS_DEVELOPER_KEY
const EnvPrefix = "BOOKARR"

// Load loads the configuration. An explicit path must exist; otherwise the
// standard locations are searched and a missing file leaves defaults and
// environment overrides in place.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".bookarr"))
		}
		v.AddConfigPath("/etc/bookarr/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values. Every key gets one so that
// environment overrides are seen by Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("goodreads.url", "https://www.goodreads.com")
	v.SetDefault("goodreads.developer_key", "")
	v.SetDefault("goodreads.developer_secret", "")
	v.SetDefault("goodreads.access_token", "")
	v.SetDefault("goodreads.access_secret", "")
	v.SetDefault("goodreads.timeout", 30*time.Second)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks struct tags, then the rules tags cannot express
func validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return err
	}

	if cfg.Goodreads.HasSession() && cfg.Goodreads.DeveloperKey == "" {
		return fmt.Errorf("goodreads.access_token requires goodreads.developer_key and goodreads.developer_secret")
	}

	for name, expression := range cfg.Filter.Presets {
		if strings.TrimSpace(expression) == "" {
			return fmt.Errorf("filter preset %q is empty", name)
		}
	}

	return nil
}
