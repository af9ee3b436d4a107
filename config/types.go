package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Goodreads GoodreadsConfig `mapstructure:"goodreads"`
	Filter    FilterConfig    `mapstructure:"filter"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// GoodreadsConfig holds API connection details and credentials. The access
// token pair is what `bookarr auth login` prints after the OAuth handshake.
type GoodreadsConfig struct {
	URL             string        `mapstructure:"url"              validate:"required,url"`
	DeveloperKey    string        `mapstructure:"developer_key"    validate:"required_with=DeveloperSecret"`
	DeveloperSecret string        `mapstructure:"developer_secret" validate:"required_with=DeveloperKey"`
	AccessToken     string        `mapstructure:"access_token"     validate:"required_with=AccessSecret"`
	AccessSecret    string        `mapstructure:"access_secret"    validate:"required_with=AccessToken"`
	Timeout         time.Duration `mapstructure:"timeout"          validate:"gt=0"`
}

// HasSession reports whether a stored access token pair is configured
func (g GoodreadsConfig) HasSession() bool {
	return g.AccessToken != "" && g.AccessSecret != ""
}

// FilterConfig contains named filter expressions
type FilterConfig struct {
	Presets map[string]string `mapstructure:"presets"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"  validate:"oneof=trace debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
	Color  bool   `mapstructure:"color"`
}
