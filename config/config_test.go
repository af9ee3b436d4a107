package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Goodreads: GoodreadsConfig{
			URL:             "https://www.goodreads.com",
			DeveloperKey:    "key",
			DeveloperSecret: "secret",
			Timeout:         30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name: "no credentials at all",
			mutate: func(c *Config) {
				c.Goodreads.DeveloperKey = ""
				c.Goodreads.DeveloperSecret = ""
			},
		},
		{
			name: "key without secret",
			mutate: func(c *Config) {
				c.Goodreads.DeveloperSecret = ""
			},
			wantErr: true,
		},
		{
			name: "access token without secret",
			mutate: func(c *Config) {
				c.Goodreads.AccessToken = "token"
			},
			wantErr: true,
		},
		{
			name: "access pair",
			mutate: func(c *Config) {
				c.Goodreads.AccessToken = "token"
				c.Goodreads.AccessSecret = "token-secret"
			},
		},
		{
			name: "access pair without developer credentials",
			mutate: func(c *Config) {
				c.Goodreads.DeveloperKey = ""
				c.Goodreads.DeveloperSecret = ""
				c.Goodreads.AccessToken = "token"
				c.Goodreads.AccessSecret = "token-secret"
			},
			wantErr: true,
		},
		{
			name: "invalid url",
			mutate: func(c *Config) {
				c.Goodreads.URL = "not a url"
			},
			wantErr: true,
		},
		{
			name: "zero timeout",
			mutate: func(c *Config) {
				c.Goodreads.Timeout = 0
			},
			wantErr: true,
		},
		{
			name: "invalid logging level",
			mutate: func(c *Config) {
				c.Logging.Level = "verbose"
			},
			wantErr: true,
		},
		{
			name: "invalid logging format",
			mutate: func(c *Config) {
				c.Logging.Format = "xml"
			},
			wantErr: true,
		},
		{
			name: "empty preset",
			mutate: func(c *Config) {
				c.Filter.Presets = map[string]string{"blank": " "}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `goodreads:
  developer_key: file-key
  developer_secret: file-secret
  timeout: 10s
filter:
  presets:
    classics: "Year < 1950"
logging:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://www.goodreads.com", cfg.Goodreads.URL)
	assert.Equal(t, "file-key", cfg.Goodreads.DeveloperKey)
	assert.Equal(t, "file-secret", cfg.Goodreads.DeveloperSecret)
	assert.Equal(t, 10*time.Second, cfg.Goodreads.Timeout)
	assert.False(t, cfg.Goodreads.HasSession())
	assert.Equal(t, map[string]string{"classics": "Year < 1950"}, cfg.Filter.Presets)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Logging.Color)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("goodreads:\n  developer_key: file-key\n  developer_secret: file-secret\n"), 0o600))

	t.Setenv("BOOKARR_GOODREADS_DEVELOPER_KEY", "env-key")
	t.Setenv("BOOKARR_GOODREADS_ACCESS_TOKEN", "env-token")
	t.Setenv("BOOKARR_GOODREADS_ACCESS_SECRET", "env-secret")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.Goodreads.DeveloperKey)
	assert.Equal(t, "file-secret", cfg.Goodreads.DeveloperSecret)
	assert.True(t, cfg.Goodreads.HasSession())
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: loud\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}
