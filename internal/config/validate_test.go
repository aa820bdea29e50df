package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validTestConfig() *Config {
	return &Config{
		API: APIConfig{BaseURL: "http://localhost:5000", Timeout: 30},
		Log: LogConfig{Level: "info", Format: "text"},
		UI:  UIConfig{MultiSelect: true, MaxSelection: 0, ImagePreview: true},
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	assert.NoError(t, Validate(validTestConfig()))
}

func TestValidateAPIConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "missing base url",
			mutate:  func(c *Config) { c.API.BaseURL = "" },
			wantErr: "base_url is required",
		},
		{
			name:    "unsupported scheme",
			mutate:  func(c *Config) { c.API.BaseURL = "ftp://example.com" },
			wantErr: "http or https",
		},
		{
			name:    "missing host",
			mutate:  func(c *Config) { c.API.BaseURL = "http://" },
			wantErr: "missing a host",
		},
		{
			name:    "non-positive timeout",
			mutate:  func(c *Config) { c.API.Timeout = 0 },
			wantErr: "timeout must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidateLogConfig(t *testing.T) {
	cfg := validTestConfig()
	cfg.Log.Level = "verbose"
	assert.ErrorContains(t, Validate(cfg), "invalid log level")

	cfg = validTestConfig()
	cfg.Log.Format = "xml"
	assert.ErrorContains(t, Validate(cfg), "invalid log format")

	// Case-insensitive.
	cfg = validTestConfig()
	cfg.Log.Level = "DEBUG"
	cfg.Log.Format = "JSON"
	assert.NoError(t, Validate(cfg))
}

func TestValidateUIConfig(t *testing.T) {
	cfg := validTestConfig()
	cfg.UI.MaxSelection = -1
	assert.ErrorContains(t, Validate(cfg), "max_selection must be non-negative")

	cfg = validTestConfig()
	cfg.UI.MaxSelection = 9
	assert.NoError(t, Validate(cfg))
}
