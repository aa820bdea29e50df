package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate validates the configuration and returns an error if invalid
func Validate(config *Config) error {
	if err := validateAPIConfig(&config.API); err != nil {
		return fmt.Errorf("api config validation failed: %w", err)
	}

	if err := validateLogConfig(&config.Log); err != nil {
		return fmt.Errorf("log config validation failed: %w", err)
	}

	if err := validateUIConfig(&config.UI); err != nil {
		return fmt.Errorf("ui config validation failed: %w", err)
	}

	return nil
}

// validateAPIConfig validates materials service connection settings
func validateAPIConfig(config *APIConfig) error {
	base := strings.TrimSpace(config.BaseURL)
	if base == "" {
		return fmt.Errorf("base_url is required")
	}

	parsed, err := url.Parse(base)
	if err != nil {
		return fmt.Errorf("invalid base_url %q: %w", config.BaseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("base_url must use http or https, got %q", config.BaseURL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("base_url is missing a host: %q", config.BaseURL)
	}

	if config.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got: %d", config.Timeout)
	}

	return nil
}

// validateLogConfig validates log configuration
func validateLogConfig(config *LogConfig) error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"fatal": true,
		"panic": true,
	}

	level := strings.ToLower(config.Level)
	if !validLevels[level] {
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error, fatal, panic)", config.Level)
	}

	validFormats := map[string]bool{
		"text": true,
		"json": true,
	}

	format := strings.ToLower(config.Format)
	if !validFormats[format] {
		return fmt.Errorf("invalid log format: %s (valid: text, json)", config.Format)
	}

	return nil
}

// validateUIConfig validates picker configuration
func validateUIConfig(config *UIConfig) error {
	if config.MaxSelection < 0 {
		return fmt.Errorf("max_selection must be non-negative, got: %d", config.MaxSelection)
	}
	return nil
}
