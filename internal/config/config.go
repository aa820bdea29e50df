package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the complete application configuration
type Config struct {
	API    APIConfig    `mapstructure:"api"`
	Log    LogConfig    `mapstructure:"log"`
	UI     UIConfig     `mapstructure:"ui"`
	Server ServerConfig `mapstructure:"server"`
}

// APIConfig holds materials service connection configuration
type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// UIConfig holds picker configuration
type UIConfig struct {
	MultiSelect  bool `mapstructure:"multi_select"`
	MaxSelection int  `mapstructure:"max_selection"`
	ImagePreview bool `mapstructure:"image_preview"`
}

// ServerConfig holds local dev service configuration
type ServerConfig struct {
	Addr    string `mapstructure:"addr"`
	DataDir string `mapstructure:"data_dir"`
	DBPath  string `mapstructure:"db_path"`
}

// Load loads configuration from multiple sources with priority:
// 1. Command line flags (highest)
// 2. Environment variables
// 3. Configuration file
// 4. Defaults (lowest)
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("MATCLI")
	v.AutomaticEnv()

	v.BindEnv("api.base_url", "MATCLI_API_BASE_URL")
	v.BindEnv("api.timeout", "MATCLI_API_TIMEOUT")
	v.BindEnv("log.level", "MATCLI_LOG_LEVEL")
	v.BindEnv("log.format", "MATCLI_LOG_FORMAT")
	v.BindEnv("ui.multi_select", "MATCLI_UI_MULTI_SELECT")
	v.BindEnv("ui.max_selection", "MATCLI_UI_MAX_SELECTION")
	v.BindEnv("ui.image_preview", "MATCLI_UI_IMAGE_PREVIEW")
	v.BindEnv("server.addr", "MATCLI_SERVER_ADDR")
	v.BindEnv("server.data_dir", "MATCLI_SERVER_DATA_DIR")
	v.BindEnv("server.db_path", "MATCLI_SERVER_DB_PATH")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")

		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.materials-cli")
		v.AddConfigPath("/etc/materials-cli/")
	}

	// A missing config file is fine - defaults and env vars still apply
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	// API defaults
	v.SetDefault("api.base_url", "http://localhost:5000")
	v.SetDefault("api.timeout", 30)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// UI defaults
	v.SetDefault("ui.multi_select", true)
	v.SetDefault("ui.max_selection", 0)
	v.SetDefault("ui.image_preview", true)

	// Server defaults
	v.SetDefault("server.addr", "127.0.0.1:5000")
	v.SetDefault("server.data_dir", "")
	v.SetDefault("server.db_path", "")
}

// GetDefaultConfigPath returns the default configuration file path
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./config.toml"
	}
	return filepath.Join(homeDir, ".materials-cli", "config.toml")
}
