package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the KisanAI front-end
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Advisory AdvisoryConfig `mapstructure:"advisory"`
	Database DatabaseConfig `mapstructure:"database"`
	I18n     I18nConfig     `mapstructure:"i18n"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host         string   `mapstructure:"host"`
	Port         int      `mapstructure:"port"`
	AllowOrigins []string `mapstructure:"allow_origins"`
	// SessionIdleTimeout evicts sessions unused for this long; zero keeps them
	SessionIdleTimeout time.Duration `mapstructure:"session_idle_timeout"`
}

// AdvisoryConfig holds the remote advisory service configuration
type AdvisoryConfig struct {
	BaseURL string `mapstructure:"base_url"`
	// Timeout bounds one HTTP call; zero leaves it unbounded
	Timeout time.Duration `mapstructure:"timeout"`
}

// DatabaseConfig holds the preference database configuration
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// I18nConfig holds localization configuration
type I18nConfig struct {
	DefaultLocale string `mapstructure:"default_locale"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Development bool `mapstructure:"development"`
}

// Load loads configuration from .env, file and environment
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read config file if specified
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables, e.g. KISAN_ADVISORY_BASE_URL
	v.SetEnvPrefix("KISAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.allow_origins", []string{"*"})
	v.SetDefault("server.session_idle_timeout", 30*time.Minute)

	v.SetDefault("advisory.base_url", "http://localhost:8080")
	v.SetDefault("advisory.timeout", time.Duration(0))

	v.SetDefault("database.path", "./data/kisan.db")

	v.SetDefault("i18n.default_locale", "en")

	v.SetDefault("log.development", false)
}

// Address returns the server address
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
