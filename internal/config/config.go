package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ServiceModeHTTP = "http"
	ServiceModeDemo = "demo"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	JokeURL           string `mapstructure:"joke_url"`
	ResponseFormat    string `mapstructure:"response_format"`
	SetupSelector     string `mapstructure:"setup_selector"`
	PunchlineSelector string `mapstructure:"punchline_selector"`

	RequestTimeoutSeconds int64         `mapstructure:"request_timeout_seconds"`
	RequestTimeout        time.Duration `mapstructure:"-"`

	ServiceMode string        `mapstructure:"service_mode"`
	DemoDelayMs int64         `mapstructure:"demo_delay_ms"`
	DemoDelay   time.Duration `mapstructure:"-"`

	MessagesFile string `mapstructure:"messages_file"`
	Locale       string `mapstructure:"locale"`
	SinksFile    string `mapstructure:"sinks_file"`

	TriggerIntervalSeconds int64         `mapstructure:"trigger_interval"`
	TriggerInterval        time.Duration `mapstructure:"-"`
	Once                   bool          `mapstructure:"once"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return decode(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "hasi")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("joke_url", "https://official-joke-api.appspot.com/random_joke/")
	v.SetDefault("response_format", "json")
	v.SetDefault("setup_selector", "")
	v.SetDefault("punchline_selector", "")
	v.SetDefault("request_timeout_seconds", 10)
	v.SetDefault("service_mode", ServiceModeHTTP)
	v.SetDefault("demo_delay_ms", 1000)
	v.SetDefault("messages_file", "")
	v.SetDefault("locale", "")
	v.SetDefault("sinks_file", "")
	v.SetDefault("trigger_interval", 0) // seconds; 0 reads triggers from stdin
	v.SetDefault("once", false)
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.ServiceMode = strings.ToLower(strings.TrimSpace(cfg.ServiceMode))
	cfg.ResponseFormat = strings.ToLower(strings.TrimSpace(cfg.ResponseFormat))
	cfg.JokeURL = strings.TrimSpace(cfg.JokeURL)

	switch cfg.ServiceMode {
	case ServiceModeHTTP:
		if cfg.JokeURL == "" {
			return nil, fmt.Errorf("joke_url is required when service_mode is %q", ServiceModeHTTP)
		}
	case ServiceModeDemo:
	default:
		return nil, fmt.Errorf("invalid service_mode %q (expected %q or %q)", cfg.ServiceMode, ServiceModeHTTP, ServiceModeDemo)
	}

	if cfg.RequestTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid request_timeout_seconds (must be positive seconds)")
	}
	cfg.RequestTimeout = time.Duration(cfg.RequestTimeoutSeconds) * time.Second

	if cfg.DemoDelayMs < 0 {
		return nil, fmt.Errorf("invalid demo_delay_ms (must not be negative)")
	}
	cfg.DemoDelay = time.Duration(cfg.DemoDelayMs) * time.Millisecond

	if cfg.TriggerIntervalSeconds < 0 {
		return nil, fmt.Errorf("invalid trigger_interval (must not be negative)")
	}
	cfg.TriggerInterval = time.Duration(cfg.TriggerIntervalSeconds) * time.Second

	return &cfg, nil
}
