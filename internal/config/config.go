// Load envs from .env
// Load YAML config
// Override with env vars, apply defaults, validate

package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "configs/config.yaml"

type Config struct {
	Port string
	//Browser
	Headless     bool
	ChromiumPath string
	UserAgent    string
	CookiesPath  string
	DebugDir     string
	//Search pipeline
	CacheTTL          time.Duration
	LoadTimeout       time.Duration
	SelectorTimeout   time.Duration
	ScrollIterations  int
	ScrollPause       time.Duration
	NavigationRetries int
	RetryDelay        time.Duration
	//HTTP
	RateLimitWindow time.Duration
	//Run log + alerts
	DatabaseURL    string
	TelegramToken  string
	TelegramChatID int64
	AlertEvery     time.Duration
}

// rawConfig mirrors the YAML file; durations are strings like "15s"
type rawConfig struct {
	Port              string `yaml:"port"`
	Headless          *bool  `yaml:"headless"`
	ChromiumPath      string `yaml:"chromium_path"`
	UserAgent         string `yaml:"user_agent"`
	CookiesPath       string `yaml:"cookies_path"`
	DebugDir          string `yaml:"debug_dir"`
	CacheTTL          string `yaml:"cache_ttl"`
	LoadTimeout       string `yaml:"load_timeout"`
	SelectorTimeout   string `yaml:"selector_timeout"`
	ScrollIterations  *int   `yaml:"scroll_iterations"`
	ScrollPause       string `yaml:"scroll_pause"`
	NavigationRetries int    `yaml:"navigation_retries"`
	RetryDelay        string `yaml:"retry_delay"`
	RateLimitWindow   string `yaml:"rate_limit_window"`
	DatabaseURL       string `yaml:"database_url"`
	TelegramToken     string `yaml:"telegram_token"`
	TelegramChatID    int64  `yaml:"telegram_chat_id"`
	AlertEvery        string `yaml:"alert_every"`
}

// Load reads .env, then the YAML file at path (missing file is only a warning),
// then environment overrides
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var raw rawConfig
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Printf("Warning: Could not read %s, using defaults", path)
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := applyEnv(&raw); err != nil {
		return nil, err
	}

	cfg, err := build(raw)
	if err != nil {
		return nil, err
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(raw *rawConfig) error {
	if port := os.Getenv("PORT"); port != "" {
		raw.Port = port
	}
	if path := os.Getenv("PLAYWRIGHT_CHROMIUM_EXECUTABLE_PATH"); path != "" {
		raw.ChromiumPath = path
	}
	if headless := os.Getenv("HEADLESS"); headless != "" {
		v, err := strconv.ParseBool(headless)
		if err != nil {
			return fmt.Errorf("invalid HEADLESS: %w", err)
		}
		raw.Headless = &v
	}
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		raw.DatabaseURL = dbURL
	}
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		raw.TelegramToken = token
	}
	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		raw.TelegramChatID = id
	}
	return nil
}

func build(raw rawConfig) (*Config, error) {
	cfg := &Config{
		Port:              raw.Port,
		Headless:          true,
		ChromiumPath:      raw.ChromiumPath,
		UserAgent:         raw.UserAgent,
		CookiesPath:       raw.CookiesPath,
		DebugDir:          raw.DebugDir,
		ScrollIterations:  3,
		NavigationRetries: raw.NavigationRetries,
		DatabaseURL:       raw.DatabaseURL,
		TelegramToken:     raw.TelegramToken,
		TelegramChatID:    raw.TelegramChatID,
	}

	//Set default values if not set
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if raw.Headless != nil {
		cfg.Headless = *raw.Headless
	}
	if cfg.DebugDir == "" {
		cfg.DebugDir = "logs/screenshots"
	}
	if raw.ScrollIterations != nil {
		cfg.ScrollIterations = *raw.ScrollIterations
	}

	durations := []struct {
		key  string
		raw  string
		def  time.Duration
		dest *time.Duration
	}{
		{"cache_ttl", raw.CacheTTL, 5 * time.Minute, &cfg.CacheTTL},
		{"load_timeout", raw.LoadTimeout, 15 * time.Second, &cfg.LoadTimeout},
		{"selector_timeout", raw.SelectorTimeout, 15 * time.Second, &cfg.SelectorTimeout},
		{"scroll_pause", raw.ScrollPause, 2 * time.Second, &cfg.ScrollPause},
		{"retry_delay", raw.RetryDelay, 3 * time.Second, &cfg.RetryDelay},
		{"rate_limit_window", raw.RateLimitWindow, time.Second, &cfg.RateLimitWindow},
		{"alert_every", raw.AlertEvery, 10 * time.Minute, &cfg.AlertEvery},
	}
	for _, d := range durations {
		if d.raw == "" {
			*d.dest = d.def
			continue
		}
		parsed, err := time.ParseDuration(d.raw)
		if err != nil {
			return nil, fmt.Errorf("parse %s %q: %w", d.key, d.raw, err)
		}
		*d.dest = parsed
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.CacheTTL <= 0 {
		return fmt.Errorf("cache_ttl must be positive, got %v", cfg.CacheTTL)
	}
	if cfg.LoadTimeout <= 0 || cfg.SelectorTimeout <= 0 {
		return fmt.Errorf("load_timeout and selector_timeout must be positive")
	}
	if cfg.ScrollIterations < 0 {
		return fmt.Errorf("scroll_iterations must not be negative, got %d", cfg.ScrollIterations)
	}
	if cfg.NavigationRetries < 0 || cfg.NavigationRetries > 1 {
		return fmt.Errorf("navigation_retries must be 0 or 1, got %d", cfg.NavigationRetries)
	}
	if cfg.RateLimitWindow <= 0 {
		return fmt.Errorf("rate_limit_window must be positive, got %v", cfg.RateLimitWindow)
	}
	if (cfg.TelegramToken == "") != (cfg.TelegramChatID == 0) {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID must be set together")
	}
	return nil
}

// AlertsEnabled is true when both telegram settings are present
func (c *Config) AlertsEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}
