package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv        = "ACTIVITY_PUBLISHER_CONFIG"
	cursorPathEnv        = "CURSOR_FILE"
	oracleAPIKeyEnv      = "OPENAI_API_KEY"
	oracleModelEnv       = "OPENAI_MODEL"
	oracleBaseURLEnv     = "OPENAI_BASE_URL"
	contentAPIBaseEnv    = "CONTENT_API_BASE_URL"
	archiveDSNEnv        = "ARCHIVE_DSN"
	schedulerIntervalEnv = "SCHEDULER_INTERVAL"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging    LoggingConfig    `yaml:"logging"`
	Cursor     CursorConfig     `yaml:"cursor"`
	Fetch      FetchConfig      `yaml:"fetch"`
	Oracle     OracleConfig     `yaml:"oracle"`
	ContentAPI ContentAPIConfig `yaml:"contentApi"`
	Archive    ArchiveConfig    `yaml:"archive"`
	Scheduler  SchedulerConfig  `yaml:"scheduler"`
	Feeds      []FeedConfig     `yaml:"feeds"`
}

// LoggingConfig controls the slog level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// CursorConfig points at the cursor state file; empty uses the XDG default.
type CursorConfig struct {
	Path string `yaml:"path"`
}

// FetchConfig bounds the scan loop.
type FetchConfig struct {
	MaxPages   int `yaml:"maxPages"`
	StallLimit int `yaml:"stallLimit"`
}

// OracleConfig defines how to contact the classification/transformation API.
type OracleConfig struct {
	BaseURL        string `yaml:"baseUrl"`
	Model          string `yaml:"model"`
	APIKey         string `yaml:"apiKey"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
}

// Timeout resolves the per-call oracle timeout.
func (o OracleConfig) Timeout() time.Duration {
	if o.TimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(o.TimeoutSeconds) * time.Second
}

// ContentAPIConfig points at the per-label publishing endpoints.
type ContentAPIConfig struct {
	BaseURL        string `yaml:"baseUrl"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
}

// Timeout resolves the per-call publish timeout.
func (c ContentAPIConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ArchiveConfig enables the optional Postgres result archive when set.
type ArchiveConfig struct {
	DSN string `yaml:"dsn"`
}

// SchedulerConfig defines the re-run interval; empty or zero means one cycle
// per invocation.
type SchedulerConfig struct {
	Interval string `yaml:"interval"`
}

// Duration resolves the interval string; malformed values disable re-runs.
func (s SchedulerConfig) Duration() time.Duration {
	if s.Interval == "" {
		return 0
	}
	d, err := time.ParseDuration(s.Interval)
	if err != nil {
		log.Printf("config: invalid scheduler interval %s, running a single cycle", s.Interval)
		return 0
	}
	return d
}

// FeedConfig describes a single feed with its scanner strategy.
type FeedConfig struct {
	Name    string            `yaml:"name"`
	Scanner string            `yaml:"scanner"`
	URL     string            `yaml:"url"`
	Options map[string]string `yaml:"options"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	if len(cfg.Feeds) == 0 {
		cfg.Feeds = defaultConfig().Feeds
	}

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(cursorPathEnv); v != "" {
		c.Cursor.Path = v
	}

	if v := os.Getenv(oracleAPIKeyEnv); v != "" {
		c.Oracle.APIKey = v
	}
	if v := os.Getenv(oracleModelEnv); v != "" {
		c.Oracle.Model = v
	}
	if v := os.Getenv(oracleBaseURLEnv); v != "" {
		c.Oracle.BaseURL = v
	}

	if v := os.Getenv(contentAPIBaseEnv); v != "" {
		c.ContentAPI.BaseURL = v
	}

	if v := os.Getenv(archiveDSNEnv); v != "" {
		c.Archive.DSN = v
	}

	if v := os.Getenv(schedulerIntervalEnv); v != "" {
		c.Scheduler.Interval = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}

	if override.Cursor.Path != "" {
		base.Cursor = override.Cursor
	}

	if override.Fetch.MaxPages > 0 {
		base.Fetch.MaxPages = override.Fetch.MaxPages
	}
	if override.Fetch.StallLimit > 0 {
		base.Fetch.StallLimit = override.Fetch.StallLimit
	}

	if override.Oracle.BaseURL != "" {
		base.Oracle.BaseURL = override.Oracle.BaseURL
	}
	if override.Oracle.Model != "" {
		base.Oracle.Model = override.Oracle.Model
	}
	if override.Oracle.APIKey != "" {
		base.Oracle.APIKey = override.Oracle.APIKey
	}
	if override.Oracle.TimeoutSeconds > 0 {
		base.Oracle.TimeoutSeconds = override.Oracle.TimeoutSeconds
	}

	if override.ContentAPI.BaseURL != "" {
		base.ContentAPI.BaseURL = override.ContentAPI.BaseURL
	}
	if override.ContentAPI.TimeoutSeconds > 0 {
		base.ContentAPI.TimeoutSeconds = override.ContentAPI.TimeoutSeconds
	}

	if override.Archive.DSN != "" {
		base.Archive = override.Archive
	}

	if override.Scheduler.Interval != "" {
		base.Scheduler = override.Scheduler
	}

	if len(override.Feeds) > 0 {
		base.Feeds = override.Feeds
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Cursor:  CursorConfig{Path: ""},
		Fetch:   FetchConfig{MaxPages: 15, StallLimit: 2},
		Oracle: OracleConfig{
			BaseURL:        "",
			Model:          "gpt-4o",
			APIKey:         "",
			TimeoutSeconds: 60,
		},
		ContentAPI: ContentAPIConfig{
			BaseURL:        "http://localhost:3000/api",
			TimeoutSeconds: 30,
		},
		Archive:   ArchiveConfig{DSN: ""},
		Scheduler: SchedulerConfig{Interval: ""},
		Feeds: []FeedConfig{
			{
				Name:    "activity",
				Scanner: "feedpage",
				URL:     "https://example.org/activity",
			},
		},
	}
}
