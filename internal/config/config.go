// Package config loads the service configuration: defaults, then an
// optional YAML file, then environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the full service configuration.
type Config struct {
	RESTPort       string      `yaml:"rest_port"`
	WSPort         string      `yaml:"ws_port"`
	APIPrefix      string      `yaml:"api_prefix"`
	AppVersion     string      `yaml:"app_version"`
	TrackedTeam    string      `yaml:"tracked_team"`
	AllowedOrigins []string    `yaml:"allowed_origins"`
	MaxUploadBytes int64       `yaml:"max_upload_bytes"`
	DataDir        string      `yaml:"data_dir"`
	Store          StoreConfig `yaml:"store"`
	Redis          RedisConfig `yaml:"redis"`
	Log            LogConfig   `yaml:"log"`
	MCP            MCPConfig   `yaml:"mcp"`
}

// StoreConfig selects the persistence backend.
type StoreConfig struct {
	Driver string `yaml:"driver"` // file | postgres | sqlite
	DSN    string `yaml:"dsn"`
}

// RedisConfig configures the record cache and the event stream. An empty
// URL disables both.
type RedisConfig struct {
	URL            string        `yaml:"url"`
	CacheTTL       time.Duration `yaml:"cache_ttl"`
	Stream         string        `yaml:"stream"`
	ConnectRetries int           `yaml:"connect_retries"`
}

// LogConfig configures zerolog.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console | json
}

// MCPConfig configures the tool server. An empty Addr serves stdio.
type MCPConfig struct {
	Addr string `yaml:"addr"`
}

// DefaultConfig returns sane defaults.
func DefaultConfig() *Config {
	return &Config{
		RESTPort:       "8080",
		WSPort:         "8081",
		APIPrefix:      "/api/v1",
		AppVersion:     "1.0.0",
		TrackedTeam:    "REAL TAJO",
		AllowedOrigins: []string{"*"},
		MaxUploadBytes: 10 << 20,
		Store: StoreConfig{
			Driver: "file",
		},
		Redis: RedisConfig{
			CacheTTL:       10 * time.Minute,
			Stream:         "documents.processed",
			ConnectRetries: 30,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load builds the configuration. path may be empty, in which case only
// defaults and the environment apply.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	cfg.DataDir = ResolveDataDir(cfg.DataDir, os.Getenv)
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv(getenv func(string) string) error {
	setString := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	setString("REST_PORT", &c.RESTPort)
	setString("WS_PORT", &c.WSPort)
	setString("API_PREFIX", &c.APIPrefix)
	setString("APP_VERSION", &c.AppVersion)
	setString("TRACKED_TEAM", &c.TrackedTeam)
	setString("STORE_DRIVER", &c.Store.Driver)
	setString("DATABASE_DSN", &c.Store.DSN)
	setString("REDIS_URL", &c.Redis.URL)
	setString("REDIS_STREAM", &c.Redis.Stream)
	setString("LOG_LEVEL", &c.Log.Level)
	setString("LOG_FORMAT", &c.Log.Format)
	setString("MCP_ADDR", &c.MCP.Addr)

	if v := getenv("ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = splitList(v)
	}
	if v := getenv("MAX_UPLOAD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("MAX_UPLOAD_BYTES: %w", err)
		}
		c.MaxUploadBytes = n
	}
	if v := getenv("REDIS_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("REDIS_CACHE_TTL: %w", err)
		}
		c.Redis.CacheTTL = d
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ResolveDataDir picks the directory for JSON records and uploads.
// UPLOAD_DIR wins; on Azure App Service (WEBSITE_INSTANCE_ID set) the
// default is the persistent /home/site/data, overridable by APP_DATA_DIR.
func ResolveDataDir(configured string, getenv func(string) string) string {
	if v := getenv("UPLOAD_DIR"); v != "" {
		return filepath.Clean(v)
	}
	if getenv("WEBSITE_INSTANCE_ID") != "" {
		if v := getenv("APP_DATA_DIR"); v != "" {
			return filepath.Clean(v)
		}
		return "/home/site/data"
	}
	if configured != "" {
		return filepath.Clean(configured)
	}
	return "data"
}

// Validate checks that required fields are present and values are sane.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case "file", "sqlite":
	case "postgres":
		if c.Store.DSN == "" {
			return fmt.Errorf("store.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported store.driver %q (use file, sqlite or postgres)", c.Store.Driver)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be > 0")
	}
	if strings.TrimSpace(c.TrackedTeam) == "" {
		return fmt.Errorf("tracked_team is required")
	}
	if c.RESTPort == "" {
		return fmt.Errorf("rest_port is required")
	}
	if !strings.HasPrefix(c.APIPrefix, "/") {
		return fmt.Errorf("api_prefix must start with /")
	}
	if c.Redis.CacheTTL < 0 {
		return fmt.Errorf("redis.cache_ttl must be >= 0")
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("unsupported log.format %q (use console or json)", c.Log.Format)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}
