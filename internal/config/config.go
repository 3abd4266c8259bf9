// Package config loads the service configuration from config.toml, an
// optional config.<ROSTER_ENV>.toml overlay, and ROSTER_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/roster/pkg/convert"
	"github.com/JaimeStill/roster/pkg/database"
	"github.com/JaimeStill/roster/pkg/render"
	"github.com/JaimeStill/roster/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvRosterEnv             = "ROSTER_ENV"
	EnvRosterShutdownTimeout = "ROSTER_SHUTDOWN_TIMEOUT"
	EnvRosterVersion         = "ROSTER_VERSION"
	EnvRosterLogLevel        = "ROSTER_LOG_LEVEL"
)

var databaseEnv = &database.Env{
	Host:            "ROSTER_DB_HOST",
	Port:            "ROSTER_DB_PORT",
	Name:            "ROSTER_DB_NAME",
	User:            "ROSTER_DB_USER",
	Password:        "ROSTER_DB_PASSWORD",
	SSLMode:         "ROSTER_DB_SSL_MODE",
	MaxOpenConns:    "ROSTER_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "ROSTER_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "ROSTER_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "ROSTER_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	Backend:          "ROSTER_STORAGE_BACKEND",
	PublicBaseURL:    "ROSTER_STORAGE_PUBLIC_BASE_URL",
	ContainerName:    "ROSTER_STORAGE_CONTAINER_NAME",
	ConnectionString: "ROSTER_STORAGE_CONNECTION_STRING",
	AccountURL:       "ROSTER_STORAGE_ACCOUNT_URL",
	Bucket:           "ROSTER_STORAGE_BUCKET",
	Region:           "ROSTER_STORAGE_REGION",
	Endpoint:         "ROSTER_STORAGE_ENDPOINT",
	AccessKeyID:      "ROSTER_STORAGE_ACCESS_KEY_ID",
	SecretAccessKey:  "ROSTER_STORAGE_SECRET_ACCESS_KEY",
	Root:             "ROSTER_STORAGE_ROOT",
}

var renderEnv = &render.Env{
	TemplatePath: "ROSTER_RENDER_TEMPLATE_PATH",
	Cache:        "ROSTER_RENDER_CACHE",
}

var convertEnv = &convert.Env{
	RemoteURL:  "ROSTER_CONVERT_REMOTE_URL",
	ExecPath:   "ROSTER_CONVERT_EXEC_PATH",
	MaxEngines: "ROSTER_CONVERT_MAX_ENGINES",
	Timeout:    "ROSTER_CONVERT_TIMEOUT",
}

// Config is the root configuration for the roster service.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Database        database.Config `toml:"database"`
	Storage         storage.Config  `toml:"storage"`
	Render          render.Config   `toml:"render"`
	Convert         convert.Config  `toml:"convert"`
	API             APIConfig       `toml:"api"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
	LogLevel        string          `toml:"log_level"`
}

// Env returns the ROSTER_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvRosterEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	return LoadFrom(BaseConfigFile)
}

// LoadFrom behaves like Load with an explicit base config path. The overlay
// is looked up next to it.
func LoadFrom(base string) (*Config, error) {
	cfg, err := read(base)
	if err != nil {
		return nil, err
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// LoadDatabase finalizes only the database section, for tools such as the
// migrator that need no other subsystem.
func LoadDatabase(base string) (*database.Config, error) {
	cfg, err := read(base)
	if err != nil {
		return nil, err
	}

	if err := cfg.Database.Finalize(databaseEnv); err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	return &cfg.Database, nil
}

func read(base string) (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(base); err == nil {
		loaded, err := load(base)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(base); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	if overlay.LogLevel != "" {
		c.LogLevel = overlay.LogLevel
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.Render.Merge(&overlay.Render)
	c.Convert.Merge(&overlay.Convert)
	c.API.Merge(&overlay.API)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Render.Finalize(renderEnv); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := c.Convert.Finalize(convertEnv); err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvRosterShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvRosterVersion); v != "" {
		c.Version = v
	}
	if v := os.Getenv(EnvRosterLogLevel); v != "" {
		c.LogLevel = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath(base string) string {
	env := os.Getenv(EnvRosterEnv)
	if env == "" {
		return ""
	}

	path := filepath.Join(filepath.Dir(base), fmt.Sprintf(OverlayConfigPattern, env))
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}
