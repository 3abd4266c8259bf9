package convert

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config controls the conversion engine. RemoteURL attaches to a running
// browser's DevTools websocket; otherwise a local browser is launched,
// optionally from ExecPath.
type Config struct {
	RemoteURL  string `toml:"remote_url"`
	ExecPath   string `toml:"exec_path"`
	MaxEngines int    `toml:"max_engines"`
	Timeout    string `toml:"timeout"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	RemoteURL  string
	ExecPath   string
	MaxEngines string
	Timeout    string
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.RemoteURL != "" {
		c.RemoteURL = overlay.RemoteURL
	}
	if overlay.ExecPath != "" {
		c.ExecPath = overlay.ExecPath
	}
	if overlay.MaxEngines != 0 {
		c.MaxEngines = overlay.MaxEngines
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
}

func (c *Config) loadDefaults() {
	if c.MaxEngines == 0 {
		c.MaxEngines = 2
	}
	if c.Timeout == "" {
		c.Timeout = "30s"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.RemoteURL != "" {
		if v := os.Getenv(env.RemoteURL); v != "" {
			c.RemoteURL = v
		}
	}
	if env.ExecPath != "" {
		if v := os.Getenv(env.ExecPath); v != "" {
			c.ExecPath = v
		}
	}
	if env.MaxEngines != "" {
		if v := os.Getenv(env.MaxEngines); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.MaxEngines = n
			}
		}
	}
	if env.Timeout != "" {
		if v := os.Getenv(env.Timeout); v != "" {
			c.Timeout = v
		}
	}
}

func (c *Config) validate() error {
	if c.MaxEngines < 1 {
		return fmt.Errorf("max_engines must be positive")
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}
