package render

import (
	"fmt"
	"os"
	"strconv"
)

// Config selects the markup template. An empty TemplatePath uses the embedded
// employee profile. Cache parses the file once instead of on every render.
type Config struct {
	TemplatePath string `toml:"template_path"`
	Cache        bool   `toml:"cache"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	TemplatePath string
	Cache        string
}

// Finalize applies environment variable overrides and validation.
func (c *Config) Finalize(env *Env) error {
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay. An overlay can enable the
// cache but not disable it.
func (c *Config) Merge(overlay *Config) {
	if overlay.TemplatePath != "" {
		c.TemplatePath = overlay.TemplatePath
	}
	if overlay.Cache {
		c.Cache = true
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.TemplatePath != "" {
		if v := os.Getenv(env.TemplatePath); v != "" {
			c.TemplatePath = v
		}
	}
	if env.Cache != "" {
		if v := os.Getenv(env.Cache); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				c.Cache = b
			}
		}
	}
}

func (c *Config) validate() error {
	if c.TemplatePath == "" {
		return nil
	}
	info, err := os.Stat(c.TemplatePath)
	if err != nil {
		return fmt.Errorf("template_path: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("template_path %s is a directory", c.TemplatePath)
	}
	return nil
}
