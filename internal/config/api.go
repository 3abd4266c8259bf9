package config

import (
	"fmt"
	"os"

	"github.com/JaimeStill/roster/pkg/formatting"
	"github.com/JaimeStill/roster/pkg/middleware"
	"github.com/JaimeStill/roster/pkg/openapi"
	"github.com/JaimeStill/roster/pkg/pagination"
)

const (
	EnvAPIBasePath    = "ROSTER_API_BASE_PATH"
	EnvAPIMaxBodySize = "ROSTER_API_MAX_BODY_SIZE"

	defaultMaxBodySize = 1 << 20
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "ROSTER_CORS_ENABLED",
	Origins:          "ROSTER_CORS_ORIGINS",
	AllowedMethods:   "ROSTER_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "ROSTER_CORS_ALLOWED_HEADERS",
	AllowCredentials: "ROSTER_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "ROSTER_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "ROSTER_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "ROSTER_PAGINATION_MAX_PAGE_SIZE",
}

var openapiEnv = &openapi.ConfigEnv{
	Title:       "ROSTER_OPENAPI_TITLE",
	Description: "ROSTER_OPENAPI_DESCRIPTION",
}

// APIConfig holds API routing, request limits, CORS, pagination and OpenAPI settings.
type APIConfig struct {
	BasePath    string                `toml:"base_path"`
	MaxBodySize string                `toml:"max_body_size"`
	CORS        middleware.CORSConfig `toml:"cors"`
	Pagination  pagination.Config     `toml:"pagination"`
	OpenAPI     openapi.Config        `toml:"openapi"`
}

// MaxBodySizeBytes returns MaxBodySize in bytes.
func (c *APIConfig) MaxBodySizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxBodySize)
	if err != nil {
		return defaultMaxBodySize
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.OpenAPI.Finalize(openapiEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxBodySize != "" {
		c.MaxBodySize = overlay.MaxBodySize
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxBodySize == "" {
		c.MaxBodySize = "1MB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv(EnvAPIBasePath); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvAPIMaxBodySize); v != "" {
		c.MaxBodySize = v
	}
}

func (c *APIConfig) validate() error {
	size, err := formatting.ParseBytes(c.MaxBodySize)
	if err != nil {
		return fmt.Errorf("invalid max_body_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_body_size must be positive")
	}
	return nil
}
