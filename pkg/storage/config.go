package storage

import (
	"fmt"
	"os"
	"strings"
)

// Supported storage backends.
const (
	BackendAzure = "azure"
	BackendS3    = "s3"
	BackendLocal = "local"
)

// Config selects an artifact backend and holds its connection parameters.
type Config struct {
	Backend       string      `toml:"backend"`
	PublicBaseURL string      `toml:"public_base_url"`
	Azure         AzureConfig `toml:"azure"`
	S3            S3Config    `toml:"s3"`
	Local         LocalConfig `toml:"local"`
}

// AzureConfig holds Azure Blob Storage parameters. ConnectionString wins over AccountURL;
// AccountURL authenticates through the default Azure credential chain.
type AzureConfig struct {
	ContainerName    string `toml:"container_name"`
	ConnectionString string `toml:"connection_string"`
	AccountURL       string `toml:"account_url"`
}

// S3Config holds S3 parameters. Static keys are optional; without them the
// default AWS credential chain is used. Endpoint targets S3-compatible services.
type S3Config struct {
	Bucket          string `toml:"bucket"`
	Region          string `toml:"region"`
	Endpoint        string `toml:"endpoint"`
	AccessKeyID     string `toml:"access_key_id"`
	SecretAccessKey string `toml:"secret_access_key"`
}

// LocalConfig holds the filesystem backend root directory.
type LocalConfig struct {
	Root string `toml:"root"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Backend          string
	PublicBaseURL    string
	ContainerName    string
	ConnectionString string
	AccountURL       string
	Bucket           string
	Region           string
	Endpoint         string
	AccessKeyID      string
	SecretAccessKey  string
	Root             string
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
	merge(&c.Backend, overlay.Backend)
	merge(&c.PublicBaseURL, overlay.PublicBaseURL)
	merge(&c.Azure.ContainerName, overlay.Azure.ContainerName)
	merge(&c.Azure.ConnectionString, overlay.Azure.ConnectionString)
	merge(&c.Azure.AccountURL, overlay.Azure.AccountURL)
	merge(&c.S3.Bucket, overlay.S3.Bucket)
	merge(&c.S3.Region, overlay.S3.Region)
	merge(&c.S3.Endpoint, overlay.S3.Endpoint)
	merge(&c.S3.AccessKeyID, overlay.S3.AccessKeyID)
	merge(&c.S3.SecretAccessKey, overlay.S3.SecretAccessKey)
	merge(&c.Local.Root, overlay.Local.Root)
}

func (c *Config) loadDefaults() {
	if c.Backend == "" {
		c.Backend = BackendLocal
	}
	if c.Azure.ContainerName == "" {
		c.Azure.ContainerName = "employee-files"
	}
	if c.S3.Region == "" {
		c.S3.Region = "us-east-1"
	}
	if c.Local.Root == "" {
		c.Local.Root = "artifacts"
	}
}

func (c *Config) loadEnv(env *Env) {
	lookup(&c.Backend, env.Backend)
	lookup(&c.PublicBaseURL, env.PublicBaseURL)
	lookup(&c.Azure.ContainerName, env.ContainerName)
	lookup(&c.Azure.ConnectionString, env.ConnectionString)
	lookup(&c.Azure.AccountURL, env.AccountURL)
	lookup(&c.S3.Bucket, env.Bucket)
	lookup(&c.S3.Region, env.Region)
	lookup(&c.S3.Endpoint, env.Endpoint)
	lookup(&c.S3.AccessKeyID, env.AccessKeyID)
	lookup(&c.S3.SecretAccessKey, env.SecretAccessKey)
	lookup(&c.Local.Root, env.Root)
}

func (c *Config) validate() error {
	c.PublicBaseURL = strings.TrimRight(c.PublicBaseURL, "/")

	switch c.Backend {
	case BackendAzure:
		if c.Azure.ContainerName == "" {
			return fmt.Errorf("azure.container_name required")
		}
		if c.Azure.ConnectionString == "" && c.Azure.AccountURL == "" {
			return fmt.Errorf("azure.connection_string or azure.account_url required")
		}
	case BackendS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("s3.bucket required")
		}
		if (c.S3.AccessKeyID == "") != (c.S3.SecretAccessKey == "") {
			return fmt.Errorf("s3.access_key_id and s3.secret_access_key must be set together")
		}
	case BackendLocal:
		if c.PublicBaseURL == "" {
			return fmt.Errorf("public_base_url required for local backend")
		}
	default:
		return fmt.Errorf("unsupported backend %q (must be azure, s3, or local)", c.Backend)
	}
	return nil
}

func merge(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func lookup(dst *string, name string) {
	if name == "" {
		return
	}
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}
