// Package storage publishes artifacts to durable object storage. Azure Blob Storage,
// S3 and a local directory are supported; every backend writes objects with public
// read visibility and overwrites any existing object under the same key.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"slices"
	"strings"

	"github.com/JaimeStill/roster/pkg/lifecycle"
)

// System manages artifact storage operations and lifecycle coordination.
type System interface {
	// Start registers a startup hook that ensures the container, bucket or directory exists.
	Start(lc *lifecycle.Coordinator) error
	// Upload streams data to the object at key, replacing any existing object.
	Upload(ctx context.Context, key string, reader io.Reader, contentType string) error
	// Download returns a stream for the object at key. The caller must close the reader.
	// Returns ErrNotFound if the object does not exist.
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes the object at key. Returns ErrNotFound if the object does not exist.
	Delete(ctx context.Context, key string) error
	// Exists reports whether an object exists at key.
	Exists(ctx context.Context, key string) (bool, error)
	// URL returns the public location of the object at key.
	URL(key string) string
}

// New creates the storage system selected by cfg.Backend. Clients are
// constructed here; no remote call is made until Start or the first operation.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	logger = logger.With("system", "storage", "backend", cfg.Backend)

	switch cfg.Backend {
	case BackendAzure:
		return newAzure(cfg, logger)
	case BackendS3:
		return newS3(cfg, logger)
	case BackendLocal:
		return newLocal(cfg, logger)
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Backend)
	}
}

func validateKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if strings.HasPrefix(key, "/") || slices.Contains(strings.Split(key, "/"), "..") {
		return ErrInvalidKey
	}
	return nil
}

// escapeKey path-escapes each segment of key, keeping the separators.
func escapeKey(key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + escapeKey(key)
}
