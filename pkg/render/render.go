// Package render merges record data into an HTML markup template.
package render

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

//go:embed templates/employee.html
var templates embed.FS

const defaultTemplate = "templates/employee.html"

var (
	// ErrTemplate indicates the template could not be loaded or parsed.
	ErrTemplate = errors.New("template unavailable")
	// ErrRender indicates the template failed during execution.
	ErrRender = errors.New("render failed")
)

// Renderer produces markup from a data value.
type Renderer interface {
	Render(ctx context.Context, data any) ([]byte, error)
}

type renderer struct {
	path   string
	cache  bool
	logger *slog.Logger

	mu     sync.Mutex
	parsed *template.Template
}

// New creates a Renderer. The embedded template, and a configured template
// when caching is enabled, are parsed here so a broken template fails at startup.
func New(cfg *Config, logger *slog.Logger) (Renderer, error) {
	r := &renderer{
		path:   cfg.TemplatePath,
		cache:  cfg.Cache,
		logger: logger.With("system", "render"),
	}

	if r.path == "" || r.cache {
		t, err := r.load()
		if err != nil {
			return nil, err
		}
		r.parsed = t
	}

	return r, nil
}

// Render executes the template against data. Keys missing from a map render
// as empty strings.
func (r *renderer) Render(ctx context.Context, data any) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t, err := r.template()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}

	return buf.Bytes(), nil
}

func (r *renderer) template() (*template.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.parsed != nil {
		return r.parsed, nil
	}

	// uncached file templates are re-read so edits apply without a restart
	return r.load()
}

func (r *renderer) load() (*template.Template, error) {
	if r.path == "" {
		t, err := template.New(filepath.Base(defaultTemplate)).
			Option("missingkey=zero").
			ParseFS(templates, defaultTemplate)
		if err != nil {
			return nil, fmt.Errorf("%w: embedded: %w", ErrTemplate, err)
		}
		return t, nil
	}

	src, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrTemplate, r.path, err)
	}

	t, err := template.New(filepath.Base(r.path)).
		Option("missingkey=zero").
		Parse(string(src))
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", ErrTemplate, r.path, err)
	}

	r.logger.Debug("template loaded", "path", r.path)
	return t, nil
}
