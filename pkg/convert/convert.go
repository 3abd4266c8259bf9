// Package convert turns HTML markup into a fixed-layout PDF artifact using a
// headless browser engine.
package convert

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"golang.org/x/sync/semaphore"
)

// Options describes the printed page.
type Options struct {
	PaperWidth        float64
	PaperHeight       float64
	Landscape         bool
	PrintBackground   bool
	PreferCSSPageSize bool
}

// A4 is the page layout used for every artifact: A4 portrait in inches,
// backgrounds printed, CSS @page size honored.
var A4 = Options{
	PaperWidth:        8.27,
	PaperHeight:       11.69,
	Landscape:         false,
	PrintBackground:   true,
	PreferCSSPageSize: true,
}

// Engine launches isolated rendering sessions.
type Engine interface {
	Launch(ctx context.Context) (Session, error)
}

// Session is a launched engine instance. Close must be called exactly once.
type Session interface {
	PrintPDF(ctx context.Context, markup []byte, opts Options) ([]byte, error)
	Close() error
}

// Artifact is a validated PDF.
type Artifact struct {
	Data  []byte
	Pages int
}

// Size returns the artifact length in bytes.
func (a *Artifact) Size() int64 {
	return int64(len(a.Data))
}

// Converter produces PDF artifacts from markup.
type Converter interface {
	Convert(ctx context.Context, markup []byte) (*Artifact, error)
}

type converter struct {
	engine  Engine
	slots   *semaphore.Weighted
	timeout time.Duration
	logger  *slog.Logger
}

// New creates a Converter that runs at most cfg.MaxEngines sessions at once.
func New(cfg *Config, engine Engine, logger *slog.Logger) Converter {
	return &converter{
		engine:  engine,
		slots:   semaphore.NewWeighted(int64(cfg.MaxEngines)),
		timeout: cfg.TimeoutDuration(),
		logger:  logger.With("system", "convert"),
	}
}

// Convert acquires an engine slot, launches a session, prints the markup and
// validates the result. The session is closed and the slot released on every path.
func (c *converter) Convert(ctx context.Context, markup []byte) (*Artifact, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.slots.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("%w: waiting for slot: %w", ErrEngineLaunch, err)
	}
	defer c.slots.Release(1)

	session, err := c.engine.Launch(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEngineLaunch, err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			c.logger.Warn("engine session close failed", "error", err)
		}
	}()

	data, err := session.PrintPDF(ctx, markup, A4)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConversion, err)
	}

	pages, err := Validate(data)
	if err != nil {
		return nil, err
	}

	return &Artifact{Data: data, Pages: pages}, nil
}

// Validate checks that data is a readable PDF and returns its page count.
func Validate(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("%w: empty output", ErrInvalidArtifact)
	}
	if ct := http.DetectContentType(data); ct != "application/pdf" {
		return 0, fmt.Errorf("%w: detected %s", ErrInvalidArtifact, ct)
	}

	pages, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidArtifact, err)
	}
	if pages < 1 {
		return 0, fmt.Errorf("%w: no pages", ErrInvalidArtifact)
	}

	return pages, nil
}
