// Package infrastructure provides core service initialization for application startup.
// It assembles the dependencies domain systems require: logging, the registry
// database, artifact storage, the document renderer and the PDF converter.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/JaimeStill/roster/internal/config"
	"github.com/JaimeStill/roster/pkg/convert"
	"github.com/JaimeStill/roster/pkg/database"
	"github.com/JaimeStill/roster/pkg/lifecycle"
	"github.com/JaimeStill/roster/pkg/render"
	"github.com/JaimeStill/roster/pkg/storage"
)

// Infrastructure holds the core systems required by all domain modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Metrics   *prometheus.Registry
	Database  database.System
	Storage   storage.System
	Renderer  render.Renderer
	Converter convert.Converter
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
// No network call is made until Start.
func New(cfg *config.Config) (*Infrastructure, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}

	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	renderer, err := render.New(&cfg.Render, logger)
	if err != nil {
		return nil, fmt.Errorf("renderer init failed: %w", err)
	}

	engine := convert.NewChromium(&cfg.Convert, logger)

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Metrics:   registry,
		Database:  db,
		Storage:   store,
		Renderer:  renderer,
		Converter: convert.New(&cfg.Convert, engine, logger),
	}, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
// Database and storage hooks are registered for startup and shutdown coordination.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	return nil
}
