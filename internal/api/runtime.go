package api

import (
	"github.com/JaimeStill/roster/internal/config"
	"github.com/JaimeStill/roster/internal/infrastructure"
	"github.com/JaimeStill/roster/internal/onboarding"
	"github.com/JaimeStill/roster/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination  pagination.Config
	MaxBodySize int64
	Pipeline    *onboarding.Metrics
}

// NewRuntime creates an API runtime with a module-scoped logger and
// registers the pipeline metrics with the infrastructure registry.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Metrics:   infra.Metrics,
			Database:  infra.Database,
			Storage:   infra.Storage,
			Renderer:  infra.Renderer,
			Converter: infra.Converter,
		},
		Pagination:  cfg.API.Pagination,
		MaxBodySize: cfg.API.MaxBodySizeBytes(),
		Pipeline:    onboarding.NewMetrics(infra.Metrics),
	}
}
