package api

import (
	"github.com/JaimeStill/palmwatch/internal/analyses"
	"github.com/JaimeStill/palmwatch/internal/config"
	"github.com/JaimeStill/palmwatch/internal/health"
	"github.com/JaimeStill/palmwatch/internal/infrastructure"
	"github.com/JaimeStill/palmwatch/internal/recommendations"
	"github.com/JaimeStill/palmwatch/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration and the
// shared aggregation components.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config
	Aggregator *health.Aggregator
	Catalog    *recommendations.Catalog
	Limits     analyses.Limits
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
			Auth:      infra.Auth,
		},
		Pagination: cfg.API.Pagination,
		Aggregator: health.New(cfg.Health, nil),
		Catalog:    recommendations.Default(),
		Limits: analyses.Limits{
			MaxFrames:    cfg.Analysis.MaxFrames,
			BatchWorkers: cfg.Analysis.BatchWorkers,
			MaxBatchSize: cfg.Analysis.MaxBatchSize,
		},
	}
}
