package analyses

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/palmwatch/internal/health"
	"github.com/JaimeStill/palmwatch/internal/recommendations"
	"github.com/JaimeStill/palmwatch/pkg/pagination"
)

// System defines the public contract for analysis operations.
type System interface {
	Handler(maxBodySize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Analysis], error)

	Find(ctx context.Context, id uuid.UUID) (*Analysis, error)
	Dashboard(ctx context.Context, id uuid.UUID) (*health.Dashboard, error)
	Recommendations(ctx context.Context, id uuid.UUID) (*recommendations.DashboardAdvice, error)

	// Preview aggregates a batch without storing anything.
	Preview(cmd CreateCommand) (*health.Dashboard, error)

	// Create aggregates a batch, archives the frames and dashboard, stores the
	// analysis, and writes the tree outcome when a tree is named.
	Create(ctx context.Context, cmd CreateCommand) (*Result, error)

	// Batch runs Create for each item with bounded concurrency. Item failures
	// are reported inline; only an invalid batch returns an error.
	Batch(ctx context.Context, cmd BatchCommand) ([]BatchItem, error)

	Delete(ctx context.Context, id uuid.UUID) error
}
