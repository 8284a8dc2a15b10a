package farmers

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/palmwatch/pkg/pagination"
)

// System defines the public contract for farmer domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Farmer], error)

	Find(ctx context.Context, id uuid.UUID) (*Farmer, error)
	Create(ctx context.Context, cmd CreateCommand) (*Farmer, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
