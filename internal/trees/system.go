package trees

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/palmwatch/pkg/pagination"
)

// System defines the public contract for tree domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Tree], error)

	Find(ctx context.Context, id uuid.UUID) (*Tree, error)
	Parts(ctx context.Context, id uuid.UUID) ([]Part, error)
	Create(ctx context.Context, cmd CreateCommand) (*Tree, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// RecordPart stores a manual observation and re-assesses the tree from
	// all of its observations in one transaction.
	RecordPart(ctx context.Context, id uuid.UUID, cmd PartCommand) (*PartUpdate, error)
}
