package surveys

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/palmwatch/pkg/pagination"
	"github.com/JaimeStill/palmwatch/pkg/storage"
)

// System defines the public contract for survey domain operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Survey], error)

	Find(ctx context.Context, id uuid.UUID) (*Survey, error)
	Create(ctx context.Context, cmd CreateCommand) (*Survey, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Survey, error)

	// Delete removes a survey with its trees. When farmerID is non-nil the
	// survey must belong to that farmer.
	Delete(ctx context.Context, id uuid.UUID, farmerID *uuid.UUID) error

	UploadTopView(ctx context.Context, id uuid.UUID, cmd TopViewCommand) (*Survey, error)
	TopView(ctx context.Context, id uuid.UUID) (*storage.BlobResult, error)

	Report(ctx context.Context, id uuid.UUID) (*Report, error)
}
