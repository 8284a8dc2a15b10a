package surveys

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/palmwatch/pkg/pagination"
	"github.com/JaimeStill/palmwatch/pkg/query"
	"github.com/JaimeStill/palmwatch/pkg/repository"
	"github.com/JaimeStill/palmwatch/pkg/storage"
)

type repo struct {
	db         *sql.DB
	storage    storage.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a survey repository implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		storage:    store,
		logger:     logger.With("system", "surveys"),
		pagination: pagination,
	}
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxUploadSize)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Survey], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "LandLocation")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count surveys: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	surveys, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanSurvey)
	if err != nil {
		return nil, fmt.Errorf("query surveys: %w", err)
	}

	result := pagination.NewPageResult(surveys, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Survey, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	s, err := repository.QueryOne(ctx, r.db, q, args, scanSurvey)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &s, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Survey, error) {
	if cmd.FarmerID == uuid.Nil || !validTotal(cmd.TotalTrees) {
		return nil, ErrInvalidSurvey
	}

	extra, err := extraOrEmpty(cmd.ExtraData)
	if err != nil {
		return nil, err
	}

	q := `
		INSERT INTO surveys(farmer_id, land_location, total_trees, extra_data)
		VALUES ($1, $2, $3, $4::jsonb)
		RETURNING ` + returning

	s, err := repository.QueryOne(
		ctx, r.db, q,
		[]any{cmd.FarmerID, cmd.LandLocation, cmd.TotalTrees, extra},
		scanSurvey,
	)
	if err != nil {
		return nil, repository.Mapping{
			NotFound:  ErrNotFound,
			Duplicate: ErrDuplicate,
			Reference: ErrFarmerNotFound,
		}.Map(err)
	}

	r.logger.Info("survey created", "id", s.ID, "farmer_id", s.FarmerID)
	return &s, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Survey, error) {
	if !validTotal(cmd.TotalTrees) {
		return nil, ErrInvalidSurvey
	}

	var extra *string
	if len(cmd.ExtraData) > 0 {
		e, err := extraOrEmpty(cmd.ExtraData)
		if err != nil {
			return nil, err
		}
		extra = &e
	}

	q := `
		UPDATE surveys
		SET land_location = COALESCE($2, land_location),
			total_trees = COALESCE($3, total_trees),
			extra_data = COALESCE($4::jsonb, extra_data),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + returning

	s, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Survey, error) {
		return repository.QueryOne(
			ctx, tx, q,
			[]any{id, cmd.LandLocation, cmd.TotalTrees, extra},
			scanSurvey,
		)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("survey updated", "id", s.ID)
	return &s, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID, farmerID *uuid.UUID) error {
	s, err := r.Find(ctx, id)
	if err != nil {
		return err
	}
	if farmerID != nil && *farmerID != s.FarmerID {
		return ErrForbidden
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM surveys WHERE id = $1",
			id,
		)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if s.TopviewKey != nil {
		if delErr := r.storage.Delete(ctx, *s.TopviewKey); delErr != nil {
			r.logger.Warn("blob delete failed after DB delete", "key", *s.TopviewKey, "error", delErr)
		}
	}

	r.logger.Info("survey deleted", "id", id)
	return nil
}

func (r *repo) UploadTopView(ctx context.Context, id uuid.UUID, cmd TopViewCommand) (*Survey, error) {
	if len(cmd.Data) == 0 {
		return nil, ErrInvalidFile
	}

	prev, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	key := topViewKey(id, cmd.Filename)
	if err := r.storage.Upload(ctx, key, bytes.NewReader(cmd.Data), cmd.ContentType); err != nil {
		return nil, fmt.Errorf("upload top-view blob: %w", err)
	}

	q := `
		UPDATE surveys
		SET topview_key = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + returning

	s, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Survey, error) {
		return repository.QueryOne(ctx, tx, q, []any{id, key}, scanSurvey)
	})
	if err != nil {
		if delErr := r.storage.Delete(ctx, key); delErr != nil {
			r.logger.Warn("compensating blob delete failed", "key", key, "error", delErr)
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if prev.TopviewKey != nil && *prev.TopviewKey != key {
		if delErr := r.storage.Delete(ctx, *prev.TopviewKey); delErr != nil {
			r.logger.Warn("stale top-view delete failed", "key", *prev.TopviewKey, "error", delErr)
		}
	}

	r.logger.Info("survey top-view stored", "id", id, "key", key, "size", len(cmd.Data))
	return &s, nil
}

func (r *repo) TopView(ctx context.Context, id uuid.UUID) (*storage.BlobResult, error) {
	s, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.TopviewKey == nil {
		return nil, ErrNoTopView
	}
	return r.storage.Download(ctx, *s.TopviewKey)
}

func (r *repo) Report(ctx context.Context, id uuid.UUID) (*Report, error) {
	s, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	trees, err := repository.QueryMany(
		ctx, r.db,
		"SELECT final_status, final_health_percentage, critical_alert FROM trees WHERE survey_id = $1",
		[]any{id},
		scanTreeStatus,
	)
	if err != nil {
		return nil, fmt.Errorf("query survey trees: %w", err)
	}

	report := BuildReport(*s, trees)
	return &report, nil
}

func topViewKey(id uuid.UUID, filename string) string {
	ext := strings.ToLower(path.Ext(path.Base(filename)))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp", ".tif", ".tiff":
	default:
		ext = ".jpg"
	}
	return fmt.Sprintf("surveys/%s/topview%s", id, ext)
}
