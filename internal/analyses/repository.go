package analyses

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/palmwatch/internal/health"
	"github.com/JaimeStill/palmwatch/internal/recommendations"
	"github.com/JaimeStill/palmwatch/internal/trees"
	"github.com/JaimeStill/palmwatch/pkg/pagination"
	"github.com/JaimeStill/palmwatch/pkg/query"
	"github.com/JaimeStill/palmwatch/pkg/repository"
	"github.com/JaimeStill/palmwatch/pkg/storage"
)

const jsonContentType = "application/json"

type repo struct {
	db         *sql.DB
	storage    storage.System
	aggregator *health.Aggregator
	catalog    *recommendations.Catalog
	logger     *slog.Logger
	pagination pagination.Config
	limits     Limits
}

// New creates an analysis repository implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	aggregator *health.Aggregator,
	catalog *recommendations.Catalog,
	logger *slog.Logger,
	pagination pagination.Config,
	limits Limits,
) System {
	return &repo{
		db:         db,
		storage:    store,
		aggregator: aggregator,
		catalog:    catalog,
		logger:     logger.With("system", "analyses"),
		pagination: pagination,
		limits:     limits,
	}
}

func (r *repo) Handler(maxBodySize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxBodySize)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Analysis], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Source", "PrimaryDisease")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count analyses: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanAnalysis)
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Analysis, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	a, err := repository.QueryOne(ctx, r.db, q, args, scanAnalysis)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &a, nil
}

func (r *repo) Dashboard(ctx context.Context, id uuid.UUID) (*health.Dashboard, error) {
	var raw []byte
	err := r.db.QueryRowContext(ctx, "SELECT dashboard FROM analyses WHERE id = $1", id).Scan(&raw)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	var d health.Dashboard
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("decode dashboard %s: %w", id, err)
	}
	return &d, nil
}

func (r *repo) Recommendations(ctx context.Context, id uuid.UUID) (*recommendations.DashboardAdvice, error) {
	d, err := r.Dashboard(ctx, id)
	if err != nil {
		return nil, err
	}
	advice := r.catalog.FromDashboard(*d)
	return &advice, nil
}

func (r *repo) Preview(cmd CreateCommand) (*health.Dashboard, error) {
	raws, err := cmd.rawFrames(r.limits.MaxFrames)
	if err != nil {
		return nil, err
	}
	d := r.aggregator.AggregateRaw(raws)
	return &d, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Result, error) {
	d, err := r.Preview(cmd)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	summary := summarize(id, cmd, *d)

	framesData, err := cmd.framesJSON()
	if err != nil {
		return nil, fmt.Errorf("encode frames: %w", err)
	}
	dashboardData, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encode dashboard: %w", err)
	}

	if err := r.archive(ctx, summary, framesData, dashboardData); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO analyses(
			id, tree_id, source, tree_health, weighted_score, primary_disease, critical_alert,
			total_frames, valid_frames, discarded_frames, frames_key, dashboard_key, dashboard
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13::jsonb)
		RETURNING ` + returning

	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Analysis, error) {
		a, err := repository.QueryOne(ctx, tx, q, []any{
			summary.ID, summary.TreeID, summary.Source, summary.TreeHealth,
			summary.WeightedScore, summary.PrimaryDisease, summary.CriticalAlert,
			summary.TotalFrames, summary.ValidFrames, summary.DiscardedFrames,
			summary.FramesKey, summary.DashboardKey, string(dashboardData),
		}, scanAnalysis)
		if err != nil {
			return Analysis{}, err
		}

		if cmd.TreeID != nil {
			if err := trees.WriteOutcome(ctx, tx, *cmd.TreeID, trees.OutcomeFromDashboard(*d)); err != nil {
				if errors.Is(err, trees.ErrNotFound) {
					return Analysis{}, ErrTreeNotFound
				}
				return Analysis{}, fmt.Errorf("write tree outcome: %w", err)
			}
		}
		return a, nil
	})
	if err != nil {
		r.discard(ctx, summary)
		return nil, repository.Mapping{
			NotFound:  ErrNotFound,
			Duplicate: ErrDuplicate,
			Reference: ErrTreeNotFound,
		}.Map(err)
	}

	r.logger.Info(
		"analysis created",
		"id", a.ID,
		"tree_id", a.TreeID,
		"tree_health", a.TreeHealth,
		"valid_frames", a.ValidFrames,
		"total_frames", a.TotalFrames,
	)

	return &Result{Analysis: a, Dashboard: *d}, nil
}

func (r *repo) Batch(ctx context.Context, cmd BatchCommand) ([]BatchItem, error) {
	if len(cmd.Items) == 0 {
		return nil, ErrInvalidBatch
	}
	if r.limits.MaxBatchSize > 0 && len(cmd.Items) > r.limits.MaxBatchSize {
		return nil, fmt.Errorf("%w: %d items, limit %d", ErrBatchTooLarge, len(cmd.Items), r.limits.MaxBatchSize)
	}

	results := make([]BatchItem, len(cmd.Items))

	var g errgroup.Group
	if r.limits.BatchWorkers > 0 {
		g.SetLimit(r.limits.BatchWorkers)
	}

	for i, item := range cmd.Items {
		g.Go(func() error {
			results[i].Index = i
			if err := ctx.Err(); err != nil {
				results[i].Error = err.Error()
				return nil
			}

			res, err := r.Create(ctx, item)
			if err != nil {
				results[i].Error = err.Error()
				return nil
			}
			results[i].Result = res
			return nil
		})
	}
	g.Wait()

	failed := 0
	for _, item := range results {
		if item.Error != "" {
			failed++
		}
	}
	r.logger.Info("analysis batch processed", "items", len(results), "failed", failed)

	return results, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Analysis, error) {
		return repository.QueryOne(
			ctx, tx,
			"DELETE FROM analyses WHERE id = $1 RETURNING "+returning,
			[]any{id},
			scanAnalysis,
		)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.discard(ctx, a)
	r.logger.Info("analysis deleted", "id", id)
	return nil
}

// archive uploads the raw batch and dashboard. A failed dashboard upload
// removes the already-stored batch.
func (r *repo) archive(ctx context.Context, a Analysis, frames, dashboard []byte) error {
	if err := r.storage.Upload(ctx, a.FramesKey, bytes.NewReader(frames), jsonContentType); err != nil {
		return fmt.Errorf("archive frames: %w", err)
	}

	if err := r.storage.Upload(ctx, a.DashboardKey, bytes.NewReader(dashboard), jsonContentType); err != nil {
		if delErr := r.storage.Delete(ctx, a.FramesKey); delErr != nil {
			r.logger.Warn("compensating blob delete failed", "key", a.FramesKey, "error", delErr)
		}
		return fmt.Errorf("archive dashboard: %w", err)
	}
	return nil
}

func (r *repo) discard(ctx context.Context, a Analysis) {
	for _, key := range []string{a.FramesKey, a.DashboardKey} {
		if err := r.storage.Delete(ctx, key); err != nil && !errors.Is(err, storage.ErrNotFound) {
			r.logger.Warn("blob delete failed", "key", key, "error", err)
		}
	}
}
