package trees

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/palmwatch/internal/health"
	"github.com/JaimeStill/palmwatch/pkg/pagination"
	"github.com/JaimeStill/palmwatch/pkg/query"
	"github.com/JaimeStill/palmwatch/pkg/repository"
)

const partColumns = "id, tree_id, part_name, status, confidence, extra, recorded_at"

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a tree repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "trees"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Tree], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "FinalStatus")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count trees: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	trees, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanTree)
	if err != nil {
		return nil, fmt.Errorf("query trees: %w", err)
	}

	result := pagination.NewPageResult(trees, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Tree, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	t, err := repository.QueryOne(ctx, r.db, q, args, scanTree)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &t, nil
}

func (r *repo) Parts(ctx context.Context, id uuid.UUID) ([]Part, error) {
	if _, err := r.Find(ctx, id); err != nil {
		return nil, err
	}

	parts, err := listParts(ctx, r.db, id)
	if err != nil {
		return nil, fmt.Errorf("query tree parts: %w", err)
	}
	return parts, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Tree, error) {
	if err := cmd.validate(); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO trees(survey_id, tree_number, cx, cy)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + returning

	t, err := repository.QueryOne(
		ctx, r.db, q,
		[]any{cmd.SurveyID, cmd.TreeNumber, cmd.Cx, cmd.Cy},
		scanTree,
	)
	if err != nil {
		return nil, repository.Mapping{
			NotFound:  ErrNotFound,
			Duplicate: ErrDuplicate,
			Reference: ErrSurveyNotFound,
		}.Map(err)
	}

	r.logger.Info("tree created", "id", t.ID, "survey_id", t.SurveyID, "tree_number", t.TreeNumber)
	return &t, nil
}

// Delete removes the tree and refreshes the survey's tree count. Tree
// numbers of the remaining trees are left unchanged.
func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		var surveyID uuid.UUID
		if err := tx.QueryRowContext(
			ctx,
			"DELETE FROM trees WHERE id = $1 RETURNING survey_id",
			id,
		).Scan(&surveyID); err != nil {
			return struct{}{}, err
		}

		_, err := tx.ExecContext(
			ctx,
			`UPDATE surveys
			SET total_trees = (SELECT COUNT(*) FROM trees WHERE survey_id = $1), updated_at = now()
			WHERE id = $1`,
			surveyID,
		)
		return struct{}{}, err
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("tree deleted", "id", id)
	return nil
}

func (r *repo) RecordPart(ctx context.Context, id uuid.UUID, cmd PartCommand) (*PartUpdate, error) {
	if err := cmd.validate(); err != nil {
		return nil, err
	}

	extra := "{}"
	if len(cmd.Extra) > 0 {
		extra = string(cmd.Extra)
	}

	update, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (PartUpdate, error) {
		var owner uuid.UUID
		if err := tx.QueryRowContext(
			ctx,
			`SELECT s.farmer_id FROM trees t
			JOIN surveys s ON s.id = t.survey_id
			WHERE t.id = $1
			FOR UPDATE OF t`,
			id,
		).Scan(&owner); err != nil {
			return PartUpdate{}, err
		}
		if cmd.FarmerID != nil && *cmd.FarmerID != owner {
			return PartUpdate{}, ErrForbidden
		}

		part, err := repository.QueryOne(
			ctx, tx,
			`INSERT INTO tree_parts(tree_id, part_name, status, confidence, extra)
			VALUES ($1, $2, $3, $4, $5::jsonb)
			RETURNING `+partColumns,
			[]any{id, cmd.Part, cmd.Status, cmd.Confidence, extra},
			scanPart,
		)
		if err != nil {
			return PartUpdate{}, err
		}

		parts, err := listParts(ctx, tx, id)
		if err != nil {
			return PartUpdate{}, err
		}

		assessment := health.AssessTree(Observations(parts))
		if err := WriteOutcome(ctx, tx, id, OutcomeFromAssessment(assessment)); err != nil {
			return PartUpdate{}, err
		}

		tree, err := repository.QueryOne(
			ctx, tx,
			"SELECT "+returning+" FROM trees WHERE id = $1",
			[]any{id},
			scanTree,
		)
		if err != nil {
			return PartUpdate{}, err
		}

		return PartUpdate{Tree: tree, Part: part, Assessment: assessment}, nil
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info(
		"tree part recorded",
		"id", id,
		"part", cmd.Part,
		"status", cmd.Status,
		"overall_status", update.Assessment.Status,
	)
	return &update, nil
}

func listParts(ctx context.Context, q repository.Querier, id uuid.UUID) ([]Part, error) {
	return repository.QueryMany(
		ctx, q,
		"SELECT "+partColumns+" FROM tree_parts WHERE tree_id = $1 ORDER BY recorded_at, id",
		[]any{id},
		scanPart,
	)
}
