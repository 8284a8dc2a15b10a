package trees

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/palmwatch/internal/health"
	"github.com/JaimeStill/palmwatch/pkg/repository"
)

// Outcome is the persisted verdict for a tree.
type Outcome struct {
	Status           string
	HealthPercentage *float64
	CriticalAlert    bool
}

// OutcomeFromDashboard derives a tree outcome from an aggregated dashboard:
// status is the tree health, the percentage is the weighted score, and the
// alert is raised when the primary issue is critical. An unknown tree
// carries no percentage.
func OutcomeFromDashboard(d health.Dashboard) Outcome {
	o := Outcome{Status: d.Tree.Health}
	if d.Tree.Health != health.Unknown {
		pct := d.Tree.WeightedScore
		o.HealthPercentage = &pct
	}
	if d.Tree.PrimaryIssue != nil && d.Tree.PrimaryIssue.Severity == health.SeverityCritical {
		o.CriticalAlert = true
	}
	return o
}

// OutcomeFromAssessment derives a tree outcome from a manual assessment.
func OutcomeFromAssessment(a health.Assessment) Outcome {
	o := Outcome{
		Status:        a.Status,
		CriticalAlert: a.CriticalAlert,
	}
	if a.PartsAssessed > 0 {
		pct := a.HealthPercentage
		o.HealthPercentage = &pct
	}
	return o
}

// WriteOutcome stores an outcome on a tree using the caller's executor so it
// can join an enclosing transaction. It returns ErrNotFound when the tree
// does not exist.
func WriteOutcome(ctx context.Context, e repository.Executor, id uuid.UUID, o Outcome) error {
	err := repository.ExecExpectOne(
		ctx, e,
		`UPDATE trees
		SET final_status = $2, final_health_percentage = $3, critical_alert = $4, updated_at = now()
		WHERE id = $1`,
		id, o.Status, o.HealthPercentage, o.CriticalAlert,
	)
	return repository.MapError(err, ErrNotFound, ErrDuplicate)
}
