package driven

import (
	"context"

	"github.com/custodia-labs/echopress/internal/core/domain"
)

// ReportStore journals orchestrator passes for operators. The journal
// is history only: orchestrator correctness never reads from it, and
// a journal failure does not fail the pass.
type ReportStore interface {
	// SaveRun appends one pass record.
	SaveRun(ctx context.Context, rec domain.RunRecord) error

	// ListRuns returns the most recent records, newest first.
	ListRuns(ctx context.Context, limit int) ([]domain.RunRecord, error)

	// Close releases resources.
	Close() error
}
