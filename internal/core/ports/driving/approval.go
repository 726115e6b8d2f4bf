package driving

import (
	"context"

	"github.com/custodia-labs/echopress/internal/core/domain"
)

// ApprovalOrchestrator drives the publish stage: scan the approval
// location, convert each approved artifact to blocks, publish it, and
// archive it.
type ApprovalOrchestrator interface {
	// RunOnce performs one finite pass over the approval location.
	//
	// Publication is at-least-once: the artifact is archived only after
	// the page is created, so a crash between the two leaves it visible
	// to the next pass, which publishes again. Duplicate pages are the
	// accepted tradeoff; duplicate archive moves are not possible.
	RunOnce(ctx context.Context) (*domain.ApprovalReport, error)
}
