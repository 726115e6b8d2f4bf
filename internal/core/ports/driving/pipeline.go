package driving

import (
	"context"

	"github.com/custodia-labs/echopress/internal/core/domain"
)

// PipelineOrchestrator drives the generation stage: scan the source
// location, claim unclaimed items, generate the three artifacts, and
// upload them to the review location.
type PipelineOrchestrator interface {
	// RunOnce performs one finite scan-and-drain pass. Per-item failures
	// are isolated and reported; the only error returned is a fatal
	// misconfiguration detected before the scan.
	//
	// Items are visited oldest-created-first. Overlapping invocations
	// are safe: each item is claimed atomically before any work, so at
	// most one invocation processes it (at-most-once).
	RunOnce(ctx context.Context) (*domain.ProcessingReport, error)
}
