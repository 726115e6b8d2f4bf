package driven

import "context"

// ReviewEvent announces that a full artifact set is awaiting review.
type ReviewEvent struct {
	SourceFile    string
	ArtifactNames []string

	// ReviewURL locates the review folder, when the store has one.
	ReviewURL string
}

// PublishEvent announces a successful publication.
type PublishEvent struct {
	SourceFile string
	PageTitle  string
	PageID     string
}

// ErrorEvent announces a per-item failure.
type ErrorEvent struct {
	// Context names the processing step that failed.
	Context  string
	ItemName string
	Err      error
}

// Notifier delivers best-effort, fire-and-forget events to humans.
// Methods never return errors and never block the pipeline: delivery
// failure is logged by the implementation and otherwise ignored. The
// no-op implementation is the default when nothing is configured.
type Notifier interface {
	ReviewReady(ctx context.Context, ev ReviewEvent)
	Published(ctx context.Context, ev PublishEvent)
	Error(ctx context.Context, ev ErrorEvent)
}
