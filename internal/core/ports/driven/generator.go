package driven

import (
	"context"

	"github.com/custodia-labs/echopress/internal/core/domain"
)

// Generator produces one content artifact from source text.
//
// Implementations are thin adapters over a generative text backend;
// the backend itself (model choice, prompting) is a black box to the
// orchestrators.
type Generator interface {
	// Generate returns the artifact text for a kind. The x_post kind is
	// prompted to respect the character ceiling, but callers must still
	// enforce domain.XPostCharLimit on the result.
	Generate(ctx context.Context, text string, kind domain.ArtifactKind) (string, error)

	// ModelName returns the backing model identifier for reports.
	ModelName() string
}
