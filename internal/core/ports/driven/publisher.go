package driven

import (
	"context"

	"github.com/custodia-labs/echopress/internal/core/domain"
)

// Publisher creates pages in the destination content system from the
// flat document-block tree.
type Publisher interface {
	// CreatePage creates a new page and returns its ID. Properties are
	// destination metadata (tags, source file) attached to the page.
	CreatePage(ctx context.Context, title string, blocks []domain.Block, properties map[string]string) (string, error)
}
