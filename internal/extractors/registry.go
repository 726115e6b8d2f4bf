package extractors

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/echopress/internal/core/domain"
	"github.com/custodia-labs/echopress/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry dispatches extraction by MIME type. It owns the shared
// minimum-length check so individual extractors stay format-only.
type Registry struct {
	byMIME map[string]driven.Extractor
}

// NewRegistry creates a registry over the given extractors. Later
// extractors win when two claim the same MIME type.
func NewRegistry(extractors ...driven.Extractor) *Registry {
	byMIME := make(map[string]driven.Extractor)
	for _, e := range extractors {
		for _, mime := range e.SupportedMIMETypes() {
			byMIME[mime] = e
		}
	}
	return &Registry{byMIME: byMIME}
}

// Extract selects an extractor for mimeType and runs it.
func (r *Registry) Extract(ctx context.Context, data []byte, mimeType string) (string, error) {
	extractor, ok := r.byMIME[normaliseMIME(mimeType)]
	if !ok {
		return "", fmt.Errorf("no extractor for %q: %w", mimeType, domain.ErrUnsupportedType)
	}

	text, err := extractor.Extract(ctx, data)
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if len(text) < driven.MinExtractedLength {
		return "", fmt.Errorf("extracted %d chars from %q payload: %w",
			len(text), mimeType, domain.ErrLowQualityExtraction)
	}
	return text, nil
}

// normaliseMIME strips parameters such as "; charset=utf-8".
func normaliseMIME(mimeType string) string {
	if idx := strings.Index(mimeType, ";"); idx >= 0 {
		mimeType = mimeType[:idx]
	}
	return strings.TrimSpace(strings.ToLower(mimeType))
}
