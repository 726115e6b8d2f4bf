package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/echopress/internal/core/domain"
	"github.com/custodia-labs/echopress/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles PDF notes. Scanned PDFs with no text layer yield
// near-empty output; the registry's minimum-length check catches those.
type Extractor struct{}

// New creates a new PDF extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedMIMETypes returns the MIME types this extractor handles.
func (e *Extractor) SupportedMIMETypes() []string {
	return []string{"application/pdf"}
}

// Extract concatenates the plain text of every page.
//
// The underlying parser panics on structurally damaged files instead of
// returning an error. The recover turns a panic into ErrInvalidInput so
// a corrupt document stays an item-level failure for the caller.
func (e *Extractor) Extract(_ context.Context, data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("malformed pdf: %v: %w", r, domain.ErrInvalidInput)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", domain.ErrInvalidInput
	}

	var result strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Pages with broken content streams are skipped rather than
			// failing the whole document.
			continue
		}

		if result.Len() > 0 {
			result.WriteString("\n")
		}
		result.WriteString(text)
	}

	return strings.TrimSpace(result.String()), nil
}
