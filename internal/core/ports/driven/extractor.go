package driven

import "context"

// MinExtractedLength is the plausibility floor for extracted text.
// Shorter results indicate a scanned document that needs OCR and fail
// with domain.ErrLowQualityExtraction.
const MinExtractedLength = 10

// Extractor converts one file format's bytes to plain text.
type Extractor interface {
	// SupportedMIMETypes returns the MIME types this extractor handles.
	SupportedMIMETypes() []string

	// Extract returns the text content of the payload.
	Extract(ctx context.Context, data []byte) (string, error)
}

// ExtractorRegistry dispatches extraction by MIME type and enforces the
// minimum-length contract shared by all extractors.
type ExtractorRegistry interface {
	// Extract selects an extractor for mimeType and runs it. Fails with
	// domain.ErrUnsupportedType when no extractor matches and
	// domain.ErrLowQualityExtraction when the result is below
	// MinExtractedLength.
	Extract(ctx context.Context, data []byte, mimeType string) (string, error)
}
