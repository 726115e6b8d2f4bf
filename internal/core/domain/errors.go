package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown MIME type or extractor.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrMissingConfig indicates a required configuration value is absent.
	// This is a setup error and aborts the whole invocation, unlike
	// per-item failures which are isolated.
	ErrMissingConfig = errors.New("missing configuration")

	// ErrLowQualityExtraction indicates extracted text is implausibly
	// short, usually a scanned document that needs OCR before upload.
	ErrLowQualityExtraction = errors.New("low quality extraction")

	// ErrGenerationFailed indicates the generation backend returned an
	// error or timed out. No partial artifact set is uploaded.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrPublishRejected indicates the publish destination rejected the
	// content. The item stays in the approval location for retry.
	ErrPublishRejected = errors.New("publish rejected")

	// ErrStageTransition indicates an illegal lifecycle stage transition.
	ErrStageTransition = errors.New("invalid stage transition")
)
