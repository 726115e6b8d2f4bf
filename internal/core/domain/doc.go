// Package domain contains the core business entities for echopress:
// source items and their lifecycle stages, generated artifacts, the
// structured document-block tree, and the errors shared across the
// pipeline and approval orchestrators.
//
// The domain layer has no dependencies on adapters or external services.
package domain
