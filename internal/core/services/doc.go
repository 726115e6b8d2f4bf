// Package services contains the orchestrators that drive the content
// pipeline: generation from raw notes and publication of approved
// artifacts. Orchestrators depend only on the driven ports; adapters
// are injected by the composition root.
package services
