package driven

import (
	"context"

	"github.com/custodia-labs/echopress/internal/core/domain"
)

// ContentStore is a hierarchical object store used as the pipeline's
// durable state machine. Items move between named locations (folders)
// to represent lifecycle stages; the claim marker encodes ownership.
//
// Implementations include Google Drive, Dropbox, a local filesystem
// store for development, and an in-memory store for tests.
type ContentStore interface {
	// List returns the objects directly under a location, oldest first.
	// Claimed objects are included; callers filter on the marker.
	List(ctx context.Context, locationID string) ([]domain.Item, error)

	// Download fetches an object's byte payload.
	Download(ctx context.Context, id string) ([]byte, error)

	// Upload creates a new object under a location and returns its ID.
	Upload(ctx context.Context, data []byte, name, mimeType, locationID string) (string, error)

	// Move relocates an object between locations in a single operation.
	// After it returns the object must not be visible in both.
	Move(ctx context.Context, id, fromLocationID, toLocationID string) error

	// Claim atomically marks an item as claimed by renaming it, but only
	// if its current name still matches currentName. won is true iff
	// this invocation got the claim; false means another invocation got
	// there first and the item must be skipped without error.
	//
	// newID is the object's ID after the rename. Stores with stable IDs
	// return the input ID; path-addressed stores return the renamed path.
	//
	// Stores whose backing API cannot express the check-and-set report
	// AtomicClaim false in Capabilities; the orchestrator flags the gap
	// rather than emulating atomicity with read-then-write.
	Claim(ctx context.Context, id, currentName string) (newID string, won bool, err error)

	// LocationURL returns a human-facing URL for a location, used in
	// review notifications. Empty when the store has no web surface.
	LocationURL(locationID string) string

	// Capabilities describes what the backing store supports.
	Capabilities() StoreCapabilities
}

// StoreCapabilities describes guarantees of a ContentStore backend.
type StoreCapabilities struct {
	// AtomicClaim is true when Claim is a genuine check-and-set against
	// the remote store. When false, overlapping invocations may both
	// win a claim; the orchestrator logs the weakness at startup.
	AtomicClaim bool

	// AtomicMove is true when Move cannot leave the object visible in
	// two locations.
	AtomicMove bool
}
