package domain

import (
	"strings"
	"time"
)

// ClaimMarker is appended to an item's base name when it is claimed.
// A claimed item is excluded from future pipeline scans. The marker is
// the persisted side of the at-most-once guarantee: a crash after
// claiming leaves the item claimed, never reprocessed.
const ClaimMarker = "_processed"

// Item is one unit of raw source material awaiting content generation.
// The byte payload is fetched lazily through ContentStore.Download.
type Item struct {
	// ID is the store-assigned object identifier, stable for the
	// lifetime of the item at its location.
	ID string

	// Name is the display name, including extension.
	Name string

	// MIMEType tags the payload format (text/plain, application/pdf, ...).
	MIMEType string

	// CreatedAt orders items oldest-first within a scan.
	CreatedAt time.Time
}

// Claimed reports whether the item already bears the claim marker.
func (i Item) Claimed() bool {
	return IsClaimedName(i.Name)
}

// BaseName returns the item name without its extension.
func (i Item) BaseName() string {
	return TrimExt(i.Name)
}

// IsClaimedName reports whether a stored object name carries the claim marker.
func IsClaimedName(name string) bool {
	return strings.Contains(TrimExt(name), ClaimMarker)
}

// ClaimedName returns the name an item receives when claimed: the marker
// is inserted before the extension so the file type survives the rename.
func ClaimedName(name string) string {
	ext := extOf(name)
	return strings.TrimSuffix(name, ext) + ClaimMarker + ext
}

// TrimExt strips the final extension from a file name.
func TrimExt(name string) string {
	return strings.TrimSuffix(name, extOf(name))
}

func extOf(name string) string {
	if idx := strings.LastIndex(name, "."); idx > 0 {
		return name[idx:]
	}
	return ""
}

// SupportedSourceMIMETypes are the payload formats the pipeline accepts
// from the source location. Anything else is left untouched by scans.
var SupportedSourceMIMETypes = []string{
	"text/plain",
	"text/markdown",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/pdf",
}

// IsSupportedSourceMIMEType reports whether the pipeline can extract
// text from the given MIME type.
func IsSupportedSourceMIMEType(mimeType string) bool {
	for _, m := range SupportedSourceMIMETypes {
		if m == mimeType {
			return true
		}
	}
	return false
}
