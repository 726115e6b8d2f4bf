package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ArtifactKind identifies one of the three generated outputs per item.
type ArtifactKind string

// Artifact kinds.
const (
	// KindBlog is the long-form Markdown article.
	KindBlog ArtifactKind = "blog"

	// KindXPost is the short post bounded to XPostCharLimit visible
	// characters, hashtags included.
	KindXPost ArtifactKind = "x_post"

	// KindLinkedIn is the professional-tone post, no hard ceiling.
	KindLinkedIn ArtifactKind = "linkedin"
)

// XPostCharLimit is the hard visible-character ceiling for x_post artifacts.
const XPostCharLimit = 280

// Kinds returns all artifact kinds in generation order.
func Kinds() []ArtifactKind {
	return []ArtifactKind{KindBlog, KindXPost, KindLinkedIn}
}

// Valid reports whether the kind is one of the three known kinds.
func (k ArtifactKind) Valid() bool {
	switch k {
	case KindBlog, KindXPost, KindLinkedIn:
		return true
	}
	return false
}

// Ext returns the file extension used for review artifacts of this kind.
func (k ArtifactKind) Ext() string {
	if k == KindBlog {
		return ".md"
	}
	return ".txt"
}

// MIMEType returns the upload MIME type for this kind.
func (k ArtifactKind) MIMEType() string {
	if k == KindBlog {
		return "text/markdown"
	}
	return "text/plain"
}

// ArtifactName builds the deterministic review file name for an artifact:
// {sourceBaseName}_{kind}{ext}. Humans and ParseArtifactName rely on it.
func ArtifactName(sourceBase string, kind ArtifactKind) string {
	return fmt.Sprintf("%s_%s%s", sourceBase, kind, kind.Ext())
}

// ParseArtifactName recovers the source base name and kind from a review
// artifact file name. Returns ErrInvalidInput when the name does not
// follow the ArtifactName scheme.
func ParseArtifactName(name string) (sourceBase string, kind ArtifactKind, err error) {
	base := TrimExt(name)
	for _, k := range Kinds() {
		suffix := "_" + string(k)
		if strings.HasSuffix(base, suffix) {
			return strings.TrimSuffix(base, suffix), k, nil
		}
	}
	return "", "", fmt.Errorf("%w: %q does not match artifact naming scheme", ErrInvalidInput, name)
}

// GenerationResult holds the three artifacts produced from one item.
// Ownership passes to the content store once all three are uploaded;
// no artifact is final until the full set succeeds.
type GenerationResult struct {
	Blog     string
	XPost    string
	LinkedIn string
}

// Artifact returns the text for a kind.
func (r GenerationResult) Artifact(kind ArtifactKind) string {
	switch kind {
	case KindBlog:
		return r.Blog
	case KindXPost:
		return r.XPost
	default:
		return r.LinkedIn
	}
}

// SetArtifact stores the text for a kind.
func (r *GenerationResult) SetArtifact(kind ArtifactKind, text string) {
	switch kind {
	case KindBlog:
		r.Blog = text
	case KindXPost:
		r.XPost = text
	case KindLinkedIn:
		r.LinkedIn = text
	}
}

// ApprovedArtifact is an artifact a human moved into the approval
// location, awaiting publication.
type ApprovedArtifact struct {
	// Item references the stored object in the approval location.
	Item Item

	// SourceBase is the originating item's base name, recovered from
	// the artifact naming scheme; empty when the name does not parse.
	SourceBase string

	// Kind is the artifact kind, recovered from the name; empty when
	// the name does not parse.
	Kind ArtifactKind

	// Content is the downloaded text.
	Content string
}

// TruncateVisible trims text to at most limit visible characters (runes),
// cutting on a word boundary where one exists in the final fifth of the
// budget and appending an ellipsis when anything was removed.
func TruncateVisible(text string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}

	runes := []rune(text)
	// Reserve one rune for the ellipsis.
	cut := limit - 1
	boundary := -1
	for i := cut; i > cut-limit/5 && i > 0; i-- {
		if runes[i] == ' ' || runes[i] == '\n' {
			boundary = i
			break
		}
	}
	if boundary > 0 {
		cut = boundary
	}
	return strings.TrimRight(string(runes[:cut]), " \n") + "…"
}
