package domain

import (
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ContentMetadata describes the provenance of a source item. It is
// rendered as YAML frontmatter on the blog artifact so downstream
// knowledge bases can index the output.
type ContentMetadata struct {
	Source       string   `yaml:"source"`
	Type         string   `yaml:"type"`
	Date         string   `yaml:"date"`
	Topics       []string `yaml:"topics"`
	OriginalFile string   `yaml:"original_file"`
}

// filenamePatterns maps well-known file name prefixes to metadata.
var filenamePatterns = []struct {
	prefix   string
	source   string
	noteType string
}{
	{"meeting_", "meeting", "minutes"},
	{"interview_", "interview", "transcript"},
	{"memo_", "memo", "note"},
	{"webinar_", "webinar", "summary"},
}

// InferMetadata derives metadata from an item's file name. Unrecognised
// prefixes get source "unknown" and type "general". The date is now,
// formatted as an ISO calendar date.
func InferMetadata(filename string, now time.Time) ContentMetadata {
	meta := ContentMetadata{
		Source:       "unknown",
		Type:         "general",
		Date:         now.Format("2006-01-02"),
		Topics:       []string{},
		OriginalFile: filename,
	}
	lower := strings.ToLower(filename)
	for _, p := range filenamePatterns {
		if strings.HasPrefix(lower, p.prefix) {
			meta.Source = p.source
			meta.Type = p.noteType
			break
		}
	}
	return meta
}

// Frontmatter renders the metadata as a YAML frontmatter document,
// including the trailing delimiter and a blank separator line.
func (m ContentMetadata) Frontmatter() (string, error) {
	body, err := yaml.Marshal(m)
	if err != nil {
		return "", err
	}
	return "---\n" + string(body) + "---\n\n", nil
}

// WithFrontmatter prepends the metadata frontmatter to content. When
// marshalling fails the content is returned unchanged; frontmatter is
// an enrichment, not a requirement.
func (m ContentMetadata) WithFrontmatter(content string) string {
	fm, err := m.Frontmatter()
	if err != nil {
		return content
	}
	return fm + content
}

// StripFrontmatter removes a leading YAML frontmatter section from
// Markdown text, returning the body. Text without frontmatter is
// returned unchanged.
func StripFrontmatter(text string) string {
	if !strings.HasPrefix(text, "---\n") && text != "---" {
		return text
	}
	rest := strings.TrimPrefix(text, "---\n")
	idx := strings.Index(rest, "\n---")
	if idx < 0 {
		return text
	}
	body := rest[idx+len("\n---"):]
	body = strings.TrimPrefix(body, "\n")
	return strings.TrimPrefix(body, "\n")
}
