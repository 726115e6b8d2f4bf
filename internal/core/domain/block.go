package domain

import "strings"

// BlockType identifies a document block variant.
type BlockType string

// Block variants supported by the flat publishing format.
const (
	BlockHeading      BlockType = "heading"
	BlockParagraph    BlockType = "paragraph"
	BlockBulletedItem BlockType = "bulleted_item"
	BlockNumberedItem BlockType = "numbered_item"
	BlockCode         BlockType = "code"
	BlockQuote        BlockType = "quote"
)

// TextRun is a span of inline-formatted text within a block.
type TextRun struct {
	Text   string
	Bold   bool
	Italic bool
	Code   bool

	// Link is the target URL when the run is a hyperlink, else empty.
	Link string
}

// Block is one node of the flat structured-document tree produced from
// Markdown. The tree has depth exactly one: an ordered top-level
// sequence of blocks with no nesting, matching the publishing target.
type Block struct {
	Type BlockType

	// Level is the heading level (1-3); zero for non-heading blocks.
	Level int

	// Runs are the inline spans, in source order. Empty for code blocks.
	Runs []TextRun

	// Code is the verbatim block content for BlockCode; inline parsing
	// is never applied to it.
	Code string

	// Language is the fence info string for BlockCode, if any.
	Language string
}

// PlainText returns the visible text of the block with formatting dropped.
func (b Block) PlainText() string {
	if b.Type == BlockCode {
		return b.Code
	}
	var sb strings.Builder
	for _, r := range b.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}
