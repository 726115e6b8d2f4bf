// Package markdown converts free-form Markdown into the flat
// document-block tree consumed by the publish adapters.
//
// The conversion is pure, deterministic and total: no input text causes
// an error. Malformed Markdown degrades to paragraph blocks or literal
// text rather than failing. It is also deliberately lossy relative to
// full Markdown (no nested lists, tables or images) because the
// publishing target only supports the flat block set in domain.Block.
package markdown

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/echopress/internal/core/domain"
)

var numberedRe = regexp.MustCompile(`^\d+\.\s+(.*)$`)

// rawBlock is a grouped run of logical lines before inline parsing.
type rawBlock struct {
	kind  domain.BlockType
	level int
	lang  string
	lines []string
}

// Convert transforms Markdown text into an ordered sequence of blocks.
// Blocks appear in source order; soft-wrapped lines belonging to the
// same paragraph or list item are re-joined first.
func Convert(text string) []domain.Block {
	blocks := make([]domain.Block, 0)
	for _, rb := range groupLines(text) {
		blocks = append(blocks, toBlock(rb))
	}
	return blocks
}

// groupLines performs the single left-to-right pass over lines,
// classifying each against the block-start patterns in precedence
// order: code fence, heading, quote, numbered item, bulleted item,
// paragraph. A blank line terminates the current block.
func groupLines(text string) []rawBlock {
	var out []rawBlock
	var current *rawBlock

	flush := func() {
		if current != nil {
			out = append(out, *current)
			current = nil
		}
	}

	inFence := false
	var fence rawBlock

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimRight(raw, "\r")

		if inFence {
			if strings.HasPrefix(strings.TrimSpace(line), "```") {
				out = append(out, fence)
				inFence = false
				continue
			}
			// Verbatim: no trimming, no inline parsing.
			fence.lines = append(fence.lines, line)
			continue
		}

		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			flush()

		case strings.HasPrefix(trimmed, "```"):
			flush()
			inFence = true
			fence = rawBlock{
				kind: domain.BlockCode,
				lang: strings.TrimSpace(strings.TrimPrefix(trimmed, "```")),
			}

		case headingLevel(trimmed) > 0:
			flush()
			level := headingLevel(trimmed)
			out = append(out, rawBlock{
				kind:  domain.BlockHeading,
				level: level,
				lines: []string{strings.TrimSpace(trimmed[level+1:])},
			})

		case strings.HasPrefix(trimmed, "> "), trimmed == ">":
			flush()
			out = append(out, rawBlock{
				kind:  domain.BlockQuote,
				lines: []string{strings.TrimSpace(strings.TrimPrefix(trimmed, ">"))},
			})

		case numberedRe.MatchString(trimmed):
			flush()
			current = &rawBlock{
				kind:  domain.BlockNumberedItem,
				lines: []string{numberedRe.FindStringSubmatch(trimmed)[1]},
			}

		case isBulletLine(trimmed):
			flush()
			current = &rawBlock{
				kind:  domain.BlockBulletedItem,
				lines: []string{trimmed[2:]},
			}

		default:
			// Plain text: continues the open paragraph or list item,
			// or starts a new paragraph.
			if current == nil {
				current = &rawBlock{kind: domain.BlockParagraph}
			}
			current.lines = append(current.lines, trimmed)
		}
	}

	// Unterminated fence degrades to a code block running to EOF.
	if inFence {
		out = append(out, fence)
	}
	flush()

	return out
}

// headingLevel returns 1-3 for a heading line, 0 otherwise. Four or
// more hashes do not match the publishing format and fall through to
// paragraph handling as literal text.
func headingLevel(line string) int {
	n := 0
	for n < len(line) && line[n] == '#' {
		n++
	}
	if n >= 1 && n <= 3 && n < len(line) && line[n] == ' ' {
		return n
	}
	return 0
}

func isBulletLine(line string) bool {
	return len(line) > 2 &&
		(line[0] == '-' || line[0] == '*' || line[0] == '+') &&
		line[1] == ' '
}

// toBlock converts a grouped raw block into a domain block, applying
// inline parsing to everything except code.
func toBlock(rb rawBlock) domain.Block {
	if rb.kind == domain.BlockCode {
		return domain.Block{
			Type:     domain.BlockCode,
			Language: rb.lang,
			Code:     strings.Join(rb.lines, "\n"),
		}
	}
	return domain.Block{
		Type:  rb.kind,
		Level: rb.level,
		Runs:  ParseInline(strings.Join(rb.lines, " ")),
	}
}
