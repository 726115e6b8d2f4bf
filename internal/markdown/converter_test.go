package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/echopress/internal/core/domain"
)

func TestConvert_HeadingAndParagraph(t *testing.T) {
	blocks := Convert("# Title\n\nBody *text*.")

	require.Len(t, blocks, 2)

	assert.Equal(t, domain.BlockHeading, blocks[0].Type)
	assert.Equal(t, 1, blocks[0].Level)
	require.Len(t, blocks[0].Runs, 1)
	assert.Equal(t, "Title", blocks[0].Runs[0].Text)

	assert.Equal(t, domain.BlockParagraph, blocks[1].Type)
	require.Len(t, blocks[1].Runs, 3)
	assert.Equal(t, "Body ", blocks[1].Runs[0].Text)
	assert.Equal(t, "text", blocks[1].Runs[1].Text)
	assert.True(t, blocks[1].Runs[1].Italic)
	assert.Equal(t, ".", blocks[1].Runs[2].Text)
}

func TestConvert_HeadingLevels(t *testing.T) {
	blocks := Convert("# One\n## Two\n### Three")
	require.Len(t, blocks, 3)
	for i, want := range []int{1, 2, 3} {
		assert.Equal(t, domain.BlockHeading, blocks[i].Type)
		assert.Equal(t, want, blocks[i].Level)
	}
}

func TestConvert_FourHashesIsNotHeading(t *testing.T) {
	blocks := Convert("#### Too deep")
	require.Len(t, blocks, 1)
	assert.Equal(t, domain.BlockParagraph, blocks[0].Type)
	assert.Equal(t, "#### Too deep", blocks[0].PlainText())
}

func TestConvert_BulletedList(t *testing.T) {
	blocks := Convert("- a\n- b")

	require.Len(t, blocks, 2)
	assert.Equal(t, domain.BlockBulletedItem, blocks[0].Type)
	assert.Equal(t, "a", blocks[0].PlainText())
	assert.Equal(t, domain.BlockBulletedItem, blocks[1].Type)
	assert.Equal(t, "b", blocks[1].PlainText())
}

func TestConvert_BulletMarkers(t *testing.T) {
	blocks := Convert("- dash\n* star\n+ plus")
	require.Len(t, blocks, 3)
	for _, b := range blocks {
		assert.Equal(t, domain.BlockBulletedItem, b.Type)
	}
}

func TestConvert_NumberedList(t *testing.T) {
	blocks := Convert("1. first\n2. second\n10. tenth")

	require.Len(t, blocks, 3)
	for _, b := range blocks {
		assert.Equal(t, domain.BlockNumberedItem, b.Type)
	}
	assert.Equal(t, "first", blocks[0].PlainText())
	assert.Equal(t, "tenth", blocks[2].PlainText())
}

func TestConvert_CodeFence(t *testing.T) {
	blocks := Convert("```py\nx=1\n```")

	require.Len(t, blocks, 1)
	assert.Equal(t, domain.BlockCode, blocks[0].Type)
	assert.Equal(t, "py", blocks[0].Language)
	assert.Equal(t, "x=1", blocks[0].Code)
	assert.Empty(t, blocks[0].Runs)
}

func TestConvert_CodeFenceSuppressesInlineParsing(t *testing.T) {
	blocks := Convert("```\n**not bold** `not code` [no](link)\n```")

	require.Len(t, blocks, 1)
	assert.Equal(t, "**not bold** `not code` [no](link)", blocks[0].Code)
}

func TestConvert_UnterminatedFenceRunsToEOF(t *testing.T) {
	blocks := Convert("```go\nfunc main() {}\nstill code")

	require.Len(t, blocks, 1)
	assert.Equal(t, domain.BlockCode, blocks[0].Type)
	assert.Equal(t, "func main() {}\nstill code", blocks[0].Code)
}

func TestConvert_Quote(t *testing.T) {
	blocks := Convert("> wisdom here")
	require.Len(t, blocks, 1)
	assert.Equal(t, domain.BlockQuote, blocks[0].Type)
	assert.Equal(t, "wisdom here", blocks[0].PlainText())
}

func TestConvert_SoftWrappedParagraphJoins(t *testing.T) {
	blocks := Convert("first line\nsecond line\n\nnext para")

	require.Len(t, blocks, 2)
	assert.Equal(t, "first line second line", blocks[0].PlainText())
	assert.Equal(t, "next para", blocks[1].PlainText())
}

func TestConvert_SoftWrappedListItemJoins(t *testing.T) {
	blocks := Convert("- item text\n  wraps here\n- second")

	require.Len(t, blocks, 2)
	assert.Equal(t, domain.BlockBulletedItem, blocks[0].Type)
	assert.Equal(t, "item text wraps here", blocks[0].PlainText())
	assert.Equal(t, "second", blocks[1].PlainText())
}

func TestConvert_EmptyInput(t *testing.T) {
	assert.Empty(t, Convert(""))
	assert.Empty(t, Convert("\n\n\n"))
}

func TestConvert_OrderingPreserved(t *testing.T) {
	input := "# H\npara one\n\n- bullet\n\n> quote\n\n1. num\n\npara two"
	blocks := Convert(input)

	types := make([]domain.BlockType, len(blocks))
	for i, b := range blocks {
		types[i] = b.Type
	}
	assert.Equal(t, []domain.BlockType{
		domain.BlockHeading,
		domain.BlockParagraph,
		domain.BlockBulletedItem,
		domain.BlockQuote,
		domain.BlockNumberedItem,
		domain.BlockParagraph,
	}, types)
}

// Totality: no input may panic, and the visible text of the output is
// drawn from the input.
func TestConvert_Totality(t *testing.T) {
	inputs := []string{
		"",
		"**",
		"**unterminated bold",
		"`unterminated code",
		"[dangling](",
		"[dangling",
		"```",
		"* ",
		"> ",
		"1.",
		strings.Repeat("*", 50),
		"日本語のテキスト **太字** です",
	}

	for _, in := range inputs {
		assert.NotPanics(t, func() { Convert(in) }, "input %q", in)
	}
}

func TestConvert_UnterminatedBoldDegradesToLiteral(t *testing.T) {
	blocks := Convert("a **b")
	require.Len(t, blocks, 1)
	assert.Equal(t, "a **b", blocks[0].PlainText())
}
