package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClaimedName_WithExtension(t *testing.T) {
	assert.Equal(t, "meeting_q3_processed.docx", ClaimedName("meeting_q3.docx"))
}

func TestClaimedName_WithoutExtension(t *testing.T) {
	assert.Equal(t, "notes_processed", ClaimedName("notes"))
}

func TestClaimedName_MultipleDots(t *testing.T) {
	assert.Equal(t, "memo.v2_processed.txt", ClaimedName("memo.v2.txt"))
}

func TestIsClaimedName(t *testing.T) {
	tests := []struct {
		name    string
		claimed bool
	}{
		{"meeting_q3.docx", false},
		{"meeting_q3_processed.docx", true},
		{"notes_processed", true},
		{"notes.txt", false},
		// Marker anywhere in the base name counts.
		{"summary_processed_v2.md", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.claimed, IsClaimedName(tt.name), tt.name)
	}
}

func TestItem_Claimed(t *testing.T) {
	assert.False(t, Item{Name: "memo_launch.md"}.Claimed())
	assert.True(t, Item{Name: "memo_launch_processed.md"}.Claimed())
}

func TestItem_BaseName(t *testing.T) {
	assert.Equal(t, "memo_launch", Item{Name: "memo_launch.md"}.BaseName())
	assert.Equal(t, "memo_launch", Item{Name: "memo_launch"}.BaseName())
}

func TestIsSupportedSourceMIMEType(t *testing.T) {
	assert.True(t, IsSupportedSourceMIMEType("text/plain"))
	assert.True(t, IsSupportedSourceMIMEType("application/pdf"))
	assert.False(t, IsSupportedSourceMIMEType("image/png"))
}
