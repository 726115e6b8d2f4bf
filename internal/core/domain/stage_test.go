package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition_ForwardEdges(t *testing.T) {
	assert.True(t, CanTransition(StageDiscovered, StageClaimed))
	assert.True(t, CanTransition(StageClaimed, StageGenerated))
	assert.True(t, CanTransition(StageGenerated, StageAwaitingReview))
	assert.True(t, CanTransition(StageAwaitingReview, StageApproved))
	assert.True(t, CanTransition(StageApproved, StagePublished))
	assert.True(t, CanTransition(StagePublished, StageArchived))
}

func TestCanTransition_RejectsSkips(t *testing.T) {
	assert.False(t, CanTransition(StageDiscovered, StageGenerated))
	assert.False(t, CanTransition(StageClaimed, StagePublished))
	assert.False(t, CanTransition(StageDiscovered, StageArchived))
}

func TestCanTransition_RejectsBackward(t *testing.T) {
	assert.False(t, CanTransition(StageClaimed, StageDiscovered))
	assert.False(t, CanTransition(StageArchived, StagePublished))
}

func TestCanTransition_TerminalStage(t *testing.T) {
	for _, to := range []Stage{
		StageDiscovered, StageClaimed, StageGenerated,
		StageAwaitingReview, StageApproved, StagePublished, StageArchived,
	} {
		assert.False(t, CanTransition(StageArchived, to), string(to))
	}
}

func TestTransition_Valid(t *testing.T) {
	next, err := Transition(StageDiscovered, StageClaimed)
	require.NoError(t, err)
	assert.Equal(t, StageClaimed, next)
}

func TestTransition_Invalid(t *testing.T) {
	next, err := Transition(StageClaimed, StageArchived)
	assert.ErrorIs(t, err, ErrStageTransition)
	assert.Equal(t, StageClaimed, next) // stays put on error
}

func TestStage_Valid(t *testing.T) {
	assert.True(t, StageClaimed.Valid())
	assert.False(t, Stage("shipped").Valid())
}
