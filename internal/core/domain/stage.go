package domain

import "fmt"

// Stage is a lifecycle state of an item as it moves through the content
// pipeline. Stages are persisted implicitly by which location an object
// lives in and whether it carries the claim marker; the explicit state
// machine here validates transitions so adapters cannot corrupt the
// folder-encoded state.
type Stage string

// Lifecycle stages, in forward order.
const (
	// StageDiscovered: listed at the source location, unclaimed.
	StageDiscovered Stage = "discovered"

	// StageClaimed: claim marker applied; owned by one invocation.
	StageClaimed Stage = "claimed"

	// StageGenerated: all three artifacts computed, not yet uploaded.
	StageGenerated Stage = "generated"

	// StageAwaitingReview: artifacts uploaded to the review location.
	StageAwaitingReview Stage = "awaiting_review"

	// StageApproved: a human moved an artifact to the approval location.
	StageApproved Stage = "approved"

	// StagePublished: a destination page exists for the artifact.
	StagePublished Stage = "published"

	// StageArchived: the artifact was relocated out of the approval
	// location after publishing.
	StageArchived Stage = "archived"
)

// stageTransitions enumerates the legal forward edges. The lifecycle is
// strictly linear; there are no retry edges because un-claiming and
// re-approval are human actions outside the orchestrators.
var stageTransitions = map[Stage]Stage{
	StageDiscovered:     StageClaimed,
	StageClaimed:        StageGenerated,
	StageGenerated:      StageAwaitingReview,
	StageAwaitingReview: StageApproved,
	StageApproved:       StagePublished,
	StagePublished:      StageArchived,
}

// CanTransition reports whether moving from one stage to the next is legal.
func CanTransition(from, to Stage) bool {
	next, ok := stageTransitions[from]
	return ok && next == to
}

// Transition validates and performs a stage transition.
func Transition(from, to Stage) (Stage, error) {
	if !CanTransition(from, to) {
		return from, fmt.Errorf("%w: %s -> %s", ErrStageTransition, from, to)
	}
	return to, nil
}

// Valid reports whether the stage is one of the known lifecycle states.
func (s Stage) Valid() bool {
	switch s {
	case StageDiscovered, StageClaimed, StageGenerated, StageAwaitingReview,
		StageApproved, StagePublished, StageArchived:
		return true
	}
	return false
}
