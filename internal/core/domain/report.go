package domain

import "time"

// ItemStatus is the outcome of processing one item within a pass.
type ItemStatus string

// Item outcomes.
const (
	StatusProcessed ItemStatus = "processed"
	StatusSkipped   ItemStatus = "skipped"
	StatusFailed    ItemStatus = "failed"
)

// ItemOutcome records what happened to one item during a pass.
type ItemOutcome struct {
	ItemName string
	Status   ItemStatus

	// Err is the failure description when Status is StatusFailed.
	Err string

	// PageID is the created destination page for approval outcomes.
	PageID string
}

// ProcessingReport is the result of one PipelineOrchestrator pass.
// A pass always returns a report; per-item failures never escape it.
type ProcessingReport struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Items      []ItemOutcome
}

// Processed counts items that completed the full generation stage.
func (r ProcessingReport) Processed() int { return r.count(StatusProcessed) }

// Skipped counts items whose claim went to a concurrent pass.
func (r ProcessingReport) Skipped() int { return r.count(StatusSkipped) }

// Failed counts items that errored and were isolated.
func (r ProcessingReport) Failed() int { return r.count(StatusFailed) }

func (r ProcessingReport) count(s ItemStatus) int {
	n := 0
	for _, it := range r.Items {
		if it.Status == s {
			n++
		}
	}
	return n
}

// ApprovalReport is the result of one ApprovalOrchestrator pass.
type ApprovalReport struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Items      []ItemOutcome
}

// Published counts artifacts that reached the destination.
func (r ApprovalReport) Published() int {
	n := 0
	for _, it := range r.Items {
		if it.Status == StatusProcessed {
			n++
		}
	}
	return n
}

// Failed counts artifacts left in place for retry.
func (r ApprovalReport) Failed() int {
	n := 0
	for _, it := range r.Items {
		if it.Status == StatusFailed {
			n++
		}
	}
	return n
}

// RunKind distinguishes journal entries by which orchestrator ran.
type RunKind string

// Run kinds.
const (
	RunPipeline RunKind = "pipeline"
	RunApproval RunKind = "approval"
)

// RunRecord is one journaled orchestrator pass. Records are append-only
// history for operators; orchestrator correctness never depends on them.
type RunRecord struct {
	ID         string
	Kind       RunKind
	StartedAt  time.Time
	FinishedAt time.Time
	Processed  int
	Skipped    int
	Failed     int
	Outcomes   []ItemOutcome
}
