package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/echopress/internal/core/domain"
	"github.com/custodia-labs/echopress/internal/core/ports/driven"
	"github.com/custodia-labs/echopress/internal/core/ports/driving"
	"github.com/custodia-labs/echopress/internal/logger"
)

// Ensure PipelineOrchestrator implements the interface.
var _ driving.PipelineOrchestrator = (*PipelineOrchestrator)(nil)

// PipelineConfig names the store locations the generation stage works on.
type PipelineConfig struct {
	// SourceLocationID is where raw notes arrive.
	SourceLocationID string

	// ReviewLocationID is where generated artifacts are uploaded for
	// human review.
	ReviewLocationID string
}

// PipelineOrchestrator coordinates the generation stage: claim a source
// item, extract its text, generate the three artifacts, upload them for
// review.
type PipelineOrchestrator struct {
	store     driven.ContentStore
	registry  driven.ExtractorRegistry
	generator driven.Generator
	notifier  driven.Notifier
	reports   driven.ReportStore
	cfg       PipelineConfig

	now func() time.Time
}

// NewPipelineOrchestrator creates a new pipeline orchestrator.
// The notifier must not be nil; use the noop implementation when no
// channel is configured. reports may be nil to disable journalling.
func NewPipelineOrchestrator(
	store driven.ContentStore,
	registry driven.ExtractorRegistry,
	generator driven.Generator,
	notifier driven.Notifier,
	reports driven.ReportStore,
	cfg PipelineConfig,
) *PipelineOrchestrator {
	return &PipelineOrchestrator{
		store:     store,
		registry:  registry,
		generator: generator,
		notifier:  notifier,
		reports:   reports,
		cfg:       cfg,
		now:       time.Now,
	}
}

// RunOnce performs one scan-and-drain pass over the source location.
func (o *PipelineOrchestrator) RunOnce(ctx context.Context) (*domain.ProcessingReport, error) {
	if o.cfg.SourceLocationID == "" || o.cfg.ReviewLocationID == "" {
		return nil, fmt.Errorf("source and review locations: %w", domain.ErrMissingConfig)
	}

	if !o.store.Capabilities().AtomicClaim {
		logger.Warn("Content store cannot claim atomically; overlapping runs may duplicate work")
	}

	report := &domain.ProcessingReport{StartedAt: o.now()}

	items, err := o.store.List(ctx, o.cfg.SourceLocationID)
	if err != nil {
		return nil, fmt.Errorf("list source location: %w", err)
	}

	for _, item := range items {
		if item.Claimed() || !domain.IsSupportedSourceMIMEType(item.MIMEType) {
			continue
		}
		if err := ctx.Err(); err != nil {
			report.FinishedAt = o.now()
			o.journal(ctx, report)
			return report, err
		}

		outcome := o.processItem(ctx, item)
		report.Items = append(report.Items, outcome)

		switch outcome.Status {
		case domain.StatusProcessed:
			logger.Info("Generated artifacts for %s", item.Name)
		case domain.StatusSkipped:
			logger.Debug("Skipping %s: claimed by another run", item.Name)
		case domain.StatusFailed:
			logger.Warn("Failed to process %s: %s", item.Name, outcome.Err)
			o.notifier.Error(ctx, driven.ErrorEvent{
				Context:  "generation",
				ItemName: item.Name,
				Err:      errors.New(outcome.Err),
			})
		}
	}

	report.FinishedAt = o.now()
	logger.Info("Pipeline pass complete: %d processed, %d skipped, %d failed",
		report.Processed(), report.Skipped(), report.Failed())
	o.journal(ctx, report)
	return report, nil
}

// processItem drives one item from claim to uploaded artifacts. The
// claim comes first: once won, a failure anywhere later leaves the item
// claimed and it will not be retried (at-most-once).
func (o *PipelineOrchestrator) processItem(ctx context.Context, item domain.Item) domain.ItemOutcome {
	// Each step advances the folder-encoded lifecycle; the transitions
	// are validated so an ordering bug surfaces as an item failure.
	stage := domain.StageDiscovered

	claimedID, won, err := o.store.Claim(ctx, item.ID, item.Name)
	if err != nil {
		return failure(item, fmt.Errorf("claim: %w", err))
	}
	if !won {
		return domain.ItemOutcome{ItemName: item.Name, Status: domain.StatusSkipped}
	}
	if stage, err = domain.Transition(stage, domain.StageClaimed); err != nil {
		return failure(item, err)
	}

	data, err := o.store.Download(ctx, claimedID)
	if err != nil {
		return failure(item, fmt.Errorf("download: %w", err))
	}

	text, err := o.registry.Extract(ctx, data, item.MIMEType)
	if err != nil {
		return failure(item, fmt.Errorf("extract: %w", err))
	}

	result, err := o.generate(ctx, text)
	if err != nil {
		return failure(item, err)
	}
	if stage, err = domain.Transition(stage, domain.StageGenerated); err != nil {
		return failure(item, err)
	}

	meta := domain.InferMetadata(item.Name, o.now())
	result.Blog = meta.WithFrontmatter(result.Blog)

	names, err := o.uploadArtifacts(ctx, item.BaseName(), result)
	if err != nil {
		return failure(item, err)
	}
	if _, err = domain.Transition(stage, domain.StageAwaitingReview); err != nil {
		return failure(item, err)
	}

	o.notifier.ReviewReady(ctx, driven.ReviewEvent{
		SourceFile:    item.Name,
		ArtifactNames: names,
		ReviewURL:     o.store.LocationURL(o.cfg.ReviewLocationID),
	})

	return domain.ItemOutcome{ItemName: item.Name, Status: domain.StatusProcessed}
}

// generate produces all three artifacts. The set is all-or-nothing: a
// single generation failure abandons the item.
func (o *PipelineOrchestrator) generate(ctx context.Context, text string) (*domain.GenerationResult, error) {
	var result domain.GenerationResult
	for _, kind := range domain.Kinds() {
		out, err := o.generator.Generate(ctx, text, kind)
		if err != nil {
			return nil, fmt.Errorf("generate %s: %w: %w", kind, domain.ErrGenerationFailed, err)
		}
		if kind == domain.KindXPost {
			out = domain.TruncateVisible(out, domain.XPostCharLimit)
		}
		result.SetArtifact(kind, out)
	}
	return &result, nil
}

// uploadArtifacts writes the three review files and returns their names.
func (o *PipelineOrchestrator) uploadArtifacts(
	ctx context.Context,
	base string,
	result *domain.GenerationResult,
) ([]string, error) {
	names := make([]string, 0, len(domain.Kinds()))
	for _, kind := range domain.Kinds() {
		name := domain.ArtifactName(base, kind)
		_, err := o.store.Upload(ctx, []byte(result.Artifact(kind)), name, kind.MIMEType(), o.cfg.ReviewLocationID)
		if err != nil {
			return nil, fmt.Errorf("upload %s: %w", name, err)
		}
		names = append(names, name)
	}
	return names, nil
}

// journal records the pass. Journal failures are logged, never fatal.
func (o *PipelineOrchestrator) journal(ctx context.Context, report *domain.ProcessingReport) {
	if o.reports == nil {
		return
	}
	rec := domain.RunRecord{
		ID:         uuid.New().String(),
		Kind:       domain.RunPipeline,
		StartedAt:  report.StartedAt,
		FinishedAt: report.FinishedAt,
		Processed:  report.Processed(),
		Skipped:    report.Skipped(),
		Failed:     report.Failed(),
		Outcomes:   report.Items,
	}
	if err := o.reports.SaveRun(ctx, rec); err != nil {
		logger.Warn("Failed to journal pipeline run: %v", err)
	}
}

func failure(item domain.Item, err error) domain.ItemOutcome {
	return domain.ItemOutcome{
		ItemName: item.Name,
		Status:   domain.StatusFailed,
		Err:      err.Error(),
	}
}
