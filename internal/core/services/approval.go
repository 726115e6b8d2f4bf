package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/echopress/internal/core/domain"
	"github.com/custodia-labs/echopress/internal/core/ports/driven"
	"github.com/custodia-labs/echopress/internal/core/ports/driving"
	"github.com/custodia-labs/echopress/internal/logger"
	"github.com/custodia-labs/echopress/internal/markdown"
)

// Ensure ApprovalOrchestrator implements the interface.
var _ driving.ApprovalOrchestrator = (*ApprovalOrchestrator)(nil)

// ApprovalConfig names the store locations the publish stage works on.
type ApprovalConfig struct {
	// ApprovalLocationID is where humans drop artifacts they approve.
	ApprovalLocationID string

	// ArchiveLocationID is where artifacts land after publication.
	ArchiveLocationID string
}

// ApprovalOrchestrator coordinates the publish stage: convert each
// approved artifact to blocks, create the destination page, archive
// the artifact.
type ApprovalOrchestrator struct {
	store     driven.ContentStore
	publisher driven.Publisher
	notifier  driven.Notifier
	reports   driven.ReportStore
	cfg       ApprovalConfig

	now func() time.Time
}

// NewApprovalOrchestrator creates a new approval orchestrator.
// The notifier must not be nil; use the noop implementation when no
// channel is configured. reports may be nil to disable journalling.
func NewApprovalOrchestrator(
	store driven.ContentStore,
	publisher driven.Publisher,
	notifier driven.Notifier,
	reports driven.ReportStore,
	cfg ApprovalConfig,
) *ApprovalOrchestrator {
	return &ApprovalOrchestrator{
		store:     store,
		publisher: publisher,
		notifier:  notifier,
		reports:   reports,
		cfg:       cfg,
		now:       time.Now,
	}
}

// RunOnce performs one pass over the approval location.
//
// The order inside each item is publish first, archive second. A crash
// between the two leaves the artifact in the approval location, so the
// next pass publishes it again (at-least-once). The reverse order would
// silently lose approved content.
func (o *ApprovalOrchestrator) RunOnce(ctx context.Context) (*domain.ApprovalReport, error) {
	if o.cfg.ApprovalLocationID == "" || o.cfg.ArchiveLocationID == "" {
		return nil, fmt.Errorf("approval and archive locations: %w", domain.ErrMissingConfig)
	}

	report := &domain.ApprovalReport{StartedAt: o.now()}

	items, err := o.store.List(ctx, o.cfg.ApprovalLocationID)
	if err != nil {
		return nil, fmt.Errorf("list approval location: %w", err)
	}

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			report.FinishedAt = o.now()
			o.journal(ctx, report)
			return report, err
		}

		outcome := o.publishItem(ctx, item)
		report.Items = append(report.Items, outcome)

		if outcome.Status == domain.StatusFailed {
			logger.Warn("Failed to publish %s: %s", item.Name, outcome.Err)
			o.notifier.Error(ctx, driven.ErrorEvent{
				Context:  "publication",
				ItemName: item.Name,
				Err:      errors.New(outcome.Err),
			})
		}
	}

	report.FinishedAt = o.now()
	logger.Info("Approval pass complete: %d published, %d failed",
		report.Published(), report.Failed())
	o.journal(ctx, report)
	return report, nil
}

// publishItem drives one approved artifact to the destination.
func (o *ApprovalOrchestrator) publishItem(ctx context.Context, item domain.Item) domain.ItemOutcome {
	artifact, err := o.loadArtifact(ctx, item)
	if err != nil {
		return failure(item, err)
	}

	body := domain.StripFrontmatter(artifact.Content)
	title := pageTitle(body, item.Name)
	blocks := markdown.Convert(body)

	properties := map[string]string{
		"source_file": item.Name,
	}
	if artifact.Kind != "" {
		properties["kind"] = string(artifact.Kind)
	}

	pageID, err := o.publisher.CreatePage(ctx, title, blocks, properties)
	if err != nil {
		return failure(item, fmt.Errorf("create page: %w", err))
	}
	stage, err := domain.Transition(domain.StageApproved, domain.StagePublished)
	if err != nil {
		return failure(item, err)
	}

	logger.Info("Published %s as page %s", item.Name, pageID)

	if err := o.store.Move(ctx, item.ID, o.cfg.ApprovalLocationID, o.cfg.ArchiveLocationID); err != nil {
		// The page exists but the artifact stays approved, so the next
		// pass will publish a duplicate. Surface it loudly.
		out := failure(item, fmt.Errorf("archive after publish: %w", err))
		out.PageID = pageID
		return out
	}
	if _, err := domain.Transition(stage, domain.StageArchived); err != nil {
		return failure(item, err)
	}

	o.notifier.Published(ctx, driven.PublishEvent{
		SourceFile: item.Name,
		PageTitle:  title,
		PageID:     pageID,
	})

	return domain.ItemOutcome{
		ItemName: item.Name,
		Status:   domain.StatusProcessed,
		PageID:   pageID,
	}
}

// loadArtifact downloads the item and decorates it with what the
// naming scheme reveals. Names outside the scheme still publish; the
// kind is simply unknown.
func (o *ApprovalOrchestrator) loadArtifact(ctx context.Context, item domain.Item) (*domain.ApprovedArtifact, error) {
	data, err := o.store.Download(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}

	artifact := &domain.ApprovedArtifact{
		Item:    item,
		Content: string(data),
	}
	if base, kind, err := domain.ParseArtifactName(item.Name); err == nil {
		artifact.SourceBase = base
		artifact.Kind = kind
	}
	return artifact, nil
}

// pageTitle takes the first heading of the body, falling back to a
// humanised file name.
func pageTitle(body, filename string) string {
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(trimmed, "# "))
		}
	}

	title := domain.TrimExt(filename)
	title = strings.ReplaceAll(title, "_", " ")
	title = strings.ReplaceAll(title, "-", " ")
	return strings.TrimSpace(title)
}

// journal records the pass. Journal failures are logged, never fatal.
func (o *ApprovalOrchestrator) journal(ctx context.Context, report *domain.ApprovalReport) {
	if o.reports == nil {
		return
	}
	rec := domain.RunRecord{
		ID:         uuid.New().String(),
		Kind:       domain.RunApproval,
		StartedAt:  report.StartedAt,
		FinishedAt: report.FinishedAt,
		Processed:  report.Published(),
		Failed:     report.Failed(),
		Outcomes:   report.Items,
	}
	if err := o.reports.SaveRun(ctx, rec); err != nil {
		logger.Warn("Failed to journal approval run: %v", err)
	}
}
