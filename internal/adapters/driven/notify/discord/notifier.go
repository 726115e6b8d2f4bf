// Package discord delivers pipeline events to a Discord channel via an
// incoming webhook.
package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/custodia-labs/echopress/internal/core/ports/driven"
	"github.com/custodia-labs/echopress/internal/logger"
)

// Ensure Notifier implements the interface.
var _ driven.Notifier = (*Notifier)(nil)

// Embed colors.
const (
	colorBlue  = 3447003
	colorGreen = 3066993
	colorRed   = 15158332
)

// DefaultTimeout bounds one webhook delivery.
const DefaultTimeout = 10 * time.Second

// Notifier posts events as webhook embeds. Delivery is best-effort:
// failures are logged and dropped, never surfaced to the pipeline.
type Notifier struct {
	client     *http.Client
	webhookURL string
}

// New creates a Discord notifier for the webhook URL.
func New(webhookURL string) *Notifier {
	return &Notifier{
		client:     &http.Client{Timeout: DefaultTimeout},
		webhookURL: webhookURL,
	}
}

// webhookPayload is the Discord webhook message format.
type webhookPayload struct {
	Embeds []embed `json:"embeds"`
}

type embed struct {
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color"`
	Fields      []embedField `json:"fields,omitempty"`
}

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// ReviewReady announces a fresh artifact set in the review folder.
func (n *Notifier) ReviewReady(ctx context.Context, ev driven.ReviewEvent) {
	e := embed{
		Title:       "Content ready for review",
		Description: fmt.Sprintf("Generated %d artifacts from **%s**", len(ev.ArtifactNames), ev.SourceFile),
		Color:       colorBlue,
		Fields: []embedField{
			{Name: "Artifacts", Value: strings.Join(ev.ArtifactNames, "\n")},
		},
	}
	if ev.ReviewURL != "" {
		e.Fields = append(e.Fields, embedField{Name: "Review folder", Value: ev.ReviewURL})
	}
	n.send(ctx, e)
}

// Published announces a successful publication.
func (n *Notifier) Published(ctx context.Context, ev driven.PublishEvent) {
	n.send(ctx, embed{
		Title:       "Published",
		Description: fmt.Sprintf("**%s** is live", ev.PageTitle),
		Color:       colorGreen,
		Fields: []embedField{
			{Name: "Source", Value: ev.SourceFile, Inline: true},
			{Name: "Page ID", Value: ev.PageID, Inline: true},
		},
	})
}

// Error announces a per-item failure.
func (n *Notifier) Error(ctx context.Context, ev driven.ErrorEvent) {
	n.send(ctx, embed{
		Title:       "Pipeline error",
		Description: fmt.Sprintf("%s failed during %s", ev.ItemName, ev.Context),
		Color:       colorRed,
		Fields: []embedField{
			{Name: "Error", Value: ev.Err.Error()},
		},
	})
}

// send posts one embed to the webhook.
func (n *Notifier) send(ctx context.Context, e embed) {
	if n.webhookURL == "" {
		return
	}

	body, err := json.Marshal(webhookPayload{Embeds: []embed{e}})
	if err != nil {
		logger.Warn("Discord payload marshal failed: %v", err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		logger.Warn("Discord request creation failed: %v", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		logger.Warn("Discord delivery failed: %v", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		logger.Warn("Discord webhook returned status %d", resp.StatusCode)
	}
}
