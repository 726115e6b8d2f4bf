// Package noop provides the default notifier used when no notification
// channel is configured. All events are dropped.
package noop

import (
	"context"

	"github.com/custodia-labs/echopress/internal/core/ports/driven"
)

// Ensure Notifier implements the interface.
var _ driven.Notifier = (*Notifier)(nil)

// Notifier drops every event.
type Notifier struct{}

// New creates a no-op notifier.
func New() *Notifier {
	return &Notifier{}
}

func (n *Notifier) ReviewReady(context.Context, driven.ReviewEvent) {}

func (n *Notifier) Published(context.Context, driven.PublishEvent) {}

func (n *Notifier) Error(context.Context, driven.ErrorEvent) {}
