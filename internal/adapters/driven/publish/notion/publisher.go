// Package notion publishes approved artifacts as pages in a Notion
// database.
package notion

import (
	"context"
	"fmt"

	"github.com/jomei/notionapi"

	"github.com/custodia-labs/echopress/internal/core/domain"
	"github.com/custodia-labs/echopress/internal/core/ports/driven"
)

// Ensure Publisher implements the interface.
var _ driven.Publisher = (*Publisher)(nil)

// maxChildrenPerRequest is Notion's block count ceiling per API call.
const maxChildrenPerRequest = 100

// titleProperty is the database's title column.
const titleProperty = "Name"

// Publisher creates pages in a Notion database.
type Publisher struct {
	pages      notionapi.PageService
	blocks     notionapi.BlockService
	databaseID notionapi.DatabaseID
}

// New creates a Notion publisher for the given integration token and
// target database.
func New(token, databaseID string) *Publisher {
	client := notionapi.NewClient(notionapi.Token(token))
	return &Publisher{
		pages:      client.Page,
		blocks:     client.Block,
		databaseID: notionapi.DatabaseID(databaseID),
	}
}

// NewWithServices wires explicit API services. Used by tests.
func NewWithServices(pages notionapi.PageService, blocks notionapi.BlockService, databaseID string) *Publisher {
	return &Publisher{
		pages:      pages,
		blocks:     blocks,
		databaseID: notionapi.DatabaseID(databaseID),
	}
}

// CreatePage creates a new page with the given blocks and returns its
// ID. Block sets beyond the per-request ceiling are appended in
// follow-up calls.
func (p *Publisher) CreatePage(
	ctx context.Context,
	title string,
	blocks []domain.Block,
	properties map[string]string,
) (string, error) {
	children := toNotionBlocks(blocks)

	first := children
	rest := notionapi.Blocks{}
	if len(children) > maxChildrenPerRequest {
		first = children[:maxChildrenPerRequest]
		rest = children[maxChildrenPerRequest:]
	}

	page, err := p.pages.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: p.databaseID,
		},
		Properties: pageProperties(title, properties),
		Children:   first,
	})
	if err != nil {
		return "", fmt.Errorf("create page: %w: %w", domain.ErrPublishRejected, err)
	}

	for len(rest) > 0 {
		batch := rest
		if len(batch) > maxChildrenPerRequest {
			batch = rest[:maxChildrenPerRequest]
		}
		_, err := p.blocks.AppendChildren(ctx, notionapi.BlockID(page.ID), &notionapi.AppendBlockChildrenRequest{
			Children: batch,
		})
		if err != nil {
			return "", fmt.Errorf("append blocks to page %s: %w", page.ID, err)
		}
		rest = rest[len(batch):]
	}

	return string(page.ID), nil
}

// pageProperties builds the database row: the title column plus one
// rich text column per metadata entry.
func pageProperties(title string, properties map[string]string) notionapi.Properties {
	props := notionapi.Properties{
		titleProperty: notionapi.TitleProperty{
			Title: plainRichText(title),
		},
	}
	for key, value := range properties {
		props[key] = notionapi.RichTextProperty{
			RichText: plainRichText(value),
		}
	}
	return props
}
