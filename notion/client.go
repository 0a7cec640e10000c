package notion

import (
	"context"
	"fmt"

	"github.com/jomei/notionapi"

	"github.com/kherring/docbrief/markdown"
)

// The API rejects append requests with more than this many blocks.
const appendBatchSize = 100

// Client writes pages into one Notion database.
type Client struct {
	api        *notionapi.Client
	databaseID string
}

func New(token string, databaseID string, opts ...notionapi.ClientOption) Client {
	return Client{
		api:        notionapi.NewClient(notionapi.Token(token), opts...),
		databaseID: databaseID,
	}
}

// CreatePage adds an empty page to the database with its Title property
// set, plus the URL property when sourceURL is non-empty. It returns the
// new page's ID.
func (c Client) CreatePage(ctx context.Context, title string, sourceURL string) (string, error) {
	properties := notionapi.Properties{
		"Title": notionapi.TitleProperty{
			Title: []notionapi.RichText{*notionapi.NewTextRichText(title)},
		},
	}
	if sourceURL != "" {
		properties["URL"] = notionapi.URLProperty{URL: sourceURL}
	}

	page, err := c.api.Page.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(c.databaseID),
		},
		Properties: properties,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create page: %w", err)
	}
	return string(page.ID), nil
}

// AppendBlocks adds blocks to a page in order, splitting the request into
// batches the API will accept.
func (c Client) AppendBlocks(ctx context.Context, pageID string, blocks notionapi.Blocks) error {
	for _, group := range appendGroups(blocks) {
		_, err := c.api.Block.AppendChildren(ctx, notionapi.BlockID(pageID), &notionapi.AppendBlockChildrenRequest{
			Children: group,
		})
		if err != nil {
			return fmt.Errorf("failed to append content to page %s: %w", pageID, err)
		}
	}
	return nil
}

func appendGroups(blocks notionapi.Blocks) []notionapi.Blocks {
	var groups []notionapi.Blocks
	for len(blocks) > appendBatchSize {
		groups = append(groups, blocks[:appendBatchSize])
		blocks = blocks[appendBatchSize:]
	}
	if len(blocks) > 0 {
		groups = append(groups, blocks)
	}
	return groups
}

// Publish creates a database page for the document and fills it with the
// markdown content converted to blocks. It returns the page ID; on an
// append failure the page exists but is incomplete.
func (c Client) Publish(ctx context.Context, title string, sourceURL string, content string) (string, error) {
	pageID, err := c.CreatePage(ctx, title, sourceURL)
	if err != nil {
		return "", err
	}
	if err := c.AppendBlocks(ctx, pageID, Blocks(markdown.ParseBlocks(content))); err != nil {
		return pageID, err
	}
	return pageID, nil
}
