package store

import (
	"context"
	"errors"

	"paywall-backend/models"
)

// ErrNotFound indicates the content item or creator does not exist.
var ErrNotFound = errors.New("store: not found")

// ContentStore persists creators and their content items.
type ContentStore interface {
	// FindOrCreateCreator returns the creator owning wallet, creating it on
	// first use.
	FindOrCreateCreator(ctx context.Context, wallet string) (models.Creator, error)
	CreateContent(ctx context.Context, item *models.ContentItem) error
	// GetContent returns the item with its creator loaded.
	GetContent(ctx context.Context, id string) (models.ContentItem, error)
	ListContent(ctx context.Context, filter ListFilter) ([]models.ContentItem, error)
	Ping(ctx context.Context) error
}

// ListFilter narrows ListContent. Zero values match everything.
type ListFilter struct {
	Type          models.ContentType
	CreatorWallet string
	FreeOnly      bool
	Limit         int
}

var (
	_ ContentStore = (*GormStore)(nil)
	_ ContentStore = (*MemoryStore)(nil)
)
