package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"paywall-backend/models"
)

// MemoryStore implements ContentStore with in-memory maps.
type MemoryStore struct {
	mu       sync.RWMutex
	creators map[string]models.Creator
	byWallet map[string]string
	items    map[string]models.ContentItem
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		creators: make(map[string]models.Creator),
		byWallet: make(map[string]string),
		items:    make(map[string]models.ContentItem),
		now:      time.Now,
	}
}

func (m *MemoryStore) FindOrCreateCreator(_ context.Context, wallet string) (models.Creator, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id, ok := m.byWallet[wallet]; ok {
		return m.creators[id], nil
	}
	creator := models.Creator{
		ID:            uuid.NewString(),
		WalletAddress: wallet,
		CreatedAt:     m.now(),
	}
	m.creators[creator.ID] = creator
	m.byWallet[wallet] = creator.ID
	return creator, nil
}

func (m *MemoryStore) CreateContent(_ context.Context, item *models.ContentItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.creators[item.CreatorID]; !ok {
		return ErrNotFound
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	now := m.now()
	item.CreatedAt = now
	item.UpdatedAt = now
	stored := *item
	stored.Creator = models.Creator{}
	m.items[item.ID] = stored
	return nil
}

func (m *MemoryStore) GetContent(_ context.Context, id string) (models.ContentItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	item, ok := m.items[id]
	if !ok {
		return models.ContentItem{}, ErrNotFound
	}
	item.Creator = m.creators[item.CreatorID]
	return item, nil
}

func (m *MemoryStore) ListContent(_ context.Context, filter ListFilter) ([]models.ContentItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	items := make([]models.ContentItem, 0, len(m.items))
	for _, item := range m.items {
		creator := m.creators[item.CreatorID]
		if filter.Type != "" && item.Type != filter.Type {
			continue
		}
		if filter.FreeOnly && !item.IsFree() {
			continue
		}
		if filter.CreatorWallet != "" && creator.WalletAddress != filter.CreatorWallet {
			continue
		}
		item.Creator = creator
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	if filter.Limit > 0 && len(items) > filter.Limit {
		items = items[:filter.Limit]
	}
	return items, nil
}

func (m *MemoryStore) Ping(context.Context) error {
	return nil
}
