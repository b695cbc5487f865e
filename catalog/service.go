package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"paywall-backend/models"
	"paywall-backend/store"
	"paywall-backend/utils"
)

var (
	ErrWalletRequired = errors.New("Wallet address required")
	ErrInvalidPrice   = errors.New("price must be a non-negative decimal")
	ErrTitleRequired  = errors.New("title required")
)

// Service manages the creator catalogue.
type Service struct {
	store store.ContentStore
}

func NewService(s store.ContentStore) *Service {
	return &Service{store: s}
}

// Create validates req, resolves the creator behind its wallet and stores
// the new item. Only the payload field matching the type is kept.
func (s *Service) Create(ctx context.Context, req models.ContentCreate) (models.ContentItem, error) {
	if strings.TrimSpace(req.WalletAddress) == "" {
		return models.ContentItem{}, ErrWalletRequired
	}
	wallet, err := utils.NormalizeWallet(req.WalletAddress)
	if err != nil {
		return models.ContentItem{}, err
	}
	if strings.TrimSpace(req.Title) == "" {
		return models.ContentItem{}, ErrTitleRequired
	}
	contentType, err := models.ParseContentType(req.Type)
	if err != nil {
		return models.ContentItem{}, err
	}
	if req.Price == nil || req.Price.IsNegative() {
		return models.ContentItem{}, ErrInvalidPrice
	}
	price := req.Price.Decimal
	payload, err := models.NewPayload(contentType, req.Body, req.ContentURL)
	if err != nil {
		return models.ContentItem{}, err
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = models.DefaultCurrency
	}
	thumbnail := strings.TrimSpace(req.ThumbnailURL)
	if thumbnail == "" {
		thumbnail = models.DefaultThumbnailURL
	}

	creator, err := s.store.FindOrCreateCreator(ctx, wallet)
	if err != nil {
		return models.ContentItem{}, fmt.Errorf("resolving creator: %w", err)
	}

	item := models.ContentItem{
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		Price:        price,
		Currency:     currency,
		ThumbnailURL: thumbnail,
		CreatorID:    creator.ID,
	}
	item.SetPayload(payload)

	if err := s.store.CreateContent(ctx, &item); err != nil {
		return models.ContentItem{}, fmt.Errorf("creating content: %w", err)
	}
	item.Creator = creator
	return item, nil
}

// List returns public metadata of the items matching filter, newest first.
func (s *Service) List(ctx context.Context, filter store.ListFilter) ([]models.ContentItem, error) {
	if filter.CreatorWallet != "" {
		wallet, err := utils.NormalizeWallet(filter.CreatorWallet)
		if err != nil {
			return nil, err
		}
		filter.CreatorWallet = wallet
	}
	return s.store.ListContent(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id string) (models.ContentItem, error) {
	return s.store.GetContent(ctx, id)
}
