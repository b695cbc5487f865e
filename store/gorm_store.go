package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"paywall-backend/models"
)

// GormStore is the relational ContentStore.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// uniqueViolation is the postgres SQLSTATE for a duplicate key.
const uniqueViolation = "23505"

// FindOrCreateCreator is safe against concurrent first submissions from the
// same wallet: the loser of the insert race reads back the winner's row.
func (s *GormStore) FindOrCreateCreator(ctx context.Context, wallet string) (models.Creator, error) {
	creator, err := s.findCreator(ctx, wallet)
	if err == nil {
		return creator, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Creator{}, fmt.Errorf("finding creator: %w", err)
	}

	creator = models.Creator{WalletAddress: wallet}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "wallet_address"}}, DoNothing: true}).
		Create(&creator).Error
	if err != nil && !isUniqueViolation(err) {
		return models.Creator{}, fmt.Errorf("creating creator: %w", err)
	}
	if err == nil && creator.ID != "" {
		return creator, nil
	}

	creator, err = s.findCreator(ctx, wallet)
	if err != nil {
		return models.Creator{}, fmt.Errorf("reading back creator: %w", err)
	}
	return creator, nil
}

func (s *GormStore) findCreator(ctx context.Context, wallet string) (models.Creator, error) {
	var creator models.Creator
	err := s.db.WithContext(ctx).Where("wallet_address = ?", wallet).First(&creator).Error
	return creator, err
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr interface{ SQLState() string }
	return errors.As(err, &pgErr) && pgErr.SQLState() == uniqueViolation
}

func (s *GormStore) CreateContent(ctx context.Context, item *models.ContentItem) error {
	// the creator is resolved beforehand, never upserted through the association
	if err := s.db.WithContext(ctx).Omit("Creator").Create(item).Error; err != nil {
		return fmt.Errorf("creating content: %w", err)
	}
	return nil
}

func (s *GormStore) GetContent(ctx context.Context, id string) (models.ContentItem, error) {
	var item models.ContentItem
	err := s.db.WithContext(ctx).Preload("Creator").First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ContentItem{}, ErrNotFound
	}
	if err != nil {
		return models.ContentItem{}, fmt.Errorf("getting content %s: %w", id, err)
	}
	return item, nil
}

func (s *GormStore) ListContent(ctx context.Context, filter ListFilter) ([]models.ContentItem, error) {
	query := s.db.WithContext(ctx).Preload("Creator").Order("content_items.created_at DESC")

	if filter.Type != "" {
		query = query.Where("content_items.type = ?", filter.Type)
	}
	if filter.FreeOnly {
		query = query.Where("content_items.price = 0")
	}
	if filter.CreatorWallet != "" {
		query = query.Joins("JOIN creators ON creators.id = content_items.creator_id").
			Where("creators.wallet_address = ?", filter.CreatorWallet)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var items []models.ContentItem
	if err := query.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("listing content: %w", err)
	}
	return items, nil
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
