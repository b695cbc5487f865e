package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultCurrency     = "USDC"
	DefaultThumbnailURL = "https://via.placeholder.com/640x360"
)

// ContentItem is a unit of monetizable media. Body is only set for
// articles, ContentURL only for video and audio.
type ContentItem struct {
	ID           string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Title        string          `json:"title" gorm:"not null"`
	Description  string          `json:"description" gorm:"type:text"`
	Type         ContentType     `json:"type" gorm:"type:varchar(10);not null"`
	Price        decimal.Decimal `json:"price" gorm:"type:numeric(20,8);not null"`
	Currency     string          `json:"currency" gorm:"type:varchar(10);not null"`
	Body         string          `json:"-" gorm:"column:body;type:text"`
	ContentURL   string          `json:"-" gorm:"column:content_url"`
	ThumbnailURL string          `json:"thumbnailUrl" gorm:"column:thumbnail_url"`
	CreatorID    string          `json:"creatorId" gorm:"column:creator_id;type:uuid;index;not null"`
	Creator      Creator         `json:"creator" gorm:"foreignKey:CreatorID"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

func (ContentItem) TableName() string {
	return "content_items"
}

// IsFree reports whether the item is unlocked without a grant.
func (c ContentItem) IsFree() bool {
	return c.Price.IsZero()
}

func (c ContentItem) Payload() (Payload, error) {
	return NewPayload(c.Type, c.Body, c.ContentURL)
}

// SetPayload stores p in the field selected by its type and clears the other.
func (c *ContentItem) SetPayload(p Payload) {
	c.Type = p.Type()
	switch v := p.(type) {
	case ArticleBody:
		c.Body = string(v)
		c.ContentURL = ""
	case MediaURL:
		c.Body = ""
		c.ContentURL = v.URL
	}
}

// ContentCreate is the submission accepted by the creator dashboard.
// @Description content submitted by a creator
type ContentCreate struct {
	Title         string `json:"title" form:"title" binding:"required" example:"Exclusive Video"`
	Description   string `json:"description" form:"description" example:"This is a premium video."`
	Price         *Price `json:"price" form:"price" binding:"required" swaggertype:"number" example:"5.00"`
	Currency      string `json:"currency" form:"currency" example:"USDC"`
	Type          string `json:"type" form:"type" binding:"required,contenttype" example:"VIDEO"`
	ThumbnailURL  string `json:"thumbnailUrl" form:"thumbnailUrl"`
	ContentURL    string `json:"contentUrl" form:"contentUrl"`
	Body          string `json:"body" form:"body"`
	WalletAddress string `json:"walletAddress" form:"walletAddress" binding:"omitempty,wallet" example:"0x1234567890abcdef1234567890abcdef12345678"`
}
