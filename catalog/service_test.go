package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paywall-backend/models"
	"paywall-backend/store"
	"paywall-backend/utils"
)

const (
	lowerWallet    = "0x1234567890abcdef1234567890abcdef12345678"
	checksumWallet = "0x1234567890AbcdEF1234567890aBcdef12345678"
	solanaWallet   = "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin"
)

func price(s string) *models.Price {
	return models.NewPrice(decimal.RequireFromString(s))
}

func TestCreate_Video(t *testing.T) {
	svc := NewService(store.NewMemoryStore())

	item, err := svc.Create(context.Background(), models.ContentCreate{
		Title:         "Exclusive Video",
		Price:         price("5.00"),
		Type:          "video",
		ContentURL:    "https://cdn.example/v.mp4",
		Body:          "ignored",
		WalletAddress: lowerWallet,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, models.Video, item.Type)
	assert.Equal(t, "5", item.Price.String())
	assert.Equal(t, models.DefaultCurrency, item.Currency)
	assert.Equal(t, models.DefaultThumbnailURL, item.ThumbnailURL)
	assert.Equal(t, "https://cdn.example/v.mp4", item.ContentURL)
	assert.Empty(t, item.Body)
	assert.Equal(t, checksumWallet, item.Creator.WalletAddress)
}

func TestCreate_ArticleKeepsBodyOnly(t *testing.T) {
	svc := NewService(store.NewMemoryStore())

	item, err := svc.Create(context.Background(), models.ContentCreate{
		Title:         "Essay",
		Price:         price("0"),
		Currency:      "eur",
		Type:          "ARTICLE",
		Body:          "Once upon a time",
		ContentURL:    "https://cdn.example/ignored",
		ThumbnailURL:  "https://img.example/t.png",
		WalletAddress: solanaWallet,
	})

	require.NoError(t, err)
	assert.Equal(t, "Once upon a time", item.Body)
	assert.Empty(t, item.ContentURL)
	assert.Equal(t, "EUR", item.Currency)
	assert.Equal(t, "https://img.example/t.png", item.ThumbnailURL)
	assert.True(t, item.IsFree())
}

func TestCreate_ReusesCreator(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemoryStore())
	req := models.ContentCreate{Title: "a", Price: price("1"), Type: "AUDIO", WalletAddress: lowerWallet}

	first, err := svc.Create(ctx, req)
	require.NoError(t, err)
	req.WalletAddress = checksumWallet
	second, err := svc.Create(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, first.CreatorID, second.CreatorID)
}

func TestCreate_Rejections(t *testing.T) {
	valid := models.ContentCreate{Title: "t", Price: price("1"), Type: "VIDEO", WalletAddress: lowerWallet}

	tests := []struct {
		name    string
		mutate  func(r *models.ContentCreate)
		wantErr error
	}{
		{"missing wallet", func(r *models.ContentCreate) { r.WalletAddress = "" }, ErrWalletRequired},
		{"bad wallet", func(r *models.ContentCreate) { r.WalletAddress = "0xnothex" }, utils.ErrInvalidWallet},
		{"missing title", func(r *models.ContentCreate) { r.Title = " " }, ErrTitleRequired},
		{"unknown type", func(r *models.ContentCreate) { r.Type = "PODCAST" }, models.ErrUnknownContentType},
		{"negative price", func(r *models.ContentCreate) { r.Price = price("-1") }, ErrInvalidPrice},
		{"missing price", func(r *models.ContentCreate) { r.Price = nil }, ErrInvalidPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := store.NewMemoryStore()
			req := valid
			tt.mutate(&req)

			_, err := NewService(s).Create(context.Background(), req)

			assert.ErrorIs(t, err, tt.wantErr)
			items, _ := s.ListContent(context.Background(), store.ListFilter{})
			assert.Empty(t, items)
		})
	}
}

func TestList_FiltersByCreator(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemoryStore())
	_, err := svc.Create(ctx, models.ContentCreate{Title: "evm", Price: price("1"), Type: "VIDEO", WalletAddress: lowerWallet})
	require.NoError(t, err)
	_, err = svc.Create(ctx, models.ContentCreate{Title: "sol", Price: price("0"), Type: "ARTICLE", WalletAddress: solanaWallet})
	require.NoError(t, err)

	items, err := svc.List(ctx, store.ListFilter{CreatorWallet: lowerWallet})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "evm", items[0].Title)

	items, err = svc.List(ctx, store.ListFilter{FreeOnly: true})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "sol", items[0].Title)

	_, err = svc.List(ctx, store.ListFilter{CreatorWallet: "nope"})
	assert.ErrorIs(t, err, utils.ErrInvalidWallet)
}

func TestGet_NotFound(t *testing.T) {
	_, err := NewService(store.NewMemoryStore()).Get(context.Background(), "missing")

	assert.ErrorIs(t, err, store.ErrNotFound)
}
