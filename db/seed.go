package db

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"paywall-backend/catalog"
	"paywall-backend/models"
	"paywall-backend/store"
	"paywall-backend/utils"
)

const DemoWallet = "0x1234567890abcdef1234567890abcdef12345678"

var demoContent = models.ContentCreate{
	Title:         "Exclusive Video",
	Description:   "This is a premium video.",
	Price:         models.NewPrice(decimal.RequireFromString("5.00")),
	Currency:      models.DefaultCurrency,
	Type:          string(models.Video),
	ContentURL:    "https://www.w3schools.com/html/mov_bbb.mp4",
	WalletAddress: DemoWallet,
}

// SeedDemo publie une vidéo payante pour le créateur de démo,
// sauf s'il a déjà du contenu
func SeedDemo(ctx context.Context, svc *catalog.Service) error {
	existing, err := svc.List(ctx, store.ListFilter{CreatorWallet: DemoWallet, Limit: 1})
	if err != nil {
		return fmt.Errorf("checking demo content: %w", err)
	}
	if len(existing) > 0 {
		utils.LogInfo("Demo content already present")
		return nil
	}

	item, err := svc.Create(ctx, demoContent)
	if err != nil {
		return fmt.Errorf("seeding demo content: %w", err)
	}
	utils.LogSuccessWithContent(item.ID, "Demo content seeded")
	return nil
}
