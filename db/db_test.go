package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paywall-backend/catalog"
	"paywall-backend/models"
	"paywall-backend/store"
)

func TestOpen_RequiresURL(t *testing.T) {
	_, err := Open("")

	assert.Error(t, err)
}

func TestSeedDemo(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	svc := catalog.NewService(s)

	require.NoError(t, SeedDemo(ctx, svc))
	require.NoError(t, SeedDemo(ctx, svc))

	items, err := s.ListContent(ctx, store.ListFilter{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, models.Video, items[0].Type)
	assert.Equal(t, "5", items[0].Price.String())
	assert.Equal(t, "0x1234567890AbcdEF1234567890aBcdef12345678", items[0].Creator.WalletAddress)
}
