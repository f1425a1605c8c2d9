package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/fizzbo19/dealercommand/internal/clock"
	"github.com/fizzbo19/dealercommand/internal/inventory/domain"
	"github.com/fizzbo19/dealercommand/internal/inventory/repository"
	"github.com/fizzbo19/dealercommand/internal/sheetstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestService(t *testing.T) (*Service, *clock.FakeClock) {
	log := zaptest.NewLogger(t)
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	fc := clock.NewFakeClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

	return &Service{
		log:   log.Named("inventory.service"),
		clock: fc,
		genID: node,
		repo:  repository.Provide(sheetstore.NewMemoryStore(), log),
	}, fc
}

func TestUpsertGeneratesID(t *testing.T) {
	svc, fc := newTestService(t)
	ctx := context.Background()

	item, persisted, err := svc.Upsert(ctx, domain.InventoryItem{
		Email: "Dealer@Example.com",
		Make:  "Toyota",
		Model: "Camry",
		Year:  2021,
		Price: 21500,
	})
	require.NoError(t, err)
	assert.True(t, persisted)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "dealer@example.com", item.Email)
	assert.Equal(t, fc.Now(), item.CreatedAt)
	assert.Equal(t, fc.Now(), item.UpdatedAt)

	items, err := svc.List(ctx, "dealer@example.com")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, item.ID, items[0].ID)
}

func TestUpsertPreservesCreatedAt(t *testing.T) {
	svc, fc := newTestService(t)
	ctx := context.Background()

	item, _, err := svc.Upsert(ctx, domain.InventoryItem{
		Email: "dealer@example.com",
		Make:  "Honda",
		Model: "Civic",
	})
	require.NoError(t, err)
	createdAt := item.CreatedAt

	fc.Advance(48 * time.Hour)

	item.Status = "sold"
	updated, persisted, err := svc.Upsert(ctx, item)
	require.NoError(t, err)
	assert.True(t, persisted)
	assert.Equal(t, createdAt, updated.CreatedAt)
	assert.Equal(t, fc.Now(), updated.UpdatedAt)

	items, err := svc.List(ctx, "dealer@example.com")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "sold", items[0].Status)
}

func TestUpsertValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.Upsert(ctx, domain.InventoryItem{Make: "Toyota"})
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)

	_, _, err = svc.Upsert(ctx, domain.InventoryItem{Email: "dealer@example.com"})
	assert.ErrorIs(t, err, domain.ErrInvalidItem)

	_, err = svc.List(ctx, "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)
}
