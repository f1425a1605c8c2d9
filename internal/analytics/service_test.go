package analytics

import (
	"context"
	"strconv"
	"testing"
	"time"

	inventorydomain "github.com/fizzbo19/dealercommand/internal/inventory/domain"
	inventoryrepository "github.com/fizzbo19/dealercommand/internal/inventory/repository"
	recordsdomain "github.com/fizzbo19/dealercommand/internal/records/domain"
	recordsrepository "github.com/fizzbo19/dealercommand/internal/records/repository"
	"github.com/fizzbo19/dealercommand/internal/sheetstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestAnalytics(t *testing.T) (*Service, inventorydomain.Repository, recordsdomain.Repository) {
	log := zaptest.NewLogger(t)
	store := sheetstore.NewMemoryStore()
	inventory := inventoryrepository.Provide(store, log)
	records := recordsrepository.Provide(store, log)

	svc := &Service{
		log:       log.Named("analytics"),
		inventory: inventory,
		records:   records,
	}
	return svc, inventory, records
}

func TestDealerDashboardEmpty(t *testing.T) {
	svc, _, _ := newTestAnalytics(t)

	summary := svc.DealerDashboard(context.Background(), "Dealer@Example.com")

	assert.Equal(t, "dealer@example.com", summary.Email)
	assert.Equal(t, 0, summary.TotalListings)
	assert.Equal(t, 0.0, summary.AveragePrice)
	assert.Empty(t, summary.TopModels)
	assert.Equal(t, 0, summary.SocialPosts)
}

func TestDealerDashboardAggregates(t *testing.T) {
	svc, inventory, records := newTestAnalytics(t)
	ctx := context.Background()
	email := "dealer@example.com"

	items := []inventorydomain.InventoryItem{
		{ID: "1", Email: email, Make: "Toyota", Model: "Camry", Price: 20000, Mileage: 40000, Status: "Listed"},
		{ID: "2", Email: email, Make: "Toyota", Model: "Camry", Price: 22000, Mileage: 30000, Status: "listed"},
		{ID: "3", Email: email, Make: "Honda", Model: "Civic", Price: 18000, Mileage: 50000, Status: "sold"},
		{ID: "4", Email: "other@example.com", Make: "Ford", Model: "F-150", Price: 50000, Mileage: 1000},
	}
	for _, item := range items {
		require.True(t, inventory.Save(ctx, item))
	}

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	posts := []struct {
		platform   string
		engagement int
	}{
		{"Instagram", 120},
		{"instagram", 80},
		{"TikTok", 300},
	}
	for i, p := range posts {
		require.True(t, records.Save(ctx, recordsdomain.Record{
			ID:    strconv.Itoa(i + 1),
			Email: email,
			Type:  recordsdomain.RecordTypeSocialMedia,
			Payload: map[string]string{
				"platform":   p.platform,
				"engagement": strconv.Itoa(p.engagement),
			},
			CreatedAt: now.Add(time.Duration(i) * time.Hour),
		}))
	}

	summary := svc.DealerDashboard(ctx, email)

	assert.Equal(t, 3, summary.TotalListings)
	assert.Equal(t, 20000.0, summary.AveragePrice)
	assert.Equal(t, 40000.0, summary.AverageMileage)
	assert.Equal(t, map[string]int{"listed": 2, "sold": 1}, summary.StatusCounts)

	require.Len(t, summary.TopModels, 2)
	assert.Equal(t, ModelCount{Model: "Camry", Count: 2}, summary.TopModels[0])
	assert.Equal(t, ModelCount{Model: "Civic", Count: 1}, summary.TopModels[1])

	assert.Equal(t, 3, summary.SocialPosts)
	require.Len(t, summary.Platforms, 2)
	assert.Equal(t, "tiktok", summary.Platforms[0].Platform)
	assert.Equal(t, 300, summary.Platforms[0].TotalEngagement)
	assert.Equal(t, "instagram", summary.Platforms[1].Platform)
	assert.Equal(t, 2, summary.Platforms[1].Posts)
	assert.Equal(t, 200, summary.Platforms[1].TotalEngagement)
	assert.Equal(t, 100.0, summary.Platforms[1].AvgEngagement)
}
