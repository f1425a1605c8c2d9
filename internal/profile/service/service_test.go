package service

import (
	"context"
	"testing"

	"github.com/fizzbo19/dealercommand/internal/profile/domain"
	"github.com/fizzbo19/dealercommand/internal/profile/repository"
	"github.com/fizzbo19/dealercommand/internal/sheetstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestService(t *testing.T) (*Service, *sheetstore.MemoryStore) {
	log := zaptest.NewLogger(t)
	store := sheetstore.NewMemoryStore()
	return &Service{
		log:  log.Named("profile.service"),
		repo: repository.Provide(store, log),
	}, store
}

func TestSaveAndGetProfile(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	persisted, err := svc.Save(ctx, domain.DealershipProfile{
		Email:    "Dealer@Example.com",
		Name:     "Sunrise Motors",
		Phone:    "555-0100",
		Location: "Austin, TX",
		Plan:     "premium",
	})
	require.NoError(t, err)
	assert.True(t, persisted)

	got, err := svc.Get(ctx, "dealer@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Sunrise Motors", got.Name)
	assert.Equal(t, "premium", got.Plan)
}

func TestGetMissingProfile(t *testing.T) {
	svc, _ := newTestService(t)

	got, err := svc.Get(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Get(ctx, "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)

	_, err = svc.Save(ctx, domain.DealershipProfile{Name: "No Email"})
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)
}

func TestSaveReportsLostWrite(t *testing.T) {
	svc, store := newTestService(t)
	store.SetFail(true)

	persisted, err := svc.Save(context.Background(), domain.DealershipProfile{Email: "dealer@example.com"})
	require.NoError(t, err)
	assert.False(t, persisted)
}
