package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/fizzbo19/dealercommand/internal/clock"
	"github.com/fizzbo19/dealercommand/internal/records/domain"
	"github.com/fizzbo19/dealercommand/internal/records/repository"
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
		log:   log.Named("records.service"),
		clock: fc,
		genID: node,
		repo:  repository.Provide(sheetstore.NewMemoryStore(), log),
	}, fc
}

func TestSaveAndListRecords(t *testing.T) {
	svc, fc := newTestService(t)
	ctx := context.Background()
	email := "dealer@example.com"

	first, persisted, err := svc.Save(ctx, email, domain.RecordTypeSocialMedia, map[string]string{
		"platform":   "Instagram",
		"engagement": "120",
	})
	require.NoError(t, err)
	assert.True(t, persisted)
	assert.NotEmpty(t, first.ID)

	fc.Advance(time.Hour)
	second, _, err := svc.Save(ctx, email, domain.RecordTypeSocialMedia, map[string]string{
		"platform": "TikTok",
	})
	require.NoError(t, err)

	list, err := svc.List(ctx, email, domain.RecordTypeSocialMedia)
	require.NoError(t, err)
	require.Len(t, list, 2)
	// Oldest first.
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
	assert.Equal(t, "Instagram", list[0].Payload["platform"])
}

func TestRecordTypesAreIsolated(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	email := "dealer@example.com"

	_, _, err := svc.Save(ctx, email, domain.RecordTypeTrialUsage, map[string]string{"action": "listing_created"})
	require.NoError(t, err)
	_, _, err = svc.Save(ctx, email, domain.RecordTypeUserActivity, map[string]string{"action": "login"})
	require.NoError(t, err)

	usage, err := svc.List(ctx, email, domain.RecordTypeTrialUsage)
	require.NoError(t, err)
	assert.Len(t, usage, 1)

	activity, err := svc.List(ctx, email, domain.RecordTypeUserActivity)
	require.NoError(t, err)
	assert.Len(t, activity, 1)
	assert.Equal(t, "login", activity[0].Payload["action"])
}

func TestSaveValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.Save(ctx, "", domain.RecordTypeUserActivity, map[string]string{"a": "b"})
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)

	_, _, err = svc.Save(ctx, "dealer@example.com", domain.RecordType("Bogus"), map[string]string{"a": "b"})
	assert.ErrorIs(t, err, domain.ErrInvalidRecordType)

	_, _, err = svc.Save(ctx, "dealer@example.com", domain.RecordTypeUserActivity, nil)
	assert.ErrorIs(t, err, domain.ErrEmptyPayload)
}
