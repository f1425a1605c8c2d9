package service

import (
	"context"
	"testing"
	"time"

	"github.com/fizzbo19/dealercommand/internal/clock"
	"github.com/fizzbo19/dealercommand/internal/config"
	"github.com/fizzbo19/dealercommand/internal/entitlement/domain"
	"github.com/fizzbo19/dealercommand/internal/entitlement/repository"
	"github.com/fizzbo19/dealercommand/internal/lock"
	"github.com/fizzbo19/dealercommand/internal/plan"
	profiledomain "github.com/fizzbo19/dealercommand/internal/profile/domain"
	profilerepository "github.com/fizzbo19/dealercommand/internal/profile/repository"
	"github.com/fizzbo19/dealercommand/internal/sheetstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestService(t *testing.T, now time.Time) (*Service, *clock.FakeClock, *sheetstore.MemoryStore) {
	log := zaptest.NewLogger(t)
	fc := clock.NewFakeClock(now)
	store := sheetstore.NewMemoryStore()
	gate := plan.NewGate(config.NewStaticPlanConfigHolder(config.DefaultPlanPolicy()))

	svc := &Service{
		log:      log.Named("entitlement.service"),
		clock:    fc,
		repo:     repository.Provide(store, log),
		profiles: profilerepository.Provide(store, log),
		gate:     gate,
		keyed:    lock.NewKeyedMutex(),
	}
	return svc, fc, store
}

func TestEnsureStatusCreatesFreshTrial(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc, _, store := newTestService(t, now)
	ctx := context.Background()

	activity, err := svc.EnsureStatus(ctx, "  Dealer@Example.COM ", "")
	require.NoError(t, err)

	assert.Equal(t, "dealer@example.com", activity.Email)
	assert.Equal(t, domain.TrialStatusNew, activity.Status)
	assert.Equal(t, 0, activity.UsageCount)
	assert.Equal(t, domain.PlanFreeTrial, activity.Plan)
	assert.Equal(t, now, activity.StartDate)
	assert.Equal(t, now.AddDate(0, 0, 30), activity.ExpiryDate)

	rows := store.GetTable(ctx, repository.TableName)
	require.Len(t, rows, 1)
	assert.Equal(t, "dealer@example.com", rows[0]["Email"])

	// The plan/status pair is mirrored into the profile table.
	profiles := store.GetTable(ctx, profilerepository.TableName)
	require.Len(t, profiles, 1)
	assert.Equal(t, string(domain.PlanFreeTrial), profiles[0]["Plan"])
	assert.Equal(t, string(domain.TrialStatusNew), profiles[0]["Trial_Status"])
}

func TestEnsureStatusRejectsBadEmail(t *testing.T) {
	svc, _, _ := newTestService(t, time.Now().UTC())

	_, err := svc.EnsureStatus(context.Background(), "not-an-email", "")
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)

	_, err = svc.EnsureStatus(context.Background(), "   ", "")
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)
}

func TestEnsureStatusExpiresLapsedTrial(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc, fc, _ := newTestService(t, now)
	ctx := context.Background()

	_, err := svc.EnsureStatus(ctx, "dealer@example.com", "")
	require.NoError(t, err)

	fc.Advance(31 * 24 * time.Hour)

	activity, err := svc.EnsureStatus(ctx, "dealer@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, domain.TrialStatusExpired, activity.Status)
	// The original window is preserved, only the status flips.
	assert.Equal(t, now.AddDate(0, 0, 30), activity.ExpiryDate)
}

func TestUsageAdjustments(t *testing.T) {
	svc, _, _ := newTestService(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()
	email := "dealer@example.com"

	usage, err := svc.IncrementUsage(ctx, email, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, usage)

	usage, err = svc.DecrementUsage(ctx, email, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, usage)

	// Oversized decrements floor at zero instead of going negative.
	usage, err = svc.DecrementUsage(ctx, email, 1000000)
	require.NoError(t, err)
	assert.Equal(t, 0, usage)

	_, err = svc.IncrementUsage(ctx, email, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	_, err = svc.DecrementUsage(ctx, email, -3)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestUsageSurvivesEnsure(t *testing.T) {
	svc, _, _ := newTestService(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()
	email := "dealer@example.com"

	_, err := svc.IncrementUsage(ctx, email, 4)
	require.NoError(t, err)

	activity, err := svc.EnsureStatus(ctx, email, "")
	require.NoError(t, err)
	assert.Equal(t, 4, activity.UsageCount)
}

func TestActiveTrialGrantsPlatinumAccess(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	svc, _, _ := newTestService(t, now)
	ctx := context.Background()

	view, err := svc.GetDealershipStatus(ctx, "dealer@example.com")
	require.NoError(t, err)

	assert.Equal(t, domain.PlanFreeTrial, view.Plan)
	assert.Equal(t, domain.PlanPlatinum, view.EffectivePlan)
	assert.Equal(t, 99, view.RemainingListings)
	assert.Equal(t, 30, view.RemainingDays)
}

func TestExpiredTrialQuota(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	svc, fc, _ := newTestService(t, now)
	ctx := context.Background()
	email := "dealer@example.com"

	_, err := svc.IncrementUsage(ctx, email, 12)
	require.NoError(t, err)

	fc.Advance(31 * 24 * time.Hour)

	view, err := svc.GetDealershipStatus(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, domain.PlanFreeTrial, view.EffectivePlan)
	assert.Equal(t, 3, view.RemainingListings)
	assert.Equal(t, 0, view.RemainingDays)

	allowed, err := svc.CheckListingLimit(ctx, email)
	require.NoError(t, err)
	assert.True(t, allowed)

	_, err = svc.IncrementUsage(ctx, email, 8)
	require.NoError(t, err)

	view, err = svc.GetDealershipStatus(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, 0, view.RemainingListings)

	allowed, err = svc.CheckListingLimit(ctx, email)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestResetTrialOverwritesPriorState(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	svc, fc, _ := newTestService(t, now)
	ctx := context.Background()
	email := "dealer@example.com"

	_, err := svc.IncrementUsage(ctx, email, 500)
	require.NoError(t, err)
	fc.Advance(60 * 24 * time.Hour)

	resetAt := fc.Now()
	activity, err := svc.ResetTrial(ctx, email)
	require.NoError(t, err)

	assert.Equal(t, domain.TrialStatusNew, activity.Status)
	assert.Equal(t, 0, activity.UsageCount)
	assert.Equal(t, domain.PlanFreeTrial, activity.Plan)
	assert.Equal(t, resetAt, activity.StartDate)
	assert.Equal(t, resetAt.AddDate(0, 0, 30), activity.ExpiryDate)
}

func TestRemainingDaysNeverNegative(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	svc, fc, _ := newTestService(t, now)
	ctx := context.Background()
	email := "dealer@example.com"

	days, err := svc.RemainingDays(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, 30, days)

	fc.Advance(29*24*time.Hour + 12*time.Hour)
	days, err = svc.RemainingDays(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, 0, days)

	fc.Advance(90 * 24 * time.Hour)
	days, err = svc.RemainingDays(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, 0, days)
}

func TestCanUserLoginSeatLimit(t *testing.T) {
	svc, _, _ := newTestService(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	seed := []profiledomain.DealershipProfile{
		{Email: "a@example.com", Plan: "free"},
		{Email: "B@Example.com", Plan: "Free"},
		{Email: "c@example.com", Plan: "premium"},
	}
	for _, p := range seed {
		svc.profiles.Save(ctx, p)
	}

	// The free tier seats two; both existing seats re-login fine.
	allowed, err := svc.CanUserLogin(ctx, "a@example.com", "free")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = svc.CanUserLogin(ctx, "b@example.com", "free")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = svc.CanUserLogin(ctx, "new@example.com", "free")
	require.NoError(t, err)
	assert.False(t, allowed)

	// Premium seats three, only one taken.
	allowed, err = svc.CanUserLogin(ctx, "new@example.com", "premium")
	require.NoError(t, err)
	assert.True(t, allowed)

	// Unknown plans fall back to a single seat and fail open when empty.
	allowed, err = svc.CanUserLogin(ctx, "new@example.com", "bronze")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestApplyPlan(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	svc, fc, _ := newTestService(t, now)
	ctx := context.Background()
	email := "dealer@example.com"

	require.NoError(t, svc.ApplyPlan(ctx, email, domain.PlanPremium))

	err := svc.ApplyPlan(ctx, email, domain.Plan("gold"))
	assert.ErrorIs(t, err, domain.ErrInvalidPlan)

	fc.Advance(31 * 24 * time.Hour)
	view, err := svc.GetDealershipStatus(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, domain.PlanPremium, view.Plan)
	assert.Equal(t, domain.PlanPremium, view.EffectivePlan)
	assert.Equal(t, 99, view.RemainingListings)
}

func TestStoreOutageDoesNotFailReads(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	svc, _, store := newTestService(t, now)
	ctx := context.Background()

	store.SetFail(true)

	activity, err := svc.EnsureStatus(ctx, "dealer@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, domain.TrialStatusNew, activity.Status)
	assert.Equal(t, now.AddDate(0, 0, 30), activity.ExpiryDate)

	usage, err := svc.IncrementUsage(ctx, "dealer@example.com", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, usage)
}

func TestConcurrentIncrementsSerialize(t *testing.T) {
	svc, _, _ := newTestService(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()
	email := "dealer@example.com"

	const workers = 8
	done := make(chan struct{})
	for i := 0; i < workers; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			_, _ = svc.IncrementUsage(ctx, email, 1)
		}()
	}
	for i := 0; i < workers; i++ {
		<-done
	}

	activity, err := svc.EnsureStatus(ctx, email, "")
	require.NoError(t, err)
	assert.Equal(t, workers, activity.UsageCount)
}
