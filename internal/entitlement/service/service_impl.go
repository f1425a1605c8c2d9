package service

import (
	"context"
	"strings"
	"time"

	"github.com/fizzbo19/dealercommand/internal/clock"
	"github.com/fizzbo19/dealercommand/internal/entitlement/domain"
	"github.com/fizzbo19/dealercommand/internal/lock"
	"github.com/fizzbo19/dealercommand/internal/observability/metrics"
	"github.com/fizzbo19/dealercommand/internal/plan"
	profiledomain "github.com/fizzbo19/dealercommand/internal/profile/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	lockKeyPrefix = "entitlement:"
	lockTTL       = 10 * time.Second
	lockWait      = 5 * time.Second
	lockRetry     = 50 * time.Millisecond
)

type Service struct {
	log      *zap.Logger
	clock    clock.Clock
	repo     domain.Repository
	profiles profiledomain.Repository
	gate     *plan.Gate
	locker   *lock.Locker
	keyed    *lock.KeyedMutex
	metrics  *metrics.Metrics
}

type ServiceParam struct {
	fx.In

	Log      *zap.Logger
	Clock    clock.Clock
	Repo     domain.Repository
	Profiles profiledomain.Repository
	Gate     *plan.Gate
	Locker   *lock.Locker `optional:"true"`
	Keyed    *lock.KeyedMutex
	Metrics  *metrics.Metrics
}

func New(p ServiceParam) domain.Service {
	return &Service{
		log:      p.Log.Named("entitlement.service"),
		clock:    p.Clock,
		repo:     p.Repo,
		profiles: p.Profiles,
		gate:     p.Gate,
		locker:   p.Locker,
		keyed:    p.Keyed,
		metrics:  p.Metrics,
	}
}

// EnsureStatus implements domain.Service.
func (s *Service) EnsureStatus(ctx context.Context, email string, defaultPlan domain.Plan) (domain.DealershipActivity, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return domain.DealershipActivity{}, err
	}

	release, err := s.lockEmail(ctx, email)
	if err != nil {
		return domain.DealershipActivity{}, err
	}
	defer release()

	s.metrics.RecordEntitlementCheck(ctx, "ensure_status")
	return s.ensureStatusLocked(ctx, email, defaultPlan)
}

// IncrementUsage implements domain.Service.
func (s *Service) IncrementUsage(ctx context.Context, email string, amount int) (int, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	return s.adjustUsage(ctx, email, amount, "increment")
}

// DecrementUsage implements domain.Service.
func (s *Service) DecrementUsage(ctx context.Context, email string, amount int) (int, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	return s.adjustUsage(ctx, email, -amount, "decrement")
}

// RemainingDays implements domain.Service.
func (s *Service) RemainingDays(ctx context.Context, email string) (int, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return 0, err
	}

	release, err := s.lockEmail(ctx, email)
	if err != nil {
		return 0, err
	}
	defer release()

	activity, err := s.ensureStatusLocked(ctx, email, domain.PlanFreeTrial)
	if err != nil {
		return 0, err
	}
	return remainingDays(s.clock.Now(), activity.ExpiryDate), nil
}

// ResetTrial implements domain.Service. The prior record is overwritten
// wholesale, not merged.
func (s *Service) ResetTrial(ctx context.Context, email string) (domain.DealershipActivity, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return domain.DealershipActivity{}, err
	}

	release, err := s.lockEmail(ctx, email)
	if err != nil {
		return domain.DealershipActivity{}, err
	}
	defer release()

	now := s.clock.Now()
	activity := domain.DealershipActivity{
		Email:      email,
		StartDate:  now,
		ExpiryDate: now.AddDate(0, 0, s.gate.Policy().TrialDays),
		Status:     domain.TrialStatusNew,
		UsageCount: 0,
		Plan:       domain.PlanFreeTrial,
	}
	s.persist(ctx, activity)

	s.log.Info("trial reset", zap.String("email", email))
	return activity, nil
}

// GetDealershipStatus implements domain.Service.
func (s *Service) GetDealershipStatus(ctx context.Context, email string) (domain.DealershipStatusView, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return domain.DealershipStatusView{}, err
	}

	release, err := s.lockEmail(ctx, email)
	if err != nil {
		return domain.DealershipStatusView{}, err
	}
	defer release()

	s.metrics.RecordEntitlementCheck(ctx, "get_status")

	activity, err := s.ensureStatusLocked(ctx, email, domain.PlanFreeTrial)
	if err != nil {
		return domain.DealershipStatusView{}, err
	}

	now := s.clock.Now()
	policy := s.gate.Policy()

	// An active trial grants platinum-equivalent access regardless of the
	// base plan; after expiry the base plan governs.
	effective := activity.Plan
	if !now.After(activity.ExpiryDate) {
		effective = domain.PlanPlatinum
	}

	remaining := policy.UnlimitedListings
	if effective == domain.PlanFreeTrial {
		remaining = policy.MaxFreeListings - activity.UsageCount
		if remaining < 0 {
			remaining = 0
		}
	}

	view := domain.DealershipStatusView{
		Email:             email,
		Status:            activity.Status,
		StartDate:         activity.StartDate,
		ExpiryDate:        activity.ExpiryDate,
		UsageCount:        activity.UsageCount,
		Plan:              activity.Plan,
		EffectivePlan:     effective,
		RemainingListings: remaining,
		RemainingDays:     remainingDays(now, activity.ExpiryDate),
	}

	if profile := s.profiles.FindByEmail(ctx, email); profile != nil {
		view.Name = profile.Name
		view.Phone = profile.Phone
		view.Location = profile.Location
	}
	return view, nil
}

// CheckListingLimit implements domain.Service.
func (s *Service) CheckListingLimit(ctx context.Context, email string) (bool, error) {
	view, err := s.GetDealershipStatus(ctx, email)
	if err != nil {
		return false, err
	}
	return view.RemainingListings > 0, nil
}

// CanUserLogin implements domain.Service. An unreadable profile table or a
// missing Plan column yields an empty seat count, so the check fails open.
func (s *Service) CanUserLogin(ctx context.Context, email, planName string) (bool, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return false, err
	}

	s.metrics.RecordEntitlementCheck(ctx, "can_login")

	limit := s.gate.SeatLimit(planName)
	normalized := plan.Normalize(planName)

	seats := make(map[string]struct{})
	for _, p := range s.profiles.List(ctx) {
		if plan.Normalize(p.Plan) != normalized {
			continue
		}
		seat := strings.ToLower(strings.TrimSpace(p.Email))
		if seat == "" {
			continue
		}
		seats[seat] = struct{}{}
	}

	if _, seated := seats[email]; seated {
		return true, nil
	}
	if len(seats) < limit {
		return true, nil
	}

	s.log.Info("login denied, seats full",
		zap.String("plan", normalized),
		zap.Int("limit", limit),
		zap.Int("seated", len(seats)),
	)
	return false, nil
}

// ApplyPlan implements domain.Service.
func (s *Service) ApplyPlan(ctx context.Context, email string, newPlan domain.Plan) error {
	email, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	if _, err := domain.ParsePlan(string(newPlan)); err != nil {
		return err
	}

	release, err := s.lockEmail(ctx, email)
	if err != nil {
		return err
	}
	defer release()

	activity, err := s.ensureStatusLocked(ctx, email, newPlan)
	if err != nil {
		return err
	}
	activity.Plan = newPlan
	s.persist(ctx, activity)

	s.log.Info("plan applied", zap.String("email", email), zap.String("plan", string(newPlan)))
	return nil
}

func (s *Service) adjustUsage(ctx context.Context, email string, delta int, direction string) (int, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return 0, err
	}
	if delta == 0 {
		return 0, domain.ErrInvalidAmount
	}

	release, err := s.lockEmail(ctx, email)
	if err != nil {
		return 0, err
	}
	defer release()

	activity, err := s.ensureStatusLocked(ctx, email, domain.PlanFreeTrial)
	if err != nil {
		return 0, err
	}

	activity.UsageCount += delta
	if activity.UsageCount < 0 {
		activity.UsageCount = 0
	}
	s.persist(ctx, activity)

	s.metrics.RecordUsageEvent(ctx, direction)
	return activity.UsageCount, nil
}

// ensureStatusLocked is the single read-or-create-and-persist path. It
// always writes, so even pure reads refresh the stored record. Callers must
// hold the email lock.
func (s *Service) ensureStatusLocked(ctx context.Context, email string, defaultPlan domain.Plan) (domain.DealershipActivity, error) {
	if defaultPlan == "" {
		defaultPlan = domain.PlanFreeTrial
	}

	now := s.clock.Now()
	trialDays := s.gate.Policy().TrialDays

	stored, err := s.repo.FindByEmail(ctx, email, now, now.AddDate(0, 0, trialDays))
	if err != nil {
		return domain.DealershipActivity{}, err
	}

	var activity domain.DealershipActivity
	if stored == nil {
		activity = domain.DealershipActivity{
			Email:      email,
			StartDate:  now,
			ExpiryDate: now.AddDate(0, 0, trialDays),
			Status:     domain.TrialStatusNew,
			UsageCount: 0,
			Plan:       defaultPlan,
		}
	} else {
		activity = *stored
		if activity.Plan == "" {
			activity.Plan = defaultPlan
		}
		if now.After(activity.ExpiryDate) && activity.Status != domain.TrialStatusExpired {
			activity.Status = domain.TrialStatusExpired
		}
	}

	s.persist(ctx, activity)
	return activity, nil
}

// persist writes the activity record and mirrors plan/status into the
// profile table. A lost write is logged by the repository and the computed
// value still flows back to the caller.
func (s *Service) persist(ctx context.Context, activity domain.DealershipActivity) {
	s.repo.Save(ctx, activity)

	mirror := profiledomain.DealershipProfile{
		Email:       activity.Email,
		Plan:        string(activity.Plan),
		TrialStatus: string(activity.Status),
	}
	if existing := s.profiles.FindByEmail(ctx, activity.Email); existing != nil {
		mirror.Name = existing.Name
		mirror.Phone = existing.Phone
		mirror.Location = existing.Location
	}
	s.profiles.Save(ctx, mirror)
}

func (s *Service) lockEmail(ctx context.Context, email string) (func(), error) {
	if s.locker == nil {
		return s.keyed.Lock(email), nil
	}

	key := lockKeyPrefix + email
	deadline := time.Now().Add(lockWait)
	for {
		token, ok, err := s.locker.TryLock(ctx, key, lockTTL)
		if err != nil {
			// Redis being down must not take entitlement checks with it.
			s.log.Warn("redis lock unavailable, falling back to local lock", zap.Error(err))
			return s.keyed.Lock(email), nil
		}
		if ok {
			return func() {
				if err := s.locker.Release(context.WithoutCancel(ctx), key, token); err != nil {
					s.log.Warn("lock release failed", zap.String("key", key), zap.Error(err))
				}
			}, nil
		}
		if time.Now().After(deadline) {
			return nil, domain.ErrLockTimeout
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockRetry):
		}
	}
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return "", domain.ErrInvalidEmail
	}
	return email, nil
}

func remainingDays(now, expiry time.Time) int {
	days := int(expiry.Sub(now).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
