package service

import (
	"context"
	"strings"

	"github.com/fizzbo19/dealercommand/internal/billing/domain"
	"github.com/fizzbo19/dealercommand/internal/config"
	entitlementdomain "github.com/fizzbo19/dealercommand/internal/entitlement/domain"
	"github.com/fizzbo19/dealercommand/internal/observability/metrics"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Service struct {
	log          *zap.Logger
	stripe       *stripeClient
	entitlements entitlementdomain.Service
	metrics      *metrics.Metrics
	successURL   string
	cancelURL    string
	prices       map[string]string
}

type ServiceParam struct {
	fx.In

	Log          *zap.Logger
	Config       config.Config
	Entitlements entitlementdomain.Service
	Metrics      *metrics.Metrics
}

func New(p ServiceParam) domain.Service {
	return &Service{
		log:          p.Log.Named("billing.service"),
		stripe:       newStripeClient(p.Config.StripeSecretKey),
		entitlements: p.Entitlements,
		metrics:      p.Metrics,
		successURL:   p.Config.StripeSuccessURL,
		cancelURL:    p.Config.StripeCancelURL,
		prices: map[string]string{
			entitlementdomain.PlanPremium.Normalized():  p.Config.StripePricePremium,
			entitlementdomain.PlanPro.Normalized():      p.Config.StripePricePro,
			entitlementdomain.PlanPlatinum.Normalized(): p.Config.StripePricePlatinum,
		},
	}
}

// CreateCheckout implements domain.Service.
func (s *Service) CreateCheckout(ctx context.Context, req domain.CreateCheckoutRequest) (domain.CheckoutSession, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return domain.CheckoutSession{}, domain.ErrInvalidEmail
	}

	planName := req.Plan.Normalized()
	priceID, ok := s.prices[planName]
	if !ok {
		return domain.CheckoutSession{}, domain.ErrPlanNotBillable
	}
	if strings.TrimSpace(priceID) == "" {
		return domain.CheckoutSession{}, domain.ErrNotConfigured
	}

	raw, err := s.stripe.createCheckoutSession(
		ctx, email, planName, priceID, s.successURL, s.cancelURL, uuid.NewString(),
	)
	if err != nil {
		s.log.Warn("stripe checkout create failed",
			zap.String("email", email),
			zap.String("plan", planName),
			zap.Error(err),
		)
		return domain.CheckoutSession{}, err
	}

	s.metrics.RecordCheckoutSession(ctx, planName)
	s.log.Info("checkout session created",
		zap.String("email", email),
		zap.String("plan", planName),
		zap.String("session_id", raw.ID),
	)
	return toSession(raw), nil
}

// GetCheckout implements domain.Service.
func (s *Service) GetCheckout(ctx context.Context, sessionID string) (domain.CheckoutSession, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return domain.CheckoutSession{}, domain.ErrInvalidSession
	}
	raw, err := s.stripe.retrieveCheckoutSession(ctx, sessionID)
	if err != nil {
		return domain.CheckoutSession{}, err
	}
	return toSession(raw), nil
}

// FinalizeCheckout implements domain.Service. It re-reads the session from
// Stripe rather than trusting caller-supplied state, then applies the plan
// from the session metadata.
func (s *Service) FinalizeCheckout(ctx context.Context, sessionID string) (domain.CheckoutSession, error) {
	session, err := s.GetCheckout(ctx, sessionID)
	if err != nil {
		return domain.CheckoutSession{}, err
	}
	if !session.Complete() {
		return session, domain.ErrSessionIncomplete
	}

	newPlan, err := entitlementdomain.ParsePlan(session.Plan)
	if err != nil {
		s.log.Error("checkout session carries unknown plan",
			zap.String("session_id", session.ID),
			zap.String("plan", session.Plan),
		)
		return session, err
	}
	if err := s.entitlements.ApplyPlan(ctx, session.Email, newPlan); err != nil {
		return session, err
	}

	s.log.Info("checkout finalized",
		zap.String("email", session.Email),
		zap.String("plan", session.Plan),
		zap.String("session_id", session.ID),
	)
	return session, nil
}

func toSession(raw stripeCheckoutSession) domain.CheckoutSession {
	email := raw.Metadata["email"]
	if email == "" {
		email = raw.CustomerEmail
	}
	return domain.CheckoutSession{
		ID:            raw.ID,
		URL:           raw.URL,
		Status:        raw.Status,
		PaymentStatus: raw.PaymentStatus,
		Email:         email,
		Plan:          raw.Metadata["plan"],
		AmountTotal:   raw.AmountTotal,
		Currency:      raw.Currency,
	}
}
