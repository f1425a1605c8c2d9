package domain

import (
	"context"
	"errors"

	entitlementdomain "github.com/fizzbo19/dealercommand/internal/entitlement/domain"
)

type CreateCheckoutRequest struct {
	Email string
	Plan  entitlementdomain.Plan
}

// Service bridges Stripe Checkout to the entitlement engine. A completed
// session carries the email and plan in metadata; FinalizeCheckout reads
// them back and applies the plan.
type Service interface {
	CreateCheckout(ctx context.Context, req CreateCheckoutRequest) (CheckoutSession, error)
	GetCheckout(ctx context.Context, sessionID string) (CheckoutSession, error)
	FinalizeCheckout(ctx context.Context, sessionID string) (CheckoutSession, error)
}

var (
	ErrNotConfigured     = errors.New("billing_not_configured")
	ErrInvalidEmail      = errors.New("invalid_email")
	ErrInvalidSession    = errors.New("invalid_session")
	ErrPlanNotBillable   = errors.New("plan_not_billable")
	ErrSessionIncomplete = errors.New("checkout_session_incomplete")
)
