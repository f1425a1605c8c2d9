package service

import (
	"context"
	"testing"

	"github.com/fizzbo19/dealercommand/internal/billing/domain"
	entitlementdomain "github.com/fizzbo19/dealercommand/internal/entitlement/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func newTestBillingService(t *testing.T) *Service {
	return &Service{
		log:        zaptest.NewLogger(t).Named("billing.service"),
		stripe:     newStripeClient(""),
		successURL: "https://app.example.com/success",
		cancelURL:  "https://app.example.com/cancel",
		prices: map[string]string{
			"premium":  "price_premium",
			"pro":      "price_pro",
			"platinum": "",
		},
	}
}

func TestCreateCheckoutValidation(t *testing.T) {
	svc := newTestBillingService(t)
	ctx := context.Background()

	_, err := svc.CreateCheckout(ctx, domain.CreateCheckoutRequest{
		Email: "not-an-email",
		Plan:  entitlementdomain.PlanPremium,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)

	_, err = svc.CreateCheckout(ctx, domain.CreateCheckoutRequest{
		Email: "dealer@example.com",
		Plan:  entitlementdomain.PlanFreeTrial,
	})
	assert.ErrorIs(t, err, domain.ErrPlanNotBillable)

	// A billable tier with no price configured cannot be sold.
	_, err = svc.CreateCheckout(ctx, domain.CreateCheckoutRequest{
		Email: "dealer@example.com",
		Plan:  entitlementdomain.PlanPlatinum,
	})
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestGetCheckoutRequiresSessionID(t *testing.T) {
	svc := newTestBillingService(t)

	_, err := svc.GetCheckout(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidSession)
}

func TestSessionComplete(t *testing.T) {
	assert.True(t, domain.CheckoutSession{Status: "complete", PaymentStatus: "paid"}.Complete())
	assert.True(t, domain.CheckoutSession{Status: "complete", PaymentStatus: "no_payment_required"}.Complete())
	assert.False(t, domain.CheckoutSession{Status: "complete", PaymentStatus: "unpaid"}.Complete())
	assert.False(t, domain.CheckoutSession{Status: "open", PaymentStatus: "paid"}.Complete())
}
