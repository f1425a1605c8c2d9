package domain

// CheckoutSession is the subset of a Stripe Checkout Session the app cares
// about. Email and Plan come back through session metadata so the finalize
// step can apply the purchased plan without a separate lookup.
type CheckoutSession struct {
	ID            string
	URL           string
	Status        string
	PaymentStatus string
	Email         string
	Plan          string
	AmountTotal   int64
	Currency      string
}

// Complete reports whether the session finished and was paid for. Stripe
// marks zero-amount sessions as no_payment_required rather than paid.
func (s CheckoutSession) Complete() bool {
	if s.Status != "complete" {
		return false
	}
	return s.PaymentStatus == "paid" || s.PaymentStatus == "no_payment_required"
}
