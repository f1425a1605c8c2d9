package domain

import (
	"context"
	"errors"
)

// Service is the entitlement engine. Every operation performs at least one
// read and one write against the spreadsheet store; EnsureStatus is a
// read-or-create that always persists, even on the read path.
type Service interface {
	// EnsureStatus loads the activity record for the email, creating it with
	// a fresh trial window when absent, re-deriving expiry, and persisting
	// the result. The plan/status pair is mirrored into the profile table.
	EnsureStatus(ctx context.Context, email string, defaultPlan Plan) (DealershipActivity, error)

	// IncrementUsage unconditionally records usage. Quota checking is
	// CheckListingLimit's job, not this one's.
	IncrementUsage(ctx context.Context, email string, amount int) (int, error)

	// DecrementUsage returns usage, flooring the count at zero.
	DecrementUsage(ctx context.Context, email string, amount int) (int, error)

	// RemainingDays reports whole days left until expiry, never negative.
	RemainingDays(ctx context.Context, email string) (int, error)

	// ResetTrial unconditionally rewrites the record with a fresh trial
	// window, zero usage, and the Free Trial plan.
	ResetTrial(ctx context.Context, email string) (DealershipActivity, error)

	// GetDealershipStatus merges the activity record with profile fields and
	// computes the effective plan and remaining listing quota.
	GetDealershipStatus(ctx context.Context, email string) (DealershipStatusView, error)

	// CheckListingLimit reports whether the dealership may publish another
	// listing.
	CheckListingLimit(ctx context.Context, email string) (bool, error)

	// CanUserLogin enforces the per-plan seat cap. Re-login of an already
	// seated email is always allowed. Fails open when the profile table is
	// unreadable.
	CanUserLogin(ctx context.Context, email, planName string) (bool, error)

	// ApplyPlan persists a new base plan for the email. The billing bridge
	// calls this after a completed checkout.
	ApplyPlan(ctx context.Context, email string, newPlan Plan) error
}

var (
	ErrInvalidEmail  = errors.New("invalid_email")
	ErrInvalidAmount = errors.New("invalid_amount")
	ErrInvalidPlan   = errors.New("invalid_plan")
	ErrInvalidStatus = errors.New("invalid_status")
	ErrLockTimeout   = errors.New("lock_timeout")
)
