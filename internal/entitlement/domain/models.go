// Package domain contains the dealership trial and entitlement records.
package domain

import (
	"strings"
	"time"
)

// TrialStatus represents lifecycle states for a dealership trial.
type TrialStatus string

const (
	TrialStatusNew     TrialStatus = "new"
	TrialStatusActive  TrialStatus = "active"
	TrialStatusExpired TrialStatus = "expired"
)

// ParseTrialStatus validates a stored status value. A blank value parses to
// active: existing rows written before the status column was introduced are
// treated as live trials.
func ParseTrialStatus(raw string) (TrialStatus, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return TrialStatusActive, nil
	case string(TrialStatusNew):
		return TrialStatusNew, nil
	case string(TrialStatusActive):
		return TrialStatusActive, nil
	case string(TrialStatusExpired):
		return TrialStatusExpired, nil
	default:
		return "", ErrInvalidStatus
	}
}

// Plan is a closed set of subscription tiers.
type Plan string

const (
	PlanFreeTrial Plan = "Free Trial"
	PlanFree      Plan = "free"
	PlanPremium   Plan = "premium"
	PlanPro       Plan = "pro"
	PlanPlatinum  Plan = "platinum"
)

// ParsePlan validates a plan label case-insensitively.
func ParsePlan(raw string) (Plan, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "free trial", "free_trial", "trial":
		return PlanFreeTrial, nil
	case string(PlanFree):
		return PlanFree, nil
	case string(PlanPremium):
		return PlanPremium, nil
	case string(PlanPro):
		return PlanPro, nil
	case string(PlanPlatinum):
		return PlanPlatinum, nil
	default:
		return "", ErrInvalidPlan
	}
}

// Normalized returns the lowercase label used for policy lookups.
func (p Plan) Normalized() string {
	return strings.ToLower(string(p))
}

// DealershipActivity is the authoritative entitlement record, one logical
// row per dealer email.
type DealershipActivity struct {
	Email      string
	StartDate  time.Time
	ExpiryDate time.Time
	Status     TrialStatus
	UsageCount int
	Plan       Plan
}

// DealershipStatusView combines the activity record with profile fields and
// the derived entitlement figures.
type DealershipStatusView struct {
	Email             string      `json:"email"`
	Status            TrialStatus `json:"status"`
	StartDate         time.Time   `json:"start_date"`
	ExpiryDate        time.Time   `json:"expiry_date"`
	UsageCount        int         `json:"usage_count"`
	Plan              Plan        `json:"plan"`
	EffectivePlan     Plan        `json:"effective_plan"`
	RemainingListings int         `json:"remaining_listings"`
	RemainingDays     int         `json:"remaining_days"`
	Name              string      `json:"name"`
	Phone             string      `json:"phone"`
	Location          string      `json:"location"`
}
