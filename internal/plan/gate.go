// Package plan holds the static plan-tier rules: feature availability and
// login seat limits. It has no persistence and no side effects.
package plan

import (
	"strings"

	"github.com/fizzbo19/dealercommand/internal/config"
	"go.uber.org/fx"
)

const Platinum = "platinum"

// Gate answers plan-entitlement questions from the hot-reloadable policy.
type Gate struct {
	holder *config.PlanConfigHolder
}

func NewGate(holder *config.PlanConfigHolder) *Gate {
	return &Gate{holder: holder}
}

// Policy returns the current plan policy snapshot.
func (g *Gate) Policy() config.PlanPolicy {
	return g.holder.Get()
}

// HasFeature reports whether the plan grants the named feature. An active
// trial is treated as platinum regardless of the base plan. Unknown plans
// grant nothing.
func (g *Gate) HasFeature(planName, feature string, trialActive bool) bool {
	name := Normalize(planName)
	if trialActive {
		name = Platinum
	}

	for _, granted := range g.holder.Get().Features[name] {
		if strings.EqualFold(granted, feature) {
			return true
		}
	}
	return false
}

// SeatLimit returns the login seat cap for the plan tier. Unrecognized plans
// fall back to the default limit.
func (g *Gate) SeatLimit(planName string) int {
	policy := g.holder.Get()
	if limit, ok := policy.SeatLimits[Normalize(planName)]; ok {
		return limit
	}
	return policy.DefaultSeatLimit
}

// Normalize lowercases and trims a plan label for lookups.
func Normalize(planName string) string {
	return strings.ToLower(strings.TrimSpace(planName))
}

// Module wires the plan gate.
var Module = fx.Module("plan",
	fx.Provide(NewGate),
)
