package plan

import (
	"testing"

	"github.com/fizzbo19/dealercommand/internal/config"
	"github.com/stretchr/testify/assert"
)

func newTestGate() *Gate {
	return NewGate(config.NewStaticPlanConfigHolder(config.DefaultPlanPolicy()))
}

func TestHasFeature(t *testing.T) {
	g := newTestGate()

	assert.True(t, g.HasFeature("pro", "analytics.pro", false))
	assert.True(t, g.HasFeature("platinum", "analytics.platinum", false))
	assert.True(t, g.HasFeature(" Platinum ", "Analytics.Pro", false))

	assert.False(t, g.HasFeature("pro", "analytics.platinum", false))
	assert.False(t, g.HasFeature("free", "analytics.pro", false))
	assert.False(t, g.HasFeature("gold", "analytics.pro", false))

	// An active trial is platinum regardless of the base plan.
	assert.True(t, g.HasFeature("free", "analytics.platinum", true))
	assert.True(t, g.HasFeature("gold", "analytics.pro", true))
}

func TestSeatLimit(t *testing.T) {
	g := newTestGate()

	assert.Equal(t, 2, g.SeatLimit("free"))
	assert.Equal(t, 3, g.SeatLimit("Premium"))
	assert.Equal(t, 8, g.SeatLimit("pro"))
	assert.Equal(t, 99, g.SeatLimit(" platinum "))
	assert.Equal(t, 1, g.SeatLimit("bronze"))
	assert.Equal(t, 1, g.SeatLimit(""))
}

func TestSeatLimitTracksPolicyUpdates(t *testing.T) {
	policy := config.DefaultPlanPolicy()
	holder := config.NewStaticPlanConfigHolder(policy)
	g := NewGate(holder)

	assert.Equal(t, 2, g.SeatLimit("free"))

	policy.SeatLimits["free"] = 5
	holder.Set(policy)
	assert.Equal(t, 5, g.SeatLimit("free"))
}
