package clock

import "time"

// FakeClock is a manually-advanced Clock for tests. Trial-window logic is
// all relative to Now, so advancing past the expiry date is how tests lapse
// a trial without sleeping.
type FakeClock struct {
	now time.Time
}

func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{now: t.UTC()}
}

func (c *FakeClock) Now() time.Time {
	return c.now
}

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}
