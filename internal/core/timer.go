package core

import "time"

// Throttle decides whether a display frame should advance the simulation.
// Elapsed time is measured from the previous tick, not the previous frame.
type Throttle struct {
	interval time.Duration
	last     time.Duration
	armed    bool
}

// NewThrottle constructs a Throttle targeting the given ticks per second.
func NewThrottle(rate int) *Throttle {
	t := &Throttle{}
	t.SetRate(rate)
	return t
}

// SetRate changes the target tick rate. Non-positive rates are ignored.
func (t *Throttle) SetRate(rate int) {
	if rate <= 0 {
		return
	}
	t.interval = time.Second / time.Duration(rate)
}

// Interval returns the minimum spacing between ticks.
func (t *Throttle) Interval() time.Duration { return t.interval }

// Reset forgets the previous tick; the next Due call sets a new baseline.
func (t *Throttle) Reset() { t.armed = false }

// Due reports whether a tick should happen at now and records it if so.
// The first call after Reset only records the baseline.
func (t *Throttle) Due(now time.Duration) bool {
	if !t.armed {
		t.last = now
		t.armed = true
		return false
	}
	if now-t.last < t.interval {
		return false
	}
	t.last = now
	return true
}
