// Package fps keeps a rolling window of frame rate samples.
package fps

import "time"

// WindowSize is the number of samples retained by a Tracker.
const WindowSize = 100

// Stats summarises the samples currently in the window.
type Stats struct {
	Latest float64
	Mean   float64
	Min    float64
	Max    float64
	Count  int
}

// Tracker converts display callback timestamps into frames-per-second samples.
type Tracker struct {
	ring  [WindowSize]float64
	head  int
	count int

	last    time.Duration
	started bool
	stats   Stats
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker { return &Tracker{} }

// Record adds the frame observed at now. It reports false while there is no
// previous timestamp to measure against, or when time did not advance.
func (t *Tracker) Record(now time.Duration) (Stats, bool) {
	if !t.started {
		t.started = true
		t.last = now
		return t.stats, false
	}
	delta := now - t.last
	if delta <= 0 {
		return t.stats, false
	}
	t.last = now
	t.push(float64(time.Second) / float64(delta))
	return t.stats, true
}

func (t *Tracker) push(sample float64) {
	t.ring[t.head] = sample
	t.head = (t.head + 1) % WindowSize
	if t.count < WindowSize {
		t.count++
	}

	st := Stats{Latest: sample, Min: sample, Max: sample, Count: t.count}
	sum := 0.0
	for i := 0; i < t.count; i++ {
		v := t.ring[i]
		sum += v
		if v < st.Min {
			st.Min = v
		}
		if v > st.Max {
			st.Max = v
		}
	}
	st.Mean = sum / float64(t.count)
	t.stats = st
}

// Stats returns the statistics for the current window.
func (t *Tracker) Stats() Stats { return t.stats }

// Samples returns a copy of the window ordered oldest to newest.
func (t *Tracker) Samples() []float64 {
	out := make([]float64, 0, t.count)
	start := (t.head - t.count + WindowSize) % WindowSize
	for i := 0; i < t.count; i++ {
		out = append(out, t.ring[(start+i)%WindowSize])
	}
	return out
}

// Restart forgets the previous timestamp so the next frame is treated as the
// first one. Collected samples are kept.
func (t *Tracker) Restart() { t.started = false }
