// Package loop models the host's display-refresh callback primitive and a
// cancellable repeating task built on top of it.
package loop

import "time"

// FrameID identifies a pending frame request. The zero value is never issued.
type FrameID uint64

// FrameFunc is invoked with the host timestamp of the display refresh.
type FrameFunc func(now time.Duration)

// Requester schedules one-shot display callbacks.
type Requester interface {
	RequestFrame(fn FrameFunc) FrameID
	CancelFrame(id FrameID)
}

type request struct {
	id FrameID
	fn FrameFunc
}

// Pump is a Requester driven by the host: every call to Advance is one
// display refresh. It is not safe for concurrent use; hosts call it from the
// goroutine that owns the controller.
type Pump struct {
	next    FrameID
	pending []request
	firing  []request
}

// NewPump returns an idle pump.
func NewPump() *Pump { return &Pump{} }

// RequestFrame schedules fn for the next Advance.
func (p *Pump) RequestFrame(fn FrameFunc) FrameID {
	p.next++
	p.pending = append(p.pending, request{id: p.next, fn: fn})
	return p.next
}

// CancelFrame removes a pending request. Unknown or already fired ids are ignored.
func (p *Pump) CancelFrame(id FrameID) {
	p.pending = remove(p.pending, id)
	p.firing = remove(p.firing, id)
}

func remove(reqs []request, id FrameID) []request {
	for i, r := range reqs {
		if r.id == id {
			return append(reqs[:i], reqs[i+1:]...)
		}
	}
	return reqs
}

// Pending reports how many callbacks are waiting for the next refresh.
func (p *Pump) Pending() int { return len(p.pending) }

// Advance runs every callback requested before this call and returns how many
// ran. Callbacks requested while advancing wait for the next call.
func (p *Pump) Advance(now time.Duration) int {
	p.firing, p.pending = p.pending, p.firing[:0]
	ran := 0
	for len(p.firing) > 0 {
		r := p.firing[0]
		p.firing = p.firing[1:]
		r.fn(now)
		ran++
	}
	return ran
}
