package loop

import "time"

// Task re-requests a display callback every frame until cancelled. At most
// one request is outstanding at a time.
type Task struct {
	req    Requester
	body   FrameFunc
	handle FrameID
}

// NewTask binds body to the requester. The task starts inactive.
func NewTask(req Requester, body FrameFunc) *Task {
	return &Task{req: req, body: body}
}

// Active reports whether a callback is pending.
func (t *Task) Active() bool { return t.handle != 0 }

// Start schedules the first callback. Starting an active task is a no-op.
func (t *Task) Start() {
	if t.Active() {
		return
	}
	t.handle = t.req.RequestFrame(t.fire)
}

// Cancel withdraws the pending callback. Cancelling twice is safe.
func (t *Task) Cancel() {
	if !t.Active() {
		return
	}
	t.req.CancelFrame(t.handle)
	t.handle = 0
}

func (t *Task) fire(now time.Duration) {
	t.handle = t.req.RequestFrame(t.fire)
	t.body(now)
}
