package game

import "time"

// Scheduler decides when the opponent's search runs. It is the boundary between
// the controller and the search engine.
type Scheduler interface {
	Schedule(task func())
}

// DelayedScheduler runs the task on its own goroutine after Delay, giving the
// player a visible "thinking" pause.
type DelayedScheduler struct {
	Delay time.Duration
}

func (s DelayedScheduler) Schedule(task func()) {
	time.AfterFunc(s.Delay, task)
}

// SyncScheduler runs the task before Schedule returns.
type SyncScheduler struct{}

func (SyncScheduler) Schedule(task func()) {
	task()
}
