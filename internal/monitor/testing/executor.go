package testing

import "sync"

// ManualExecutor queues work instead of running it, so tests decide when an
// asynchronous fetch completes.
type ManualExecutor struct {
	mu    sync.Mutex
	queue []func()
}

// Go queues f.
func (e *ManualExecutor) Go(f func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.queue = append(e.queue, f)
}

// Pending returns the number of queued funcs.
func (e *ManualExecutor) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.queue)
}

// RunNext runs the oldest queued func. It reports false if the queue was empty.
func (e *ManualExecutor) RunNext() bool {
	e.mu.Lock()
	if len(e.queue) == 0 {
		e.mu.Unlock()
		return false
	}
	f := e.queue[0]
	e.queue = e.queue[1:]
	e.mu.Unlock()

	f()
	return true
}

// RunAll drains the queue, including work queued while draining.
func (e *ManualExecutor) RunAll() {
	for e.RunNext() {
	}
}

// Inline runs f immediately on the caller's goroutine.
func Inline(f func()) {
	f()
}
