package terminal

import "sync"

// Scheduler runs deferred work after the current callback returns.
// Screen uses it to coalesce draw calls into one flush.
type Scheduler interface {
	Defer(fn func())
}

// TaskQueue is a FIFO Scheduler drained explicitly by its owner, typically
// once per Loop iteration. Defer is safe from any goroutine; tasks run on the
// goroutine calling RunPending.
type TaskQueue struct {
	mu    sync.Mutex
	tasks []func()
}

// Defer queues fn for the next RunPending
func (q *TaskQueue) Defer(fn func()) {
	q.mu.Lock()
	q.tasks = append(q.tasks, fn)
	q.mu.Unlock()
}

// RunPending runs the tasks queued before the call and returns how many ran.
// Tasks queued while running wait for the next call.
func (q *TaskQueue) RunPending() int {
	q.mu.Lock()
	tasks := q.tasks
	q.tasks = nil
	q.mu.Unlock()

	for _, fn := range tasks {
		fn()
	}
	return len(tasks)
}

// Len returns the number of queued tasks
func (q *TaskQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}
