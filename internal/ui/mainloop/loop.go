// Package mainloop provides the single logical thread every reducer and
// reactor runs on.
package mainloop

import (
	"context"
	"sync"
)

// Loop serializes posted tasks. Blocking work started with Go runs on its
// own goroutine and must Post its results back.
type Loop struct {
	mu      sync.Mutex
	queue   []func()
	wake    chan struct{}
	workers sync.WaitGroup
	closed  bool
}

// New creates an idle loop.
func New() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

// Post schedules fn on the loop. Safe from any goroutine, including from
// within a running task. Tasks posted after Close are dropped.
func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Go runs fn off the loop and tracks it so Flush can wait for it.
func (l *Loop) Go(fn func()) {
	l.workers.Add(1)
	go func() {
		defer l.workers.Done()
		fn()
	}()
}

func (l *Loop) next() (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.queue) == 0 {
		return nil, false
	}
	fn := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return fn, true
}

func (l *Loop) drain() bool {
	ran := false
	for {
		fn, ok := l.next()
		if !ok {
			return ran
		}
		fn()
		ran = true
	}
}

// Run processes tasks until ctx is done. Only one goroutine may call Run.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.drain()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// Flush runs queued tasks on the caller's goroutine until the queue is
// empty and no Go task is in flight. Must not race with Run.
func (l *Loop) Flush() {
	for {
		l.drain()
		l.workers.Wait()
		if !l.drain() {
			return
		}
	}
}

// Close drops pending tasks and rejects new ones, then waits for Go tasks.
func (l *Loop) Close() {
	l.mu.Lock()
	l.closed = true
	l.queue = nil
	l.mu.Unlock()
	l.workers.Wait()
}
