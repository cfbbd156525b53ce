// Package ipc carries one-way notifications between the page running in the
// embedded browser and the application, and serializes their handling.
package ipc

import (
	"context"
	"log"
	"sync"
)

// Loop runs posted events one at a time, in posting order, on a single goroutine.
type Loop struct {
	mu     sync.Mutex
	queue  chan func()
	closed bool
	done   chan struct{}
}

// NewLoop creates a loop with the given queue capacity.
func NewLoop(capacity int) *Loop {
	if capacity <= 0 {
		capacity = 64
	}
	return &Loop{
		queue: make(chan func(), capacity),
		done:  make(chan struct{}),
	}
}

// Post enqueues fn without blocking. The event is dropped (and false
// returned) when the loop is closed or the queue is full.
func (l *Loop) Post(fn func()) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return false
	}
	select {
	case l.queue <- fn:
		return true
	default:
		log.Printf("Очередь событий переполнена, событие отброшено")
		return false
	}
}

// Run drains the queue until ctx is done or Close is called.
func (l *Loop) Run(ctx context.Context) {
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			return
		case fn, ok := <-l.queue:
			if !ok {
				return
			}
			l.run(fn)
		}
	}
}

func (l *Loop) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Паника в обработчике события: %v", r)
		}
	}()
	fn()
}

// Close stops accepting events. Already queued events are still run.
func (l *Loop) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	close(l.queue)
}

// Done is closed when Run returns.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
