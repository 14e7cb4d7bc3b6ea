// Package background runs detached work with a handle the caller may watch
// or ignore. Failures, panics included, are logged and recorded on the
// handle; they never reach the caller's goroutine.
package background

import (
	"context"
	"fmt"
	"sync"

	"github.com/hangfoxy/MoneyPrinterTurbo/internal/logging"
)

// Task is the handle of one detached unit of work.
type Task struct {
	name string
	done chan struct{}
	errs chan error

	mu  sync.Mutex
	err error
}

// Go starts fn on its own goroutine.
func Go(
	ctx context.Context,
	log *logging.Logger,
	name string,
	fn func(ctx context.Context) error,
) *Task {
	if log == nil {
		log = logging.Nop()
	}
	t := &Task{
		name: name,
		done: make(chan struct{}),
		errs: make(chan error, 1),
	}

	go func() {
		err := run(ctx, fn)
		if err != nil {
			log.Errorw("Background task failed", "task", name, "error", err)
		} else {
			log.Debugw("Background task finished", "task", name)
		}

		t.mu.Lock()
		t.err = err
		t.mu.Unlock()

		if err != nil {
			t.errs <- err
		}
		close(t.errs)
		close(t.done)
	}()

	return t
}

func run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(ctx)
}

// Name of the task as given to Go.
func (t *Task) Name() string {
	return t.name
}

// Done is closed once the task has finished.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Errors yields the task's error, if any, and is closed when the task ends.
func (t *Task) Errors() <-chan error {
	return t.errs
}

// Err returns the task's error. It is nil while the task is running.
func (t *Task) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Wait blocks until the task finishes or ctx ends.
func (t *Task) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return t.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}
