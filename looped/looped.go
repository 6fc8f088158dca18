// Package looped repeats a unit of work until shutdown.
//
// Run blocks the calling goroutine, which keeps a process alive for as long
// as the loop runs. Go runs the same loop on its own goroutine and returns a
// Task handle immediately. Either way the loop ends when the context is
// cancelled or the function returns an error.
package looped

import (
	"context"
	"errors"
)

// Func is one iteration of a loop. It may block, but should return once ctx
// is done.
type Func func(ctx context.Context) error

// Run calls fn repeatedly on the calling goroutine until ctx is done or fn
// fails. Cancellation is a clean shutdown and yields nil, including when fn
// itself returns the context's error after cancellation.
func Run(ctx context.Context, fn Func) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		if err := fn(ctx); err != nil {
			if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
				return nil
			}
			return err
		}
	}
}

// Task is a loop running on its own goroutine.
type Task struct {
	done chan struct{}
	err  error
}

// Go starts Run on a new goroutine.
func Go(ctx context.Context, fn Func) *Task {
	t := &Task{done: make(chan struct{})}

	go func() {
		defer close(t.done)
		t.err = Run(ctx, fn)
	}()

	return t
}

// Done is closed once the loop has returned.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the loop returns and reports its error.
func (t *Task) Wait() error {
	<-t.done
	return t.err
}

// Err returns the loop's error, or nil while it is still running.
func (t *Task) Err() error {
	select {
	case <-t.done:
		return t.err
	default:
		return nil
	}
}
