package service

import (
	"context"
	"sync/atomic"

	"taskie/internal/result"
)

// Call is the handle for one in-flight operation.
type Call struct {
	cancel   context.CancelFunc
	done     chan struct{}
	canceled atomic.Bool
}

// Go runs work on its own goroutine and passes the outcome to done. It
// returns immediately. If the call is cancelled through its handle before
// work finishes, done is never invoked; cancellation of the parent ctx is
// delivered to done like any other failure.
func Go[T any](ctx context.Context, work func(context.Context) result.Result[T], done func(result.Result[T])) *Call {
	ctx, cancel := context.WithCancel(ctx)
	c := &Call{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(c.done)
		defer cancel()

		res := work(ctx)
		if done == nil || c.canceled.Load() {
			return
		}
		done(res)
	}()
	return c
}

// Cancel aborts the request and discards its continuation. A continuation
// that has already started still runs to completion.
func (c *Call) Cancel() {
	c.canceled.Store(true)
	c.cancel()
}

// Canceled reports whether Cancel was called.
func (c *Call) Canceled() bool {
	return c.canceled.Load()
}

// Done is closed once the work and any continuation have returned.
func (c *Call) Done() <-chan struct{} {
	return c.done
}

// Wait blocks until Done is closed.
func (c *Call) Wait() {
	<-c.done
}

// Await starts an operation and blocks until its continuation has run.
// It is meant for collaborators, such as a CLI, that have no event loop.
func Await[T any](start func(done func(result.Result[T])) *Call) result.Result[T] {
	var res result.Result[T]
	call := start(func(r result.Result[T]) { res = r })
	call.Wait()
	if call.Canceled() {
		return result.Failure[T](context.Canceled)
	}
	return res
}
