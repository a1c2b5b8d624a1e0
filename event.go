package async

import (
	"context"
	"slices"
	"sync"
)

// An AutoResetEvent is a signaling primitive that releases exactly one
// waiter per signal, in the order the waits arrived, and resets to
// unsignaled as soon as a waiter is released.
// When no waiter is pending, one signal is banked; further signals are
// no-ops. A banked signal and a pending waiter never coexist.
//
// Waiting never blocks a goroutine: [AutoResetEvent.Wait] returns
// a [Future] that resolves when a signal is consumed.
//
// An AutoResetEvent is safe for concurrent use.
type AutoResetEvent struct {
	mu            sync.Mutex
	signaled      bool
	waiters       []*eventWaiter
	allowInlining bool
}

type eventWaiter struct {
	f    *Future[Void]
	stop func() bool // detaches the context cancellation callback
}

// NewAutoResetEvent creates an [AutoResetEvent] with no signal banked.
//
// allowInlining controls whether callbacks chained onto a released waiter's
// future may run synchronously on the goroutine calling Set.
// When false, they are handed to [DefaultScheduler] instead, and Set never
// runs waiter code.
func NewAutoResetEvent(allowInlining bool) *AutoResetEvent {
	return &AutoResetEvent{allowInlining: allowInlining}
}

// Wait returns a [Future] that resolves when the event is signaled.
//
// If a signal is already banked, it is consumed and the returned future is
// already resolved. Otherwise the caller joins a FIFO queue; each [Set]
// releases the longest-waiting entry.
//
// Canceling ctx, or the returned future directly, removes the waiter from
// the queue and cancels its future. A canceled wait never consumes a banked
// signal and never disturbs other waiters. If ctx is already canceled,
// Wait short-circuits to a canceled future without joining the queue or
// touching the signal.
func (e *AutoResetEvent) Wait(ctx context.Context) *Future[Void] {
	if ctx == nil {
		ctx = context.Background()
	}
	if ctx.Err() != nil {
		f := newFuture[Void](e.allowInlining, nil)
		f.Cancel()
		return f
	}

	e.mu.Lock()
	if e.signaled {
		e.signaled = false
		e.mu.Unlock()
		f := newFuture[Void](e.allowInlining, nil)
		f.Resolve(Void{})
		return f
	}
	w := &eventWaiter{f: newFuture[Void](e.allowInlining, nil)}
	e.waiters = append(e.waiters, w)
	e.mu.Unlock()

	if ctx.Done() != nil {
		w.stop = context.AfterFunc(ctx, func() { w.f.Cancel() })
	}

	w.f.OnSettled(func(_ Void, err error) {
		if w.stop != nil {
			w.stop()
		}
		if err != nil {
			e.removeWaiter(w)
		}
	})

	return w.f
}

// Set releases the head waiter, or banks one signal when no waiter is
// pending. Signals never accumulate: setting an already-signaled event
// with no waiters is a no-op.
//
// Set returns promptly. With allowInlining, the released waiter's callbacks
// run on this goroutine as part of resolving its future; otherwise they are
// handed to the scheduler. In neither case does Set wait for consumer work
// beyond the resolution call itself.
func (e *AutoResetEvent) Set() {
	for {
		var w *eventWaiter

		e.mu.Lock()
		if len(e.waiters) > 0 {
			w = e.waiters[0]
			e.waiters = slices.Delete(e.waiters, 0, 1)
		} else if !e.signaled {
			e.signaled = true
		}
		e.mu.Unlock()

		if w == nil || w.f.Resolve(Void{}) {
			return
		}
		// The popped waiter lost to cancellation; release the next one.
	}
}

func (e *AutoResetEvent) removeWaiter(w *eventWaiter) {
	e.mu.Lock()
	if i := slices.Index(e.waiters, w); i != -1 {
		e.waiters = slices.Delete(e.waiters, i, i+1)
	}
	e.mu.Unlock()
}
