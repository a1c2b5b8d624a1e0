package async

import (
	"context"
	"errors"
	"sync"
)

// Void is the result type of futures that complete without carrying a value.
type Void struct{}

// State describes where a [Future] is in its lifecycle.
// A Future starts Pending and moves exactly once to one of the other states.
type State int32

const (
	Pending State = iota
	Fulfilled
	Failed
	Canceled
)

// ErrCanceled is the error reported by futures that settled canceled.
var ErrCanceled = errors.New("async: canceled")

// A Future is a single-assignment value that settles exactly once to
// a value, an error, or cancellation.
//
// Callbacks attached before a Future settles run when it settles.
// Whether they run on the settling goroutine or are handed to a [Scheduler]
// is a per-Future policy fixed at creation; futures created with [New]
// hand their callbacks to [DefaultScheduler].
// Callbacks attached after a Future has settled run immediately, on the
// attaching goroutine.
//
// A Future is safe for concurrent use.
type Future[T any] struct {
	mu        sync.Mutex
	state     State
	value     T
	err       error
	done      chan struct{}
	inline    bool
	scheduler Scheduler
	callbacks []func()
}

func newFuture[T any](inline bool, s Scheduler) *Future[T] {
	if s == nil {
		s = DefaultScheduler
	}
	return &Future[T]{done: make(chan struct{}), inline: inline, scheduler: s}
}

// New creates a pending [Future].
func New[T any]() *Future[T] {
	return newFuture[T](false, nil)
}

// Resolved creates a [Future] that has already settled with value v.
func Resolved[T any](v T) *Future[T] {
	f := newFuture[T](false, nil)
	f.Resolve(v)
	return f
}

// Rejected creates a [Future] that has already settled with err.
func Rejected[T any](err error) *Future[T] {
	f := newFuture[T](false, nil)
	f.Reject(err)
	return f
}

// Completed creates a [Future] that has already settled with no value.
func Completed() *Future[Void] {
	return Resolved(Void{})
}

// Resolve settles f with value v.
// It reports whether this call was the one that settled f.
func (f *Future[T]) Resolve(v T) bool {
	return f.settle(Fulfilled, v, nil)
}

// Reject settles f with err, which must not be nil.
// It reports whether this call was the one that settled f.
func (f *Future[T]) Reject(err error) bool {
	if err == nil {
		panic("async: Reject(nil)")
	}
	var zero T
	return f.settle(Failed, zero, err)
}

// Cancel settles f as canceled, with [ErrCanceled] as its error.
// It reports whether this call was the one that settled f.
func (f *Future[T]) Cancel() bool {
	var zero T
	return f.settle(Canceled, zero, ErrCanceled)
}

func (f *Future[T]) settle(s State, v T, err error) bool {
	f.mu.Lock()
	if f.state != Pending {
		f.mu.Unlock()
		return false
	}
	f.state, f.value, f.err = s, v, err
	cbs := f.callbacks
	f.callbacks = nil
	f.mu.Unlock()

	close(f.done)

	for _, cb := range cbs {
		if f.inline {
			cb()
		} else {
			f.scheduler.Schedule(cb)
		}
	}
	return true
}

// Done reports whether f has settled.
func (f *Future[T]) Done() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// State returns the current lifecycle state of f.
func (f *Future[T]) State() State {
	f.mu.Lock()
	s := f.state
	f.mu.Unlock()
	return s
}

// Result returns the outcome of f.
// ok is false while f is still pending, in which case v and err are zero.
func (f *Future[T]) Result() (v T, err error, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == Pending {
		var zero T
		return zero, nil, false
	}
	return f.value, f.err, true
}

// OnSettled arranges for fn to run with the outcome of f once f settles.
//
// If f has already settled, fn runs immediately on the calling goroutine.
// Otherwise fn runs at settle time, per f's dispatch policy.
func (f *Future[T]) OnSettled(fn func(v T, err error)) {
	f.addCallback(func() { fn(f.value, f.err) })
}

func (f *Future[T]) addCallback(cb func()) {
	f.mu.Lock()
	if f.state == Pending {
		f.callbacks = append(f.callbacks, cb)
		f.mu.Unlock()
		return
	}
	f.mu.Unlock()
	cb()
}

// Join blocks until f settles or ctx is done, whichever happens first,
// and returns f's outcome, or ctx's error.
//
// Join is an escape hatch for the edges of async code, tests in particular.
// Code composing futures should use the await functions instead of blocking.
func (f *Future[T]) Join(ctx context.Context) (T, error) {
	select {
	case <-f.done:
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
	return f.value, f.err
}

// complete settles dst with an outcome observed from another future,
// preserving the failure/cancellation distinction.
func complete[T any](dst *Future[T], v T, err error) {
	switch {
	case err == nil:
		dst.Resolve(v)
	case errors.Is(err, ErrCanceled):
		dst.Cancel()
	default:
		dst.Reject(err)
	}
}

// fromError creates a future settled with a failure or cancellation
// observed elsewhere.
func fromError[T any](err error) *Future[T] {
	f := newFuture[T](false, nil)
	var zero T
	complete(f, zero, err)
	return f
}
