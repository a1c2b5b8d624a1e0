package async

import "sync"

// A Scheduler runs functions handed to it, usually on some other goroutine.
//
// Schedulers are how continuations leave the goroutine that settled
// a [Future]. They are also the explicit form of a captured execution
// context: a caller that wants a continuation to resume in a particular
// context passes the Scheduler for that context to one of the await
// functions.
type Scheduler interface {
	Schedule(fn func())
}

// DefaultScheduler runs each scheduled function on its own goroutine.
// It is the dispatch target for futures that do not inline their callbacks.
var DefaultScheduler Scheduler = goScheduler{}

type goScheduler struct{}

func (goScheduler) Schedule(fn func()) { go fn() }

// An Executor is a [Scheduler] that runs scheduled functions one at a time,
// in scheduling order.
//
// When a function is scheduled, it is added into an internal queue.
// The Run method then pops and runs each of them from the queue until
// the queue is emptied.
// It is done in a single-threaded manner.
// If one function blocks, no other functions can run.
// The best practice is not to block.
//
// Manually calling the Run method is usually not desired.
// One would instead use the Autorun method to set up an autorun function to
// calling the Run method automatically whenever a function is scheduled.
// The Executor never calls the autorun function twice at the same time.
type Executor struct {
	mu      sync.Mutex
	q       queue[func()]
	running bool
	autorun func()
}

// Autorun sets up an autorun function to calling the Run method
// automatically whenever a function is scheduled.
//
// One must pass a function that calls the Run method.
//
// If f blocks, the Schedule method may block too.
// The best practice is not to block.
func (e *Executor) Autorun(f func()) {
	e.autorun = f
}

// Run pops and runs every scheduled function in the queue until the queue
// is emptied.
//
// Run must not be called twice at the same time.
func (e *Executor) Run() {
	e.mu.Lock()
	e.running = true

	for {
		fn, ok := e.q.Pop()
		if !ok {
			break
		}
		e.mu.Unlock()
		fn()
		e.mu.Lock()
	}

	e.running = false
	e.mu.Unlock()
}

// Schedule adds fn to the queue. To run it, either call the Run method, or
// call the Autorun method to set up an autorun function beforehand.
//
// Schedule is safe for concurrent use.
func (e *Executor) Schedule(fn func()) {
	var autorun func()

	e.mu.Lock()

	if !e.running && e.autorun != nil {
		e.running = true
		autorun = e.autorun
	}

	e.q.Push(fn)
	e.mu.Unlock()

	if autorun != nil {
		autorun()
	}
}
