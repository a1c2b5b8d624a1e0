// Package async provides a small set of asynchronous coordination
// primitives: a single-assignment [Future] value, combinators that compose
// futures without blocking a goroutine, and an [AutoResetEvent] that wakes
// exactly one pending waiter per signal, in strict arrival order.
//
// While goroutines make forking cheap, this library is about joining:
// expressing "run this after that settles" as data, so pipelines, loops and
// signaling can be composed without parking a goroutine per suspension.
//
// # Futures and Awaiting
//
// A [Future] settles exactly once to a value, an error, or cancellation.
// Continuations are attached with the await functions rather than by
// blocking:
//
//	f := async.AwaitThen(fetch(), func(v Payload) *async.Future[Result] {
//		return process(v)
//	})
//
// An already-settled awaiter runs its continuation inline, on the calling
// goroutine; a pending one resumes it later, off the awaiting goroutine.
// To resume a continuation in a particular context, pass the [Scheduler]
// for that context to the await call. There is no ambient captured context:
// resumption contexts are always explicit.
//
// # Loops Without Stack Growth
//
// [While] and [For] repeat an asynchronous body without growing the call
// stack with the iteration count. Bodies that settle immediately are driven
// by a plain loop; only a still-pending body suspends the loop, which then
// re-enters as a continuation on a fresh stack. A loop of a million
// synchronous iterations runs in bounded stack depth.
//
// # Signaling
//
// An [AutoResetEvent] hands one signal to one waiter. Waiters queue in
// FIFO order; a signal with no waiter present is banked (never more than
// one); a canceled wait leaves the queue without consuming anything.
// Whether a released waiter's continuations may run on the signaling
// goroutine is a per-event policy chosen at construction.
//
// # Cancellation
//
// Cancellation is distinct from failure. A [Future] canceled directly, or
// a wait whose context is canceled, settles in the Canceled state with
// [ErrCanceled], and combinators propagate that state unchanged.
// No combinator swallows an error; the sole precedence exception is
// [Finally], which deliberately lets an awaited failure win over a failing
// cleanup.
package async
