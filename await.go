package async

// Await returns a [Future] that settles the way f settles.
//
// It is the identity form of the await family: useful for normalizing
// dispatch, or together with resumeOn to move the rest of a pipeline into
// a particular [Scheduler]'s context once f settles.
func Await[T any](f *Future[T], resumeOn ...Scheduler) *Future[T] {
	return AwaitThen(f, Resolved, resumeOn...)
}

// AwaitThen sequences continuation to run after f resolves, producing
// a [Future] for the continuation's result.
//
// If f has already settled, the continuation is invoked inline, on the
// calling goroutine, and its result folds straight into the returned
// future. This is purely a fast path for the no-suspension case.
//
// If f is still pending, the continuation runs when f settles, off the
// awaiting goroutine. Supplying resumeOn schedules the continuation onto
// that [Scheduler] instead, resuming it in that scheduler's context.
//
// If f fails or is canceled, the continuation does not run and the
// returned future settles with the same failure or cancellation.
// A panic in the continuation fails the returned future with
// a [*PanicError].
func AwaitThen[T, U any](f *Future[T], continuation func(T) *Future[U], resumeOn ...Scheduler) *Future[U] {
	if f.Done() {
		v, err, _ := f.Result()
		if err != nil {
			return fromError[U](err)
		}
		return applyContinuation(continuation, v)
	}

	out := New[U]()

	f.OnSettled(func(v T, err error) {
		run := func() {
			if err != nil {
				var zero U
				complete(out, zero, err)
				return
			}
			forward(applyContinuation(continuation, v), out)
		}
		if len(resumeOn) != 0 {
			resumeOn[0].Schedule(run)
		} else {
			run()
		}
	})

	return out
}

// AwaitDo is [AwaitThen] for continuations that ignore the awaited value.
func AwaitDo[T, U any](f *Future[T], continuation func() *Future[U], resumeOn ...Scheduler) *Future[U] {
	return AwaitThen(f, func(T) *Future[U] { return continuation() }, resumeOn...)
}

// AwaitOn suspends until s runs the continuation: the continuation is
// scheduled onto s and the returned [Future] settles with its result.
// It is the scheduler-seeded form of the await family, for switching
// a pipeline onto s without awaiting any value first.
func AwaitOn[U any](s Scheduler, continuation func() *Future[U]) *Future[U] {
	out := New[U]()

	s.Schedule(func() {
		var inner *Future[U]
		if err := catch(func() { inner = continuation() }); err != nil {
			out.Reject(err)
			return
		}
		forward(inner, out)
	})

	return out
}

// Yield returns a [Future] that resolves once s gets around to running
// a scheduled function. Awaiting it moves the rest of a pipeline onto s.
func Yield(s Scheduler) *Future[Void] {
	out := New[Void]()
	s.Schedule(func() { out.Resolve(Void{}) })
	return out
}

// applyContinuation calls the continuation, turning a panic into an
// already-failed future.
func applyContinuation[T, U any](continuation func(T) *Future[U], v T) *Future[U] {
	var inner *Future[U]
	if err := catch(func() { inner = continuation(v) }); err != nil {
		return Rejected[U](err)
	}
	return inner
}

// forward copies src's eventual outcome into dst.
func forward[U any](src, dst *Future[U]) {
	src.OnSettled(func(u U, err error) { complete(dst, u, err) })
}
