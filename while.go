package async

import "sync"

// While asynchronously repeats body while predicate reports true:
// one execution of body is awaited, then the predicate is re-checked.
//
// The returned [Future] resolves with no value when the predicate first
// reports false. A panic in predicate or body, or a body future that fails
// or is canceled, terminates the loop immediately and propagates through
// the returned future. Callers that want retry semantics implement them
// in body.
//
// Iterations whose body future is already settled are driven by a plain
// loop. The loop only suspends when a body future is still pending, and
// re-enters as that future's continuation rather than by recursing, so
// stack depth stays bounded no matter how many iterations run.
func While(predicate func() bool, body func() *Future[Void]) *Future[Void] {
	l := &loop{predicate: predicate, body: body}
	out := New[Void]()

	switch ok, err := l.test(); {
	case err != nil:
		out.Reject(err)
	case !ok:
		out.Resolve(Void{})
	default:
		l.push()
		l.drive(out)
	}

	return out
}

// For runs an asynchronous counterpart of a for loop: initialize once,
// then, while condition holds, await one execution of body and apply
// increment.
func For[T any](initialize func() T, condition func(T) bool, increment func(T) T, body func(T) *Future[Void]) *Future[Void] {
	var i T
	if err := catch(func() { i = initialize() }); err != nil {
		return Rejected[Void](err)
	}

	return While(
		func() bool { return condition(i) },
		func() *Future[Void] {
			return AwaitDo(body(i), func() *Future[Void] {
				i = increment(i)
				return Completed()
			})
		},
	)
}

// A loop is one trampolined While invocation.
//
// steps holds the work still to run. Only the active trampoline step
// mutates it, but pushes can happen on whichever goroutine settles a body
// future, hence the lock.
type loop struct {
	mu        sync.Mutex
	steps     queue[func() (*Future[Void], error)]
	predicate func() bool
	body      func() *Future[Void]
}

func (l *loop) test() (ok bool, err error) {
	err = catch(func() { ok = l.predicate() })
	return ok, err
}

// step runs one body execution and, once its future settles, re-checks
// the predicate, queueing another step if the loop should continue.
func (l *loop) step() (*Future[Void], error) {
	var bf *Future[Void]
	if err := catch(func() { bf = l.body() }); err != nil {
		return nil, err
	}

	return AwaitDo(bf, func() *Future[Void] {
		switch ok, err := l.test(); {
		case err != nil:
			return Rejected[Void](err)
		case ok:
			l.push()
		}
		return Completed()
	}), nil
}

func (l *loop) push() {
	l.mu.Lock()
	l.steps.Push(l.step)
	l.mu.Unlock()
}

func (l *loop) pop() (s func() (*Future[Void], error), ok bool) {
	l.mu.Lock()
	s, ok = l.steps.Pop()
	l.mu.Unlock()
	return s, ok
}

// drive pops and runs queued steps until the queue empties.
// A step whose future is still pending suspends the loop; drive re-enters
// as that future's continuation on a fresh stack.
func (l *loop) drive(out *Future[Void]) {
	for {
		next, ok := l.pop()
		if !ok {
			out.Resolve(Void{})
			return
		}

		f, err := next()
		if err != nil {
			out.Reject(err)
			return
		}

		if !f.Done() {
			f.OnSettled(func(_ Void, err error) {
				if err != nil {
					complete(out, Void{}, err)
					return
				}
				l.drive(out)
			})
			return
		}

		if _, err, _ := f.Result(); err != nil {
			complete(out, Void{}, err)
			return
		}
	}
}
