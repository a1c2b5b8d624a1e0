package async

import (
	"errors"
	"time"
)

// Delay returns a [Future] that resolves with no value after d has elapsed.
// Resolution work is dispatched onto [DefaultScheduler].
func Delay(d time.Duration) *Future[Void] {
	return DelayOn(d, DefaultScheduler)
}

// DelayOn is [Delay] with the resolution work dispatched onto s.
//
// The timer itself is the runtime timer facility; when it fires, resolving
// the future is handed to s so that timer goroutines never run continuation
// work. Canceling the returned future before expiry stops the timer
// registration.
func DelayOn(d time.Duration, s Scheduler) *Future[Void] {
	f := New[Void]()

	tm := time.AfterFunc(d, func() {
		s.Schedule(func() { f.Resolve(Void{}) })
	})

	f.OnSettled(func(_ Void, err error) {
		if errors.Is(err, ErrCanceled) {
			tm.Stop()
		}
	})

	return f
}
