package async

import (
	"fmt"
	"runtime/debug"
)

// A PanicError is the failure recorded on a [Future] when a continuation,
// loop body, predicate or cleanup function panics.
// It preserves the recovered value and the stack at the point of the panic.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("async: panic: %v\n\n%s", e.Value, e.Stack)
}

// Unwrap returns the recovered value if it was an error, nil otherwise.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// catch runs f, converting a panic into a *PanicError.
func catch(f func()) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = &PanicError{Value: v, Stack: debug.Stack()}
		}
	}()
	f()
	return nil
}
