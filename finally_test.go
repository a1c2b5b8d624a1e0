package async_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qzhen/async"
)

func TestFinallyPassesValueThrough(t *testing.T) {
	t.Parallel()

	ran := false
	out := async.Finally(async.Resolved(7), func() { ran = true })

	require.True(t, ran)

	v, err, ok := out.Result()
	require.True(t, ok)
	require.NoError(t, err)
	require.Equal(t, 7, v)
}

func TestFinallyCleanupFailureAfterSuccess(t *testing.T) {
	t.Parallel()

	errCleanup := errors.New("cleanup exploded")
	out := async.Finally(async.Resolved(7), func() { panic(errCleanup) })

	_, err, ok := out.Result()
	require.True(t, ok)
	require.ErrorIs(t, err, errCleanup)
}

// The original failure wins over a failing cleanup. This is deliberately
// not the precedence of a synchronous finally block.
func TestFinallyOriginalFailureWins(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	ran := false

	out := async.Finally(async.Rejected[int](errBoom), func() {
		ran = true
		panic("cleanup exploded")
	})

	require.True(t, ran)

	_, err, ok := out.Result()
	require.True(t, ok)
	require.ErrorIs(t, err, errBoom)

	var pe *async.PanicError
	require.False(t, errors.As(err, &pe))
}

func TestFinallyFailurePassesThrough(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	ran := false

	out := async.Finally(async.Rejected[int](errBoom), func() { ran = true })

	require.True(t, ran)

	_, err, _ := out.Result()
	require.ErrorIs(t, err, errBoom)
}

func TestFinallyOnCancellation(t *testing.T) {
	t.Parallel()

	f := async.New[int]()
	out := async.Finally(f, func() {})

	f.Cancel()

	_, err := out.Join(testContext(t))
	require.ErrorIs(t, err, async.ErrCanceled)
	require.Equal(t, async.Canceled, out.State())
}

func TestFinallyPendingPath(t *testing.T) {
	t.Parallel()

	f := async.New[string]()
	ran := false
	out := async.Finally(f, func() { ran = true })

	require.False(t, out.Done())
	require.False(t, ran)

	f.Resolve("late")

	v, err := out.Join(testContext(t))
	require.NoError(t, err)
	require.Equal(t, "late", v)
	require.True(t, ran)
}
