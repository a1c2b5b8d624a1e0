package async_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qzhen/async"
)

func TestAwaitThenInlineWhenSettled(t *testing.T) {
	t.Parallel()

	ran := false
	out := async.AwaitThen(async.Resolved(21), func(v int) *async.Future[int] {
		ran = true
		return async.Resolved(v * 2)
	})

	// The no-suspension fast path runs the continuation before AwaitThen
	// returns.
	require.True(t, ran)
	require.True(t, out.Done())

	v, err, _ := out.Result()
	require.NoError(t, err)
	require.Equal(t, 42, v)
}

func TestAwaitThenPending(t *testing.T) {
	t.Parallel()

	f := async.New[int]()
	out := async.AwaitThen(f, func(v int) *async.Future[int] {
		return async.Resolved(v + 1)
	})
	require.False(t, out.Done())

	f.Resolve(41)

	v, err := out.Join(testContext(t))
	require.NoError(t, err)
	require.Equal(t, 42, v)
}

func TestAwaitThenFailurePropagates(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")

	t.Run("Settled", func(t *testing.T) {
		out := async.AwaitThen(async.Rejected[int](errBoom), func(int) *async.Future[int] {
			t.Error("continuation ran after failure")
			return async.Resolved(0)
		})
		_, err, ok := out.Result()
		require.True(t, ok)
		require.ErrorIs(t, err, errBoom)
	})

	t.Run("Pending", func(t *testing.T) {
		f := async.New[int]()
		out := async.AwaitThen(f, func(int) *async.Future[int] {
			t.Error("continuation ran after failure")
			return async.Resolved(0)
		})

		f.Reject(errBoom)

		_, err := out.Join(testContext(t))
		require.ErrorIs(t, err, errBoom)
	})
}

func TestAwaitThenCancellationPropagates(t *testing.T) {
	t.Parallel()

	f := async.New[string]()
	out := async.AwaitDo(f, func() *async.Future[string] {
		t.Error("continuation ran after cancellation")
		return async.Resolved("")
	})

	f.Cancel()

	_, err := out.Join(testContext(t))
	require.ErrorIs(t, err, async.ErrCanceled)
	require.Equal(t, async.Canceled, out.State())
}

func TestAwaitThenPanicBecomesFailure(t *testing.T) {
	t.Parallel()

	out := async.AwaitThen(async.Resolved(1), func(int) *async.Future[int] {
		panic("continuation exploded")
	})

	_, err, ok := out.Result()
	require.True(t, ok)

	var pe *async.PanicError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, "continuation exploded", pe.Value)
	require.NotEmpty(t, pe.Stack)
}

func TestAwaitResumesOnSuppliedScheduler(t *testing.T) {
	t.Parallel()

	s := new(spyScheduler)

	f := async.New[int]()
	out := async.Await(f, s)

	f.Resolve(1)

	v, err := out.Join(testContext(t))
	require.NoError(t, err)
	require.Equal(t, 1, v)
	require.Equal(t, 1, s.count())
}

func TestAwaitOnExecutor(t *testing.T) {
	t.Parallel()

	var wg sync.WaitGroup

	var e async.Executor
	e.Autorun(func() { wg.Add(1); go func() { defer wg.Done(); e.Run() }() })

	out := async.AwaitOn(&e, func() *async.Future[string] {
		return async.Resolved("ran on the executor")
	})

	v, err := out.Join(testContext(t))
	require.NoError(t, err)
	require.Equal(t, "ran on the executor", v)

	wg.Wait()
}

func TestAwaitOnPanicBecomesFailure(t *testing.T) {
	t.Parallel()

	var wg sync.WaitGroup

	var e async.Executor
	e.Autorun(func() { wg.Add(1); go func() { defer wg.Done(); e.Run() }() })

	out := async.AwaitOn(&e, func() *async.Future[int] {
		panic("seeded continuation exploded")
	})

	_, err := out.Join(testContext(t))

	var pe *async.PanicError
	require.ErrorAs(t, err, &pe)

	wg.Wait()
}

func TestYield(t *testing.T) {
	t.Parallel()

	var wg sync.WaitGroup

	var e async.Executor
	e.Autorun(func() { wg.Add(1); go func() { defer wg.Done(); e.Run() }() })

	_, err := async.Yield(&e).Join(testContext(t))
	require.NoError(t, err)

	wg.Wait()
}
