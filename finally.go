package async

// Finally runs cleanup once f settles, no matter how it settles, and
// returns a [Future] carrying the combined outcome:
//
//   - f resolved and cleanup returned: f's value passes through;
//   - f resolved and cleanup panicked: the cleanup failure surfaces;
//   - f failed or was canceled: f's outcome wins, even if cleanup also
//     panicked.
//
// The last rule deliberately differs from a synchronous finally block,
// which would let a failing cleanup replace the original failure.
func Finally[T any](f *Future[T], cleanup func()) *Future[T] {
	out := New[T]()

	finish := func(v T, err error) {
		cerr := catch(cleanup)
		if err == nil {
			err = cerr
		}
		complete(out, v, err)
	}

	if v, err, ok := f.Result(); ok {
		finish(v, err)
		return out
	}

	f.OnSettled(finish)
	return out
}
