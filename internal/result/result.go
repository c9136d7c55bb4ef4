// Package result provides the two-variant outcome delivered to API callers.
package result

// Result is either a success carrying data or a failure carrying an
// optional cause. The zero value is a failure with no cause.
type Result[T any] struct {
	data T
	err  error
	ok   bool
}

// Success returns a successful Result holding data.
func Success[T any](data T) Result[T] {
	return Result[T]{data: data, ok: true}
}

// Failure returns a failed Result. err may be nil.
func Failure[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// IsSuccess reports whether r is the success variant.
func (r Result[T]) IsSuccess() bool { return r.ok }

// IsFailure reports whether r is the failure variant.
func (r Result[T]) IsFailure() bool { return !r.ok }

// Data returns the success value. The second return is false for failures,
// in which case the first is the zero value of T.
func (r Result[T]) Data() (T, bool) {
	if !r.ok {
		var zero T
		return zero, false
	}
	return r.data, true
}

// Err returns the failure cause, or nil for successes.
func (r Result[T]) Err() error {
	if r.ok {
		return nil
	}
	return r.err
}

// Get unpacks r into the conventional (value, error) pair.
// A failure without a cause reports ErrUnknown so callers can still branch
// on err != nil.
func (r Result[T]) Get() (T, error) {
	if r.ok {
		return r.data, nil
	}
	var zero T
	if r.err == nil {
		return zero, ErrUnknown
	}
	return zero, r.err
}
