// Package result carries the outcome of a service call across the
// presentation boundary as a value: either a success holding data or a
// failure holding an error.
package result

type Result[T any] struct {
	data T
	err  error
}

// Ok wraps a successful value.
func Ok[T any](data T) Result[T] {
	return Result[T]{data: data}
}

// Fail wraps an error. A nil error is replaced so the result stays a failure.
func Fail[T any](err error) Result[T] {
	if err == nil {
		err = errUnknown
	}
	return Result[T]{err: err}
}

// From converts the usual (value, error) pair into a Result.
func From[T any](data T, err error) Result[T] {
	if err != nil {
		return Fail[T](err)
	}
	return Ok(data)
}

func (r Result[T]) IsSuccess() bool {
	return r.err == nil
}

// Data returns the success value, or the zero value for a failure.
func (r Result[T]) Data() T {
	return r.data
}

func (r Result[T]) Err() error {
	return r.err
}

// Message returns the error text for a failure and "" for a success.
func (r Result[T]) Message() string {
	if r.err == nil {
		return ""
	}
	return r.err.Error()
}

// Unwrap returns the pair form again.
func (r Result[T]) Unwrap() (T, error) {
	return r.data, r.err
}

type unknownError struct{}

func (unknownError) Error() string { return "unknown error" }

var errUnknown error = unknownError{}
