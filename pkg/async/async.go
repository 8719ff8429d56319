// Package async provides a minimal future primitive for fanning out
// independent computations and joining their results.
package async

import "fmt"

// Future holds the eventual result of a function started with Go.
type Future[T any] struct {
	result T
	err    error
	done   chan struct{}
}

// Go runs fn in its own goroutine and returns a Future for its result.
// A panic inside fn is recovered and surfaced as the future's error rather
// than crashing the process.
func Go[T any](fn func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}

	go func() {
		defer close(f.done)
		defer func() {
			if rec := recover(); rec != nil {
				f.err = fmt.Errorf("async: panic recovered: %v", rec)
			}
		}()
		f.result, f.err = fn()
	}()

	return f
}

// Await blocks until the function completes and returns its result and
// error. Await may be called any number of times; every call returns the
// same values.
func (f *Future[T]) Await() (T, error) {
	<-f.done
	return f.result, f.err
}

// Done reports whether the function has completed without blocking.
func (f *Future[T]) Done() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}
