package testutil

import (
	"context"
	"sync/atomic"
)

// Counter is a synchronous source that counts pulls and stops.
type Counter[T any] struct {
	next    func() (T, bool)
	pulls   int
	yielded int
	stops   int
}

// Count wraps a pull function.
func Count[T any](next func() (T, bool)) *Counter[T] {
	return &Counter[T]{next: next}
}

// CountSlice yields values in order.
func CountSlice[T any](values ...T) *Counter[T] {
	i := 0
	return Count(func() (T, bool) {
		if i >= len(values) {
			var zero T
			return zero, false
		}
		i++
		return values[i-1], true
	})
}

// Naturals yields 0, 1, 2, ... forever.
func Naturals() *Counter[int] {
	n := -1
	return Count(func() (int, bool) {
		n++
		return n, true
	})
}

// Next pulls the wrapped function.
func (c *Counter[T]) Next() (T, bool) {
	c.pulls++
	v, ok := c.next()
	if ok {
		c.yielded++
	}
	return v, ok
}

// Stop records a stop.
func (c *Counter[T]) Stop() { c.stops++ }

// Pulls returns the number of Next calls.
func (c *Counter[T]) Pulls() int { return c.pulls }

// Yielded returns the number of Next calls that produced a value.
func (c *Counter[T]) Yielded() int { return c.yielded }

// Stops returns the number of Stop calls.
func (c *Counter[T]) Stops() int { return c.stops }

// AsyncCounter is an asynchronous source that counts pulls and closes.
// It is safe for concurrent use.
type AsyncCounter[T any] struct {
	next    func(ctx context.Context) (T, bool, error)
	pulls   atomic.Int64
	yielded atomic.Int64
	closes  atomic.Int64
}

// CountAsync wraps an asynchronous pull function.
func CountAsync[T any](next func(ctx context.Context) (T, bool, error)) *AsyncCounter[T] {
	return &AsyncCounter[T]{next: next}
}

// CountAsyncSlice yields values in order.
func CountAsyncSlice[T any](values ...T) *AsyncCounter[T] {
	var i atomic.Int64
	return CountAsync(func(context.Context) (T, bool, error) {
		n := int(i.Add(1)) - 1
		if n >= len(values) {
			var zero T
			return zero, false, nil
		}
		return values[n], true, nil
	})
}

// FailAt yields values in order but returns err instead of the value at
// position index.
func FailAt[T any](values []T, index int, err error) *AsyncCounter[T] {
	var i int
	return CountAsync(func(context.Context) (T, bool, error) {
		var zero T
		if i == index {
			return zero, false, err
		}
		if i >= len(values) {
			return zero, false, nil
		}
		i++
		return values[i-1], true, nil
	})
}

// Blocking yields nothing until ctx is done and then returns ctx.Err().
func Blocking[T any]() *AsyncCounter[T] {
	return CountAsync(func(ctx context.Context) (T, bool, error) {
		<-ctx.Done()
		var zero T
		return zero, false, ctx.Err()
	})
}

// Next pulls the wrapped function.
func (c *AsyncCounter[T]) Next(ctx context.Context) (T, bool, error) {
	c.pulls.Add(1)
	v, ok, err := c.next(ctx)
	if ok && err == nil {
		c.yielded.Add(1)
	}
	return v, ok, err
}

// Close records a close.
func (c *AsyncCounter[T]) Close() error {
	c.closes.Add(1)
	return nil
}

// Pulls returns the number of Next calls.
func (c *AsyncCounter[T]) Pulls() int { return int(c.pulls.Load()) }

// Yielded returns the number of Next calls that produced a value.
func (c *AsyncCounter[T]) Yielded() int { return int(c.yielded.Load()) }

// Closes returns the number of Close calls.
func (c *AsyncCounter[T]) Closes() int { return int(c.closes.Load()) }
