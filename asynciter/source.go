package asynciter

import (
	"context"
	"iter"
)

// Empty returns an iterator that yields nothing.
func Empty[T any]() *Iterator[T] {
	return &Iterator[T]{done: true}
}

// FromSlice iterates over the elements of s in order.
func FromSlice[T any](s []T) *Iterator[T] {
	var i int
	return New(func(context.Context) (T, bool, error) {
		if i >= len(s) {
			var zero T
			return zero, false, nil
		}
		v := s[i]
		i++
		return v, true, nil
	})
}

// Of iterates over its arguments.
func Of[T any](values ...T) *Iterator[T] {
	return FromSlice(values)
}

// FromSeq adapts a push-style iter.Seq.
func FromSeq[T any](seq iter.Seq[T]) *Iterator[T] {
	next, stop := iter.Pull(seq)
	return &Iterator[T]{
		next: func(context.Context) (T, bool, error) {
			v, ok := next()
			return v, ok, nil
		},
		close: func() error {
			stop()
			return nil
		},
	}
}

// FromErrSeq adapts a sequence of (value, error) pairs. A non-nil error is
// returned from Next in place of the value.
func FromErrSeq[T any](seq iter.Seq2[T, error]) *Iterator[T] {
	next, stop := iter.Pull2(seq)
	return &Iterator[T]{
		next: func(context.Context) (T, bool, error) {
			v, err, ok := next()
			if err != nil {
				var zero T
				return zero, false, err
			}
			return v, ok, nil
		},
		close: func() error {
			stop()
			return nil
		},
	}
}

// FromChan receives from ch until it is closed or the pull's context is done.
func FromChan[T any](ch <-chan T) *Iterator[T] {
	return New(func(ctx context.Context) (T, bool, error) {
		select {
		case v, ok := <-ch:
			return v, ok, nil
		case <-ctx.Done():
			var zero T
			return zero, false, ctx.Err()
		}
	})
}

// Repeat yields v forever.
func Repeat[T any](v T) *Iterator[T] {
	return New(func(context.Context) (T, bool, error) { return v, true, nil })
}

// RepeatN yields v exactly max(times, 0) times.
func RepeatN[T any](v T, times int) *Iterator[T] {
	return New(func(context.Context) (T, bool, error) {
		if times <= 0 {
			var zero T
			return zero, false, nil
		}
		times--
		return v, true, nil
	})
}
