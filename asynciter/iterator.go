package asynciter

import (
	"context"
	"iter"

	"github.com/kbukum/iterx/logger"
)

// Source is anything that can be pulled asynchronously.
// Next returns (zero, false, nil) once exhausted.
type Source[T any] interface {
	Next(ctx context.Context) (T, bool, error)
}

// SyncSource is the shape of a synchronous iterator.
type SyncSource[T any] interface {
	Next() (T, bool)
}

type closer interface {
	Close() error
}

type stopper interface {
	Stop()
}

// Iterator is a lazy asynchronous sequence backed by a single pull function.
type Iterator[T any] struct {
	next  func(ctx context.Context) (T, bool, error)
	close func() error
	done  bool
}

// Pair holds two values, used by Zip and Unzip.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Entry is an element together with its position, produced by Indexed.
type Entry[T any] struct {
	Index int
	Value T
}

// Predicate tests an element at a given index.
type Predicate[T any] func(ctx context.Context, v T, index int) (bool, error)

// New creates an iterator from a pull function.
func New[T any](next func(ctx context.Context) (T, bool, error)) *Iterator[T] {
	return &Iterator[T]{next: next}
}

// From adapts any Source. If src also has a Close method it is called when
// the iterator is closed.
func From[T any](src Source[T]) *Iterator[T] {
	it := &Iterator[T]{next: src.Next}
	if c, ok := src.(closer); ok {
		it.close = c.Close
	}
	return it
}

// FromSync adapts a synchronous iterator. If src has a Stop method it is
// called when the iterator is closed.
func FromSync[T any](src SyncSource[T]) *Iterator[T] {
	it := &Iterator[T]{
		next: func(context.Context) (T, bool, error) {
			v, ok := src.Next()
			return v, ok, nil
		},
	}
	switch s := src.(type) {
	case stopper:
		it.close = func() error {
			s.Stop()
			return nil
		}
	case closer:
		it.close = s.Close
	}
	return it
}

func adopt[T any](src Source[T]) *Iterator[T] {
	if it, ok := src.(*Iterator[T]); ok {
		return it
	}
	return From(src)
}

// Next pulls the next value. Once it reports false the iterator has been
// closed and keeps reporting false. The error of that final Close, if any,
// is returned with the false.
func (it *Iterator[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if it.done || it.next == nil {
		return zero, false, nil
	}
	v, ok, err := it.next(ctx)
	if err != nil {
		return zero, false, err
	}
	if !ok {
		return zero, false, it.Close()
	}
	return v, true, nil
}

// Close marks the iterator as exhausted and releases upstream resources.
// Only the first call does any work.
func (it *Iterator[T]) Close() error {
	it.done = true
	if c := it.close; c != nil {
		it.close = nil
		return c()
	}
	return nil
}

// Seq returns a single-use iter.Seq2 that drains the iterator. A failed
// pull is yielded once as (zero, err) and ends the sequence.
func (it *Iterator[T]) Seq(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			v, ok, err := it.Next(ctx)
			if err != nil {
				yield(v, err)
				return
			}
			if !ok || !yield(v, nil) {
				return
			}
		}
	}
}

func log() *logger.Logger {
	return logger.Get("asynciter")
}
