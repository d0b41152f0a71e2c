package iterator

import (
	"iter"

	"github.com/kbukum/iterx/asynciter"
	"github.com/kbukum/iterx/logger"
)

// Puller is anything that can be pulled one value at a time.
// Next returns (zero, false) once exhausted.
type Puller[T any] interface {
	Next() (T, bool)
}

// stopper is implemented by sources that hold resources until stopped.
type stopper interface {
	Stop()
}

// Iterator is a lazy sequence backed by a single pull function.
type Iterator[T any] struct {
	next func() (T, bool)
	stop func()
	done bool
}

// Pair holds two values, used by Zip, Unzip and map sources.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Entry is an element together with its position, produced by Indexed.
type Entry[T any] struct {
	Index int
	Value T
}

// New creates an iterator from a pull function.
func New[T any](next func() (T, bool)) *Iterator[T] {
	return &Iterator[T]{next: next}
}

// From adapts anything shaped like a Puller. If p also has a Stop method it
// is called when the iterator is stopped.
func From[T any](p Puller[T]) *Iterator[T] {
	it := &Iterator[T]{next: p.Next}
	if s, ok := p.(stopper); ok {
		it.stop = s.Stop
	}
	return it
}

// adopt takes ownership of p without wrapping when it already is an *Iterator.
func adopt[T any](p Puller[T]) *Iterator[T] {
	if it, ok := p.(*Iterator[T]); ok {
		return it
	}
	return From(p)
}

// Next pulls the next value. After it first reports false it keeps reporting
// false, and the iterator's resources have been released.
func (it *Iterator[T]) Next() (T, bool) {
	if it.done || it.next == nil {
		var zero T
		return zero, false
	}
	v, ok := it.next()
	if !ok {
		it.Stop()
	}
	return v, ok
}

// Stop marks the iterator as exhausted and releases upstream resources.
// Stop is idempotent.
func (it *Iterator[T]) Stop() {
	it.done = true
	if s := it.stop; s != nil {
		it.stop = nil
		s()
	}
}

// Seq returns a single-use iter.Seq that drains the iterator, so it can be
// used with range:
//
//	for v := range it.Seq() { ... }
func (it *Iterator[T]) Seq() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := it.Next()
			if !ok {
				return
			}
			if !yield(v) {
				return
			}
		}
	}
}

// ToAsync wraps the iterator as an asynchronous one with the same element
// order. Stopping or closing the result stops this iterator.
func (it *Iterator[T]) ToAsync() *asynciter.Iterator[T] {
	return asynciter.FromSync[T](it)
}

func log() *logger.Logger {
	return logger.Get("iterator")
}
