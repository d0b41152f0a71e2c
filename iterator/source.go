package iterator

import (
	"iter"
	"maps"
	"unicode/utf8"
)

// Empty returns an iterator that yields nothing.
func Empty[T any]() *Iterator[T] {
	return &Iterator[T]{done: true}
}

// FromSlice iterates over the elements of s in order. The slice is not copied.
func FromSlice[T any](s []T) *Iterator[T] {
	var i int
	return New(func() (T, bool) {
		if i >= len(s) {
			var zero T
			return zero, false
		}
		v := s[i]
		i++
		return v, true
	})
}

// Of iterates over its arguments.
func Of[T any](values ...T) *Iterator[T] {
	return FromSlice(values)
}

// FromSeq adapts a push-style iter.Seq. The sequence runs as a coroutine
// that is released when the iterator is exhausted or stopped.
func FromSeq[T any](seq iter.Seq[T]) *Iterator[T] {
	next, stop := iter.Pull(seq)
	return &Iterator[T]{next: next, stop: stop}
}

// FromSeq2 adapts an iter.Seq2 into an iterator of pairs.
func FromSeq2[K, V any](seq iter.Seq2[K, V]) *Iterator[Pair[K, V]] {
	next, stop := iter.Pull2(seq)
	return &Iterator[Pair[K, V]]{
		next: func() (Pair[K, V], bool) {
			k, v, ok := next()
			return Pair[K, V]{First: k, Second: v}, ok
		},
		stop: stop,
	}
}

// FromMap iterates over the key/value pairs of m in map iteration order.
func FromMap[K comparable, V any](m map[K]V) *Iterator[Pair[K, V]] {
	return FromSeq2(maps.All(m))
}

// FromString iterates over the runes of s. Invalid UTF-8 bytes yield
// utf8.RuneError, one per byte.
func FromString(s string) *Iterator[rune] {
	return New(func() (rune, bool) {
		if len(s) == 0 {
			return 0, false
		}
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]
		return r, true
	})
}

// FromChan receives from ch until it is closed.
func FromChan[T any](ch <-chan T) *Iterator[T] {
	return New(func() (T, bool) {
		v, ok := <-ch
		return v, ok
	})
}

// Repeat yields v forever.
func Repeat[T any](v T) *Iterator[T] {
	return New(func() (T, bool) { return v, true })
}

// RepeatN yields v exactly max(times, 0) times.
func RepeatN[T any](v T, times int) *Iterator[T] {
	return New(func() (T, bool) {
		if times <= 0 {
			var zero T
			return zero, false
		}
		times--
		return v, true
	})
}
