package iterator

import "github.com/kbukum/iterx/logger"

// Concat yields the elements of it followed by those of others, in order.
func (it *Iterator[T]) Concat(others ...Puller[T]) *Iterator[T] {
	return Concat(append([]Puller[T]{it}, others...)...)
}

// Chain is an alias for Concat.
func (it *Iterator[T]) Chain(others ...Puller[T]) *Iterator[T] {
	return it.Concat(others...)
}

// Concat yields the elements of each source in turn. A source is not pulled
// until every source before it is exhausted.
func Concat[T any](sources ...Puller[T]) *Iterator[T] {
	pending := make([]*Iterator[T], len(sources))
	for i, s := range sources {
		pending[i] = adopt(s)
	}
	out := &Iterator[T]{}
	out.next = func() (T, bool) {
		for len(pending) > 0 {
			if v, ok := pending[0].Next(); ok {
				return v, true
			}
			pending = pending[1:]
		}
		var zero T
		return zero, false
	}
	out.stop = func() {
		for _, p := range pending {
			p.Stop()
		}
		pending = nil
	}
	return out
}

// Chain is an alias for Concat.
func Chain[T any](sources ...Puller[T]) *Iterator[T] {
	return Concat(sources...)
}

// Zip pairs the elements of a and b positionally. Each step pulls once from
// both sides; the output ends as soon as either side is exhausted.
func Zip[A, B any](a Puller[A], b Puller[B]) *Iterator[Pair[A, B]] {
	left, right := adopt(a), adopt(b)
	stop := func() {
		left.Stop()
		right.Stop()
	}
	return &Iterator[Pair[A, B]]{
		next: func() (Pair[A, B], bool) {
			va, okA := left.Next()
			vb, okB := right.Next()
			if !okA || !okB {
				stop()
				return Pair[A, B]{}, false
			}
			return Pair[A, B]{First: va, Second: vb}, true
		},
		stop: stop,
	}
}

// Cycle repeats the elements of the iterator forever. The first pass is
// cached and later passes replay the cache without pulling upstream again.
// Cycling an empty iterator yields nothing.
func (it *Iterator[T]) Cycle() *Iterator[T] {
	return it.cycle(0, true)
}

// CycleN yields the elements of the iterator times times in total.
// times <= 0 yields nothing and does not pull the upstream.
func (it *Iterator[T]) CycleN(times int) *Iterator[T] {
	if times <= 0 {
		it.Stop()
		return Empty[T]()
	}
	return it.cycle(times-1, false)
}

func (it *Iterator[T]) cycle(replays int, forever bool) *Iterator[T] {
	var (
		cache     []T
		pos       int
		replaying bool
	)
	return &Iterator[T]{
		next: func() (T, bool) {
			var zero T
			if !replaying {
				if v, ok := it.Next(); ok {
					cache = append(cache, v)
					return v, true
				}
				replaying = true
				pos = len(cache)
				if l := log(); l.DebugEnabled() {
					l.Debug("cycle cached first pass", logger.Fields(logger.FieldOperation, "cycle", logger.FieldSize, len(cache)))
				}
			}
			if len(cache) == 0 {
				return zero, false
			}
			if pos == len(cache) {
				if !forever {
					if replays == 0 {
						return zero, false
					}
					replays--
				}
				pos = 0
			}
			v := cache[pos]
			pos++
			return v, true
		},
		stop: func() {
			it.Stop()
			cache = nil
		},
	}
}

// Reverse yields the elements in reverse order. The whole upstream is
// consumed on the first pull, so Reverse never finishes on an infinite
// iterator.
func (it *Iterator[T]) Reverse() *Iterator[T] {
	var (
		buf    []T
		pos    int
		loaded bool
	)
	return &Iterator[T]{
		next: func() (T, bool) {
			var zero T
			if !loaded {
				buf = reverseInto(it, nil)
				loaded = true
				if l := log(); l.DebugEnabled() {
					l.Debug("reverse materialized", logger.Fields(logger.FieldOperation, "reverse", logger.FieldSize, len(buf)))
				}
			}
			if pos >= len(buf) {
				return zero, false
			}
			v := buf[pos]
			buf[pos] = zero
			pos++
			return v, true
		},
		stop: func() {
			it.Stop()
			buf = nil
		},
	}
}

// reverseInto recurses to the end of src and appends on the way back.
func reverseInto[T any](src *Iterator[T], out []T) []T {
	v, ok := src.Next()
	if !ok {
		return out
	}
	out = reverseInto(src, out)
	return append(out, v)
}
