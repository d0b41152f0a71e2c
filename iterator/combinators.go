package iterator

// Filter keeps the elements for which pred reports true.
func (it *Iterator[T]) Filter(pred func(v T, index int) bool) *Iterator[T] {
	return iterate(it, func(v T, i int) stepResult[T] {
		if pred(v, i) {
			return take(v)
		}
		return skip[T]()
	})
}

// DropWhile discards leading elements while pred reports true, then yields
// the rest unchanged.
func (it *Iterator[T]) DropWhile(pred func(v T, index int) bool) *Iterator[T] {
	dropping := true
	return iterate(it, func(v T, i int) stepResult[T] {
		if dropping && pred(v, i) {
			return skip[T]()
		}
		dropping = false
		return take(v)
	})
}

// SkipWhile is an alias for DropWhile.
func (it *Iterator[T]) SkipWhile(pred func(v T, index int) bool) *Iterator[T] {
	return it.DropWhile(pred)
}

// Drop discards the first n elements. n <= 0 drops nothing.
func (it *Iterator[T]) Drop(n int) *Iterator[T] {
	return it.DropWhile(func(_ T, i int) bool { return i < n })
}

// Skip is an alias for Drop.
func (it *Iterator[T]) Skip(n int) *Iterator[T] {
	return it.Drop(n)
}

// TakeWhile yields elements while pred reports true and ends at the first
// element that fails it. That element is pulled but not yielded.
func (it *Iterator[T]) TakeWhile(pred func(v T, index int) bool) *Iterator[T] {
	return iterate(it, func(v T, i int) stepResult[T] {
		if pred(v, i) {
			return take(v)
		}
		return terminate[T]()
	})
}

// Take yields at most n elements. The upstream is pulled exactly
// min(n, len) times, so Take is safe on infinite iterators.
func (it *Iterator[T]) Take(n int) *Iterator[T] {
	return iterateBounded(it, func(i int) bool { return i < n }, func(v T, _ int) stepResult[T] {
		return take(v)
	})
}

// Map transforms every element.
func Map[T, R any](it *Iterator[T], fn func(v T, index int) R) *Iterator[R] {
	return iterate(it, func(v T, i int) stepResult[R] {
		return take(fn(v, i))
	})
}

// FlatMap maps every element to an Element and flattens nested results at
// every depth, depth-first and left to right.
func FlatMap[T, R any](it *Iterator[T], fn func(v T, index int) Element[R]) *Iterator[R] {
	return iterate(it, func(v T, i int) stepResult[R] {
		e := fn(v, i)
		if !e.nested {
			return take(e.value)
		}
		return splice(flatten(e.children))
	})
}

// Indexed pairs every element with its zero-based position.
func Indexed[T any](it *Iterator[T]) *Iterator[Entry[T]] {
	return Map(it, func(v T, i int) Entry[T] {
		return Entry[T]{Index: i, Value: v}
	})
}

// Enumerate is an alias for Indexed.
func Enumerate[T any](it *Iterator[T]) *Iterator[Entry[T]] {
	return Indexed(it)
}
