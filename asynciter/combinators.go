package asynciter

import "context"

// Filter keeps the elements for which pred reports true.
func (it *Iterator[T]) Filter(pred Predicate[T]) *Iterator[T] {
	return iterate(it, "filter", func(ctx context.Context, v T, i int) (stepResult[T], error) {
		keep, err := pred(ctx, v, i)
		if err != nil {
			return skip[T](), err
		}
		if keep {
			return take(v), nil
		}
		return skip[T](), nil
	})
}

// DropWhile discards leading elements while pred reports true.
func (it *Iterator[T]) DropWhile(pred Predicate[T]) *Iterator[T] {
	dropping := true
	return iterate(it, "dropWhile", func(ctx context.Context, v T, i int) (stepResult[T], error) {
		if dropping {
			drop, err := pred(ctx, v, i)
			if err != nil {
				return skip[T](), err
			}
			if drop {
				return skip[T](), nil
			}
			dropping = false
		}
		return take(v), nil
	})
}

// SkipWhile is an alias for DropWhile.
func (it *Iterator[T]) SkipWhile(pred Predicate[T]) *Iterator[T] {
	return it.DropWhile(pred)
}

// Drop discards the first n elements.
func (it *Iterator[T]) Drop(n int) *Iterator[T] {
	return it.DropWhile(func(_ context.Context, _ T, i int) (bool, error) { return i < n, nil })
}

// Skip is an alias for Drop.
func (it *Iterator[T]) Skip(n int) *Iterator[T] {
	return it.Drop(n)
}

// TakeWhile yields elements until pred first reports false.
func (it *Iterator[T]) TakeWhile(pred Predicate[T]) *Iterator[T] {
	return iterate(it, "takeWhile", func(ctx context.Context, v T, i int) (stepResult[T], error) {
		ok, err := pred(ctx, v, i)
		if err != nil {
			return skip[T](), err
		}
		if ok {
			return take(v), nil
		}
		return terminate[T](), nil
	})
}

// Take yields at most n elements and pulls the upstream at most n times.
func (it *Iterator[T]) Take(n int) *Iterator[T] {
	return iterateBounded(it, "take", func(i int) bool { return i < n }, func(_ context.Context, v T, _ int) (stepResult[T], error) {
		return take(v), nil
	})
}

// Map transforms every element.
func Map[T, R any](it *Iterator[T], fn func(ctx context.Context, v T, index int) (R, error)) *Iterator[R] {
	return iterate(it, "map", func(ctx context.Context, v T, i int) (stepResult[R], error) {
		out, err := fn(ctx, v, i)
		if err != nil {
			return skip[R](), err
		}
		return take(out), nil
	})
}

// FlatMap maps every element to an Element and flattens nested results at
// every depth.
func FlatMap[T, R any](it *Iterator[T], fn func(ctx context.Context, v T, index int) (Element[R], error)) *Iterator[R] {
	return iterate(it, "flatMap", func(ctx context.Context, v T, i int) (stepResult[R], error) {
		e, err := fn(ctx, v, i)
		if err != nil {
			return skip[R](), err
		}
		if !e.nested {
			return take(e.value), nil
		}
		return splice[R](flatten(e.children)), nil
	})
}

// Indexed pairs every element with its zero-based position.
func Indexed[T any](it *Iterator[T]) *Iterator[Entry[T]] {
	return Map(it, func(_ context.Context, v T, i int) (Entry[T], error) {
		return Entry[T]{Index: i, Value: v}, nil
	})
}

// Enumerate is an alias for Indexed.
func Enumerate[T any](it *Iterator[T]) *Iterator[Entry[T]] {
	return Indexed(it)
}
