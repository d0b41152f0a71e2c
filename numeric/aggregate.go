package numeric

import (
	"cmp"
	"context"

	"github.com/kbukum/iterx/asynciter"
	"github.com/kbukum/iterx/iterator"
	"github.com/kbukum/iterx/option"
)

// Sum adds up all elements. An empty iterator sums to zero.
func Sum[N Number](it *iterator.Iterator[N]) N {
	return it.ReduceFrom(0, func(acc, v N, _ int) N { return acc + v })
}

// Product multiplies all elements. An empty iterator yields one.
func Product[N Number](it *iterator.Iterator[N]) N {
	return it.ReduceFrom(1, func(acc, v N, _ int) N { return acc * v })
}

// Min returns the smallest element, or None for an empty iterator.
// The first of equal elements wins.
func Min[N Number](it *iterator.Iterator[N]) option.Option[N] {
	return MinFunc(it, cmp.Compare[N])
}

// Max returns the largest element, or None for an empty iterator.
// The first of equal elements wins.
func Max[N Number](it *iterator.Iterator[N]) option.Option[N] {
	return MaxFunc(it, cmp.Compare[N])
}

// MinFunc returns the smallest element according to compare.
func MinFunc[T any](it *iterator.Iterator[T], compare func(a, b T) int) option.Option[T] {
	return extreme(it, func(a, b T) bool { return compare(a, b) <= 0 })
}

// MaxFunc returns the largest element according to compare.
func MaxFunc[T any](it *iterator.Iterator[T], compare func(a, b T) int) option.Option[T] {
	return extreme(it, func(a, b T) bool { return compare(a, b) >= 0 })
}

// extreme keeps the accumulator while keep(acc, v) holds.
func extreme[T any](it *iterator.Iterator[T], keep func(acc, v T) bool) option.Option[T] {
	v, err := it.Reduce(func(acc, v T, _ int) T {
		if keep(acc, v) {
			return acc
		}
		return v
	})
	if err != nil {
		return option.None[T]()
	}
	return option.Some(v)
}

// SumAsync adds up all elements of an asynchronous iterator.
func SumAsync[N Number](ctx context.Context, it *asynciter.Iterator[N]) (N, error) {
	return it.ReduceFrom(ctx, 0, func(_ context.Context, acc, v N, _ int) (N, error) { return acc + v, nil })
}

// ProductAsync multiplies all elements of an asynchronous iterator.
func ProductAsync[N Number](ctx context.Context, it *asynciter.Iterator[N]) (N, error) {
	return it.ReduceFrom(ctx, 1, func(_ context.Context, acc, v N, _ int) (N, error) { return acc * v, nil })
}

// MinAsync returns the smallest element, or None for an empty iterator.
func MinAsync[N Number](ctx context.Context, it *asynciter.Iterator[N]) (option.Option[N], error) {
	return MinFuncAsync(ctx, it, compareAsync[N])
}

// MaxAsync returns the largest element, or None for an empty iterator.
func MaxAsync[N Number](ctx context.Context, it *asynciter.Iterator[N]) (option.Option[N], error) {
	return MaxFuncAsync(ctx, it, compareAsync[N])
}

// MinFuncAsync returns the smallest element according to compare. The first
// of equal elements wins. An error from compare aborts the scan and is
// returned.
func MinFuncAsync[T any](ctx context.Context, it *asynciter.Iterator[T], compare func(ctx context.Context, a, b T) (int, error)) (option.Option[T], error) {
	return extremeAsync(ctx, it, func(ctx context.Context, a, b T) (bool, error) {
		c, err := compare(ctx, a, b)
		return c <= 0, err
	})
}

// MaxFuncAsync returns the largest element according to compare. The first
// of equal elements wins.
func MaxFuncAsync[T any](ctx context.Context, it *asynciter.Iterator[T], compare func(ctx context.Context, a, b T) (int, error)) (option.Option[T], error) {
	return extremeAsync(ctx, it, func(ctx context.Context, a, b T) (bool, error) {
		c, err := compare(ctx, a, b)
		return c >= 0, err
	})
}

func compareAsync[N Number](_ context.Context, a, b N) (int, error) {
	return cmp.Compare(a, b), nil
}

// extremeAsync seeds with the first element itself so that an empty
// iterator is told apart from a failing comparer.
func extremeAsync[T any](ctx context.Context, it *asynciter.Iterator[T], keep func(ctx context.Context, acc, v T) (bool, error)) (option.Option[T], error) {
	first, ok, err := it.Next(ctx)
	if err != nil {
		_ = it.Close()
		return option.None[T](), err
	}
	if !ok {
		return option.None[T](), nil
	}
	v, err := it.ReduceFrom(ctx, first, func(ctx context.Context, acc, v T, _ int) (T, error) {
		kept, err := keep(ctx, acc, v)
		if err != nil || kept {
			return acc, err
		}
		return v, nil
	})
	if err != nil {
		return option.None[T](), err
	}
	return option.Some(v), nil
}
