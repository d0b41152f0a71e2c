package asynciter

import (
	"context"
	"math"
	"reflect"

	apperrors "github.com/kbukum/iterx/errors"
	"github.com/kbukum/iterx/logger"
	"github.com/kbukum/iterx/option"
)

// Count drains the iterator and returns the number of elements.
func (it *Iterator[T]) Count(ctx context.Context) (int, error) {
	n := 0
	err := visitAll(ctx, it, "count", func(context.Context, T, int) error {
		n++
		return nil
	})
	return n, err
}

// Every reports whether pred holds for all elements, stopping at the first
// failure. An empty iterator reports true.
func (it *Iterator[T]) Every(ctx context.Context, pred Predicate[T]) (bool, error) {
	return visit(ctx, it, "every", func(ctx context.Context, v T, i int) (bool, bool, error) {
		ok, err := pred(ctx, v, i)
		return false, err == nil && !ok, err
	}, true)
}

// All is an alias for Every.
func (it *Iterator[T]) All(ctx context.Context, pred Predicate[T]) (bool, error) {
	return it.Every(ctx, pred)
}

// Some reports whether pred holds for any element, stopping at the first match.
func (it *Iterator[T]) Some(ctx context.Context, pred Predicate[T]) (bool, error) {
	return visit(ctx, it, "some", func(ctx context.Context, v T, i int) (bool, bool, error) {
		ok, err := pred(ctx, v, i)
		return true, err == nil && ok, err
	}, false)
}

// Any is an alias for Some.
func (it *Iterator[T]) Any(ctx context.Context, pred Predicate[T]) (bool, error) {
	return it.Some(ctx, pred)
}

// Find returns the first element matching pred.
func (it *Iterator[T]) Find(ctx context.Context, pred Predicate[T]) (option.Option[T], error) {
	return visit(ctx, it, "find", func(ctx context.Context, v T, i int) (option.Option[T], bool, error) {
		ok, err := pred(ctx, v, i)
		if err != nil || !ok {
			return option.None[T](), false, err
		}
		return option.Some(v), true, nil
	}, option.None[T]())
}

// ForEach calls fn for every element and stops at the first error.
func (it *Iterator[T]) ForEach(ctx context.Context, fn func(ctx context.Context, v T, index int) error) error {
	return visitAll(ctx, it, "forEach", fn)
}

// Last drains the iterator and returns its final element.
func (it *Iterator[T]) Last(ctx context.Context) (option.Option[T], error) {
	last := option.None[T]()
	err := visitAll(ctx, it, "last", func(_ context.Context, v T, _ int) error {
		last = option.Some(v)
		return nil
	})
	if err != nil {
		return option.None[T](), err
	}
	return last, nil
}

// Nth returns the element at zero-based position n.
func (it *Iterator[T]) Nth(ctx context.Context, n int) (option.Option[T], error) {
	if n < 0 {
		return option.None[T](), nil
	}
	return visit(ctx, it, "nth", func(_ context.Context, v T, i int) (option.Option[T], bool, error) {
		if i == n {
			return option.Some(v), true, nil
		}
		return option.None[T](), false, nil
	}, option.None[T]())
}

// ToSlice drains the iterator into a slice. On error the values collected so
// far are returned with it.
func (it *Iterator[T]) ToSlice(ctx context.Context) ([]T, error) {
	out := []T{}
	err := visitAll(ctx, it, "toSlice", func(_ context.Context, v T, _ int) error {
		out = append(out, v)
		return nil
	})
	return out, err
}

// Collect is an alias for ToSlice.
func (it *Iterator[T]) Collect(ctx context.Context) ([]T, error) {
	return it.ToSlice(ctx)
}

// Reduce folds the elements with fn, seeding the accumulator with the first
// element. fn sees indices starting at 1. An empty iterator yields an
// EMPTY_SEQUENCE error.
func (it *Iterator[T]) Reduce(ctx context.Context, fn func(ctx context.Context, acc, v T, index int) (T, error)) (T, error) {
	var zero T
	first, ok, err := it.Next(ctx)
	if err != nil {
		_ = it.Close()
		return zero, err
	}
	if !ok {
		log().Debug("reduce on empty sequence", logger.Fields(logger.FieldOperation, "reduce"))
		return zero, apperrors.EmptySequence("reduce")
	}
	acc := first
	err = visitAll(ctx, it, "reduce", func(ctx context.Context, v T, i int) error {
		next, err := fn(ctx, acc, v, i+1)
		acc = next
		return err
	})
	if err != nil {
		return zero, err
	}
	return acc, nil
}

// ReduceFrom folds the elements with fn starting from seed.
func (it *Iterator[T]) ReduceFrom(ctx context.Context, seed T, fn func(ctx context.Context, acc, v T, index int) (T, error)) (T, error) {
	return Fold(ctx, it, seed, fn)
}

// Fold folds the elements into an accumulator of a different type.
func Fold[T, R any](ctx context.Context, it *Iterator[T], seed R, fn func(ctx context.Context, acc R, v T, index int) (R, error)) (R, error) {
	acc := seed
	err := visitAll(ctx, it, "fold", func(ctx context.Context, v T, i int) error {
		next, err := fn(ctx, acc, v, i)
		acc = next
		return err
	})
	if err != nil {
		var zero R
		return zero, err
	}
	return acc, nil
}

// Includes reports whether target occurs in the iterator. Floats compare by
// same value: NaN matches NaN and 0 does not match -0.
func Includes[T comparable](ctx context.Context, it *Iterator[T], target T) (bool, error) {
	eq := equalFunc(target)
	return it.Some(ctx, func(_ context.Context, v T, _ int) (bool, error) {
		return eq(v), nil
	})
}

// Contains is an alias for Includes.
func Contains[T comparable](ctx context.Context, it *Iterator[T], target T) (bool, error) {
	return Includes(ctx, it, target)
}

// equalFunc returns a same-value matcher for target: NaN matches NaN, and
// +0 and -0 are told apart. Other types compare with ==.
func equalFunc[T comparable](target T) func(T) bool {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Float32, reflect.Float64:
		want := reflect.ValueOf(target).Float()
		return func(v T) bool { return sameFloat(reflect.ValueOf(v).Float(), want) }
	}
	return func(v T) bool { return v == target }
}

func sameFloat(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return a == b && math.Signbit(a) == math.Signbit(b)
}
