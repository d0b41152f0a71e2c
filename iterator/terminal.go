package iterator

import (
	"math"
	"reflect"

	apperrors "github.com/kbukum/iterx/errors"
	"github.com/kbukum/iterx/logger"
	"github.com/kbukum/iterx/option"
)

// Count drains the iterator and returns the number of elements.
func (it *Iterator[T]) Count() int {
	n := 0
	visitAll(it, func(T, int) { n++ })
	return n
}

// Every reports whether pred holds for all elements. It stops at the first
// failure and reports true for an empty iterator.
func (it *Iterator[T]) Every(pred func(v T, index int) bool) bool {
	return visit(it, func(v T, i int) (bool, bool) {
		if !pred(v, i) {
			return false, true
		}
		return false, false
	}, true)
}

// All is an alias for Every.
func (it *Iterator[T]) All(pred func(v T, index int) bool) bool {
	return it.Every(pred)
}

// Some reports whether pred holds for any element, stopping at the first match.
func (it *Iterator[T]) Some(pred func(v T, index int) bool) bool {
	return visit(it, func(v T, i int) (bool, bool) {
		return true, pred(v, i)
	}, false)
}

// Any is an alias for Some.
func (it *Iterator[T]) Any(pred func(v T, index int) bool) bool {
	return it.Some(pred)
}

// Find returns the first element matching pred.
func (it *Iterator[T]) Find(pred func(v T, index int) bool) option.Option[T] {
	return visit(it, func(v T, i int) (option.Option[T], bool) {
		if pred(v, i) {
			return option.Some(v), true
		}
		return option.None[T](), false
	}, option.None[T]())
}

// ForEach calls fn for every element.
func (it *Iterator[T]) ForEach(fn func(v T, index int)) {
	visitAll(it, fn)
}

// Last drains the iterator and returns its final element.
func (it *Iterator[T]) Last() option.Option[T] {
	last := option.None[T]()
	visitAll(it, func(v T, _ int) { last = option.Some(v) })
	return last
}

// Nth returns the element at zero-based position n. It pulls n+1 elements at
// most and returns None for a negative n or a shorter iterator.
func (it *Iterator[T]) Nth(n int) option.Option[T] {
	if n < 0 {
		return option.None[T]()
	}
	return visit(it, func(v T, i int) (option.Option[T], bool) {
		if i == n {
			return option.Some(v), true
		}
		return option.None[T](), false
	}, option.None[T]())
}

// ToSlice drains the iterator into a new slice.
func (it *Iterator[T]) ToSlice() []T {
	out := []T{}
	visitAll(it, func(v T, _ int) { out = append(out, v) })
	return out
}

// Collect is an alias for ToSlice.
func (it *Iterator[T]) Collect() []T {
	return it.ToSlice()
}

// Reduce folds the elements with fn, seeding the accumulator with the first
// element. fn sees indices starting at 1. An empty iterator yields an
// EMPTY_SEQUENCE error.
func (it *Iterator[T]) Reduce(fn func(acc, v T, index int) T) (T, error) {
	first, ok := it.Next()
	if !ok {
		log().Debug("reduce on empty sequence", logger.Fields(logger.FieldOperation, "reduce"))
		var zero T
		return zero, apperrors.EmptySequence("reduce")
	}
	acc := first
	visitAll(it, func(v T, i int) { acc = fn(acc, v, i+1) })
	return acc, nil
}

// ReduceFrom folds the elements with fn starting from seed. fn sees indices
// starting at 0.
func (it *Iterator[T]) ReduceFrom(seed T, fn func(acc, v T, index int) T) T {
	return Fold(it, seed, fn)
}

// Fold folds the elements into an accumulator of a different type.
func Fold[T, R any](it *Iterator[T], seed R, fn func(acc R, v T, index int) R) R {
	acc := seed
	visitAll(it, func(v T, i int) { acc = fn(acc, v, i) })
	return acc
}

// Includes reports whether target occurs in the iterator, stopping at the
// first match. Values compare with ==, except that floats compare by same
// value: NaN matches NaN and 0 does not match -0.
func Includes[T comparable](it *Iterator[T], target T) bool {
	eq := equalFunc(target)
	return it.Some(func(v T, _ int) bool { return eq(v) })
}

// Contains is an alias for Includes.
func Contains[T comparable](it *Iterator[T], target T) bool {
	return Includes(it, target)
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
