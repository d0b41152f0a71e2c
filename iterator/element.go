package iterator

import "github.com/kbukum/iterx/logger"

// Element is either a leaf value or a nested iterator of elements. It is the
// input to Flat and the result of a FlatMap callback.
type Element[T any] struct {
	value    T
	children Puller[Element[T]]
	nested   bool
}

// Leaf wraps a plain value.
func Leaf[T any](v T) Element[T] {
	return Element[T]{value: v}
}

// Nested wraps a sub-iterator whose elements are flattened in place.
// A nil puller is an empty nesting.
func Nested[T any](p Puller[Element[T]]) Element[T] {
	return Element[T]{children: p, nested: true}
}

// Leaves nests a fixed list of leaf values.
func Leaves[T any](values ...T) Element[T] {
	return NestedValues[T](FromSlice(values))
}

// NestedValues nests an iterator of plain values one level deep.
func NestedValues[T any](p Puller[T]) Element[T] {
	return Nested[T](Map(adopt(p), func(v T, _ int) Element[T] { return Leaf(v) }))
}

// IsNested reports whether e holds a sub-iterator.
func (e Element[T]) IsNested() bool { return e.nested }

// Value returns the leaf value. ok is false for nested elements.
func (e Element[T]) Value() (v T, ok bool) {
	return e.value, !e.nested
}

// Flat flattens nested elements at every depth, depth-first and left to
// right. Sub-iterators are pulled only when the output reaches them.
func Flat[T any](p Puller[Element[T]]) *Iterator[T] {
	return flatten(p)
}

func flatten[T any](p Puller[Element[T]]) *Iterator[T] {
	if p == nil {
		return Empty[T]()
	}
	stack := []*Iterator[Element[T]]{adopt(p)}
	deepest := 1
	out := &Iterator[T]{}
	out.next = func() (T, bool) {
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			e, ok := top.Next()
			if !ok {
				stack = stack[:len(stack)-1]
				continue
			}
			if !e.nested {
				return e.value, true
			}
			if e.children != nil {
				stack = append(stack, adopt(e.children))
				deepest = max(deepest, len(stack))
			}
		}
		if l := log(); l.DebugEnabled() {
			l.Debug("flatten exhausted", logger.Fields(logger.FieldOperation, "flat", "depth", deepest))
		}
		var zero T
		return zero, false
	}
	out.stop = func() {
		for i := len(stack) - 1; i >= 0; i-- {
			stack[i].Stop()
		}
		stack = nil
	}
	return out
}
