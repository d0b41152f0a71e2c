package asynciter

import (
	"context"

	"github.com/kbukum/iterx/logger"
)

// Element is either a leaf value or a nested asynchronous source of elements.
type Element[T any] struct {
	value    T
	children Source[Element[T]]
	nested   bool
}

// Leaf wraps a plain value.
func Leaf[T any](v T) Element[T] {
	return Element[T]{value: v}
}

// Nested wraps an asynchronous sub-sequence. A nil source is an empty nesting.
func Nested[T any](src Source[Element[T]]) Element[T] {
	return Element[T]{children: src, nested: true}
}

// NestedSync wraps a synchronous sub-sequence.
func NestedSync[T any](src SyncSource[Element[T]]) Element[T] {
	if src == nil {
		return Nested[T](nil)
	}
	return Nested[T](FromSync(src))
}

// Leaves nests a fixed list of leaf values.
func Leaves[T any](values ...T) Element[T] {
	return NestedValues[T](FromSlice(values))
}

// NestedValues nests a source of plain values one level deep.
func NestedValues[T any](src Source[T]) Element[T] {
	return Nested[T](Map(adopt(src), func(_ context.Context, v T, _ int) (Element[T], error) {
		return Leaf(v), nil
	}))
}

// IsNested reports whether e holds a sub-sequence.
func (e Element[T]) IsNested() bool { return e.nested }

// Value returns the leaf value. ok is false for nested elements.
func (e Element[T]) Value() (v T, ok bool) {
	return e.value, !e.nested
}

// Flat flattens nested elements at every depth, depth-first and left to
// right, awaiting each sub-sequence only when the output reaches it.
func Flat[T any](src Source[Element[T]]) *Iterator[T] {
	return flatten(src)
}

func flatten[T any](src Source[Element[T]]) *Iterator[T] {
	if src == nil {
		return Empty[T]()
	}
	stack := []*Iterator[Element[T]]{adopt(src)}
	deepest := 1
	out := &Iterator[T]{}
	out.next = func(ctx context.Context) (T, bool, error) {
		var zero T
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			e, ok, err := top.Next(ctx)
			if err != nil {
				return zero, false, err
			}
			if !ok {
				stack = stack[:len(stack)-1]
				continue
			}
			if !e.nested {
				return e.value, true, nil
			}
			if e.children != nil {
				stack = append(stack, adopt(e.children))
				deepest = max(deepest, len(stack))
			}
		}
		if l := log(); l.DebugEnabled() {
			l.Debug("flatten exhausted", logger.Fields(logger.FieldOperation, "flat", "depth", deepest))
		}
		return zero, false, nil
	}
	out.close = func() error {
		var first error
		for i := len(stack) - 1; i >= 0; i-- {
			if err := stack[i].Close(); err != nil && first == nil {
				first = err
			}
		}
		stack = nil
		return first
	}
	return out
}
