// Package option provides a two-state value wrapper used wherever "no such
// element" has to be told apart from a zero value.
//
// Terminal operations such as Find, Nth, Last, Min and Max return an Option.
// Callers branch on its state explicitly:
//
//	if v, ok := it.Find(pred).Get(); ok {
//	    use(v)
//	}
package option

import "fmt"

// Option holds either nothing (None) or exactly one value (Some).
// The zero value is None. An Option is never mutated after construction.
type Option[T any] struct {
	value T
	ok    bool
}

// None returns the empty Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// Some wraps v.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, ok: true}
}

// IsNone reports whether the Option is empty.
func (o Option[T]) IsNone() bool { return !o.ok }

// IsSome reports whether the Option holds a value.
func (o Option[T]) IsSome() bool { return o.ok }

// Get returns the value and whether it is present.
func (o Option[T]) Get() (T, bool) { return o.value, o.ok }

// OrElse returns the value, or def when the Option is empty.
func (o Option[T]) OrElse(def T) T {
	if o.ok {
		return o.value
	}
	return def
}

// MustGet returns the value and panics when the Option is empty.
func (o Option[T]) MustGet() T {
	if !o.ok {
		panic("option: MustGet called on None")
	}
	return o.value
}

// String implements fmt.Stringer.
func (o Option[T]) String() string {
	if !o.ok {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.value)
}
