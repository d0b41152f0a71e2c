// Package iterator provides a lazy, pull-based, chainable iterator.
//
// An Iterator is a single pull function plus the combinators built on top of
// it. Nothing is evaluated until a terminal operation (ToSlice, Reduce, Find,
// Count, ...) or the caller pulls with Next. Each combinator wraps the pull
// function of its input in a new pull function, so chains never materialize
// intermediate collections and may be infinite:
//
//	evens := iterator.Repeat(1).Cycle().Filter(func(v, i int) bool { return i%2 == 0 })
//	first := evens.Take(3).ToSlice()
//
// Every lazy transformation is derived from one primitive, iterate, which
// runs a per-element callback returning a tagged step (skip, take, terminate
// or splice a sub-sequence). Every terminal operation is derived from the
// other primitive, visit, which drives the iterator until the visitor asks
// to stop or the input is exhausted.
//
// # Ownership
//
// An iterator owns its upstream. Once an iterator has been passed to a
// combinator it must not be pulled directly any more; use Tee to split one
// upstream into independently paced branches. Iterators are not safe for
// concurrent use.
//
// # Releasing resources
//
// Iterators built from an iter.Seq hold a coroutine until they are exhausted
// or stopped. Operations that drain an iterator stop it on completion;
// short-circuiting operations (Find, Some, Every, Nth, Includes) leave it
// positioned after the match so the caller can keep pulling. Call Stop when
// abandoning an iterator early.
package iterator
