package asynciter

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/kbukum/iterx/logger"
)

// Concat yields the elements of it followed by those of others.
func (it *Iterator[T]) Concat(others ...Source[T]) *Iterator[T] {
	return Concat(append([]Source[T]{it}, others...)...)
}

// Chain is an alias for Concat.
func (it *Iterator[T]) Chain(others ...Source[T]) *Iterator[T] {
	return it.Concat(others...)
}

// Concat yields the elements of each source in turn. A source is not pulled
// until every source before it is exhausted.
func Concat[T any](sources ...Source[T]) *Iterator[T] {
	pending := make([]*Iterator[T], len(sources))
	for i, s := range sources {
		pending[i] = adopt(s)
	}
	return &Iterator[T]{
		next: func(ctx context.Context) (T, bool, error) {
			for len(pending) > 0 {
				v, ok, err := pending[0].Next(ctx)
				if err != nil {
					return v, false, err
				}
				if ok {
					return v, true, nil
				}
				pending = pending[1:]
			}
			var zero T
			return zero, false, nil
		},
		close: func() error {
			var first error
			for _, p := range pending {
				if err := p.Close(); err != nil && first == nil {
					first = err
				}
			}
			pending = nil
			return first
		},
	}
}

// Chain is an alias for Concat.
func Chain[T any](sources ...Source[T]) *Iterator[T] {
	return Concat(sources...)
}

// Zip pairs the elements of a and b positionally. Both sides are pulled
// concurrently on every step; if one pull fails the other pull's context is
// canceled and the first error is returned. The output ends as soon as
// either side is exhausted.
//
// a and b must not share unsynchronized state. Branches of the same Tee are
// safe to zip.
func Zip[A, B any](a Source[A], b Source[B]) *Iterator[Pair[A, B]] {
	left, right := adopt(a), adopt(b)
	closeBoth := func() error {
		errA := left.Close()
		if errB := right.Close(); errA == nil {
			return errB
		}
		return errA
	}
	return &Iterator[Pair[A, B]]{
		next: func(ctx context.Context) (Pair[A, B], bool, error) {
			var (
				va       A
				vb       B
				okA, okB bool
			)
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				var err error
				va, okA, err = left.Next(gctx)
				return err
			})
			g.Go(func() error {
				var err error
				vb, okB, err = right.Next(gctx)
				return err
			})
			if err := g.Wait(); err != nil {
				log().Debug("zip pull failed, sibling canceled", logger.ErrorFields("zip", err))
				return Pair[A, B]{}, false, err
			}
			if !okA || !okB {
				return Pair[A, B]{}, false, closeBoth()
			}
			return Pair[A, B]{First: va, Second: vb}, true, nil
		},
		close: closeBoth,
	}
}

// Cycle repeats the elements forever, replaying a cache of the first pass.
func (it *Iterator[T]) Cycle() *Iterator[T] {
	return it.cycle(0, true)
}

// CycleN yields the elements times times in total. times <= 0 yields nothing.
func (it *Iterator[T]) CycleN(times int) *Iterator[T] {
	if times <= 0 {
		_ = it.Close()
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
		next: func(ctx context.Context) (T, bool, error) {
			var zero T
			if !replaying {
				v, ok, err := it.Next(ctx)
				if err != nil {
					return zero, false, err
				}
				if ok {
					cache = append(cache, v)
					return v, true, nil
				}
				replaying = true
				pos = len(cache)
				if l := log(); l.DebugEnabled() {
					l.Debug("cycle cached first pass", logger.Fields(logger.FieldOperation, "cycle", logger.FieldSize, len(cache)))
				}
			}
			if len(cache) == 0 {
				return zero, false, nil
			}
			if pos == len(cache) {
				if !forever {
					if replays == 0 {
						return zero, false, nil
					}
					replays--
				}
				pos = 0
			}
			v := cache[pos]
			pos++
			return v, true, nil
		},
		close: func() error {
			cache = nil
			return it.Close()
		},
	}
}

// Reverse yields the elements in reverse order. The whole upstream is
// awaited on the first pull, so Reverse never finishes on an infinite source.
func (it *Iterator[T]) Reverse() *Iterator[T] {
	var (
		buf    []T
		pos    int
		loaded bool
	)
	return &Iterator[T]{
		next: func(ctx context.Context) (T, bool, error) {
			var zero T
			if !loaded {
				out, err := reverseInto(ctx, it, nil)
				if err != nil {
					return zero, false, err
				}
				buf, loaded = out, true
				if l := log(); l.DebugEnabled() {
					l.Debug("reverse materialized", logger.Fields(logger.FieldOperation, "reverse", logger.FieldSize, len(buf)))
				}
			}
			if pos >= len(buf) {
				return zero, false, nil
			}
			v := buf[pos]
			buf[pos] = zero
			pos++
			return v, true, nil
		},
		close: func() error {
			buf = nil
			return it.Close()
		},
	}
}

func reverseInto[T any](ctx context.Context, src *Iterator[T], out []T) ([]T, error) {
	v, ok, err := src.Next(ctx)
	if err != nil || !ok {
		return out, err
	}
	out, err = reverseInto(ctx, src, out)
	if err != nil {
		return nil, err
	}
	return append(out, v), nil
}
