package asynciter

import (
	"context"
	"sync"

	"github.com/kbukum/iterx/logger"
)

// teeBuffer is the shared cache behind Tee. mu is held across the upstream
// pull so concurrent branches never pull the same position twice.
type teeBuffer[T any] struct {
	mu        sync.Mutex
	src       *Iterator[T]
	buf       []T
	base      int
	cursors   []int
	live      []bool
	exhausted bool
	highWater int
}

func (tb *teeBuffer[T]) pull(ctx context.Context, branch int) (T, bool, error) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	var zero T
	if off := tb.cursors[branch] - tb.base; off < len(tb.buf) {
		v := tb.buf[off]
		tb.advance(branch)
		return v, true, nil
	}
	if tb.exhausted {
		return zero, false, nil
	}
	v, ok, err := tb.src.Next(ctx)
	if err != nil {
		return zero, false, err
	}
	if !ok {
		tb.exhausted = true
		if l := log(); l.DebugEnabled() {
			l.Debug("tee upstream exhausted", logger.Fields(
				logger.FieldOperation, "tee",
				logger.FieldBranches, len(tb.cursors),
				"high_water", tb.highWater,
			))
		}
		return zero, false, nil
	}
	tb.buf = append(tb.buf, v)
	tb.highWater = max(tb.highWater, len(tb.buf))
	tb.advance(branch)
	return v, true, nil
}

func (tb *teeBuffer[T]) advance(branch int) {
	tb.cursors[branch]++
	tb.compact()
}

func (tb *teeBuffer[T]) compact() {
	lowest := -1
	for i, c := range tb.cursors {
		if tb.live[i] && (lowest < 0 || c < lowest) {
			lowest = c
		}
	}
	if drop := lowest - tb.base; lowest >= 0 && drop > 0 {
		clear(tb.buf[:drop])
		tb.buf = tb.buf[drop:]
		tb.base = lowest
	}
}

func (tb *teeBuffer[T]) release(branch int) error {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	if !tb.live[branch] {
		return nil
	}
	tb.live[branch] = false
	for _, l := range tb.live {
		if l {
			tb.compact()
			return nil
		}
	}
	tb.buf = nil
	return tb.src.Close()
}

// Tee splits src into n independently paced branches that share one
// buffered upstream. Each upstream position is awaited once. Closing every
// branch closes src. n < 1 is treated as 1.
func Tee[T any](src Source[T], n int) []*Iterator[T] {
	tb := newTeeBuffer(adopt(src), max(n, 1))
	branches := make([]*Iterator[T], len(tb.cursors))
	for i := range branches {
		branches[i] = tb.branch(i)
	}
	return branches
}

func newTeeBuffer[T any](src *Iterator[T], n int) *teeBuffer[T] {
	tb := &teeBuffer[T]{
		src:     src,
		cursors: make([]int, n),
		live:    make([]bool, n),
	}
	for i := range tb.live {
		tb.live[i] = true
	}
	return tb
}

func (tb *teeBuffer[T]) branch(i int) *Iterator[T] {
	return &Iterator[T]{
		next:  func(ctx context.Context) (T, bool, error) { return tb.pull(ctx, i) },
		close: func() error { return tb.release(i) },
	}
}

// Unzip splits a source of pairs into its first and second projections.
func Unzip[A, B any](src Source[Pair[A, B]]) (*Iterator[A], *Iterator[B]) {
	branches := Tee(src, 2)
	firsts := Map(branches[0], func(_ context.Context, p Pair[A, B], _ int) (A, error) { return p.First, nil })
	seconds := Map(branches[1], func(_ context.Context, p Pair[A, B], _ int) (B, error) { return p.Second, nil })
	return firsts, seconds
}
