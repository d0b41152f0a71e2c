package iterator

import "github.com/kbukum/iterx/logger"

// teeBuffer caches upstream values until every live branch has read them.
// Positions are logical indices into the upstream; buf[0] holds position base.
type teeBuffer[T any] struct {
	src       *Iterator[T]
	buf       []T
	base      int
	cursors   []int
	live      []bool
	exhausted bool
	highWater int
}

func (tb *teeBuffer[T]) pull(branch int) (T, bool) {
	var zero T
	pos := tb.cursors[branch]
	if off := pos - tb.base; off < len(tb.buf) {
		v := tb.buf[off]
		tb.advance(branch)
		return v, true
	}
	if tb.exhausted {
		return zero, false
	}
	v, ok := tb.src.Next()
	if !ok {
		tb.exhausted = true
		if l := log(); l.DebugEnabled() {
			l.Debug("tee upstream exhausted", logger.Fields(
				logger.FieldOperation, "tee",
				logger.FieldBranches, len(tb.cursors),
				"high_water", tb.highWater,
			))
		}
		return zero, false
	}
	tb.buf = append(tb.buf, v)
	tb.highWater = max(tb.highWater, len(tb.buf))
	tb.advance(branch)
	return v, true
}

func (tb *teeBuffer[T]) advance(branch int) {
	tb.cursors[branch]++
	tb.compact()
}

// compact drops every buffered value that all live branches have read.
func (tb *teeBuffer[T]) compact() {
	lowest := -1
	for i, c := range tb.cursors {
		if tb.live[i] && (lowest < 0 || c < lowest) {
			lowest = c
		}
	}
	if lowest < 0 {
		return
	}
	if drop := lowest - tb.base; drop > 0 {
		clear(tb.buf[:drop])
		tb.buf = tb.buf[drop:]
		tb.base = lowest
	}
}

func (tb *teeBuffer[T]) release(branch int) {
	if !tb.live[branch] {
		return
	}
	tb.live[branch] = false
	for _, l := range tb.live {
		if l {
			tb.compact()
			return
		}
	}
	tb.buf = nil
	tb.src.Stop()
}

// Tee splits src into n independently paced branches. The upstream is
// pulled at most once per position; a branch that falls behind replays
// buffered values. The buffer holds only the lag between the fastest and the
// slowest live branch. Stopping every branch stops src. n < 1 is treated as 1.
func Tee[T any](src Puller[T], n int) []*Iterator[T] {
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
		next: func() (T, bool) { return tb.pull(i) },
		stop: func() { tb.release(i) },
	}
}

// Unzip splits an iterator of pairs into an iterator of first elements and
// an iterator of second elements backed by a shared Tee.
func Unzip[A, B any](src Puller[Pair[A, B]]) (*Iterator[A], *Iterator[B]) {
	branches := Tee(src, 2)
	firsts := Map(branches[0], func(p Pair[A, B], _ int) A { return p.First })
	seconds := Map(branches[1], func(p Pair[A, B], _ int) B { return p.Second })
	return firsts, seconds
}
