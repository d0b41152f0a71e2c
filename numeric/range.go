package numeric

import (
	"golang.org/x/exp/constraints"

	"github.com/kbukum/iterx/iterator"
)

// Number is any integer or floating-point type.
type Number interface {
	constraints.Integer | constraints.Float
}

// Range yields 0, 1, ... up to but excluding limit. A negative limit counts
// down: Range(-3) yields 0, -1, -2.
func Range[N Number](limit N) *iterator.Iterator[N] {
	return RangeStep(0, limit, 1)
}

// RangeFrom yields start up to but excluding end in steps of one, counting
// down when start > end.
func RangeFrom[N Number](start, end N) *iterator.Iterator[N] {
	return RangeStep(start, end, 1)
}

// RangeStep yields start, start±step, ... up to but excluding end. The
// direction comes from comparing start with end; only the magnitude of step
// is used. A zero step yields nothing. The range also ends at the last
// value whose successor would overflow N.
func RangeStep[N Number](start, end, step N) *iterator.Iterator[N] {
	if step < 0 {
		step = -step
	}
	if step == 0 || start == end {
		return iterator.Empty[N]()
	}
	descending := start > end
	cur, done := start, false
	return iterator.New(func() (N, bool) {
		if done {
			var zero N
			return zero, false
		}
		v := cur
		// A next value that did not move past v has overflowed N, or for
		// floats has lost the step to rounding.
		if descending {
			cur = v - step
			done = cur <= end || cur >= v
		} else {
			cur = v + step
			done = cur >= end || cur <= v
		}
		return v, true
	})
}
