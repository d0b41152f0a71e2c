package iterator

import "github.com/kbukum/iterx/internal/step"

type stepResult[R any] = step.Result[R, *Iterator[R]]

func skip[R any]() stepResult[R]                 { return step.Skip[R, *Iterator[R]]() }
func take[R any](v R) stepResult[R]              { return step.Take[R, *Iterator[R]](v) }
func terminate[R any]() stepResult[R]            { return step.Terminate[R, *Iterator[R]]() }
func splice[R any](s *Iterator[R]) stepResult[R] { return step.Iterate[R](s) }

// iterate derives a lazy iterator from src. callback sees every input element
// with its zero-based index and decides what the output gets for it.
func iterate[T, R any](src *Iterator[T], callback func(v T, index int) stepResult[R]) *Iterator[R] {
	return iterateBounded(src, nil, callback)
}

// iterateBounded is iterate with a guard consulted before each upstream pull.
// When more reports false for the next index the output ends without pulling.
func iterateBounded[T, R any](src *Iterator[T], more func(index int) bool, callback func(v T, index int) stepResult[R]) *Iterator[R] {
	var (
		index int
		sub   *Iterator[R]
	)
	out := &Iterator[R]{}
	out.next = func() (R, bool) {
		var zero R
		for {
			if sub != nil {
				if v, ok := sub.Next(); ok {
					return v, true
				}
				sub = nil
			}
			if more != nil && !more(index) {
				src.Stop()
				return zero, false
			}
			v, ok := src.Next()
			if !ok {
				return zero, false
			}
			res := callback(v, index)
			index++
			switch res.Kind() {
			case step.KindTake:
				return res.Value(), true
			case step.KindIterate:
				sub = res.Seq()
			case step.KindTerminate:
				src.Stop()
				return zero, false
			}
		}
	}
	out.stop = func() {
		if sub != nil {
			sub.Stop()
			sub = nil
		}
		src.Stop()
	}
	return out
}

// visit drives it until visitor reports stop or the input runs out, in which
// case def is returned. The iterator is stopped only when exhausted.
func visit[T, R any](it *Iterator[T], visitor func(v T, index int) (R, bool), def R) R {
	for i := 0; ; i++ {
		v, ok := it.Next()
		if !ok {
			return def
		}
		if r, stop := visitor(v, i); stop {
			return r
		}
	}
}

// visitAll visits every element for its side effects.
func visitAll[T any](it *Iterator[T], visitor func(v T, index int)) {
	visit(it, func(v T, i int) (struct{}, bool) {
		visitor(v, i)
		return struct{}{}, false
	}, struct{}{})
}
