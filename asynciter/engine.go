package asynciter

import (
	"context"

	apperrors "github.com/kbukum/iterx/errors"
	"github.com/kbukum/iterx/internal/step"
)

type stepResult[R any] = step.Result[R, Source[R]]

func skip[R any]() stepResult[R]              { return step.Skip[R, Source[R]]() }
func take[R any](v R) stepResult[R]           { return step.Take[R, Source[R]](v) }
func terminate[R any]() stepResult[R]         { return step.Terminate[R, Source[R]]() }
func splice[R any](s Source[R]) stepResult[R] { return step.Iterate[R](s) }

type callback[T, R any] func(ctx context.Context, v T, index int) (stepResult[R], error)

// callbackError attributes a plain callback error to op and index.
func callbackError(op string, index int, err error) error {
	if apperrors.IsAppError(err) {
		return err
	}
	return apperrors.CallbackFailed(op, index, err)
}

func iterate[T, R any](src *Iterator[T], op string, cb callback[T, R]) *Iterator[R] {
	return iterateBounded(src, op, nil, cb)
}

// iterateBounded derives a lazy iterator from src. more, when set, is asked
// before each upstream pull and ends the output without pulling when false.
func iterateBounded[T, R any](src *Iterator[T], op string, more func(index int) bool, cb callback[T, R]) *Iterator[R] {
	var (
		index int
		sub   *Iterator[R]
	)
	out := &Iterator[R]{}
	out.next = func(ctx context.Context) (R, bool, error) {
		var zero R
		for {
			if sub != nil {
				v, ok, err := sub.Next(ctx)
				if err != nil {
					return zero, false, err
				}
				if ok {
					return v, true, nil
				}
				sub = nil
			}
			if more != nil && !more(index) {
				return zero, false, src.Close()
			}
			v, ok, err := src.Next(ctx)
			if err != nil || !ok {
				return zero, false, err
			}
			res, err := cb(ctx, v, index)
			if err != nil {
				return zero, false, callbackError(op, index, err)
			}
			index++
			switch res.Kind() {
			case step.KindTake:
				return res.Value(), true, nil
			case step.KindIterate:
				if s := res.Seq(); s != nil {
					sub = adopt(s)
				}
			case step.KindTerminate:
				return zero, false, src.Close()
			}
		}
	}
	out.close = func() error {
		var subErr error
		if sub != nil {
			subErr = sub.Close()
			sub = nil
		}
		if err := src.Close(); err != nil {
			return err
		}
		return subErr
	}
	return out
}

// visit drives it until visitor reports stop or the input runs out, in which
// case def is returned.
func visit[T, R any](ctx context.Context, it *Iterator[T], op string, visitor func(ctx context.Context, v T, index int) (R, bool, error), def R) (R, error) {
	var zero R
	for i := 0; ; i++ {
		v, ok, err := it.Next(ctx)
		if err != nil {
			return zero, err
		}
		if !ok {
			return def, nil
		}
		r, stop, err := visitor(ctx, v, i)
		if err != nil {
			return zero, callbackError(op, i, err)
		}
		if stop {
			return r, nil
		}
	}
}

// visitAll visits every element and closes the iterator if a pull or the
// visitor fails.
func visitAll[T any](ctx context.Context, it *Iterator[T], op string, visitor func(ctx context.Context, v T, index int) error) error {
	_, err := visit(ctx, it, op, func(ctx context.Context, v T, i int) (struct{}, bool, error) {
		return struct{}{}, false, visitor(ctx, v, i)
	}, struct{}{})
	if err != nil {
		_ = it.Close()
	}
	return err
}
