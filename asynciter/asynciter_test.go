package asynciter

import (
	"context"
	"errors"
	"slices"
	"testing"

	apperrors "github.com/kbukum/iterx/errors"
	"github.com/kbukum/iterx/testutil"
)

func collect[T any](t *testing.T, it *Iterator[T]) []T {
	t.Helper()
	got, err := it.ToSlice(t.Context())
	testutil.NoError(t, err)
	return got
}

func TestSources(t *testing.T) {
	testutil.Equal(t, collect(t, Of(1, 2, 3)), []int{1, 2, 3})
	testutil.Equal(t, collect(t, Empty[int]()), []int{})
	testutil.Equal(t, collect(t, FromSeq(slices.Values([]string{"a", "b"}))), []string{"a", "b"})
	testutil.Equal(t, collect(t, RepeatN("z", 2)), []string{"z", "z"})
	testutil.Equal(t, collect(t, Repeat(1).Take(3)), []int{1, 1, 1})
	testutil.Equal(t, collect(t, From[int](testutil.CountAsyncSlice(4, 5))), []int{4, 5})
}

func TestFromErrSeq(t *testing.T) {
	boom := errors.New("boom")
	seq := func(yield func(int, error) bool) {
		if !yield(1, nil) {
			return
		}
		yield(0, boom)
	}
	got, err := FromErrSeq(seq).ToSlice(t.Context())
	testutil.ErrorIs(t, err, boom)
	testutil.Equal(t, got, []int{1})
}

func TestFromChanHonoursContext(t *testing.T) {
	ch := make(chan int)
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	_, _, err := FromChan(ch).Next(ctx)
	testutil.ErrorIs(t, err, context.Canceled)

	buffered := make(chan int, 2)
	buffered <- 1
	close(buffered)
	testutil.Equal(t, collect(t, FromChan(buffered)), []int{1})
}

func TestFromSyncStopsSource(t *testing.T) {
	src := testutil.CountSlice(1, 2)
	testutil.Equal(t, collect(t, FromSync[int](src)), []int{1, 2})
	if src.Stops() != 1 {
		t.Errorf("got %d stops, want 1", src.Stops())
	}
}

func TestNextClosesOnExhaustion(t *testing.T) {
	src := testutil.CountAsyncSlice(1)
	it := From[int](src)
	collect(t, it)
	if _, ok, _ := it.Next(t.Context()); ok {
		t.Error("expected exhausted iterator")
	}
	if src.Closes() != 1 {
		t.Errorf("got %d closes, want 1", src.Closes())
	}
}

func TestSeq(t *testing.T) {
	var got []int
	for v, err := range Of(1, 2, 3).Seq(t.Context()) {
		testutil.NoError(t, err)
		got = append(got, v)
	}
	testutil.Equal(t, got, []int{1, 2, 3})

	boom := errors.New("boom")
	var errs []error
	for _, err := range From[int](testutil.FailAt([]int{1}, 1, boom)).Seq(t.Context()) {
		errs = append(errs, err)
	}
	if len(errs) != 2 || !errors.Is(errs[1], boom) {
		t.Errorf("expected one value then boom, got %v", errs)
	}
}

func TestTakePullsExactly(t *testing.T) {
	n := 0
	src := testutil.CountAsync(func(context.Context) (int, bool, error) {
		n++
		return n, true, nil
	})
	testutil.Equal(t, collect(t, From[int](src).Take(3)), []int{1, 2, 3})
	if src.Pulls() != 3 || src.Closes() != 1 {
		t.Errorf("got pulls=%d closes=%d, want 3/1", src.Pulls(), src.Closes())
	}
}

func TestCombinators(t *testing.T) {
	isOdd := func(_ context.Context, v, _ int) (bool, error) { return v%2 == 1, nil }
	lt3 := func(_ context.Context, v, _ int) (bool, error) { return v < 3, nil }

	testutil.Equal(t, collect(t, Of(1, 2, 3, 4).Filter(isOdd)), []int{1, 3})
	testutil.Equal(t, collect(t, Of(1, 2, 3, 1).DropWhile(lt3)), []int{3, 1})
	testutil.Equal(t, collect(t, Of(1, 2, 3, 1).SkipWhile(lt3)), []int{3, 1})
	testutil.Equal(t, collect(t, Of(1, 2, 3, 1).TakeWhile(lt3)), []int{1, 2})
	testutil.Equal(t, collect(t, Of(1, 2, 3).Drop(1)), []int{2, 3})
	testutil.Equal(t, collect(t, Of(1, 2, 3).Skip(5)), []int{})

	doubled := Map(Of(1, 2), func(_ context.Context, v, i int) (int, error) { return v*2 + i, nil })
	testutil.Equal(t, collect(t, doubled), []int{2, 5})
	testutil.Equal(t, collect(t, Indexed(Of("a"))), []Entry[string]{{0, "a"}})
	testutil.Equal(t, collect(t, Enumerate(Of("b"))), []Entry[string]{{0, "b"}})
}

func TestCallbackErrorIsWrapped(t *testing.T) {
	boom := errors.New("boom")
	it := Map(Of(1, 2, 3), func(_ context.Context, v, _ int) (int, error) {
		if v == 2 {
			return 0, boom
		}
		return v, nil
	})
	got, err := it.ToSlice(t.Context())
	testutil.Equal(t, got, []int{1})
	testutil.ErrorIs(t, err, boom)
	testutil.ErrorCode(t, err, apperrors.ErrCodeCallbackFailed)
	appErr, _ := apperrors.AsAppError(err)
	if appErr.Details["operation"] != "map" || appErr.Details["index"] != 1 {
		t.Errorf("unexpected details: %v", appErr.Details)
	}
}

func TestAppErrorFromCallbackPassesThrough(t *testing.T) {
	want := apperrors.InvalidArgument("v", "bad")
	_, err := Of(1).Filter(func(context.Context, int, int) (bool, error) { return false, want }).ToSlice(t.Context())
	if !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Errorf("expected INVALID_ARGUMENT, got %v", err)
	}
}

func TestSourceErrorClosesOnExhaustingTerminal(t *testing.T) {
	boom := errors.New("boom")
	src := testutil.FailAt([]int{1, 2}, 1, boom)
	n, err := From[int](src).Count(t.Context())
	testutil.ErrorIs(t, err, boom)
	if n != 1 {
		t.Errorf("got count %d, want 1", n)
	}
	if src.Closes() != 1 {
		t.Errorf("got %d closes, want 1", src.Closes())
	}
}

func TestFlatMap(t *testing.T) {
	it := FlatMap(Of(1, 2), func(_ context.Context, v, _ int) (Element[int], error) {
		if v == 1 {
			return Leaf(v), nil
		}
		return Nested[int](Of(Leaf(2), Leaves(3, 4), NestedSync[int](nil))), nil
	})
	testutil.Equal(t, collect(t, it), []int{1, 2, 3, 4})
}

// nest builds [from, [from+1, [... [to]]]] alternating async and sync nesting.
func nest(from, to int) Element[int] {
	if from == to {
		return Leaf(from)
	}
	if from%2 == 0 {
		return Nested[int](Of(Leaf(from), nest(from+1, to)))
	}
	return NestedSync[int](syncSlice[Element[int]]{Leaf(from), nest(from+1, to)}.puller())
}

type syncSlice[T any] []T

func (s syncSlice[T]) puller() SyncSource[T] {
	i := 0
	return syncFunc[T](func() (T, bool) {
		if i >= len(s) {
			var zero T
			return zero, false
		}
		i++
		return s[i-1], true
	})
}

type syncFunc[T any] func() (T, bool)

func (f syncFunc[T]) Next() (T, bool) { return f() }

func TestFlatDeep(t *testing.T) {
	testutil.Equal(t, collect(t, Flat[int](Of(nest(0, 6)))), []int{0, 1, 2, 3, 4, 5, 6})
}

func TestFlatPropagatesNestedError(t *testing.T) {
	boom := errors.New("boom")
	inner := Map(From[int](testutil.FailAt([]int{1}, 1, boom)), func(_ context.Context, v, _ int) (Element[int], error) {
		return Leaf(v), nil
	})
	got, err := Flat[int](Of(Leaf(0), Nested[int](inner))).ToSlice(t.Context())
	testutil.ErrorIs(t, err, boom)
	testutil.Equal(t, got, []int{0, 1})
}
