package asynciter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/kbukum/iterx/testutil"
)

func TestBatchBySize(t *testing.T) {
	got := collect(t, Batch(Of(1, 2, 3, 4, 5), 2, 0))
	testutil.Equal(t, got, [][]int{{1, 2}, {3, 4}, {5}})
}

func TestBatchDefaultsToSingletons(t *testing.T) {
	got := collect(t, Batch(Of(1, 2), 0, 0))
	testutil.Equal(t, got, [][]int{{1}, {2}})
}

func TestBatchByTimeout(t *testing.T) {
	clock := clockwork.NewFakeClock()
	i := 0
	src := New(func(context.Context) (int, bool, error) {
		i++
		if i > 5 {
			return 0, false, nil
		}
		if i == 2 {
			clock.Advance(time.Second)
		}
		return i, true, nil
	})
	got := collect(t, Batch(src, 10, 500*time.Millisecond, WithClock(clock)))
	testutil.Equal(t, got, [][]int{{1, 2}, {3, 4, 5}})
}

func TestBatchPartialBeforeError(t *testing.T) {
	boom := errors.New("boom")
	it := Batch(From[int](testutil.FailAt([]int{1, 2, 3}, 3, boom)), 2, 0)
	ctx := t.Context()

	first, _, err := it.Next(ctx)
	testutil.NoError(t, err)
	testutil.Equal(t, first, []int{1, 2})

	partial, ok, err := it.Next(ctx)
	testutil.NoError(t, err)
	if !ok {
		t.Fatal("expected partial batch")
	}
	testutil.Equal(t, partial, []int{3})

	_, _, err = it.Next(ctx)
	testutil.ErrorIs(t, err, boom)
}
