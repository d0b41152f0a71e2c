package iterator

import (
	"testing"

	"github.com/kbukum/iterx/testutil"
)

func TestTeeBranchesSeeEverything(t *testing.T) {
	branches := Tee[int](Of(1, 2, 3), 3)
	for _, b := range branches {
		testutil.Equal(t, b.ToSlice(), []int{1, 2, 3})
	}
}

func TestTeeMinimumOneBranch(t *testing.T) {
	if n := len(Tee[int](Of(1), 0)); n != 1 {
		t.Errorf("got %d branches, want 1", n)
	}
}

func pairs(n int) []Pair[int, string] {
	out := make([]Pair[int, string], n)
	for i := range out {
		out[i] = Pair[int, string]{First: i, Second: string(rune('a' + i))}
	}
	return out
}

func TestUnzipInterleavings(t *testing.T) {
	schedules := []string{"aaaabbbb", "bbbbaaaa", "abababab", "aabbbaab", "b"}
	for _, schedule := range schedules {
		t.Run(schedule, func(t *testing.T) {
			in := pairs(4)
			src := testutil.CountSlice(in...)
			firsts, seconds := Unzip[int, string](src)

			var gotA []int
			var gotB []string
			for _, c := range schedule {
				if c == 'a' {
					if v, ok := firsts.Next(); ok {
						gotA = append(gotA, v)
					}
				} else if v, ok := seconds.Next(); ok {
					gotB = append(gotB, v)
				}
			}
			gotA = append(gotA, firsts.ToSlice()...)
			gotB = append(gotB, seconds.ToSlice()...)

			testutil.Equal(t, gotA, []int{0, 1, 2, 3})
			testutil.Equal(t, gotB, []string{"a", "b", "c", "d"})
			if src.Yielded() != len(in) {
				t.Errorf("upstream yielded %d values, want %d", src.Yielded(), len(in))
			}
			if src.Pulls() != len(in)+1 {
				t.Errorf("got %d upstream pulls, want %d", src.Pulls(), len(in)+1)
			}
		})
	}
}

func TestTeeBufferHoldsOnlyLag(t *testing.T) {
	tb := newTeeBuffer(From[int](testutil.Naturals()), 2)
	fast, slow := tb.branch(0), tb.branch(1)

	fast.Take(10).ToSlice()
	if len(tb.buf) != 10 {
		t.Fatalf("got buffer of %d, want 10", len(tb.buf))
	}
	if tb.live[0] {
		t.Fatal("expected fast branch to be released after Take")
	}

	testutil.Equal(t, slow.Take(4).ToSlice(), []int{0, 1, 2, 3})
	if len(tb.buf) != 0 {
		t.Errorf("got buffer of %d after all branches released, want 0", len(tb.buf))
	}
}

func TestTeeCompactsAsBranchesAdvance(t *testing.T) {
	tb := newTeeBuffer(From[int](testutil.Naturals()), 2)
	a, b := tb.branch(0), tb.branch(1)
	for range 5 {
		a.Next()
	}
	for range 3 {
		b.Next()
	}
	if len(tb.buf) != 2 || tb.base != 3 {
		t.Errorf("got len=%d base=%d, want len=2 base=3", len(tb.buf), tb.base)
	}
}

func TestTeeStopsSourceWhenAllBranchesStop(t *testing.T) {
	src := testutil.Naturals()
	branches := Tee[int](src, 2)
	branches[0].Next()
	branches[0].Stop()
	if src.Stops() != 0 {
		t.Fatal("source stopped while a branch is live")
	}
	branches[1].Stop()
	if src.Stops() != 1 {
		t.Errorf("got %d stops, want 1", src.Stops())
	}
}
