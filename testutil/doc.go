// Package testutil provides sources and assertions for testing iterator
// chains.
//
// The counting sources record how often they are pulled and stopped, which
// is how laziness and ownership are asserted:
//
//	src := testutil.Naturals()
//	got := iterator.From[int](src).Take(3).ToSlice()
//	testutil.Equal(t, got, []int{0, 1, 2})
//	testutil.Equal(t, src.Pulls(), 3)
//
// Assertions compare with go-cmp and print a diff on mismatch.
package testutil
