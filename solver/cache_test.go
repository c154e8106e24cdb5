package solver_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvsvm/solver"
)

// TestCacheEvictsLeastRecentlyUsed fills a 6-float cache with 3-float columns.
func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := solver.NewCache_TestOnly(3, 6)

	_, start := c.Get(0, 3)
	require.Equal(t, 0, start)
	_, start = c.Get(1, 3)
	require.Equal(t, 0, start)
	require.Equal(t, int64(0), c.Budget())

	_, _ = c.Get(2, 3) // evicts column 0
	require.Equal(t, 0, c.Cached(0))

	_, start = c.Get(1, 3) // hit, nothing to fill; 1 becomes most recent
	require.Equal(t, 3, start)

	_, _ = c.Get(0, 2) // evicts column 2, the least recent
	require.Equal(t, 0, c.Cached(2))
	require.Equal(t, 3, c.Cached(1))
	require.Equal(t, 2, c.Cached(0))
	require.Equal(t, int64(1), c.Budget())

	// extending a partial column only asks for the missing tail
	_, start = c.Get(0, 3)
	require.Equal(t, 2, start)
	require.Equal(t, int64(0), c.Budget())
}

// TestCacheSwapIndex checks identity exchange and the drop of short columns.
func TestCacheSwapIndex(t *testing.T) {
	c := solver.NewCache_TestOnly(3, 9)
	d, _ := c.Get(0, 3)
	copy(d, []float64{10, 11, 12})
	d, _ = c.Get(1, 2)
	copy(d, []float64{20, 21})
	d, _ = c.Get(2, 1)
	copy(d, []float64{30})

	c.Swap(0, 1)

	d, start := c.Get(0, 2)
	require.Equal(t, 2, start)
	require.Equal(t, []float64{21, 20}, d)
	d, start = c.Get(1, 3)
	require.Equal(t, 3, start)
	require.Equal(t, []float64{11, 10, 12}, d)
	require.Equal(t, 0, c.Cached(2), "column covering row 0 but not row 1 is dropped")
	require.Equal(t, int64(4), c.Budget())
}

func TestStoreFallsBackBelowTwoColumns(t *testing.T) {
	require.True(t, solver.StoreCached_TestOnly(10, 0))       // unlimited
	require.True(t, solver.StoreCached_TestOnly(10, 8*20))    // exactly two columns
	require.False(t, solver.StoreCached_TestOnly(10, 8*20-1)) // recompute mode
}
