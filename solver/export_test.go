package solver

// Test-only handles on unexported helpers.

// CacheHandle_TestOnly wraps columnCache for black-box tests.
type CacheHandle_TestOnly struct{ c *columnCache }

// NewCache_TestOnly builds a cache over l columns with a budget in floats.
func NewCache_TestOnly(l int, budgetFloats int64) CacheHandle_TestOnly {
	return CacheHandle_TestOnly{c: newColumnCache(l, budgetFloats)}
}

// Get returns the column slice and the first entry that needs filling.
func (h CacheHandle_TestOnly) Get(index, length int) ([]float64, int) {
	return h.c.get(index, length)
}

// Swap exchanges two column identities.
func (h CacheHandle_TestOnly) Swap(i, j int) { h.c.swapIndex(i, j) }

// Budget returns the free float slots.
func (h CacheHandle_TestOnly) Budget() int64 { return h.c.budget }

// Cached reports the stored length of column index.
func (h CacheHandle_TestOnly) Cached(index int) int { return len(h.c.cols[index].data) }

// StoreCached_TestOnly reports whether a store of n columns under cacheBytes keeps columns.
func StoreCached_TestOnly(n int, cacheBytes int64) bool {
	s := newColumnStore(n, cacheBytes)
	return s.cached()
}
