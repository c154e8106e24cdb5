package solver

// columnCache is an LRU cache of (possibly partial) Q columns bounded by a
// float budget. Entries form an intrusive doubly linked list threaded through
// cols; cols[l] is the list sentinel. A column may be cached for only its
// first k entries (the active set at the time it was requested); asking for
// more extends it in place.
type columnCache struct {
	cols   []cacheCol
	budget int64 // free float slots
}

type cacheCol struct {
	prev, next int
	data       []float64 // len == number of valid leading entries
}

func newColumnCache(l int, budgetFloats int64) *columnCache {
	c := &columnCache{cols: make([]cacheCol, l+1), budget: budgetFloats}
	c.cols[l].prev, c.cols[l].next = l, l

	return c
}

func (c *columnCache) sentinel() int { return len(c.cols) - 1 }

func (c *columnCache) unlink(h int) {
	p, n := c.cols[h].prev, c.cols[h].next
	c.cols[p].next = n
	c.cols[n].prev = p
}

func (c *columnCache) pushBack(h int) {
	s := c.sentinel()
	last := c.cols[s].prev
	c.cols[h].prev, c.cols[h].next = last, s
	c.cols[last].next = h
	c.cols[s].prev = h
}

// get returns column index with at least length entries and the position
// from which the caller must fill it (length when nothing is missing).
// Least recently used columns are evicted to make room.
func (c *columnCache) get(index, length int) ([]float64, int) {
	h := &c.cols[index]
	have := len(h.data)
	if have > 0 {
		c.unlink(index)
	}
	start := length
	if more := int64(length - have); more > 0 {
		for c.budget < more {
			old := c.cols[c.sentinel()].next
			if old == c.sentinel() {
				break
			}
			c.unlink(old)
			c.budget += int64(len(c.cols[old].data))
			c.cols[old].data = nil
		}
		grown := make([]float64, length)
		copy(grown, h.data)
		h.data = grown
		c.budget -= more
		start = have
	}
	c.pushBack(index)

	return h.data[:length], start
}

// swapIndex exchanges the identities of columns i and j and swaps rows i and
// j inside every cached column. Columns that cover i but not j cannot be
// fixed up and are dropped.
func (c *columnCache) swapIndex(i, j int) {
	if i == j {
		return
	}
	if len(c.cols[i].data) > 0 {
		c.unlink(i)
	}
	if len(c.cols[j].data) > 0 {
		c.unlink(j)
	}
	c.cols[i].data, c.cols[j].data = c.cols[j].data, c.cols[i].data
	if len(c.cols[i].data) > 0 {
		c.pushBack(i)
	}
	if len(c.cols[j].data) > 0 {
		c.pushBack(j)
	}
	if i > j {
		i, j = j, i
	}
	s := c.sentinel()
	for h := c.cols[s].next; h != s; {
		next := c.cols[h].next
		d := c.cols[h].data
		if len(d) > i {
			if len(d) > j {
				d[i], d[j] = d[j], d[i]
			} else {
				c.unlink(h)
				c.budget += int64(len(d))
				c.cols[h].data = nil
			}
		}
		h = next
	}
}

// columnStore hands out column storage: cache slots when the memory budget
// holds at least two full columns, otherwise two alternating scratch buffers
// that are recomputed on every request.
type columnStore struct {
	cache *columnCache
	buf   [2][]float64
	next  int
}

// bytesPerFloat is the cache accounting unit.
const bytesPerFloat = 8

func newColumnStore(n int, cacheBytes int64) columnStore {
	floats := int64(n) * int64(n)
	if cacheBytes > 0 {
		floats = cacheBytes / bytesPerFloat
	}
	if floats >= 2*int64(n) {
		return columnStore{cache: newColumnCache(n, floats)}
	}

	return columnStore{buf: [2][]float64{make([]float64, n), make([]float64, n)}}
}

// fetch returns storage for column index and the first entry to compute.
func (s *columnStore) fetch(index, length int) ([]float64, int) {
	if s.cache != nil {
		return s.cache.get(index, length)
	}
	b := s.buf[s.next][:length]
	s.next = 1 - s.next

	return b, 0
}

func (s *columnStore) swap(i, j int) {
	if s.cache != nil {
		s.cache.swapIndex(i, j)
	}
}

// cached reports whether columns are retained between requests.
func (s *columnStore) cached() bool { return s.cache != nil }
