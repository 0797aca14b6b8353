package shape

// Cache memoizes target buffers per (identity, count). Shape changes are rare
// relative to frames, so generation cost is paid once per formation, not per
// frame. Not safe for concurrent use; the engine loop is the only caller
type Cache struct {
	count   int
	buffers map[Identity][]float32
}

// NewCache creates a cache for buffers of the given particle count
func NewCache(count int) *Cache {
	return &Cache{
		count:   count,
		buffers: make(map[Identity][]float32, len(All)),
	}
}

// Target returns the memoized position buffer for id, generating on first use
func (c *Cache) Target(id Identity) []float32 {
	if buf, ok := c.buffers[id]; ok {
		return buf
	}
	buf := Generate(id, c.count)
	c.buffers[id] = buf
	return buf
}
