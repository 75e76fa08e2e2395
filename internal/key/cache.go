package key

// Cache memoizes stretched keys by salt for the duration of one batch, so a
// multi-file decrypt pays the derivation cost once per distinct salt. Only
// the main goroutine touches it.
type Cache struct {
	entries map[[SaltSize]byte]*StretchKey
}

// NewCache creates an empty per-batch cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[[SaltSize]byte]*StretchKey)}
}

// Get returns the cached key for salt, or nil.
func (c *Cache) Get(salt Salt) *StretchKey {
	return c.entries[salt.Data]
}

// Put stores the single owned copy for salt.
func (c *Cache) Put(salt Salt, sk *StretchKey) {
	c.entries[salt.Data] = sk
}

// Wipe scrubs every cached key. Call when the batch is finished.
func (c *Cache) Wipe() {
	for _, sk := range c.entries {
		sk.Wipe()
	}
	c.entries = make(map[[SaltSize]byte]*StretchKey)
}
