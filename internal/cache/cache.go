package cache

// Cache defines a minimal string-keyed cache API.
// Implementations are goroutine-safe.
type Cache[V any] interface {
	// Get returns the value and whether it was present. A hit counts as a use.
	Get(key string) (V, bool)

	// Set stores the value, replacing any previous value for key.
	Set(key string, value V)

	// Has reports whether a key is present without counting as a use.
	Has(key string) bool

	// Len returns the number of items currently stored.
	Len() int

	// Clear removes all entries.
	Clear()
}
