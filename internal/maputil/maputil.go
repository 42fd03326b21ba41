package maputil

import "sync"

// Pop removes key from items under lock and returns the previous value if
// present. Used where an entry must be claimed by exactly one caller.
func Pop[K comparable, V any](mu *sync.Mutex, items map[K]V, key K) (V, bool) {
	mu.Lock()
	defer mu.Unlock()

	value, ok := items[key]
	if ok {
		delete(items, key)
	}
	return value, ok
}
