package densemap

import (
	"fmt"
	"slices"
)

// Map is an immutable ordered map whose entries live in one sorted slice.
// The zero value is an empty map.
type Map[K, V any] struct {
	entries []Entry[K, V]
	order   func(a, b K) int
}

// build takes ownership of entries and sorts them in place. Callers must
// not keep a reference to the slice.
func build[K, V any](order func(a, b K) int, entries []Entry[K, V]) *Map[K, V] {
	if order == nil {
		panic("densemap: nil key order")
	}
	slices.SortStableFunc(entries, func(a, b Entry[K, V]) int {
		return order(a.Key, b.Key)
	})
	return &Map[K, V]{
		entries: entries,
		order:   order,
	}
}

// lowerBound returns the index of the first entry whose key is not less
// than key, and whether that entry's key equals key. An index of
// len(m.entries) means every key is less.
func (m *Map[K, V]) lowerBound(key K) (int, bool) {
	if len(m.entries) == 0 {
		return 0, false
	}
	return slices.BinarySearchFunc(m.entries, key, func(e Entry[K, V], k K) int {
		return m.order(e.Key, k)
	})
}

// from yields the entries from index i to the end.
func (m *Map[K, V]) from(i int, yield func(K, V) bool) {
	for ; i < len(m.entries); i++ {
		if !yield(m.entries[i].Key, m.entries[i].Value) {
			return
		}
	}
}

func (m *Map[K, V]) validate() {
	for i := 1; i < len(m.entries); i++ {
		if m.order(m.entries[i].Key, m.entries[i-1].Key) < 0 {
			panic(fmt.Sprintf("entries out of order at %d: %v before %v",
				i, m.entries[i-1].Key, m.entries[i].Key))
		}
	}
}
