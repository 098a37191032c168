package densemap

import (
	"cmp"
	"errors"
	"iter"
	"slices"
)

// ErrIterDone can be returned by an Iter callback to end the iteration
// early without reporting an error.
var ErrIterDone = errors.New("densemap: iteration done")

// Entry is a key and value in the map.
type Entry[K, V any] struct {
	Key   K
	Value V
}

// New builds a map from the given pairs, ordered by cmp.Compare. The
// pairs are copied, so a slice passed as New(s...) may be reused.
func New[K cmp.Ordered, V any](pairs ...Entry[K, V]) *Map[K, V] {
	return NewFunc(DefaultOrder[K], pairs...)
}

// NewFunc builds a map from the given pairs, ordered by order.
func NewFunc[K, V any](order func(a, b K) int, pairs ...Entry[K, V]) *Map[K, V] {
	return build(order, slices.Clone(pairs))
}

// FromSeq2 builds a map from the pairs yielded by seq, ordered by
// cmp.Compare.
func FromSeq2[K cmp.Ordered, V any](seq iter.Seq2[K, V]) *Map[K, V] {
	return FromSeq2Func(DefaultOrder[K], seq)
}

// FromSeq2Func builds a map from the pairs yielded by seq, ordered by order.
func FromSeq2Func[K, V any](order func(a, b K) int, seq iter.Seq2[K, V]) *Map[K, V] {
	var entries []Entry[K, V]
	for k, v := range seq {
		entries = append(entries, Entry[K, V]{k, v})
	}
	return build(order, entries)
}

// FromMap builds a map holding the same entries as the given Go map.
func FromMap[K cmp.Ordered, V any](m map[K]V) *Map[K, V] {
	entries := make([]Entry[K, V], 0, len(m))
	for k, v := range m {
		entries = append(entries, Entry[K, V]{k, v})
	}
	return build(DefaultOrder[K], entries)
}

// Len returns the number of entries, duplicates included.
func (m *Map[K, V]) Len() int {
	return len(m.entries)
}

// Find returns the value stored under key. If several entries share the
// key, the one that came first in the construction input is returned.
// The second result is false if no entry has exactly that key.
func (m *Map[K, V]) Find(key K) (V, bool) {
	i, found := m.lowerBound(key)
	if !found {
		var zero V
		return zero, false
	}
	return m.entries[i].Value, true
}

// Index returns the position of the entry Find would return. If there is
// none it returns Len() and false.
func (m *Map[K, V]) Index(key K) (int, bool) {
	i, found := m.lowerBound(key)
	if !found {
		return len(m.entries), false
	}
	return i, true
}

// Contains reports whether some entry has the given key.
func (m *Map[K, V]) Contains(key K) bool {
	_, found := m.lowerBound(key)
	return found
}

// At returns a copy of the i'th entry in key order. It panics if i is out
// of range.
func (m *Map[K, V]) At(i int) Entry[K, V] {
	return m.entries[i]
}

// Ceil returns the first entry whose key is not less than key.
func (m *Map[K, V]) Ceil(key K) (Entry[K, V], bool) {
	i, _ := m.lowerBound(key)
	if i == len(m.entries) {
		return Entry[K, V]{}, false
	}
	return m.entries[i], true
}

// Min returns the entry with the smallest key.
func (m *Map[K, V]) Min() (Entry[K, V], bool) {
	if len(m.entries) == 0 {
		return Entry[K, V]{}, false
	}
	return m.entries[0], true
}

// Max returns the last entry with the greatest key.
func (m *Map[K, V]) Max() (Entry[K, V], bool) {
	if len(m.entries) == 0 {
		return Entry[K, V]{}, false
	}
	return m.entries[len(m.entries)-1], true
}

// All returns an iterator over every key and value in key order. Entries
// with equal keys come out in the order they were given to the
// constructor.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		m.from(0, yield)
	}
}

// Seek returns an iterator that starts at the first entry whose key is not
// less than key.
func (m *Map[K, V]) Seek(key K) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		i, _ := m.lowerBound(key)
		m.from(i, yield)
	}
}

// Entries returns an iterator over copies of the entries in key order.
func (m *Map[K, V]) Entries() iter.Seq[Entry[K, V]] {
	return func(yield func(Entry[K, V]) bool) {
		for _, e := range m.entries {
			if !yield(e) {
				return
			}
		}
	}
}

// Keys returns an iterator over the keys in order.
func (m *Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for _, e := range m.entries {
			if !yield(e.Key) {
				return
			}
		}
	}
}

// Values returns an iterator over the values in key order.
func (m *Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, e := range m.entries {
			if !yield(e.Value) {
				return
			}
		}
	}
}

// Iter invokes f for every key and value in order. It stops at the first
// error f returns; ErrIterDone stops the iteration and Iter returns nil.
func (m *Map[K, V]) Iter(f func(K, V) error) error {
	for _, e := range m.entries {
		err := f(e.Key, e.Value)
		if errors.Is(err, ErrIterDone) {
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Slice returns a new slice holding the entries in order.
func (m *Map[K, V]) Slice() []Entry[K, V] {
	return slices.Clone(m.entries)
}

// Clone returns a map with its own copy of the entries.
func (m *Map[K, V]) Clone() *Map[K, V] {
	return &Map[K, V]{
		entries: slices.Clone(m.entries),
		order:   m.order,
	}
}
