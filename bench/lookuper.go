package bench

import (
	"iter"

	"github.com/google/btree"
	"github.com/jrhy/densemap"
)

// Lookuper is the read surface a map must offer to be timed.
type Lookuper interface {
	Find(key int64) (int64, bool)
	All() iter.Seq2[int64, int64]
	Len() int
}

// Implementation names a Lookuper and how to build one from unique,
// sorted pairs.
type Implementation struct {
	Name        string
	Description string
	New         func(pairs []densemap.Entry[int64, int64]) Lookuper
}

var implementations = []Implementation{
	{
		Name:        "dense",
		Description: "sorted contiguous entries, binary search",
		New: func(pairs []densemap.Entry[int64, int64]) Lookuper {
			return densemap.New(pairs...)
		},
	},
	{
		Name:        "btree",
		Description: "github.com/google/btree balanced tree",
		New: func(pairs []densemap.Entry[int64, int64]) Lookuper {
			return NewTreeMap(pairs)
		},
	},
	{
		Name:        "hashmap",
		Description: "builtin map, unordered iteration",
		New: func(pairs []densemap.Entry[int64, int64]) Lookuper {
			return NewHashMap(pairs)
		},
	},
}

// Implementations lists every Lookuper the harness knows how to build.
func Implementations() []Implementation {
	res := make([]Implementation, len(implementations))
	copy(res, implementations)
	return res
}

// TreeDegree is the btree degree used by TreeMap.
const TreeDegree = 32

// TreeMap adapts a btree to Lookuper. A later pair replaces an earlier one
// with the same key.
type TreeMap struct {
	t *btree.BTreeG[densemap.Entry[int64, int64]]
}

// NewTreeMap builds a TreeMap holding pairs.
func NewTreeMap(pairs []densemap.Entry[int64, int64]) *TreeMap {
	t := btree.NewG[densemap.Entry[int64, int64]](TreeDegree, func(a, b densemap.Entry[int64, int64]) bool {
		return a.Key < b.Key
	})
	for _, p := range pairs {
		t.ReplaceOrInsert(p)
	}
	return &TreeMap{t}
}

// Find returns the value stored under key.
func (m *TreeMap) Find(key int64) (int64, bool) {
	e, ok := m.t.Get(densemap.Entry[int64, int64]{Key: key})
	return e.Value, ok
}

// All iterates the pairs in key order.
func (m *TreeMap) All() iter.Seq2[int64, int64] {
	return func(yield func(int64, int64) bool) {
		m.t.Ascend(func(e densemap.Entry[int64, int64]) bool {
			return yield(e.Key, e.Value)
		})
	}
}

// Len returns the number of distinct keys.
func (m *TreeMap) Len() int {
	return m.t.Len()
}

// HashMap adapts the builtin map to Lookuper. All yields in no particular
// order.
type HashMap map[int64]int64

// NewHashMap builds a HashMap holding pairs; a later pair wins.
func NewHashMap(pairs []densemap.Entry[int64, int64]) HashMap {
	m := make(HashMap, len(pairs))
	for _, p := range pairs {
		m[p.Key] = p.Value
	}
	return m
}

// Find returns the value stored under key.
func (m HashMap) Find(key int64) (int64, bool) {
	v, ok := m[key]
	return v, ok
}

// All iterates the pairs in unspecified order.
func (m HashMap) All() iter.Seq2[int64, int64] {
	return func(yield func(int64, int64) bool) {
		for k, v := range m {
			if !yield(k, v) {
				return
			}
		}
	}
}

// Len returns the number of keys.
func (m HashMap) Len() int {
	return len(m)
}
