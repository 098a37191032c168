package densemap

import "fmt"

// DiffIter invokes f for every entry that differs between old and m. Both
// maps must use the same key order. A key present only in m is reported
// with added set, one present only in old with removed set, and a key
// whose value changed with both set. Values are compared with equal.
//
// Entries with duplicate keys are paired up by position within their run
// of equal keys, so a key that appears twice in m and once in old yields
// one change check and one addition.
//
// The iteration stops if f returns keepGoing==false or an error.
func (m *Map[K, V]) DiffIter(
	old *Map[K, V],
	equal func(a, b V) bool,
	f func(added, removed bool, key K, addedValue, removedValue V) (keepGoing bool, err error),
) error {
	var zero V
	var o, n []Entry[K, V]
	if old != nil {
		o = old.entries
	}
	n = m.entries
	order := m.order
	if order == nil && old != nil {
		order = old.order
	}
	i, j := 0, 0
	for i < len(o) || j < len(n) {
		var keepGoing bool
		var err error
		switch {
		case i == len(o):
			keepGoing, err = f(true, false, n[j].Key, n[j].Value, zero)
			j++
		case j == len(n):
			keepGoing, err = f(false, true, o[i].Key, zero, o[i].Value)
			i++
		default:
			cmp := order(o[i].Key, n[j].Key)
			if cmp < 0 {
				keepGoing, err = f(false, true, o[i].Key, zero, o[i].Value)
				i++
			} else if cmp > 0 {
				keepGoing, err = f(true, false, n[j].Key, n[j].Value, zero)
				j++
			} else {
				keepGoing = true
				if !equal(o[i].Value, n[j].Value) {
					keepGoing, err = f(true, true, n[j].Key, n[j].Value, o[i].Value)
				}
				i++
				j++
			}
		}
		if err != nil {
			return fmt.Errorf("callback: %w", err)
		}
		if !keepGoing {
			return nil
		}
	}
	return nil
}
