package densemap

import (
	"bytes"
	"cmp"
)

// A Key has a sort order relative to other keys of the same type.
type Key[K any] interface {
	// Order returns a negative number if this key sorts before the argument,
	// a positive number if after, and 0 if they are equal.
	Order(K) int
}

// KeyOrder is the ordering for key types that implement Key.
func KeyOrder[K Key[K]](a, b K) int {
	return a.Order(b)
}

// DefaultOrder is the ordering used by New, FromSeq2 and FromMap.
func DefaultOrder[K cmp.Ordered](a, b K) int {
	return cmp.Compare(a, b)
}

// BytesOrder orders byte slice keys lexicographically.
func BytesOrder(a, b []byte) int {
	return bytes.Compare(a, b)
}

// LessOrder turns a strict less-than relation into an ordering. Keys for
// which neither less(a, b) nor less(b, a) holds are treated as equal.
func LessOrder[K any](less func(a, b K) bool) func(a, b K) int {
	return func(a, b K) int {
		if less(a, b) {
			return -1
		} else if less(b, a) {
			return 1
		}
		return 0
	}
}

// Reverse flips an ordering, so the map iterates from the greatest key.
func Reverse[K any](order func(a, b K) int) func(a, b K) int {
	return func(a, b K) int {
		return order(b, a)
	}
}
