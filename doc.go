/*
Package densemap provides an immutable, sorted map backed by a single
flat slice of entries. A Map is built once from any finite sequence of
key/value pairs, sorted at construction, and never modified afterwards.
Lookups are binary searches over contiguous memory, and iteration is a
straight walk over the slice, so a Map can stand in for a balanced tree
map in read-heavy workloads where the data set rarely or never changes.

Uses

- Lookup tables built at startup and consulted for the rest of the process

- Snapshots of a tree or hash map that are read far more than written

- Ordered iteration over a fixed data set without pointer chasing


Ordering

Every Map carries exactly one comparison function. The same function
sorts the entries during construction and drives the binary search in
Find, Seek and Ceil, so the two can never disagree. New and FromSeq2
use cmp.Compare for cmp.Ordered keys; NewFunc and FromSeq2Func take any
func(a, b K) int. LessOrder adapts a plain less-than relation, and
KeyOrder adapts types implementing Key.

Duplicate keys

Construction never drops entries. Pairs with equal keys are all kept,
and because the sort is stable they stay in input order relative to each
other. Find returns the first of them: the first inserted among
duplicates. This differs from the last-write-wins behaviour of
assignment into a Go map.

Concurrency

Once constructed, a Map is never written to. Any number of goroutines
may call Find and iterate the same Map at the same time without
synchronization. Construction itself must not race with changes to the
input it is reading from.

Inspiration

The flat_map of Boost.Container and the proposed std::flat_map trade
insertion cost for cache-friendly lookups; this package takes the
build-once end of that trade-off and drops insertion entirely.
*/
package densemap
