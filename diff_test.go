package densemap

import (
	"errors"
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

type change struct {
	added, removed bool
	key            int64
	addedValue     string
	removedValue   string
}

func stringEqual(a, b string) bool { return a == b }

func diffAll(t *testing.T, newMap, oldMap *Map[int64, string]) []change {
	var changes []change
	err := newMap.DiffIter(oldMap, stringEqual,
		func(added, removed bool, key int64, addedValue, removedValue string) (bool, error) {
			changes = append(changes, change{added, removed, key, addedValue, removedValue})
			return true, nil
		})
	require.NoError(t, err)
	return changes
}

func TestDiffTrivial(t *testing.T) {
	t.Parallel()
	v1 := New(Entry[int64, string]{0, "foo"}, Entry[int64, string]{100, "asdf"})
	v2 := New(
		Entry[int64, string]{0, "bar"},
		Entry[int64, string]{200, "qwerty"},
	)
	require.Equal(t, []change{
		{true, true, 0, "bar", "foo"},
		{false, true, 100, "", "asdf"},
		{true, false, 200, "qwerty", ""},
	}, diffAll(t, v2, v1))
}

func TestDiffIdentical(t *testing.T) {
	t.Parallel()
	m := New(Entry[int64, string]{1, "a"}, Entry[int64, string]{2, "b"})
	require.Empty(t, diffAll(t, m, m.Clone()))
	require.Empty(t, diffAll(t, New[int64, string](), nil))
}

func TestDiffAgainstNil(t *testing.T) {
	t.Parallel()
	m := New(Entry[int64, string]{2, "b"}, Entry[int64, string]{1, "a"})
	require.Equal(t, []change{
		{true, false, 1, "a", ""},
		{true, false, 2, "b", ""},
	}, diffAll(t, m, nil))
	require.Equal(t, []change{
		{false, true, 1, "", "a"},
		{false, true, 2, "", "b"},
	}, diffAll(t, New[int64, string](), m))
}

func TestDiffDuplicatesPairByPosition(t *testing.T) {
	t.Parallel()
	oldMap := New(Entry[int64, string]{5, "a"})
	newMap := New(Entry[int64, string]{5, "a"}, Entry[int64, string]{5, "b"})
	require.Equal(t, []change{
		{true, false, 5, "b", ""},
	}, diffAll(t, newMap, oldMap))
}

func TestDiffStops(t *testing.T) {
	t.Parallel()
	oldMap := New[int64, string]()
	newMap := New(
		Entry[int64, string]{1, "a"},
		Entry[int64, string]{2, "b"},
		Entry[int64, string]{3, "c"},
	)
	calls := 0
	err := newMap.DiffIter(oldMap, stringEqual,
		func(added, removed bool, key int64, addedValue, removedValue string) (bool, error) {
			calls++
			return key < 2, nil
		})
	require.NoError(t, err)
	require.Equal(t, 2, calls)

	boom := errors.New("boom")
	err = newMap.DiffIter(oldMap, stringEqual,
		func(added, removed bool, key int64, addedValue, removedValue string) (bool, error) {
			return true, boom
		})
	require.ErrorIs(t, err, boom)
}

// applyDiff replays a diff onto the unique-keyed contents of oldMap.
func applyDiff(t *testing.T, newMap, oldMap *Map[int64, string]) map[int64]string {
	out := make(map[int64]string)
	for k, v := range oldMap.All() {
		out[k] = v
	}
	for _, c := range diffAll(t, newMap, oldMap) {
		if c.added {
			out[c.key] = c.addedValue
		} else {
			delete(out, c.key)
		}
	}
	return out
}

func TestDiffRoundTrip(t *testing.T) {
	t.Parallel()
	toMap := func(m map[int64]int64) *Map[int64, string] {
		pairs := make([]Entry[int64, string], 0, len(m))
		for k, v := range m {
			pairs = append(pairs, Entry[int64, string]{k, fmt.Sprint(v)})
		}
		return New(pairs...)
	}
	properties := gopter.NewProperties(defaultGopterParameters)
	properties.Property("applying the diff to old gives new", prop.ForAll(
		func(oldEntries, newEntries map[int64]int64) bool {
			oldMap, newMap := toMap(oldEntries), toMap(newEntries)
			got := applyDiff(t, newMap, oldMap)
			if len(got) != newMap.Len() {
				return false
			}
			for k, v := range newMap.All() {
				if got[k] != v {
					return false
				}
			}
			return true
		},
		gen.MapOf(gen.Int64Range(0, 50), gen.Int64Range(0, 3)),
		gen.MapOf(gen.Int64Range(0, 50), gen.Int64Range(0, 3)),
	))
	properties.TestingRun(t)
}
