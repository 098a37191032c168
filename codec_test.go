package densemap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigestIgnoresInputOrder(t *testing.T) {
	t.Parallel()
	a := New(Entry[string, int]{"x", 1}, Entry[string, int]{"y", 2})
	b := New(Entry[string, int]{"y", 2}, Entry[string, int]{"x", 1})
	da, err := a.Digest(nil)
	require.NoError(t, err)
	db, err := b.Digest(nil)
	require.NoError(t, err)
	assert.Equal(t, da, db)
	assert.Len(t, da, 43)
}

func TestDigest_DiffersOnValue(t *testing.T) {
	t.Parallel()
	a := New(Entry[string, int]{"x", 1})
	b := New(Entry[string, int]{"x", 2})
	c := New(Entry[string, int]{"x", 1}, Entry[string, int]{"x", 1})
	da, err := a.Digest(nil)
	require.NoError(t, err)
	db, err := b.Digest(nil)
	require.NoError(t, err)
	dc, err := c.Digest(nil)
	require.NoError(t, err)
	assert.NotEqual(t, da, db)
	assert.NotEqual(t, da, dc)
}

func TestDigestEmpty(t *testing.T) {
	t.Parallel()
	d, err := New[int, int]().Digest(nil)
	require.NoError(t, err)
	assert.Equal(t, ContentHash([]byte{0}), d)
}

func TestDigestMarshalError(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	m := New(Entry[int, int]{1, 1})
	_, err := m.Digest(func(interface{}) ([]byte, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), "marshal key 0")
}

func TestCustomMarshal(t *testing.T) {
	t.Parallel()
	var seen []interface{}
	m := New(Entry[int, string]{2, "b"}, Entry[int, string]{1, "a"})
	_, err := m.Digest(func(i interface{}) ([]byte, error) {
		seen = append(seen, i)
		return []byte{1}, nil
	})
	require.NoError(t, err)
	require.Equal(t, []interface{}{1, "a", 2, "b"}, seen)
}
