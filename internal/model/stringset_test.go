package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringSet_AddKeepsSortedUnique(t *testing.T) {
	s := NewStringSet("charlie", "alpha", "bravo", "alpha")
	assert.Equal(t, StringSet{"alpha", "bravo", "charlie"}, s)

	s = s.Add("bravo")
	assert.Equal(t, 3, s.Len(), "duplicate add is a no-op")

	s = s.Add("aardvark")
	assert.Equal(t, StringSet{"aardvark", "alpha", "bravo", "charlie"}, s)
}

func TestStringSet_Contains(t *testing.T) {
	s := NewStringSet("skill-1", "skill-2")
	assert.True(t, s.Contains("skill-1"))
	assert.False(t, s.Contains("skill-3"))
	assert.False(t, StringSet(nil).Contains("skill-1"))
}

func TestStringSet_ValueIsDeterministic(t *testing.T) {
	a := NewStringSet("b", "a", "c")
	b := NewStringSet("c", "b", "a")

	va, err := a.Value()
	require.NoError(t, err)
	vb, err := b.Value()
	require.NoError(t, err)
	assert.Equal(t, va, vb, "serialization must not depend on insertion order")
	assert.Equal(t, `["a","b","c"]`, va)
}

func TestStringSet_ValueEmpty(t *testing.T) {
	v, err := StringSet(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v, "nil set stores as an empty array, not NULL")
}

func TestStringSet_ScanRoundTrip(t *testing.T) {
	orig := NewStringSet("skill-1", "skill-2")
	v, err := orig.Value()
	require.NoError(t, err)

	var fromString StringSet
	require.NoError(t, fromString.Scan(v))
	assert.Equal(t, orig, fromString)

	var fromBytes StringSet
	require.NoError(t, fromBytes.Scan([]byte(`["b","a"]`)))
	assert.Equal(t, StringSet{"a", "b"}, fromBytes, "scan normalizes ordering")

	var fromNil StringSet
	require.NoError(t, fromNil.Scan(nil))
	assert.Equal(t, StringSet{}, fromNil)
}

func TestStringSet_ScanRejectsBadInput(t *testing.T) {
	var s StringSet
	assert.Error(t, s.Scan(42))
	assert.Error(t, s.Scan("not json"))
}
