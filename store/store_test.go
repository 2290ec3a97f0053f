package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"chordring/util"
)

func TestGetPutRoundTrip(t *testing.T) {
	s := New()
	_, found := s.Get("foo")
	require.False(t, found)

	s.Put("foo", "bar")
	value, found := s.Get("foo")
	require.True(t, found)
	require.Equal(t, "bar", value)
}

func TestDelete(t *testing.T) {
	s := New()
	s.Put("foo", "bar")
	s.Delete("foo")
	_, found := s.Get("foo")
	require.False(t, found)
}

func TestExtractMovesOnlyMatchingKeys(t *testing.T) {
	const m = 7
	s := New()
	s.Put("alpha", "1")
	s.Put("beta", "2")
	s.Put("gamma", "3")

	alphaID := util.HashString("alpha", m)

	moved := s.Extract(m, func(id util.ID) bool {
		return id.Equal(alphaID)
	})

	require.Len(t, moved, 1)
	require.Equal(t, "1", moved["alpha"])

	_, found := s.Get("alpha")
	require.False(t, found)
	_, found = s.Get("beta")
	require.True(t, found)
}

func TestKeysAndLen(t *testing.T) {
	s := New()
	require.Equal(t, 0, s.Len())
	s.Put("a", "1")
	s.Put("b", "2")
	require.Equal(t, 2, s.Len())
	require.ElementsMatch(t, []string{"a", "b"}, s.Keys())
}
