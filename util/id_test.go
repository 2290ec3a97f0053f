package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashStringIsStableAndBounded(t *testing.T) {
	const m = 7
	upperBound := Mod(m)

	for _, key := range []string{"foo", "bar", "127.0.0.1:4567", ""} {
		a := HashString(key, m)
		b := HashString(key, m)
		require.Truef(t, a.Equal(b), "hash of %q should be stable across calls", key)
		require.True(t, a.InRing(m))
		require.Less(t, a.Big().Cmp(upperBound), 0)
	}
}

func TestAddPow2Wraps(t *testing.T) {
	const m = 3 // ring size 8
	id := FromUint64(7, m)

	start0 := id.AddPow2(0, m) // 7 + 1 = 8 mod 8 = 0
	require.Equal(t, uint64(0), start0.Uint64())

	start2 := id.AddPow2(2, m) // 7 + 4 = 11 mod 8 = 3
	require.Equal(t, uint64(3), start2.Uint64())
}

func TestInRangeOpenOpenNonWrapping(t *testing.T) {
	const m = 4
	a, x, b := FromUint64(2, m), FromUint64(5, m), FromUint64(10, m)
	require.True(t, InRangeOpenOpen(x, a, b))
	require.False(t, InRangeOpenOpen(a, a, b))
	require.False(t, InRangeOpenOpen(b, a, b))
}

func TestInRangeOpenOpenWrapping(t *testing.T) {
	const m = 4 // ring size 16
	a, b := FromUint64(14, m), FromUint64(2, m)

	require.True(t, InRangeOpenOpen(FromUint64(15, m), a, b))
	require.True(t, InRangeOpenOpen(FromUint64(0, m), a, b))
	require.True(t, InRangeOpenOpen(FromUint64(1, m), a, b))
	require.False(t, InRangeOpenOpen(FromUint64(2, m), a, b))
	require.False(t, InRangeOpenOpen(FromUint64(14, m), a, b))
	require.False(t, InRangeOpenOpen(FromUint64(5, m), a, b))
}

func TestInRangeWholeRingWhenEndpointsEqual(t *testing.T) {
	const m = 4
	a := FromUint64(9, m)

	for i := uint64(0); i < 16; i++ {
		x := FromUint64(i, m)
		if x.Equal(a) {
			require.False(t, InRangeOpenOpen(x, a, a))
		} else {
			require.True(t, InRangeOpenOpen(x, a, a))
		}
	}
}

func TestInRangeOpenClosedIncludesUpperBound(t *testing.T) {
	const m = 4
	a, b := FromUint64(2, m), FromUint64(10, m)
	require.True(t, InRangeOpenClosed(b, a, b))
	require.False(t, InRangeOpenClosed(a, a, b))
}

func TestInRangeClosedOpenIncludesLowerBound(t *testing.T) {
	const m = 4
	a, b := FromUint64(2, m), FromUint64(10, m)
	require.True(t, InRangeClosedOpen(a, a, b))
	require.False(t, InRangeClosedOpen(b, a, b))
}

func TestParseIDRoundTrip(t *testing.T) {
	const m = 7
	id := HashString("a key", m)
	parsed, err := ParseID(id.String())
	require.NoError(t, err)
	require.True(t, id.Equal(parsed))
}

func TestParseIDRejectsGarbage(t *testing.T) {
	_, err := ParseID("not-a-number")
	require.Error(t, err)
}

func TestInRingBounds(t *testing.T) {
	const m = 4
	require.True(t, FromUint64(0, m).InRing(m))
	require.True(t, FromUint64(15, m).InRing(m))

	tooLarge := FromBigInt(Mod(m)) // exactly 2^m, out of range
	require.False(t, tooLarge.InRing(m))
}
