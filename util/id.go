// Package util provides identifier arithmetic on the Chord ring Z/2^m and
// a small JSON helper used by the node's debug HTTP surface.
package util

import (
	"crypto/sha1"
	"math/big"

	"golang.org/x/xerrors"
)

// HashFunc produces the raw digest used to derive ring identifiers from
// addresses and keys. Exposed as a variable so tests can substitute a
// deterministic stub without touching production wiring.
var HashFunc = sha1.Sum

// ID is a ring identifier in [0, 2^m). HashString, FromUint64 and AddPow2
// reduce their result mod 2^m; ParseID and FromBigInt do not, so a value
// from either is checked with InRing before it is trusted.
type ID struct {
	val *big.Int
}

// Mod returns the modulus 2^m.
func Mod(m uint) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), m)
}

// HashString reduces an address or key string to a ring identifier mod 2^m.
// The hash must be pure and total: the same string always yields the same
// ID for a fixed m, across processes.
func HashString(s string, m uint) ID {
	digest := HashFunc([]byte(s))
	n := new(big.Int).SetBytes(digest[:])
	n.Mod(n, Mod(m))
	return ID{val: n}
}

// FromUint64 builds an ID from a raw integer, reducing it mod 2^m.
func FromUint64(v uint64, m uint) ID {
	n := new(big.Int).SetUint64(v)
	n.Mod(n, Mod(m))
	return ID{val: n}
}

// FromBigInt wraps a *big.Int that the caller has already reduced mod 2^m.
func FromBigInt(v *big.Int) ID {
	return ID{val: new(big.Int).Set(v)}
}

// ParseID decodes the decimal text an ID was rendered to by String, used
// when decoding a NodeRef.ID off the wire. Returns an error if s is not a
// valid base-10 integer.
func ParseID(s string) (ID, error) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return ID{}, xerrors.Errorf("util: invalid identifier %q", s)
	}
	return ID{val: n}, nil
}

// InRing reports whether the identifier is within [0, 2^m), i.e. whether a
// peer that claims it is configured with a matching ring size.
func (id ID) InRing(m uint) bool {
	v := id.Big()
	return v.Sign() >= 0 && v.Cmp(Mod(m)) < 0
}

// Big returns the underlying value. Callers must not mutate it.
func (id ID) Big() *big.Int {
	if id.val == nil {
		return big.NewInt(0)
	}
	return id.val
}

// Uint64 returns the identifier as a uint64; safe for any m <= 64.
func (id ID) Uint64() uint64 {
	return id.Big().Uint64()
}

// String renders the identifier in decimal, for logs and the debug endpoint.
func (id ID) String() string {
	return id.Big().String()
}

// Equal reports whether two identifiers are the same point on the ring.
func (id ID) Equal(other ID) bool {
	return id.Big().Cmp(other.Big()) == 0
}

// AddPow2 returns (id + 2^i) mod 2^m, used to compute finger_table[i].start.
func (id ID) AddPow2(i int, m uint) ID {
	offset := new(big.Int).Lsh(big.NewInt(1), uint(i))
	sum := new(big.Int).Add(id.Big(), offset)
	sum.Mod(sum, Mod(m))
	return ID{val: sum}
}

// InRangeOpenOpen reports whether x lies strictly between a and b going
// clockwise around the ring: (a, b). If a == b the whole ring except a is
// considered "between".
func InRangeOpenOpen(x, a, b ID) bool {
	ax, bx := a.Big(), b.Big()
	xv := x.Big()
	if ax.Cmp(bx) == 0 {
		return xv.Cmp(ax) != 0
	}
	if ax.Cmp(bx) < 0 {
		return ax.Cmp(xv) < 0 && xv.Cmp(bx) < 0
	}
	return xv.Cmp(ax) > 0 || xv.Cmp(bx) < 0
}

// InRangeOpenClosed reports whether x lies in (a, b].
func InRangeOpenClosed(x, a, b ID) bool {
	return x.Equal(b) || InRangeOpenOpen(x, a, b)
}

// InRangeClosedOpen reports whether x lies in [a, b).
func InRangeClosedOpen(x, a, b ID) bool {
	return x.Equal(a) || InRangeOpenOpen(x, a, b)
}
