// Package chorderr collects the sentinel errors a Chord node can return,
// distinguishing protocol misuse from transient RPC failure per the error
// taxonomy of the protocol this repo implements.
package chorderr

import "errors"

var (
	// ErrAlreadyJoined is returned by Create/Join when the node is already a
	// ring member. State is left unchanged.
	ErrAlreadyJoined = errors.New("chord: node already joined a ring")

	// ErrNotJoined is returned by operations that require ring membership
	// (lookups, storage) when Create/Join has not yet run.
	ErrNotJoined = errors.New("chord: node has not joined a ring")

	// ErrIDCollision is returned by Join when the joining node's identifier
	// collides with an existing ring member's identifier; this repo refuses
	// the join outright rather than attempting to merge the two.
	ErrIDCollision = errors.New("chord: node id collides with an existing ring member")

	// ErrPeerBadID is returned when a peer reports an identifier outside
	// [0, 2^m), i.e. it is configured with a different ring size. Treated
	// like a transient failure by callers.
	ErrPeerBadID = errors.New("chord: peer returned an id outside the configured ring size")

	// ErrKeyNotFound is NOT part of this taxonomy: GetLocal reports a
	// missing key via a found=false return value, never an error.
)
