// Package comm defines the wire types and RPC contract shared by every
// Chord peer: the same struct shapes serve as in-process call arguments and
// as the payload a Transport marshals onto the network.
package comm

// NodeRef is the universal reference form passed between peers: an address
// paired with the identifier the sender computed for it. A recipient may
// always recompute ID from Addr; ID is never trusted blindly.
type NodeRef struct {
	Addr string
	ID   string // decimal big.Int text, reduced mod 2^m
}

// IsZero reports whether r is the unset NodeRef, used on the wire in place
// of a nil predecessor.
func (r NodeRef) IsZero() bool {
	return r.Addr == "" && r.ID == ""
}

// Empty is the argument/reply shape for RPCs that carry no data.
type Empty struct{}

// GetPredecessorReply answers get_predecessor; Set distinguishes "no
// predecessor yet" from the zero NodeRef on the wire.
type GetPredecessorReply struct {
	Node NodeRef
	Set  bool
}

// GetSuccessorReply answers get_successor.
type GetSuccessorReply struct {
	Node NodeRef
}

// FindSuccessorArgs carries the ring identifier being looked up, as decimal
// big.Int text so it survives encoding regardless of m.
type FindSuccessorArgs struct {
	ID string
}

// FindSuccessorReply carries the resolved successor and the accumulated hop
// count, incremented once per node visited during the lookup.
type FindSuccessorReply struct {
	Node NodeRef
	Hops int
}

// ClosestPrecedingFingerArgs mirrors FindSuccessorArgs; exposed over RPC
// only for debugging, since closest_preceding_finger is otherwise a purely
// local lookup with no network effect.
type ClosestPrecedingFingerArgs struct {
	ID string
}

// ClosestPrecedingFingerReply carries the chosen finger (or self).
type ClosestPrecedingFingerReply struct {
	Node NodeRef
}

// NotifyArgs carries the candidate node informing self that it might be
// self's predecessor.
type NotifyArgs struct {
	Candidate NodeRef
}

// JoinArgs carries the known, already-joined node used to discover this
// node's successor.
type JoinArgs struct {
	Known NodeRef
}

// GetLocalArgs/GetLocalReply implement the local-store-only lookup used by
// the storage dispatcher (notify-driven key transfer uses PutLocal).
type GetLocalArgs struct {
	Key string
}

type GetLocalReply struct {
	Value string
	Found bool
}

// PutLocalArgs stores a key/value pair on the local store only, with no
// routing.
type PutLocalArgs struct {
	Key   string
	Value string
}

// GetArgs/GetReply implement the routed get: resolve the owning node, then
// fetch from it.
type GetArgs struct {
	Key string
}

type GetReply struct {
	Node  NodeRef
	Hops  int
	Value string
	Found bool
}

// PutArgs/PutReply implement the routed put.
type PutArgs struct {
	Key   string
	Value string
}

type PutReply struct {
	Node NodeRef
	Hops int
}
