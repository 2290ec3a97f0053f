// Package node implements the Chord node: identifier state, finger table,
// lookup engine, join/maintenance protocols, and storage dispatch. It is
// transport-agnostic: callers supply a transport.Transport, and hand any
// Transport's Serve the comm.NodeComm receiver returned by RPCService.
package node

import (
	"fmt"
	"log"
	"os"
	"sync"

	"chordring/chorderr"
	"chordring/comm"
	"chordring/store"
	"chordring/transport"
	"chordring/util"
)

// FingerEntry is one row of the finger table: start_i = (self.id + 2^i) mod
// 2^m, and the believed successor of start_i.
type FingerEntry struct {
	Start util.ID
	Node  comm.NodeRef
}

// Node is a single Chord ring participant. All reads/writes to its mutable
// state (predecessor, successor, finger table) go through mu; mu is never
// held across an outbound RPC.
type Node struct {
	m    uint
	self comm.NodeRef

	mu             sync.Mutex
	joined         bool
	predecessor    comm.NodeRef
	hasPredecessor bool
	fingers        []FingerEntry // len m; fingers[0].Node is the successor
	nextFinger     int

	store      *store.Store
	transport  transport.Transport
	log        *log.Logger
	onShutdown func()
}

// New constructs a Node bound to addr, with ring size m. The node is not a
// ring member until Create or Join is called.
func New(addr string, m uint, t transport.Transport) *Node {
	id := util.HashString(addr, m)
	fingers := make([]FingerEntry, m)
	for i := range fingers {
		fingers[i] = FingerEntry{Start: id.AddPow2(i, m)}
	}

	return &Node{
		m:         m,
		self:      comm.NodeRef{Addr: addr, ID: id.String()},
		fingers:   fingers,
		store:     store.New(),
		transport: t,
		log:       log.New(os.Stderr, "chord: ", log.LstdFlags),
	}
}

// Self returns this node's own NodeRef.
func (n *Node) Self() comm.NodeRef { return n.self }

// SelfID returns this node's own identifier.
func (n *Node) SelfID() util.ID {
	id, _ := util.ParseID(n.self.ID)
	return id
}

// RingSize returns m.
func (n *Node) RingSize() uint { return n.m }

// refID parses the identifier carried by a NodeRef, validating it is within
// [0, 2^m). A peer reporting an out-of-range id is treated as if the call
// had failed.
func (n *Node) refID(ref comm.NodeRef) (util.ID, error) {
	id, err := util.ParseID(ref.ID)
	if err != nil {
		return util.ID{}, err
	}
	if !id.InRing(n.m) {
		return util.ID{}, chorderr.ErrPeerBadID
	}
	return id, nil
}

// successorLocked returns the current successor; caller must hold mu.
func (n *Node) successorLocked() comm.NodeRef {
	return n.fingers[0].Node
}

// setSuccessorLocked updates the successor and finger[0] together, since
// finger[0].node is defined to always equal the current successor; caller
// must hold mu.
func (n *Node) setSuccessorLocked(ref comm.NodeRef) {
	n.fingers[0].Node = ref
}

func (n *Node) String() string {
	return fmt.Sprintf("node(%s, id=%s)", n.self.Addr, n.self.ID)
}
