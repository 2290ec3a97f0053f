package node

import (
	"chordring/chorderr"
	"chordring/comm"
	"chordring/util"
)

// FindSuccessorID resolves the node that owns id. It is recursive: when a
// local finger lies strictly between self and id, it delegates to the
// closest such finger over the network and adds 1 to the hop count that
// call reports; when none does, it answers with its own successor.
// Returns chorderr.ErrNotJoined before Create/Join has run.
func (n *Node) FindSuccessorID(id util.ID) (comm.NodeRef, int, error) {
	n.mu.Lock()
	joined := n.joined
	self := n.self
	selfID := n.SelfID()
	succ := n.successorLocked()
	n.mu.Unlock()

	if !joined {
		return comm.NodeRef{}, 0, chorderr.ErrNotJoined
	}

	succID, err := n.refID(succ)
	if err != nil {
		return comm.NodeRef{}, 0, err
	}

	// 1. id ∈ (self.id, successor.id] (the solo-ring case self==succ also
	// lands here since every id is "between" a node and itself).
	if util.InRangeOpenClosed(id, selfID, succID) || selfID.Equal(succID) {
		return succ, 1, nil
	}

	// 2. no better finger than self
	next := n.closestPrecedingFinger(id)
	if next.Addr == self.Addr {
		return succ, 1, nil
	}

	// 3. delegate remotely
	var reply comm.FindSuccessorReply
	if err := n.transport.Invoke(next.Addr, "FindSuccessor", &comm.FindSuccessorArgs{ID: id.String()}, &reply); err != nil {
		return comm.NodeRef{}, 0, err
	}
	return reply.Node, reply.Hops + 1, nil
}

// closestPrecedingFinger scans the finger table from m-1 down to 0,
// returning the first entry strictly between self and id; self if none
// qualifies. Local only, no RPC.
func (n *Node) closestPrecedingFinger(id util.ID) comm.NodeRef {
	n.mu.Lock()
	defer n.mu.Unlock()

	selfID := n.SelfID()
	for i := len(n.fingers) - 1; i >= 0; i-- {
		candidate := n.fingers[i].Node
		if candidate.Addr == "" {
			continue
		}
		candidateID, err := n.refID(candidate)
		if err != nil {
			continue
		}
		if util.InRangeOpenOpen(candidateID, selfID, id) {
			return candidate
		}
	}
	return n.self
}
