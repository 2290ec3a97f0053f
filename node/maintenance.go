package node

import (
	"chordring/chorderr"
	"chordring/comm"
	"chordring/util"
)

// CreateLocal forms a brand-new one-node ring: predecessor unset,
// successor self, every finger self. Fails if the node already joined a
// ring.
func (n *Node) CreateLocal() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.joined {
		return chorderr.ErrAlreadyJoined
	}

	for i := range n.fingers {
		n.fingers[i].Node = n.self
	}
	n.hasPredecessor = false
	n.joined = true
	return nil
}

// JoinLocal joins an existing ring through known: the successor is
// discovered via a remote find_successor on known; fingers other than 0
// are left pointing at self (fixed up later by FixFingers) and the node does not
// solicit key transfers itself — its eventual successor initiates that on
// the first Notify it receives.
func (n *Node) JoinLocal(known comm.NodeRef) error {
	n.mu.Lock()
	if n.joined {
		n.mu.Unlock()
		return chorderr.ErrAlreadyJoined
	}
	selfID := n.SelfID()
	n.mu.Unlock()

	var reply comm.FindSuccessorReply
	if err := n.transport.Invoke(known.Addr, "FindSuccessor", &comm.FindSuccessorArgs{ID: selfID.String()}, &reply); err != nil {
		return err
	}
	succID, err := n.refID(reply.Node)
	if err != nil {
		return err
	}
	if succID.Equal(selfID) && reply.Node.Addr != n.self.Addr {
		return chorderr.ErrIDCollision
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.joined {
		return chorderr.ErrAlreadyJoined
	}
	n.hasPredecessor = false
	for i := 1; i < len(n.fingers); i++ {
		n.fingers[i].Node = n.self
	}
	n.setSuccessorLocked(reply.Node)
	n.joined = true
	return nil
}

// Stabilize asks the successor for its predecessor and adopts it as the
// new successor if it fits between self and the current one, then
// notifies whichever node ends up as successor. Failures are swallowed
// and logged; the successor is simply left unchanged this round.
func (n *Node) Stabilize() {
	n.mu.Lock()
	selfID := n.SelfID()
	succ := n.successorLocked()
	n.mu.Unlock()

	// When self is its own successor (solo ring, or a ring this node has not
	// yet been displaced from), asking the successor for its predecessor is
	// just asking self — call it in-process rather than round-tripping
	// through the transport to dial ourselves.
	var predReply comm.GetPredecessorReply
	var err error
	if succ.Addr == n.self.Addr {
		err = n.GetPredecessor(&comm.Empty{}, &predReply)
	} else {
		err = n.transport.Invoke(succ.Addr, "GetPredecessor", &comm.Empty{}, &predReply)
	}
	if err != nil {
		n.log.Printf("stabilize: get_predecessor on %s failed: %v", succ.Addr, err)
		return
	}

	if predReply.Set {
		succID, sErr := n.refID(succ)
		candID, cErr := n.refID(predReply.Node)
		if sErr == nil && cErr == nil && util.InRangeOpenOpen(candID, selfID, succID) {
			n.mu.Lock()
			n.setSuccessorLocked(predReply.Node)
			n.mu.Unlock()
			succ = predReply.Node
		}
	}

	if succ.Addr == n.self.Addr {
		// Still our own successor: notifying self sets predecessor = self.
		n.applyNotify(n.self)
		return
	}

	var empty comm.Empty
	if err := n.transport.Invoke(succ.Addr, "Notify", &comm.NotifyArgs{Candidate: n.self}, &empty); err != nil {
		n.log.Printf("stabilize: notify on %s failed: %v", succ.Addr, err)
	}
}

// NotifyLocal handles an inbound notification that candidate believes it
// might be our predecessor, including the key-transfer side effect if
// accepted. Returns the set of key/value
// pairs that should move to candidate; the caller (the RPC handler) sends
// them after releasing the node mutex.
func (n *Node) NotifyLocal(candidate comm.NodeRef) map[string]string {
	n.mu.Lock()

	candID, err := n.refID(candidate)
	if err != nil {
		n.mu.Unlock()
		return nil
	}
	selfID := n.SelfID()

	accept := !n.hasPredecessor
	oldPred := n.predecessor
	oldHasPred := n.hasPredecessor
	if !accept {
		if predID, pErr := n.refID(oldPred); pErr == nil {
			accept = util.InRangeOpenOpen(candID, predID, selfID)
		}
	}
	if !accept {
		n.mu.Unlock()
		return nil
	}

	n.predecessor = candidate
	n.hasPredecessor = true
	m := n.m
	n.mu.Unlock()

	var predicate func(util.ID) bool
	if !oldHasPred {
		predicate = func(keyID util.ID) bool {
			return !util.InRangeOpenClosed(keyID, candID, selfID)
		}
	} else {
		oldPredID, err := n.refID(oldPred)
		if err != nil {
			return nil
		}
		predicate = func(keyID util.ID) bool {
			return util.InRangeOpenClosed(keyID, oldPredID, candID)
		}
	}

	return n.store.Extract(m, predicate)
}

// applyNotify runs NotifyLocal and ships any transferred keys, used for
// the solo-ring self-notify path in Stabilize and by the Notify RPC
// handler.
func (n *Node) applyNotify(candidate comm.NodeRef) {
	moved := n.NotifyLocal(candidate)
	for k, v := range moved {
		var empty comm.Empty
		args := &comm.PutLocalArgs{Key: k, Value: v}
		if err := n.transport.Invoke(candidate.Addr, "PutLocal", args, &empty); err != nil {
			n.log.Printf("notify: transfer of %q to %s failed, keeping locally: %v", k, candidate.Addr, err)
			n.store.Put(k, v)
		}
	}
}

// FixFingers maintains a rolling index and refreshes one finger table
// entry per call.
func (n *Node) FixFingers() {
	n.mu.Lock()
	i := n.nextFinger
	start := n.fingers[i].Start
	n.mu.Unlock()

	ref, _, err := n.FindSuccessorID(start)
	if err != nil {
		n.log.Printf("fix_fingers[%d]: %v", i, err)
		n.mu.Lock()
		n.nextFinger = (i + 1) % int(n.m)
		n.mu.Unlock()
		return
	}

	n.mu.Lock()
	n.fingers[i].Node = ref
	n.nextFinger = (i + 1) % int(n.m)
	n.mu.Unlock()
}

// CheckPredecessor pings the predecessor and clears it on failure.
func (n *Node) CheckPredecessor() {
	n.mu.Lock()
	pred := n.predecessor
	has := n.hasPredecessor
	n.mu.Unlock()

	if !has {
		return
	}

	var empty comm.Empty
	if err := n.transport.Invoke(pred.Addr, "Ping", &comm.Empty{}, &empty); err != nil {
		n.log.Printf("check_predecessor: ping %s failed, clearing predecessor: %v", pred.Addr, err)
		n.mu.Lock()
		if n.hasPredecessor && n.predecessor.Addr == pred.Addr {
			n.hasPredecessor = false
			n.predecessor = comm.NodeRef{}
		}
		n.mu.Unlock()
	}
}
