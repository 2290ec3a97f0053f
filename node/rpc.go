package node

import (
	"chordring/chorderr"
	"chordring/comm"
	"chordring/util"
)

// Compile-time assertion that Node satisfies the RPC surface every peer
// exposes.
var _ comm.NodeComm = (*Node)(nil)

// rpcService is the receiver registered with a Transport's Serve: it
// exposes exactly the comm.NodeComm methods and nothing else. Registering
// *Node directly would hand net/rpc every other exported Node method too
// (FindSuccessorID, Self, Stabilize, SetShutdownFunc, ...), none of which
// match the required (args, reply) error shape, so every server start
// would log a registration warning per stray method. rpcService has no
// such methods to warn about.
type rpcService struct {
	node *Node
}

// newRPCService wraps n for RPC registration.
func newRPCService(n *Node) *rpcService {
	return &rpcService{node: n}
}

// RPCService returns the comm.NodeComm receiver to hand a Transport's
// Serve: Serve(addr, n) would register every exported Node method, not
// just the RPC surface, so callers bind the transport to
// n.RPCService() instead.
func (n *Node) RPCService() comm.NodeComm {
	return newRPCService(n)
}

var _ comm.NodeComm = (*rpcService)(nil)

func (s *rpcService) GetSuccessor(args *comm.Empty, reply *comm.GetSuccessorReply) error {
	return s.node.GetSuccessor(args, reply)
}

func (s *rpcService) GetPredecessor(args *comm.Empty, reply *comm.GetPredecessorReply) error {
	return s.node.GetPredecessor(args, reply)
}

func (s *rpcService) FindSuccessor(args *comm.FindSuccessorArgs, reply *comm.FindSuccessorReply) error {
	return s.node.FindSuccessor(args, reply)
}

func (s *rpcService) ClosestPrecedingFinger(args *comm.ClosestPrecedingFingerArgs, reply *comm.ClosestPrecedingFingerReply) error {
	return s.node.ClosestPrecedingFinger(args, reply)
}

func (s *rpcService) Notify(args *comm.NotifyArgs, reply *comm.Empty) error {
	return s.node.Notify(args, reply)
}

func (s *rpcService) Create(args *comm.Empty, reply *comm.Empty) error {
	return s.node.Create(args, reply)
}

func (s *rpcService) Join(args *comm.JoinArgs, reply *comm.Empty) error {
	return s.node.Join(args, reply)
}

func (s *rpcService) GetLocal(args *comm.GetLocalArgs, reply *comm.GetLocalReply) error {
	return s.node.GetLocal(args, reply)
}

func (s *rpcService) PutLocal(args *comm.PutLocalArgs, reply *comm.Empty) error {
	return s.node.PutLocal(args, reply)
}

func (s *rpcService) Get(args *comm.GetArgs, reply *comm.GetReply) error {
	return s.node.Get(args, reply)
}

func (s *rpcService) Put(args *comm.PutArgs, reply *comm.PutReply) error {
	return s.node.Put(args, reply)
}

func (s *rpcService) Shutdown(args *comm.Empty, reply *comm.Empty) error {
	return s.node.Shutdown(args, reply)
}

func (s *rpcService) Ping(args *comm.Empty, reply *comm.Empty) error {
	return s.node.Ping(args, reply)
}

func (n *Node) GetSuccessor(args *comm.Empty, reply *comm.GetSuccessorReply) error {
	n.mu.Lock()
	reply.Node = n.successorLocked()
	n.mu.Unlock()
	return nil
}

func (n *Node) GetPredecessor(args *comm.Empty, reply *comm.GetPredecessorReply) error {
	n.mu.Lock()
	reply.Node = n.predecessor
	reply.Set = n.hasPredecessor
	n.mu.Unlock()
	return nil
}

func (n *Node) FindSuccessor(args *comm.FindSuccessorArgs, reply *comm.FindSuccessorReply) error {
	id, err := util.ParseID(args.ID)
	if err != nil {
		return err
	}
	if !id.InRing(n.m) {
		return chorderr.ErrPeerBadID
	}

	ref, hops, err := n.FindSuccessorID(id)
	if err != nil {
		return err
	}
	reply.Node = ref
	reply.Hops = hops
	return nil
}

func (n *Node) ClosestPrecedingFinger(args *comm.ClosestPrecedingFingerArgs, reply *comm.ClosestPrecedingFingerReply) error {
	id, err := util.ParseID(args.ID)
	if err != nil {
		return err
	}
	reply.Node = n.closestPrecedingFinger(id)
	return nil
}

func (n *Node) Notify(args *comm.NotifyArgs, reply *comm.Empty) error {
	n.applyNotify(args.Candidate)
	return nil
}

func (n *Node) Create(args *comm.Empty, reply *comm.Empty) error {
	return n.CreateLocal()
}

func (n *Node) Join(args *comm.JoinArgs, reply *comm.Empty) error {
	return n.JoinLocal(args.Known)
}

func (n *Node) GetLocal(args *comm.GetLocalArgs, reply *comm.GetLocalReply) error {
	value, found := n.store.Get(args.Key)
	reply.Value = value
	reply.Found = found
	return nil
}

func (n *Node) PutLocal(args *comm.PutLocalArgs, reply *comm.Empty) error {
	n.store.Put(args.Key, args.Value)
	return nil
}

// Get resolves the node that owns key and reads from it.
func (n *Node) Get(args *comm.GetArgs, reply *comm.GetReply) error {
	n.mu.Lock()
	joined := n.joined
	n.mu.Unlock()
	if !joined {
		return chorderr.ErrNotJoined
	}

	keyID := util.HashString(args.Key, n.m)
	target, hops, err := n.FindSuccessorID(keyID)
	if err != nil {
		return err
	}

	var value string
	var found bool
	if target.Addr == n.self.Addr {
		value, found = n.store.Get(args.Key)
	} else {
		var local comm.GetLocalReply
		if err := n.transport.Invoke(target.Addr, "GetLocal", &comm.GetLocalArgs{Key: args.Key}, &local); err != nil {
			return err
		}
		value, found = local.Value, local.Found
	}

	reply.Node = target
	reply.Hops = hops
	reply.Value = value
	reply.Found = found
	return nil
}

// Put resolves the node that should own key and writes to it.
func (n *Node) Put(args *comm.PutArgs, reply *comm.PutReply) error {
	n.mu.Lock()
	joined := n.joined
	n.mu.Unlock()
	if !joined {
		return chorderr.ErrNotJoined
	}

	keyID := util.HashString(args.Key, n.m)
	target, hops, err := n.FindSuccessorID(keyID)
	if err != nil {
		return err
	}

	if target.Addr == n.self.Addr {
		n.store.Put(args.Key, args.Value)
	} else {
		var empty comm.Empty
		putArgs := &comm.PutLocalArgs{Key: args.Key, Value: args.Value}
		if err := n.transport.Invoke(target.Addr, "PutLocal", putArgs, &empty); err != nil {
			return err
		}
	}

	reply.Node = target
	reply.Hops = hops
	return nil
}

// Shutdown implements the graceful-shutdown RPC. The actual loop/listener
// teardown is wired up by the caller via SetShutdownFunc, since Node
// itself does not own the transport listener or maintenance goroutines.
func (n *Node) Shutdown(args *comm.Empty, reply *comm.Empty) error {
	n.mu.Lock()
	fn := n.onShutdown
	n.mu.Unlock()
	if fn != nil {
		go fn()
	}
	return nil
}

func (n *Node) Ping(args *comm.Empty, reply *comm.Empty) error {
	return nil
}

// SetShutdownFunc registers the callback Shutdown invokes to stop
// maintenance loops and close the listener. Must be called before the RPC
// server starts accepting connections.
func (n *Node) SetShutdownFunc(fn func()) {
	n.mu.Lock()
	n.onShutdown = fn
	n.mu.Unlock()
}
