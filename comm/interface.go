package comm

// NodeComm is the RPC surface every Chord node exposes to its peers and to
// the CLI client. Each method doubles as an in-process operation (called
// directly on the local Node) and a network call (dispatched by a
// transport.Transport); the signatures follow the net/rpc convention of
// func(args *Args, reply *Reply) error so the default transport can
// register a NodeComm implementation directly.
type NodeComm interface {
	GetSuccessor(args *Empty, reply *GetSuccessorReply) error
	GetPredecessor(args *Empty, reply *GetPredecessorReply) error
	FindSuccessor(args *FindSuccessorArgs, reply *FindSuccessorReply) error
	ClosestPrecedingFinger(args *ClosestPrecedingFingerArgs, reply *ClosestPrecedingFingerReply) error
	Notify(args *NotifyArgs, reply *Empty) error
	Create(args *Empty, reply *Empty) error
	Join(args *JoinArgs, reply *Empty) error
	GetLocal(args *GetLocalArgs, reply *GetLocalReply) error
	PutLocal(args *PutLocalArgs, reply *Empty) error
	Get(args *GetArgs, reply *GetReply) error
	Put(args *PutArgs, reply *PutReply) error
	Shutdown(args *Empty, reply *Empty) error
	Ping(args *Empty, reply *Empty) error
}
