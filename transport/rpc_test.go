package transport

import (
	"testing"

	"github.com/stretchr/testify/require"

	"chordring/comm"
)

// echoService is a minimal comm.NodeComm stub: GetSuccessor returns a fixed
// NodeRef and FindSuccessor echoes the requested ID back; every other
// method is a no-op. Good enough to exercise the transport without a real
// Node.
type echoService struct{}

func (echoService) GetSuccessor(args *comm.Empty, reply *comm.GetSuccessorReply) error {
	reply.Node = comm.NodeRef{Addr: "echo:1", ID: "42"}
	return nil
}
func (echoService) GetPredecessor(args *comm.Empty, reply *comm.GetPredecessorReply) error {
	return nil
}
func (echoService) FindSuccessor(args *comm.FindSuccessorArgs, reply *comm.FindSuccessorReply) error {
	reply.Node = comm.NodeRef{Addr: "echo:1", ID: args.ID}
	reply.Hops = 1
	return nil
}
func (echoService) ClosestPrecedingFinger(args *comm.ClosestPrecedingFingerArgs, reply *comm.ClosestPrecedingFingerReply) error {
	return nil
}
func (echoService) Notify(args *comm.NotifyArgs, reply *comm.Empty) error { return nil }
func (echoService) Create(args *comm.Empty, reply *comm.Empty) error      { return nil }
func (echoService) Join(args *comm.JoinArgs, reply *comm.Empty) error     { return nil }
func (echoService) GetLocal(args *comm.GetLocalArgs, reply *comm.GetLocalReply) error {
	return nil
}
func (echoService) PutLocal(args *comm.PutLocalArgs, reply *comm.Empty) error { return nil }
func (echoService) Get(args *comm.GetArgs, reply *comm.GetReply) error       { return nil }
func (echoService) Put(args *comm.PutArgs, reply *comm.PutReply) error       { return nil }
func (echoService) Shutdown(args *comm.Empty, reply *comm.Empty) error       { return nil }
func (echoService) Ping(args *comm.Empty, reply *comm.Empty) error           { return nil }

var _ comm.NodeComm = echoService{}

func TestRPCTransportInvokeRoundTrip(t *testing.T) {
	tr := NewRPCTransport()
	closer, err := tr.Serve("127.0.0.1:19201", echoService{})
	require.NoError(t, err)
	t.Cleanup(func() { closer.Close() })

	var reply comm.FindSuccessorReply
	err = tr.Invoke("127.0.0.1:19201", "FindSuccessor", &comm.FindSuccessorArgs{ID: "99"}, &reply)
	require.NoError(t, err)
	require.Equal(t, "99", reply.Node.ID)
	require.Equal(t, 1, reply.Hops)
}

func TestRPCTransportInvokeUnreachablePeerFails(t *testing.T) {
	tr := NewRPCTransport()
	tr.Timeout = 200000000 // 200ms, keep the failure test fast
	var reply comm.Empty
	err := tr.Invoke("127.0.0.1:1", "Ping", &comm.Empty{}, &reply)
	require.Error(t, err)
}

func TestRPCTransportConnectionsArePooled(t *testing.T) {
	tr := NewRPCTransport()
	closer, err := tr.Serve("127.0.0.1:19202", echoService{})
	require.NoError(t, err)
	t.Cleanup(func() { closer.Close() })

	var reply comm.GetSuccessorReply
	require.NoError(t, tr.Invoke("127.0.0.1:19202", "GetSuccessor", &comm.Empty{}, &reply))
	require.NoError(t, tr.Invoke("127.0.0.1:19202", "GetSuccessor", &comm.Empty{}, &reply))

	tr.mu.Lock()
	_, pooled := tr.conns["127.0.0.1:19202"]
	tr.mu.Unlock()
	require.True(t, pooled)
}
