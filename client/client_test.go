package client

import (
	"testing"

	"github.com/stretchr/testify/require"

	"chordring/node"
	"chordring/transport"
)

func startNode(t *testing.T, addr string, m uint) *node.Node {
	t.Helper()
	tr := transport.NewRPCTransport()
	n := node.New(addr, m, tr)
	closer, err := tr.Serve(addr, n.RPCService())
	require.NoError(t, err)
	t.Cleanup(func() { closer.Close() })
	return n
}

func TestRunCreateAndPutGet(t *testing.T) {
	const m = 7
	addr := "127.0.0.1:19301"
	startNode(t, addr, m)

	_, err := Run(addr, "create", nil)
	require.NoError(t, err)

	_, err = Run(addr, "put", []string{"foo", "bar"})
	require.NoError(t, err)

	out, err := Run(addr, "get", []string{"foo"})
	require.NoError(t, err)
	require.Contains(t, out, `"bar"`)
}

func TestRunJoinWiresTwoNodes(t *testing.T) {
	const m = 7
	aAddr, bAddr := "127.0.0.1:19302", "127.0.0.1:19303"
	a := startNode(t, aAddr, m)
	startNode(t, bAddr, m)

	require.NoError(t, a.CreateLocal())

	_, err := Run(bAddr, "join", []string{"127.0.0.1", "19302"})
	require.NoError(t, err)

	out, err := Run(bAddr, "ping", nil)
	require.NoError(t, err)
	require.Contains(t, out, "is alive")
}

func TestRunUnknownVerbFails(t *testing.T) {
	_, err := Run("127.0.0.1:1", "bogus", nil)
	require.Error(t, err)
}

func TestRunRequiresArgsForPut(t *testing.T) {
	_, err := Run("127.0.0.1:1", "put", []string{"onlyone"})
	require.Error(t, err)
}
