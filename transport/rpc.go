package transport

import (
	"io"
	"net"
	"net/rpc"
	"sync"
	"time"

	"golang.org/x/xerrors"

	"chordring/comm"
)

// defaultTimeout bounds every outbound call; a timed-out call is treated
// as a failure like any other unreachable peer.
const defaultTimeout = 3 * time.Second

// RPCTransport is the shipped Transport: gob-encoded net/rpc over TCP.
// Connections are pooled by address under a mutex, redialing only when a
// call fails.
type RPCTransport struct {
	Timeout time.Duration

	mu    sync.Mutex
	conns map[string]*rpc.Client
}

// NewRPCTransport returns a Transport with connection pooling enabled and
// the default call timeout.
func NewRPCTransport() *RPCTransport {
	return &RPCTransport{
		Timeout: defaultTimeout,
		conns:   make(map[string]*rpc.Client),
	}
}

func (t *RPCTransport) client(addr string) (*rpc.Client, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if c, ok := t.conns[addr]; ok {
		return c, nil
	}

	conn, err := net.DialTimeout("tcp", addr, t.Timeout)
	if err != nil {
		return nil, err
	}
	c := rpc.NewClient(conn)
	t.conns[addr] = c
	return c, nil
}

// dropClient forgets a cached connection so the next Invoke redials; called
// after any call error, since a half-broken net/rpc client is not safely
// reusable.
func (t *RPCTransport) dropClient(addr string, c *rpc.Client) {
	t.mu.Lock()
	if cur, ok := t.conns[addr]; ok && cur == c {
		delete(t.conns, addr)
	}
	t.mu.Unlock()
	c.Close()
}

// Invoke implements Transport. Methods are dispatched under the "NodeComm"
// service name that Serve registers them under.
func (t *RPCTransport) Invoke(addr, method string, args, reply interface{}) error {
	c, err := t.client(addr)
	if err != nil {
		return err
	}

	call := c.Go("NodeComm."+method, args, reply, make(chan *rpc.Call, 1))
	select {
	case <-call.Done:
		if call.Error != nil {
			t.dropClient(addr, c)
			return call.Error
		}
		return nil
	case <-time.After(t.Timeout):
		t.dropClient(addr, c)
		return xerrors.Errorf("transport: %s %s: timed out after %s", addr, method, t.Timeout)
	}
}

// rpcListener adapts a net.Listener to io.Closer; Serve's caller only needs
// to stop accepting new connections on shutdown.
type rpcListener struct {
	ln net.Listener
}

func (l *rpcListener) Close() error {
	return l.ln.Close()
}

// Serve implements Transport.
func (t *RPCTransport) Serve(addr string, api comm.NodeComm) (io.Closer, error) {
	server := rpc.NewServer()
	if err := server.RegisterName("NodeComm", api); err != nil {
		return nil, err
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go server.ServeConn(conn)
		}
	}()

	return &rpcListener{ln: ln}, nil
}
