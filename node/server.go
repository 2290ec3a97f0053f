package node

import (
	"io"
	"sync"
	"time"

	"chordring/transport"
)

// Default maintenance task periods, sub-second so a small test ring
// converges quickly without tuning.
const (
	DefaultStabilizeInterval        = 500 * time.Millisecond
	DefaultFixFingersInterval       = 300 * time.Millisecond
	DefaultCheckPredecessorInterval = 700 * time.Millisecond
)

// Config bundles the parameters a running node needs beyond the Node
// struct itself: its own address, ring size, and the maintenance task
// periods.
type Config struct {
	Addr      string
	M         uint
	DebugAddr string // empty disables the debug HTTP introspection server

	Stabilize        time.Duration
	FixFingers       time.Duration
	CheckPredecessor time.Duration
}

func (c Config) withDefaults() Config {
	if c.Stabilize == 0 {
		c.Stabilize = DefaultStabilizeInterval
	}
	if c.FixFingers == 0 {
		c.FixFingers = DefaultFixFingersInterval
	}
	if c.CheckPredecessor == 0 {
		c.CheckPredecessor = DefaultCheckPredecessorInterval
	}
	return c
}

// Server wires a Node to a Transport and runs its three independent
// maintenance loops: each loop acquires the node mutex only around state
// reads/writes, never across an RPC, and loops exit at their next
// iteration boundary on Shutdown.
type Server struct {
	Node *Node

	cfg          Config
	listener     io.Closer
	debug        *DebugServer
	stop         chan struct{}
	done         chan struct{}
	shutdownOnce sync.Once
}

// NewServer constructs a Node bound to cfg.Addr/cfg.M over t, without
// starting anything yet.
func NewServer(cfg Config, t transport.Transport) *Server {
	cfg = cfg.withDefaults()
	n := New(cfg.Addr, cfg.M, t)
	s := &Server{
		Node: n,
		cfg:  cfg,
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	n.SetShutdownFunc(s.shutdown)
	return s
}

// Start binds the transport listener and launches the maintenance loops.
// It does not block.
func (s *Server) Start() error {
	ln, err := s.Node.transport.Serve(s.cfg.Addr, s.Node.RPCService())
	if err != nil {
		return err
	}
	s.listener = ln

	if s.cfg.DebugAddr != "" {
		s.debug = NewDebugServer(s.Node, s.cfg.DebugAddr)
		if err := s.debug.Start(); err != nil {
			ln.Close()
			return err
		}
	}

	go s.loop(s.cfg.Stabilize, s.Node.Stabilize)
	go s.loop(s.cfg.FixFingers, s.Node.FixFingers)
	go s.loop(s.cfg.CheckPredecessor, s.Node.CheckPredecessor)

	return nil
}

func (s *Server) loop(interval time.Duration, task func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			task()
		}
	}
}

// shutdown tears down the listener and maintenance loops exactly once,
// even if triggered concurrently by more than one Shutdown RPC (each
// dispatched on its own goroutine) or by an RPC shutdown racing a direct
// Shutdown() call.
func (s *Server) shutdown() {
	s.shutdownOnce.Do(func() {
		close(s.stop)
		if s.listener != nil {
			s.listener.Close()
		}
		if s.debug != nil {
			s.debug.Close()
		}
		close(s.done)
	})
}

// Shutdown stops the maintenance loops and closes the listener. Safe to
// call directly (not just via the Shutdown RPC), e.g. from a CLI's own
// process teardown or from tests.
func (s *Server) Shutdown() {
	s.shutdown()
}

// Done returns a channel closed once Shutdown has completed.
func (s *Server) Done() <-chan struct{} {
	return s.done
}
