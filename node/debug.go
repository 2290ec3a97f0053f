package node

import (
	"net"
	"net/http"

	"github.com/gorilla/mux"

	"chordring/comm"
	"chordring/util"
)

// debugFinger is the JSON shape of one finger-table row in the debug dump.
type debugFinger struct {
	Index int         `json:"index"`
	Start string      `json:"start"`
	Node  comm.NodeRef `json:"node"`
}

// debugState is the JSON shape /debug/state returns: a snapshot of a
// node's ring position, finger table, and stored keys, for inspecting a
// running ring from the outside without a dedicated RPC method.
type debugState struct {
	Addr        string         `json:"addr"`
	ID          string         `json:"id"`
	M           uint           `json:"m"`
	Joined      bool           `json:"joined"`
	Predecessor *comm.NodeRef  `json:"predecessor,omitempty"`
	Successor   comm.NodeRef   `json:"successor"`
	Fingers     []debugFinger  `json:"fingers"`
	StoredKeys  []string       `json:"stored_keys"`
}

func (n *Node) snapshot() debugState {
	n.mu.Lock()
	defer n.mu.Unlock()

	st := debugState{
		Addr:      n.self.Addr,
		ID:        n.self.ID,
		M:         n.m,
		Joined:    n.joined,
		Successor: n.successorLocked(),
	}
	if n.hasPredecessor {
		pred := n.predecessor
		st.Predecessor = &pred
	}
	for i, f := range n.fingers {
		st.Fingers = append(st.Fingers, debugFinger{Index: i, Start: f.Start.String(), Node: f.Node})
	}
	st.StoredKeys = n.store.Keys()
	return st
}

// DebugServer serves a read-only JSON introspection endpoint over the
// node's live state, since key get/put travels over the RPC transport and
// has no other window onto ring topology from the outside.
type DebugServer struct {
	srv *http.Server
	ln  net.Listener
}

// NewDebugServer builds (but does not start) a debug HTTP server for n,
// bound to addr.
func NewDebugServer(n *Node, addr string) *DebugServer {
	router := mux.NewRouter()
	router.HandleFunc("/debug/state", func(w http.ResponseWriter, r *http.Request) {
		util.WriteJSON(w, n.snapshot())
	}).Methods(http.MethodGet)

	return &DebugServer{srv: &http.Server{Addr: addr, Handler: router}}
}

// Start binds the listener and serves in the background.
func (d *DebugServer) Start() error {
	ln, err := net.Listen("tcp", d.srv.Addr)
	if err != nil {
		return err
	}
	d.ln = ln
	go d.srv.Serve(ln)
	return nil
}

// Close stops accepting connections.
func (d *DebugServer) Close() error {
	if d.ln == nil {
		return nil
	}
	return d.srv.Close()
}
