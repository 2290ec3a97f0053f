// Package transport abstracts the RPC codec Chord nodes use to talk to
// each other: node logic never depends on a concrete wire format, only on
// Invoke/Serve.
package transport

import (
	"io"

	"chordring/comm"
)

// Transport can dial a remote peer by address and invoke one of its
// NodeComm methods, and can bind a local NodeComm so peers can reach it.
// Keeping this as an interface rather than hardcoding net/rpc means a
// second codec (HTTP, XML-RPC, whatever a deployment needs) can be
// dropped in without touching node logic.
type Transport interface {
	// Invoke calls method on the peer at addr, encoding args and decoding
	// into reply. A dial/timeout/decode failure is returned as-is; callers
	// treat any error from Invoke as "peer unreachable."
	Invoke(addr, method string, args, reply interface{}) error

	// Serve binds api on addr and starts accepting connections in the
	// background. The returned io.Closer stops the listener; Serve does
	// not block.
	Serve(addr string, api comm.NodeComm) (io.Closer, error)
}
