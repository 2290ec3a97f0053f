// Package client implements the CLI client surface: a thin wrapper
// issuing one RPC call per invocation and reporting the result (or
// failure) back to the command line.
package client

import (
	"fmt"
	"net"

	"golang.org/x/xerrors"

	"chordring/comm"
	"chordring/transport"
)

// Run dispatches one verb against the node at addr and returns a
// human-readable result line. Errors returned here propagate to the CLI's
// exit code.
func Run(addr string, verb string, args []string) (string, error) {
	t := transport.NewRPCTransport()

	switch verb {
	case "create":
		var empty comm.Empty
		if err := t.Invoke(addr, "Create", &comm.Empty{}, &empty); err != nil {
			return "", err
		}
		return fmt.Sprintf("created ring at %s", addr), nil

	case "join":
		if len(args) != 2 {
			return "", xerrors.Errorf("join requires <host> <port>")
		}
		known := net.JoinHostPort(args[0], args[1])
		var empty comm.Empty
		joinArgs := &comm.JoinArgs{Known: comm.NodeRef{Addr: known}}
		if err := t.Invoke(addr, "Join", joinArgs, &empty); err != nil {
			return "", err
		}
		return fmt.Sprintf("%s joined via %s", addr, known), nil

	case "find_successor":
		if len(args) != 1 {
			return "", xerrors.Errorf("find_successor requires <id>")
		}
		var reply comm.FindSuccessorReply
		fsArgs := &comm.FindSuccessorArgs{ID: args[0]}
		if err := t.Invoke(addr, "FindSuccessor", fsArgs, &reply); err != nil {
			return "", err
		}
		return fmt.Sprintf("successor(%s) = %s (id=%s, hops=%d)", args[0], reply.Node.Addr, reply.Node.ID, reply.Hops), nil

	case "put":
		if len(args) != 2 {
			return "", xerrors.Errorf("put requires <key> <value>")
		}
		var reply comm.PutReply
		putArgs := &comm.PutArgs{Key: args[0], Value: args[1]}
		if err := t.Invoke(addr, "Put", putArgs, &reply); err != nil {
			return "", err
		}
		return fmt.Sprintf("stored %q on %s (id=%s, hops=%d)", args[0], reply.Node.Addr, reply.Node.ID, reply.Hops), nil

	case "get":
		if len(args) != 1 {
			return "", xerrors.Errorf("get requires <key>")
		}
		var reply comm.GetReply
		getArgs := &comm.GetArgs{Key: args[0]}
		if err := t.Invoke(addr, "Get", getArgs, &reply); err != nil {
			return "", err
		}
		if !reply.Found {
			return fmt.Sprintf("%q not found (owner %s, hops=%d)", args[0], reply.Node.Addr, reply.Hops), nil
		}
		return fmt.Sprintf("%s = %q (owner %s, hops=%d)", args[0], reply.Value, reply.Node.Addr, reply.Hops), nil

	case "shutdown":
		var empty comm.Empty
		if err := t.Invoke(addr, "Shutdown", &comm.Empty{}, &empty); err != nil {
			return "", err
		}
		return fmt.Sprintf("%s shutting down", addr), nil

	case "ping":
		var empty comm.Empty
		if err := t.Invoke(addr, "Ping", &comm.Empty{}, &empty); err != nil {
			return "", err
		}
		return fmt.Sprintf("%s is alive", addr), nil

	default:
		return "", xerrors.Errorf("unknown verb %q", verb)
	}
}
