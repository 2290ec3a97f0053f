package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/urfave/cli"
	"golang.org/x/xerrors"

	"chordring/client"
	"chordring/node"
	"chordring/transport"
)

func main() {
	app := cli.NewApp()
	app.Name = "chordring"
	app.Usage = "a Chord DHT node and client"

	app.Commands = []cli.Command{
		serverCommand,
		clientCommand,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

var serverCommand = cli.Command{
	Name:      "server",
	Usage:     "run a Chord node",
	ArgsUsage: "<host> <port> <m>",
	Flags: []cli.Flag{
		cli.StringFlag{Name: "debug-port", Usage: "port for the read-only /debug/state HTTP endpoint; empty disables it"},
	},
	Action: func(c *cli.Context) error {
		args := c.Args()
		if len(args) != 3 {
			return xerrors.Errorf("usage: server <host> <port> <m>")
		}
		host, port := args[0], args[1]
		m, err := strconv.ParseUint(args[2], 10, 32)
		if err != nil {
			return xerrors.Errorf("invalid ring size %q: %w", args[2], err)
		}

		cfg := node.Config{
			Addr: net.JoinHostPort(host, port),
			M:    uint(m),
		}
		if dp := c.String("debug-port"); dp != "" {
			cfg.DebugAddr = net.JoinHostPort(host, dp)
		}

		srv := node.NewServer(cfg, transport.NewRPCTransport())
		if err := srv.Start(); err != nil {
			return err
		}
		fmt.Printf("chord node listening on %s (m=%d)\n", cfg.Addr, cfg.M)

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-sig:
			srv.Shutdown()
		case <-srv.Done():
		}
		return nil
	},
}

var clientCommand = cli.Command{
	Name:      "client",
	Usage:     "issue one RPC against a Chord node",
	ArgsUsage: "<host> <port> <verb> [args...]",
	Action: func(c *cli.Context) error {
		args := c.Args()
		if len(args) < 3 {
			return xerrors.Errorf("usage: client <host> <port> <verb> [args...]")
		}
		addr := net.JoinHostPort(args[0], args[1])
		verb := args[2]
		rest := []string(args)[3:]

		result, err := client.Run(addr, verb, rest)
		if err != nil {
			return err
		}
		fmt.Println(result)
		return nil
	},
}
