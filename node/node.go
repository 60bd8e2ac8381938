// Package node orchestrates a single depot's lifecycle: binding its
// listening socket, running the accept loop and signal watcher as
// background goroutines, and exposing the shared state those
// goroutines and every session mutate.
package node

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/nrgonzalez/depot/depot"
	"github.com/nrgonzalez/depot/logger"
	"github.com/nrgonzalez/depot/transport"
)

// Node is one running depot process: its shared protocol state, its
// listening socket, and the goroutines serving both the accept loop
// and the reconfiguration signal.
type Node struct {
	config depot.Config
	state  *depot.State

	sessions *depot.Sessions
	dial     depot.Dialer

	ln *transport.Listener

	mu      sync.Mutex
	started bool
	stopped bool
}

// New validates cfg and constructs a Node. It does not bind a socket
// yet — call Start for that.
func New(cfg depot.Config) (*Node, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Node{
		config:   cfg,
		sessions: depot.NewSessions(),
		dial:     transport.Dialer(),
	}, nil
}

// Start binds the listening socket, seeds the inventory, and launches
// the accept loop and signal watcher goroutines. It writes the
// listening port to stdout, then returns without blocking; the caller
// is responsible for keeping the process alive until it wants the
// node stopped.
func (n *Node) Start(stdout io.Writer) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.started {
		return fmt.Errorf("node: already started")
	}

	ln, err := transport.Listen()
	if err != nil {
		return err
	}
	port, err := ln.Port()
	if err != nil {
		ln.Close()
		return err
	}

	state := depot.NewState(n.config.Name, port)
	for _, g := range n.config.Seeds {
		state.Inventory.Seed(g.Name, int32(g.Qty))
	}

	n.state = state
	n.ln = ln
	n.started = true

	depot.IgnoreSIGPIPE()

	fmt.Fprintf(stdout, "%d\n", port)

	go n.acceptLoop()
	go depot.WatchSignal(stdout, n.state, depot.ReconfigureSignal())

	return nil
}

func (n *Node) acceptLoop() {
	sessionLog := logger.NewPrefixed(fmt.Sprintf("depot:%s", n.config.Name))
	err := n.ln.Serve(func(c *transport.Conn) {
		depot.RunSession(c, n.state, n.dial, n.sessions, sessionLog, false)
	})
	if err != nil {
		n.mu.Lock()
		stopped := n.stopped
		n.mu.Unlock()
		if !stopped {
			sessionLog.Printf("accept loop stopped: %v", err)
		}
	}
}

// Stop closes the listening socket, ending the accept loop. Sessions
// already in flight are left to run to completion or EOF; draining
// them on shutdown is out of scope.
func (n *Node) Stop() error {
	n.mu.Lock()
	n.stopped = true
	ln := n.ln
	n.mu.Unlock()
	if ln == nil {
		return nil
	}
	return ln.Close()
}

// State returns the depot's shared protocol state, for tests and
// in-process tooling. (cmd/dial.go does not use it: it talks to a depot
// over a socket.)
func (n *Node) State() *depot.State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

// Sessions returns the live-session registry, for operator tooling.
func (n *Node) Sessions() *depot.Sessions {
	return n.sessions
}

// StartAndBlock is a convenience for cmd/root.go: it starts the node,
// writing its port to stdout, and blocks until sig is received on
// sigCh (typically SIGINT/SIGTERM), then stops the node.
func StartAndBlock(cfg depot.Config, stdout io.Writer, sigCh <-chan os.Signal) error {
	n, err := New(cfg)
	if err != nil {
		return err
	}
	if err := n.Start(stdout); err != nil {
		return err
	}
	<-sigCh
	return n.Stop()
}
