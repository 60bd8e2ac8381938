// Package transport provides the raw TCP socket plumbing a depot
// needs: binding an ephemeral listening port, accepting inbound
// sessions, and dialing outbound ones. It has no knowledge of the
// depot wire protocol — it only frames lines and hands connections off
// to a handler.
package transport

import (
	"bufio"
	"fmt"
	"net"
	"strconv"

	"github.com/nrgonzalez/depot/depot"
)

// Conn adapts a net.Conn to depot.Conn: newline-delimited line I/O,
// with writes serialized so concurrent goroutines (a Transfer handler
// on one session writing to a Peer's connection admitted by another)
// never interleave partial lines.
type Conn struct {
	nc      net.Conn
	reader  *bufio.Reader
	writeMu chan struct{}
}

// NewConn wraps an established net.Conn for line-oriented use.
func NewConn(nc net.Conn) *Conn {
	c := &Conn{
		nc:      nc,
		reader:  bufio.NewReader(nc),
		writeMu: make(chan struct{}, 1),
	}
	c.writeMu <- struct{}{}
	return c
}

// ReadLine returns the next newline-terminated line, truncated per
// depot.ReadLine's 255-byte cap.
func (c *Conn) ReadLine() (string, error) {
	return depot.ReadLine(c.reader)
}

// WriteLine writes line plus a trailing newline. Safe for concurrent
// callers.
func (c *Conn) WriteLine(line string) error {
	<-c.writeMu
	defer func() { c.writeMu <- struct{}{} }()
	_, err := fmt.Fprintf(c.nc, "%s\n", line)
	return err
}

// RemoteAddr returns the string form of the peer's network address.
func (c *Conn) RemoteAddr() string {
	return c.nc.RemoteAddr().String()
}

// Close closes both halves of the underlying connection.
func (c *Conn) Close() error {
	return c.nc.Close()
}

// Listener binds an IPv4 TCP socket to an OS-chosen ephemeral port
// with a listen backlog >= 5 (net.Listen's default backlog already
// satisfies this).
type Listener struct {
	ln net.Listener
}

// Listen binds an ephemeral port on every local interface (INADDR_ANY),
// not just loopback, so a peer on another host can reach it once told
// the port.
func Listen() (*Listener, error) {
	ln, err := net.Listen("tcp4", "0.0.0.0:0")
	if err != nil {
		return nil, fmt.Errorf("transport: listen: %w", err)
	}
	return &Listener{ln: ln}, nil
}

// Port returns the OS-chosen listening port.
func (l *Listener) Port() (depot.Port, error) {
	addr, ok := l.ln.Addr().(*net.TCPAddr)
	if !ok {
		return 0, fmt.Errorf("transport: unexpected listener address type %T", l.ln.Addr())
	}
	port, ok := depot.ValidPort(addr.Port)
	if !ok {
		return 0, fmt.Errorf("transport: invalid ephemeral port %d", addr.Port)
	}
	return port, nil
}

// Serve accepts connections until the listener is closed, invoking
// handle for each one on its own goroutine.
func (l *Listener) Serve(handle func(*Conn)) error {
	for {
		nc, err := l.ln.Accept()
		if err != nil {
			return err
		}
		go handle(NewConn(nc))
	}
}

// Close stops accepting new connections.
func (l *Listener) Close() error {
	return l.ln.Close()
}

// Dialer returns a depot.Dialer that connects to 127.0.0.1:<port>
// (used by the Connect verb).
func Dialer() depot.Dialer {
	return func(port depot.Port) (depot.Conn, error) {
		addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(int(port)))
		nc, err := net.Dial("tcp4", addr)
		if err != nil {
			return nil, err
		}
		return NewConn(nc), nil
	}
}
