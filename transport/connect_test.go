package transport

import (
	"fmt"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nrgonzalez/depot/depot"
)

// TestConnect_DialsPeerAndBothSidesAdmitEachOther drives an end-to-end
// Connect handshake over real sockets: an external driver tells depot
// A to Connect to depot B's port, A dials out, both sides exchange IM,
// and each admits the other as a neighbour.
//
// This runs over transport.Listener/Dialer rather than net.Pipe: both
// depot A's outbound session and depot B's inbound session send their
// own IM line before reading anything, and net.Pipe's unbuffered
// Write would deadlock two such sessions against each other. A real
// TCP socket buffers the write, so both handshakes proceed.
func TestConnect_DialsPeerAndBothSidesAdmitEachOther(t *testing.T) {
	lnA, err := Listen()
	require.NoError(t, err)
	defer lnA.Close()
	lnB, err := Listen()
	require.NoError(t, err)
	defer lnB.Close()

	portA, err := lnA.Port()
	require.NoError(t, err)
	portB, err := lnB.Port()
	require.NoError(t, err)

	stateA := depot.NewState("DepotA", portA)
	stateB := depot.NewState("DepotB", portB)
	sessionsA := depot.NewSessions()
	sessionsB := depot.NewSessions()
	dial := Dialer()

	go lnA.Serve(func(c *Conn) {
		depot.RunSession(c, stateA, dial, sessionsA, nil, false)
	})
	go lnB.Serve(func(c *Conn) {
		depot.RunSession(c, stateB, dial, sessionsB, nil, false)
	})

	nc, err := net.Dial("tcp4", "127.0.0.1:"+strconv.Itoa(int(portA)))
	require.NoError(t, err)
	defer nc.Close()
	client := NewConn(nc)

	_, err = client.ReadLine() // consume A's own IM line
	require.NoError(t, err)

	require.NoError(t, client.WriteLine("IM:9000:ExternalDriver"))
	require.Eventually(t, func() bool {
		_, ok := stateA.Neighbours.FindTxByName("ExternalDriver")
		return ok
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, client.WriteLine(fmt.Sprintf("Connect:%d", portB)))

	require.Eventually(t, func() bool {
		_, ok := stateA.Neighbours.FindTxByName("DepotB")
		return ok
	}, time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool {
		_, ok := stateB.Neighbours.FindTxByName("DepotA")
		return ok
	}, time.Second, 10*time.Millisecond)
}
