package node

import (
	"bytes"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nrgonzalez/depot/depot"
)

func TestNode_StartWritesPortToStdout(t *testing.T) {
	n, err := New(depot.Config{Name: "Depot1"})
	require.NoError(t, err)

	var stdout bytes.Buffer
	require.NoError(t, n.Start(&stdout))
	defer n.Stop()

	require.Eventually(t, func() bool {
		return stdout.Len() > 0
	}, time.Second, 10*time.Millisecond)

	port, err := strconv.Atoi(string(bytes.TrimSpace(stdout.Bytes())))
	require.NoError(t, err)
	assert.NotZero(t, port)
}

func TestNode_StartSeedsInventory(t *testing.T) {
	n, err := New(depot.Config{Name: "Depot1", Seeds: []depot.Good{{Name: "Nuts", Qty: 5}}})
	require.NoError(t, err)

	var stdout bytes.Buffer
	require.NoError(t, n.Start(&stdout))
	defer n.Stop()

	snap := n.State().Inventory.SnapshotSortedNonzero()
	assert.Equal(t, []depot.Good{{Name: "Nuts", Qty: 5}}, snap)
}

func TestNode_AcceptsInboundConnections(t *testing.T) {
	n, err := New(depot.Config{Name: "Depot1"})
	require.NoError(t, err)

	var stdout bytes.Buffer
	require.NoError(t, n.Start(&stdout))
	defer n.Stop()

	require.Eventually(t, func() bool { return stdout.Len() > 0 }, time.Second, 10*time.Millisecond)
	port, err := strconv.Atoi(string(bytes.TrimSpace(stdout.Bytes())))
	require.NoError(t, err)

	nc, err := net.Dial("tcp4", "127.0.0.1:"+strconv.Itoa(port))
	require.NoError(t, err)
	defer nc.Close()

	buf := make([]byte, 64)
	nc.SetReadDeadline(time.Now().Add(2 * time.Second))
	nread, err := nc.Read(buf)
	require.NoError(t, err)
	assert.Contains(t, string(buf[:nread]), "Depot1")
}

func TestNode_StopClosesListener(t *testing.T) {
	n, err := New(depot.Config{Name: "Depot1"})
	require.NoError(t, err)

	var stdout bytes.Buffer
	require.NoError(t, n.Start(&stdout))

	require.Eventually(t, func() bool { return stdout.Len() > 0 }, time.Second, 10*time.Millisecond)
	port, err := strconv.Atoi(string(bytes.TrimSpace(stdout.Bytes())))
	require.NoError(t, err)

	require.NoError(t, n.Stop())

	_, err = net.DialTimeout("tcp4", "127.0.0.1:"+strconv.Itoa(port), 500*time.Millisecond)
	assert.Error(t, err)
}
