package depot

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessions_SnapshotTracksLiveConnections(t *testing.T) {
	server, client := net.Pipe()
	defer client.Close()

	state := NewState("Depot1", 4001)
	sessions := NewSessions()

	done := make(chan struct{})
	go func() {
		RunSession(newPipeConn(server), state, nil, sessions, nil, false)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return len(sessions.Snapshot()) == 1
	}, time.Second, 10*time.Millisecond)

	snap := sessions.Snapshot()
	assert.False(t, snap[0].Outbound)
	assert.False(t, snap[0].Handshaken)

	client.Close()
	require.Eventually(t, func() bool {
		return len(sessions.Snapshot()) == 0
	}, time.Second, 10*time.Millisecond)

	<-done
}
