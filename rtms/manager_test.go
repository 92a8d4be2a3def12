package rtms

import (
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	return NewManager(Credentials{ClientID: "c", ClientSecret: "s"},
		Policy{ReconnectAttempts: 1, ReconnectDelay: time.Millisecond},
		func(string) ChunkHandler { return &chunkCollector{} })
}

func TestManager_StopUnknownMeeting(t *testing.T) {
	m := newTestManager()
	assert.False(t, m.Stop("missing"))
}

func TestManager_SessionRemovedAfterTerminalFailure(t *testing.T) {
	m := newTestManager()
	// dial fails instantly, bounded policy ends the session
	m.Start("meeting-1", "stream-1", "ws://127.0.0.1:1")

	require.Eventually(t, func() bool { return m.Active() == 0 },
		5*time.Second, 10*time.Millisecond, "session should remove itself")
}

func TestManager_DuplicateStartIgnored(t *testing.T) {
	m := newTestManager()
	url := wsServer(t, func(conn *websocket.Conn) {
		var req signalingHandshakeReq
		_ = conn.ReadJSON(&req)
		_, _, _ = conn.ReadMessage() // hold open
	})

	m.Start("meeting-1", "stream-1", url)
	require.Eventually(t, func() bool { return m.Active() == 1 }, 5*time.Second, 10*time.Millisecond)

	m.Start("meeting-1", "stream-1", url)
	assert.Equal(t, 1, m.Active())

	assert.True(t, m.Stop("meeting-1"))
	require.Eventually(t, func() bool { return m.Active() == 0 }, 5*time.Second, 10*time.Millisecond)
}

func TestManager_StopAllWaitsForTermination(t *testing.T) {
	m := newTestManager()
	url := wsServer(t, func(conn *websocket.Conn) {
		var req signalingHandshakeReq
		_ = conn.ReadJSON(&req)
		_, _, _ = conn.ReadMessage()
	})

	m.Start("meeting-1", "stream-1", url)
	require.Eventually(t, func() bool { return m.Active() == 1 }, 5*time.Second, 10*time.Millisecond)

	m.StopAll()
	require.Eventually(t, func() bool { return m.Active() == 0 }, 5*time.Second, 10*time.Millisecond)
}
