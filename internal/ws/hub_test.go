package ws

import (
	"net/http"
	"net/http/httptest"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(hub *Hub, userID uint) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.Serve(w, r, userID)
	}))
}

func dialHub(t *testing.T, server *httptest.Server) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(server.URL, "http")

	header := http.Header{}
	header.Set("Origin", "http://localhost:3000")

	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)

	// Drain the welcome message so the connection is fully established.
	var welcome map[string]string
	require.NoError(t, conn.ReadJSON(&welcome))
	assert.Equal(t, "connected", welcome["type"])

	return conn
}

func (h *Hub) connectionCount(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients[userID])
}

func TestServe_BroadcastRefresh(t *testing.T) {
	hub := NewHub(zap.NewNop())
	server := newTestServer(hub, 7)
	defer server.Close()

	conn := dialHub(t, server)
	defer conn.Close()

	hub.BroadcastRefresh(7, "alerts")

	var message map[string]string
	require.NoError(t, conn.ReadJSON(&message))

	assert.Equal(t, "refresh", message["type"])
	assert.Equal(t, "alerts", message["scope"])
}

func TestServe_BroadcastRefreshOtherUser(t *testing.T) {
	hub := NewHub(zap.NewNop())
	server := newTestServer(hub, 7)
	defer server.Close()

	conn := dialHub(t, server)
	defer conn.Close()

	// A different user's refresh must not reach this connection.
	hub.BroadcastRefresh(8, "alerts")

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(100*time.Millisecond)))

	var message map[string]string
	assert.Error(t, conn.ReadJSON(&message))
}

func TestServe_CleansUpAfterDisconnect(t *testing.T) {
	hub := NewHub(zap.NewNop())
	server := newTestServer(hub, 7)
	defer server.Close()

	before := runtime.NumGoroutine()

	conns := make([]*websocket.Conn, 0, 20)
	for i := 0; i < 20; i++ {
		conns = append(conns, dialHub(t, server))
	}

	require.Equal(t, 20, hub.connectionCount(7))

	for _, conn := range conns {
		conn.Close()
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if hub.connectionCount(7) == 0 && runtime.NumGoroutine() <= before+2 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	assert.Equal(t, 0, hub.connectionCount(7))
	assert.LessOrEqual(t, runtime.NumGoroutine(), before+2)
}
