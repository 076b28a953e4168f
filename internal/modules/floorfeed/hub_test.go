package floorfeed

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubfloor/internal/pkg/jwt"
)

func dialFeed(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()

	gin.SetMode(gin.TestMode)
	jwtService := jwt.New("feed-secret", time.Hour)
	token, err := jwtService.GenerateToken(1, 1, "staff")
	require.NoError(t, err)

	router := gin.New()
	NewHandler(hub, jwtService).RegisterRoutes(router.Group(""))

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/floor?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	// Wait for the hub to register the connection.
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	require.Equal(t, 1, hub.ClientCount())

	return conn
}

func TestHub_BroadcastReachesClient(t *testing.T) {
	hub := NewHub()
	conn := dialFeed(t, hub)

	hub.Broadcast(EventEngagement, map[string]any{"order_id": 9, "tag": "nomination"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var event Event
	require.NoError(t, json.Unmarshal(msg, &event))
	assert.Equal(t, EventEngagement, event.Type)

	payload, ok := event.Payload.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "nomination", payload["tag"])
}

func TestHub_RejectsMissingToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(NewHub(), jwt.New("feed-secret", time.Hour)).RegisterRoutes(router.Group(""))

	srv := httptest.NewServer(router)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/floor"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	assert.Error(t, err)
	if resp != nil {
		assert.Equal(t, 401, resp.StatusCode)
	}
}

func TestHub_ClientCountDropsOnDisconnect(t *testing.T) {
	hub := NewHub()
	conn := dialFeed(t, hub)

	conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	assert.Equal(t, 0, hub.ClientCount())
}
