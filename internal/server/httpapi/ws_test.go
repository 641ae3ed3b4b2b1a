package httpapi

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shastore/shastore/internal/logging"
	"github.com/shastore/shastore/internal/server/ws"
)

func TestFeed_RegisterBroadcastDisconnect(t *testing.T) {
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	hub := ws.NewHub()
	h := NewHandler(&fakeHashProvider{}, &fakeUserProvider{}, hub, logger)

	srv := httptest.NewServer(NewRouter(logger, h))
	defer srv.Close()

	wsURL := strings.Replace(srv.URL, "http://", "ws://", 1) + "/ws/feed"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	require.Eventually(t, func() bool { return hub.Len() == 1 },
		time.Second, 10*time.Millisecond, "connection must join the hub after upgrade")

	// A broadcast from the hub reaches the connected client as JSON text.
	require.NoError(t, hub.Broadcast(map[string]string{"event": "ping"}))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	messageType, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.TextMessage, messageType)
	assert.JSONEq(t, `{"event":"ping"}`, string(data))

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return hub.Len() == 0 },
		time.Second, 10*time.Millisecond, "connection must leave the hub on disconnect")
}

func TestFeed_PlainHTTPRequestRejected(t *testing.T) {
	router := newTestRouter(t, &fakeHashProvider{}, &fakeUserProvider{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/ws/feed", nil))

	assert.Equal(t, 400, rec.Code, "a non-upgrade request must not hang the route")
}
