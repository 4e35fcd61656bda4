package websocket

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-device/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-device/internal/usecase"
)

func newTestServer(t *testing.T) (*httptest.Server, *tictactoe.Session) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	session := tictactoe.NewSession(nil)
	server := New(logger, usecase.NewGameManager(logger, session, nil))

	ctx, cancel := context.WithCancel(context.Background())
	ts := httptest.NewServer(server.Handler(ctx))
	t.Cleanup(func() {
		cancel()
		ts.Close()
	})

	return ts, session
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

func exchange(t *testing.T, conn *websocket.Conn, request string) string {
	t.Helper()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(request)))

	messageType, response, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, websocket.TextMessage, messageType)

	return string(response)
}

func TestServer_Exchange(t *testing.T) {
	// Given: a connected websocket client
	ts, _ := newTestServer(t)
	conn := dial(t, ts)

	// When / Then: each text message is answered with one text message
	assert.Equal(t, "*********\n", exchange(t, conn, "01\n"))
	assert.Equal(t, "OK\n", exchange(t, conn, "00 O\n"))
	assert.Equal(t, "OOT\n", exchange(t, conn, "02 0 0\n"))
	assert.Equal(t, "OK\n", exchange(t, conn, "03\n"))
	assert.Equal(t, "ILLMOVE\n", exchange(t, conn, "02 0 0\n"))
	assert.Equal(t, "X********\n", exchange(t, conn, "01\n"))
}

func TestServer_SharedSession(t *testing.T) {
	ts, session := newTestServer(t)
	first := dial(t, ts)
	second := dial(t, ts)

	assert.Equal(t, "OK\n", exchange(t, first, "00 X\n"))
	assert.Equal(t, "OK\n", exchange(t, second, "02 2 0\n"))

	assert.Equal(t, "**X******\n", exchange(t, first, "01\n"))
	assert.True(t, session.Active())
}

func TestServer_BinaryFrames(t *testing.T) {
	ts, _ := newTestServer(t)
	conn := dial(t, ts)

	// When: a request arrives as a binary frame
	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte("00 X\n")))

	// Then: it is answered in a binary frame
	messageType, response, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.BinaryMessage, messageType)
	assert.Equal(t, "OK\n", string(response))

	assert.Equal(t, "*********\n", exchange(t, conn, "01\n"))
}

func TestServer_OversizedMessageClosesConnection(t *testing.T) {
	ts, _ := newTestServer(t)
	conn := dial(t, ts)

	// When: a message over the read limit is sent
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(strings.Repeat("0", MaxMessageSize+1))))

	// Then: the server closes the connection instead of answering
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}
