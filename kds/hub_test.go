package kds

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Xfhreall/armaso-pos/models"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHubServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Register(conn, "dapur")
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
		hub.Unregister(conn)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.Clients() == n }, 2*time.Second, 10*time.Millisecond)
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestHubBroadcastsOrderEvents(t *testing.T) {
	hub := NewHub()
	srv := newHubServer(t, hub)
	a := dial(t, srv)
	b := dial(t, srv)
	waitForClients(t, hub, 2)

	hub.OrderCreated(models.Order{ID: 42, CustomerName: "Budi"})
	for _, conn := range []*websocket.Conn{a, b} {
		msg := readMessage(t, conn)
		assert.Equal(t, EventOrderCreated, msg.Event)
		data := msg.Data.(map[string]interface{})
		assert.Equal(t, float64(42), data["id"])
	}

	hub.OrderStatusChanged([]uint{42, 43}, models.OrderStatusServed)
	msg := readMessage(t, a)
	assert.Equal(t, EventOrderStatusChanged, msg.Event)
	data := msg.Data.(map[string]interface{})
	assert.Equal(t, "SERVED", data["status"])
	assert.Equal(t, []interface{}{float64(42), float64(43)}, data["order_ids"])
}

func TestHubUnregistersClosedClients(t *testing.T) {
	hub := NewHub()
	srv := newHubServer(t, hub)
	conn := dial(t, srv)
	waitForClients(t, hub, 1)

	require.NoError(t, conn.Close())
	waitForClients(t, hub, 0)

	// nobody listening is fine
	hub.OrderCreated(models.Order{ID: 1})
}
