package kds

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/Xfhreall/armaso-pos/models"
	"github.com/Xfhreall/armaso-pos/utils"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Event types
const (
	EventOrderCreated       = "order_created"
	EventOrderStatusChanged = "order_status_changed"
)

const writeWait = 5 * time.Second

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// StatusChange is the payload of EventOrderStatusChanged.
type StatusChange struct {
	OrderIDs []uint             `json:"order_ids"`
	Status   models.OrderStatus `json:"status"`
}

// Hub holds the kitchen screens connected over websocket. Messages are hints to
// refresh; screens still poll the kitchen queue.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> username
	mutex   sync.Mutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]string)}
}

func (h *Hub) Register(conn *websocket.Conn, username string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.clients[conn] = username
}

// Unregister drops the connection and closes it.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
}

// Clients returns the number of connected screens.
func (h *Hub) Clients() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

func (h *Hub) OrderCreated(order models.Order) {
	h.Broadcast(Message{Event: EventOrderCreated, Data: order})
}

func (h *Hub) OrderStatusChanged(ids []uint, status models.OrderStatus) {
	h.Broadcast(Message{Event: EventOrderStatusChanged, Data: StatusChange{OrderIDs: ids, Status: status}})
}

// Broadcast sends msg to every client. A client that cannot be written to is dropped.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.WithError(err).Error("error marshaling kitchen message")
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	for conn, username := range h.clients {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.InfoLogger.WithFields(logrus.Fields{
				"username": username,
				"event":    msg.Event,
			}).WithError(err).Warn("dropping kitchen client")
			delete(h.clients, conn)
			conn.Close()
		}
	}
}
