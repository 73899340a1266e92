package ws

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"
)

// Message is the wire envelope in both directions.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Connection is one live client. The send channel is buffered; writers never
// block on it.
type Connection struct {
	ID   string
	Send chan []byte

	roomID string // guarded by the hub mutex
}

// Hub tracks live connections and their room assignment, and fans messages
// out to them. It implements service.Broadcaster. Unlike room state, the hub
// is shared across all rooms, so it carries its own lock.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]*Connection            // connection id -> connection
	rooms map[string]map[string]*Connection // room id -> connection id -> connection
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		conns: make(map[string]*Connection),
		rooms: make(map[string]map[string]*Connection),
	}
}

// Register adds a freshly upgraded connection, before it belongs to a room.
func (h *Hub) Register(conn *Connection) {
	h.mu.Lock()
	h.conns[conn.ID] = conn
	h.mu.Unlock()
	log.Debug().Str("conn", conn.ID).Msg("connection registered")
}

// Unregister drops the connection and its room index entry and closes its
// send channel. Safe to call more than once.
func (h *Hub) Unregister(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	existing, ok := h.conns[conn.ID]
	if !ok || existing != conn {
		return
	}
	delete(h.conns, conn.ID)
	if conn.roomID != "" {
		if members, ok := h.rooms[conn.roomID]; ok {
			delete(members, conn.ID)
			if len(members) == 0 {
				delete(h.rooms, conn.roomID)
			}
		}
	}
	close(conn.Send)
	log.Debug().Str("conn", conn.ID).Msg("connection unregistered")
}

// JoinRoom indexes the connection under the room (implements
// service.Broadcaster).
func (h *Hub) JoinRoom(roomID, playerID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conn, ok := h.conns[playerID]
	if !ok {
		return
	}
	conn.roomID = roomID
	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[string]*Connection)
	}
	h.rooms[roomID][playerID] = conn
}

// LeaveRoom removes the connection from the room index but keeps the
// connection itself alive.
func (h *Hub) LeaveRoom(roomID, playerID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if members, ok := h.rooms[roomID]; ok {
		delete(members, playerID)
		if len(members) == 0 {
			delete(h.rooms, roomID)
		}
	}
	if conn, ok := h.conns[playerID]; ok && conn.roomID == roomID {
		conn.roomID = ""
	}
}

// ToRoom sends an event to every member of the room.
func (h *Hub) ToRoom(roomID, event string, payload interface{}) {
	data := encode(event, payload)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, conn := range h.rooms[roomID] {
		conn.push(data)
	}
}

// ToPlayer sends an event to one member of the room.
func (h *Hub) ToPlayer(roomID, playerID, event string, payload interface{}) {
	data := encode(event, payload)
	h.mu.RLock()
	defer h.mu.RUnlock()
	if conn, ok := h.rooms[roomID][playerID]; ok {
		conn.push(data)
	}
}

// ToRoomExcept sends an event to every room member but one, the socket.io
// "broadcast to others" shape the protocol leans on.
func (h *Hub) ToRoomExcept(roomID, exceptID, event string, payload interface{}) {
	data := encode(event, payload)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, conn := range h.rooms[roomID] {
		if id == exceptID {
			continue
		}
		conn.push(data)
	}
}

// push queues data without blocking; a full buffer drops the message rather
// than stalling a room broadcast on one slow client.
func (c *Connection) push(data []byte) {
	select {
	case c.Send <- data:
	default:
	}
}

func encode(event string, payload interface{}) []byte {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("marshal payload")
		body = []byte("{}")
	}
	data, _ := json.Marshal(&Message{Type: event, Payload: body})
	return data
}
