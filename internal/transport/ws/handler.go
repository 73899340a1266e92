package ws

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/Beast-Code9999/squid-game-server/internal/model"
	"github.com/Beast-Code9999/squid-game-server/internal/service"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // game clients connect from anywhere
	},
}

// Handler upgrades websocket connections and dispatches inbound events to the
// coordination services.
type Handler struct {
	hub     *Hub
	rooms   *service.Rooms
	lobby   *service.Lobby
	relay   *service.Relay
	barrier *service.Barrier
	tug     *service.TugRace

	routes map[string]func(*session, json.RawMessage)
}

// session is the per-connection dispatch state. roomID is owned by the read
// goroutine; it is set once on join and read on every later event.
type session struct {
	conn   *Connection
	roomID string
}

// NewHandler builds the handler and its event dispatch table.
func NewHandler(hub *Hub, rooms *service.Rooms, lobby *service.Lobby, relay *service.Relay, barrier *service.Barrier, tug *service.TugRace) *Handler {
	h := &Handler{
		hub:     hub,
		rooms:   rooms,
		lobby:   lobby,
		relay:   relay,
		barrier: barrier,
		tug:     tug,
	}
	h.routes = map[string]func(*session, json.RawMessage){
		model.EvtJoinGame:       h.onJoin,
		model.EvtPlayerReady:    h.onReady(true),
		model.EvtPlayerNotReady: h.onReady(false),
		model.EvtPlayerMove:     h.onMove,
		model.EvtPlayerElim:     h.onEliminated,
		model.EvtGameState:      h.onGameState,
		model.EvtLevelComplete:  h.onLevelComplete,
		model.EvtTypingProgress: h.onTypingProgress,
		model.EvtTypingComplete: h.onTypingComplete,
		model.EvtTugReady:       h.onTugReady(true),
		model.EvtTugNotReady:    h.onTugReady(false),
	}
	return h
}

// ServeWS handles GET /ws.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade")
		return
	}

	conn := &Connection{
		ID:   uuid.NewString(),
		Send: make(chan []byte, sendBufferSize),
	}
	h.hub.Register(conn)
	log.Info().Str("player", conn.ID).Msg("player connected")

	go h.writePump(wsConn, conn)
	h.readPump(wsConn, conn)
}

func (h *Handler) readPump(wsConn *websocket.Conn, conn *Connection) {
	s := &session{conn: conn}
	defer func() {
		h.hub.Unregister(conn)
		if s.roomID != "" {
			h.rooms.Leave(s.roomID, conn.ID)
		}
		wsConn.Close()
		log.Info().Str("player", conn.ID).Msg("player disconnected")
	}()

	wsConn.SetReadLimit(maxMessageSize)
	wsConn.SetReadDeadline(time.Now().Add(pongWait))
	wsConn.SetPongHandler(func(string) error {
		wsConn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := wsConn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Debug().Err(err).Str("player", conn.ID).Msg("websocket read")
			}
			return
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			// malformed input is ignored, not answered
			continue
		}
		if route, ok := h.routes[msg.Type]; ok {
			route(s, msg.Payload)
		}
	}
}

func (h *Handler) writePump(wsConn *websocket.Conn, conn *Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		wsConn.Close()
	}()

	for {
		select {
		case data, ok := <-conn.Send:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				wsConn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := wsConn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wsConn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Event handlers. Every one of them tolerates missing rooms, unknown players,
// and wrong-phase messages by doing nothing; the protocol has no error
// responses.

func (h *Handler) onJoin(s *session, payload json.RawMessage) {
	if s.roomID != "" {
		return // already in a room; players never move between rooms
	}
	var p model.JoinGamePayload
	if len(payload) > 0 {
		_ = json.Unmarshal(payload, &p)
	}
	room, _ := h.rooms.JoinOrCreate(s.conn.ID, p.Name)
	s.roomID = room.ID
}

func (h *Handler) onReady(ready bool) func(*session, json.RawMessage) {
	return func(s *session, _ json.RawMessage) {
		if s.roomID == "" {
			return
		}
		h.lobby.SetReady(s.roomID, s.conn.ID, ready)
	}
}

func (h *Handler) onMove(s *session, payload json.RawMessage) {
	if s.roomID == "" {
		return
	}
	var p model.MovePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return
	}
	h.relay.Move(s.roomID, s.conn.ID, p.Position, p.Rotation)
}

func (h *Handler) onEliminated(s *session, _ json.RawMessage) {
	if s.roomID == "" {
		return
	}
	h.relay.Eliminate(s.roomID, s.conn.ID)
}

func (h *Handler) onGameState(s *session, payload json.RawMessage) {
	if s.roomID == "" {
		return
	}
	h.relay.GameState(s.roomID, s.conn.ID, payload)
}

func (h *Handler) onLevelComplete(s *session, payload json.RawMessage) {
	if s.roomID == "" {
		return
	}
	var p model.LevelCompletePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return
	}
	h.barrier.ReportCompletion(s.roomID, s.conn.ID, p.Level)
}

func (h *Handler) onTypingProgress(s *session, payload json.RawMessage) {
	if s.roomID == "" {
		return
	}
	var p model.TypingProgressPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return
	}
	h.tug.ReportProgress(s.roomID, s.conn.ID, p)
}

func (h *Handler) onTypingComplete(s *session, payload json.RawMessage) {
	if s.roomID == "" {
		return
	}
	var p model.TypingCompletePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return
	}
	h.tug.ReportCompletion(s.roomID, s.conn.ID, p)
}

func (h *Handler) onTugReady(ready bool) func(*session, json.RawMessage) {
	return func(s *session, _ json.RawMessage) {
		if s.roomID == "" {
			return
		}
		h.tug.SetReady(s.roomID, s.conn.ID, ready)
	}
}
