package service

// Broadcaster is the fan-out seam between game logic and the websocket hub
// (avoids an import cycle and keeps the coordination logic testable without a
// live transport). Implementations must not block; sends to slow clients are
// dropped, never waited on.
type Broadcaster interface {
	// JoinRoom and LeaveRoom maintain the hub's room index so the fan-out
	// calls below know who is where.
	JoinRoom(roomID, playerID string)
	LeaveRoom(roomID, playerID string)

	ToRoom(roomID, event string, payload interface{})
	ToPlayer(roomID, playerID, event string, payload interface{})
	ToRoomExcept(roomID, exceptID, event string, payload interface{})
}
