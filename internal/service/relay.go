package service

import (
	"encoding/json"

	"github.com/Beast-Code9999/squid-game-server/internal/model"
)

// Relay fans player-authored round-one events out to the rest of the room.
// Nothing is validated: position, rotation, and elimination are trusted
// client reports, and the worst a bad client can do is corrupt its own
// record.
type Relay struct {
	rooms *Rooms
	bc    Broadcaster
}

// NewRelay wires the event relay.
func NewRelay(rooms *Rooms, bc Broadcaster) *Relay {
	return &Relay{rooms: rooms, bc: bc}
}

// Move stores the latest position/rotation (last write wins, no sequence
// numbers) and forwards it to everyone else in the room.
func (s *Relay) Move(roomID, playerID string, pos, rot model.Vec3) {
	room := s.rooms.Get(roomID)
	if room == nil {
		return
	}

	room.Lock()
	defer room.Unlock()

	player := room.Players[playerID]
	if player == nil {
		return
	}
	player.Position = pos
	player.Rotation = rot
	s.bc.ToRoomExcept(roomID, playerID, model.EvtPlayerMoved, model.PlayerMovedPayload{
		ID:       playerID,
		Position: pos,
		Rotation: rot,
	})
}

// Eliminate marks the player eliminated and notifies the rest of the room.
// Idempotent: repeated reports change nothing.
func (s *Relay) Eliminate(roomID, playerID string) {
	room := s.rooms.Get(roomID)
	if room == nil {
		return
	}

	room.Lock()
	defer room.Unlock()

	player := room.Players[playerID]
	if player == nil {
		return
	}
	player.Eliminated = true
	s.bc.ToRoomExcept(roomID, playerID, model.EvtPlayerEliminated, model.PlayerIDPayload{ID: playerID})
}

// GameState forwards an opaque state blob to the rest of the room verbatim.
func (s *Relay) GameState(roomID, playerID string, state json.RawMessage) {
	room := s.rooms.Get(roomID)
	if room == nil {
		return
	}
	s.bc.ToRoomExcept(roomID, playerID, model.EvtGameStateUpdate, state)
}
