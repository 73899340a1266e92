package service

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Beast-Code9999/squid-game-server/internal/model"
)

// Rooms is the room directory: it finds or creates rooms for joining players,
// removes players on disconnect, and garbage-collects empty rooms. It owns
// the only mapping from room id to room; nothing else holds long-lived room
// references.
type Rooms struct {
	mu       sync.Mutex
	rooms    map[string]*model.Room
	capacity int
	bc       Broadcaster
}

// NewRooms creates an empty directory. capacity <= 0 falls back to the
// default room size.
func NewRooms(capacity int, bc Broadcaster) *Rooms {
	if capacity <= 0 {
		capacity = model.DefaultCapacity
	}
	return &Rooms{
		rooms:    make(map[string]*model.Room),
		capacity: capacity,
		bc:       bc,
	}
}

// Get returns the room with the given id, or nil.
func (s *Rooms) Get(id string) *model.Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rooms[id]
}

// Count returns the number of live rooms.
func (s *Rooms) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rooms)
}

// JoinOrCreate places a new player into the first room that has not started
// and has spare capacity, creating a fresh room when none qualifies. The
// joining player receives the full roster; existing occupants get a join
// notification.
func (s *Rooms) JoinOrCreate(playerID, name string) (*model.Room, *model.Player) {
	if name == "" {
		short := playerID
		if len(short) > 4 {
			short = short[:4]
		}
		name = "Player " + short
	}

	player := model.NewPlayer(playerID, name)

	// The chosen room stays locked from the Joinable check through the
	// insert, under the directory lock. Releasing either in between would
	// let a concurrent join overfill the room, or let the countdown hit
	// zero and start the round with this player's admission still pending.
	s.mu.Lock()
	var room *model.Room
	for _, r := range s.rooms {
		r.Lock()
		if r.Joinable() {
			room = r
			break
		}
		r.Unlock()
	}
	if room == nil {
		room = model.NewRoom("room-"+newRoomCode(), s.capacity)
		s.rooms[room.ID] = room
		room.Lock()
		log.Info().Str("room", room.ID).Msg("room created")
	}

	room.Players[playerID] = player
	// Broadcasts also stay under the room lock: the hub marshals payloads in
	// the calling goroutine, so roster pointers must not be mutated
	// mid-marshal.
	s.bc.JoinRoom(room.ID, playerID)
	s.bc.ToPlayer(room.ID, playerID, model.EvtJoinedRoom, model.JoinedRoomPayload{
		RoomID:   room.ID,
		PlayerID: playerID,
		Players:  room.Roster(),
	})
	s.bc.ToRoomExcept(room.ID, playerID, model.EvtPlayerJoined, model.PlayerJoinedPayload{
		ID:       playerID,
		Name:     name,
		Position: player.Position,
	})
	room.Unlock()
	s.mu.Unlock()

	log.Info().Str("room", room.ID).Str("player", playerID).Str("name", name).Msg("player joined")
	return room, player
}

// Leave removes the player from its room and deletes the room when it
// empties. Pending room timers are cancelled on deletion so no scheduled
// callback fires against a dead room. No-op for unknown rooms or players.
func (s *Rooms) Leave(roomID, playerID string) {
	s.mu.Lock()
	room := s.rooms[roomID]
	if room == nil {
		s.mu.Unlock()
		return
	}

	room.Lock()
	if _, ok := room.Players[playerID]; !ok {
		room.Unlock()
		s.mu.Unlock()
		return
	}
	delete(room.Players, playerID)
	empty := len(room.Players) == 0
	if empty {
		room.StopTimers()
		delete(s.rooms, roomID)
	}
	s.bc.LeaveRoom(roomID, playerID)
	if !empty {
		s.bc.ToRoom(roomID, model.EvtPlayerLeft, model.PlayerIDPayload{ID: playerID})
	}
	room.Unlock()
	s.mu.Unlock()

	if empty {
		log.Info().Str("room", roomID).Msg("room deleted")
		return
	}
	log.Info().Str("room", roomID).Str("player", playerID).Msg("player left")
}

// newRoomCode returns a short random identifier (no uniqueness check; the
// keyspace is large enough for a single process).
func newRoomCode() string {
	const chars = "abcdefghjkmnpqrstuvwxyz23456789"
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on supported platforms
		return time.Now().Format("150405.000")
	}
	for i := range b {
		b[i] = chars[int(b[i])%len(chars)]
	}
	return string(b)
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}
