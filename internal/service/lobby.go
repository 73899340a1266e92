package service

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Beast-Code9999/squid-game-server/internal/model"
)

// DefaultCountdownTick is the cadence of the pre-game countdown.
const DefaultCountdownTick = time.Second

// countdownFrom is the first countdown value; ticks run 3, 2, 1, 0.
const countdownFrom = 3

// Lobby runs the ready-up barrier and the countdown into round one.
type Lobby struct {
	rooms *Rooms
	bc    Broadcaster

	// Tick is the countdown cadence; tests shrink it.
	Tick time.Duration
}

// NewLobby wires the lobby coordinator.
func NewLobby(rooms *Rooms, bc Broadcaster) *Lobby {
	return &Lobby{rooms: rooms, bc: bc, Tick: DefaultCountdownTick}
}

// SetReady toggles the player's ready flag and broadcasts the new counts.
// Ignored once the first round has started. When the change leaves every
// player ready, there are at least two of them, and no countdown is already
// running, the countdown begins. Un-readying during a running countdown does
// not cancel it.
func (s *Lobby) SetReady(roomID, playerID string, ready bool) {
	room := s.rooms.Get(roomID)
	if room == nil {
		return
	}

	room.Lock()
	defer room.Unlock()

	if room.Started() {
		return
	}
	player := room.Players[playerID]
	if player == nil {
		return
	}

	player.Ready = ready
	s.bc.ToRoom(roomID, model.EvtReadyUpdate, model.ReadyUpdatePayload{
		ID:           playerID,
		Ready:        ready,
		TotalReady:   room.ReadyCount(),
		TotalPlayers: len(room.Players),
	})

	if ready && room.Phase == model.PhaseLobby && room.AllReady() && len(room.Players) >= 2 {
		s.startCountdown(room)
	}
}

// startCountdown moves the room into the countdown phase and schedules the
// first tick. Caller holds the room lock.
func (s *Lobby) startCountdown(room *model.Room) {
	room.Phase = model.PhaseCountdown
	log.Info().Str("room", room.ID).Msg("countdown started")
	s.scheduleTick(room, countdownFrom)
}

func (s *Lobby) scheduleTick(room *model.Room, count int) {
	room.Schedule(s.Tick, func() {
		s.tick(room.ID, room, count)
	})
}

// tick emits one countdown value. On zero it starts the round: records the
// synchronized start timestamp, broadcasts it, and resets every ready flag so
// the flag can be reused for the round-two ready-up. The callback re-checks
// directory and phase state because the room may have been torn down while
// the timer was pending.
func (s *Lobby) tick(roomID string, room *model.Room, count int) {
	if s.rooms.Get(roomID) != room {
		return
	}

	room.Lock()
	defer room.Unlock()

	if room.Phase != model.PhaseCountdown {
		return
	}

	s.bc.ToRoom(roomID, model.EvtCountdown, model.CountdownPayload{Count: count})
	if count > 0 {
		s.scheduleTick(room, count-1)
		return
	}

	room.Phase = model.PhaseRoundOne
	room.FirstRoundStart = nowMillis()
	s.bc.ToRoom(roomID, model.EvtGameStart, model.GameStartPayload{StartTime: room.FirstRoundStart})
	for _, p := range room.Players {
		p.Ready = false
	}
	log.Info().Str("room", roomID).Int64("startTime", room.FirstRoundStart).Msg("round one started")
}
