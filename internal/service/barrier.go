package service

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Beast-Code9999/squid-game-server/internal/model"
)

// Default transition delays between the first round and the typing race.
// They give clients room to play transition animations before the shared
// paragraph arrives.
const (
	DefaultAnnounceDelay = 2 * time.Second
	DefaultTugStartDelay = 3 * time.Second
)

// Barrier tracks which surviving players have finished round one and
// releases the whole room into round two once every one of them has.
type Barrier struct {
	rooms *Rooms
	bc    Broadcaster
	tug   *TugRace

	// AnnounceDelay is the wait before the proceed-to-round-two signal;
	// TugStartDelay is the further wait before the race itself begins.
	AnnounceDelay time.Duration
	TugStartDelay time.Duration
}

// NewBarrier wires the completion barrier.
func NewBarrier(rooms *Rooms, bc Broadcaster, tug *TugRace) *Barrier {
	return &Barrier{
		rooms:         rooms,
		bc:            bc,
		tug:           tug,
		AnnounceDelay: DefaultAnnounceDelay,
		TugStartDelay: DefaultTugStartDelay,
	}
}

// ReportCompletion records that the player finished the named level. The
// reporter gets a private waiting acknowledgement; the whole room gets the
// same counts as a progress update. When every alive player has finished and
// at least two are alive, the room transitions toward round two exactly once.
//
// A room whose alive set shrinks below two before the last report never
// releases; that stall is existing behavior, not handled here.
func (s *Barrier) ReportCompletion(roomID, playerID, level string) {
	if level != model.LevelRLGL {
		return
	}
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
	player.CompletedFirstRound = true

	alive := room.Alive()
	completed := 0
	for _, p := range alive {
		if p.CompletedFirstRound {
			completed++
		}
	}

	counts := model.CompletionCountsPayload{Completed: completed, Total: len(alive)}
	s.bc.ToPlayer(roomID, playerID, model.EvtWaitForPlayers, counts)
	s.bc.ToRoom(roomID, model.EvtRLGLCompletion, counts)

	if completed >= len(alive) && len(alive) >= 2 && room.Phase == model.PhaseRoundOne {
		s.release(room)
	}
}

// release moves the room into the barrier-wait phase and schedules the
// two-step transition into the typing race. Caller holds the room lock; the
// phase change guards against a double trigger from concurrent reports.
func (s *Barrier) release(room *model.Room) {
	room.Phase = model.PhaseBarrierWait
	log.Info().Str("room", room.ID).Msg("rlgl barrier released")

	roomID := room.ID
	room.Schedule(s.AnnounceDelay, func() {
		if s.rooms.Get(roomID) != room {
			return
		}
		room.Lock()
		defer room.Unlock()
		if room.Phase != model.PhaseBarrierWait {
			return
		}
		s.bc.ToRoom(roomID, model.EvtAllPlayersTug, struct{}{})
		room.Schedule(s.TugStartDelay, func() {
			if s.rooms.Get(roomID) != room {
				return
			}
			room.Lock()
			defer room.Unlock()
			if room.Phase != model.PhaseBarrierWait {
				return
			}
			s.tug.begin(room)
		})
	})
}
