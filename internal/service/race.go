package service

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Beast-Code9999/squid-game-server/internal/model"
)

// DefaultRaceEndDelay is the grace period between the first finisher and the
// final scoring, so losing clients can watch the finish animation before
// elimination lands.
const DefaultRaceEndDelay = 5 * time.Second

// TugRace runs round two: it distributes the shared paragraph index, tracks
// the second ready-up, relays typing progress, and scores the race. The race
// ends at the first finisher; everyone else is eliminated. Later finishers
// still get a place in the completion list, but it decides nothing.
type TugRace struct {
	rooms *Rooms
	bc    Broadcaster

	// EndDelay is the first-finish grace period; tests shrink it.
	EndDelay time.Duration
}

// NewTugRace wires the typing race coordinator.
func NewTugRace(rooms *Rooms, bc Broadcaster) *TugRace {
	return &TugRace{rooms: rooms, bc: bc, EndDelay: DefaultRaceEndDelay}
}

// begin creates the race record, picks the paragraph, clears the round-two
// ready flags, and announces the start. Caller holds the room lock.
func (s *TugRace) begin(room *model.Room) {
	for _, p := range room.Players {
		p.SecondRoundReady = false
	}
	race := model.NewRace(randomParagraphIndex(), nowMillis())
	room.Race = race
	room.Phase = model.PhaseRoundTwoLobby
	s.bc.ToRoom(room.ID, model.EvtTugRaceStart, model.TugRaceStartPayload{
		ParagraphIndex: race.ParagraphIndex,
		StartTime:      race.StartedAt,
	})
	log.Info().Str("room", room.ID).Int("paragraph", race.ParagraphIndex).Msg("tug race started")
}

// SetReady toggles the round-two ready flag and broadcasts ready counts over
// the alive set. Once every alive player is ready the room flips active and
// the go signal is broadcast, once per race; the signal is advisory, clients
// gate their local input on it but the server does not enforce it.
func (s *TugRace) SetReady(roomID, playerID string, ready bool) {
	room := s.rooms.Get(roomID)
	if room == nil {
		return
	}

	room.Lock()
	defer room.Unlock()

	if room.Race == nil {
		return
	}
	player := room.Players[playerID]
	if player == nil {
		return
	}
	player.SecondRoundReady = ready

	alive := room.Alive()
	readyCount := 0
	for _, p := range alive {
		if p.SecondRoundReady {
			readyCount++
		}
	}
	s.bc.ToRoom(roomID, model.EvtTugReadyUpdate, model.TugReadyUpdatePayload{
		Ready: readyCount,
		Total: len(alive),
	})

	if readyCount >= len(alive) && room.Phase == model.PhaseRoundTwoLobby {
		room.Phase = model.PhaseRoundTwoActive
		s.bc.ToRoom(roomID, model.EvtTugTypingStart, struct{}{})
	}
}

// ReportProgress upserts the player's self-reported typing state and relays
// it to the rest of the room untouched.
func (s *TugRace) ReportProgress(roomID, playerID string, p model.TypingProgressPayload) {
	room := s.rooms.Get(roomID)
	if room == nil {
		return
	}

	room.Lock()
	defer room.Unlock()

	if room.Race == nil {
		return
	}
	if _, ok := room.Players[playerID]; !ok {
		return
	}
	room.Race.Progress[playerID] = &model.RaceProgress{
		WordIndex:  p.WordIndex,
		Percentage: p.Percentage,
		WPM:        p.WPM,
	}
	s.bc.ToRoomExcept(roomID, playerID, model.EvtRaceProgress, model.RaceProgressPayload{
		PlayerID:   playerID,
		WordIndex:  p.WordIndex,
		Percentage: p.Percentage,
		WPM:        p.WPM,
	})
}

// ReportCompletion appends a finisher in server-processing order, which is
// the authoritative tiebreak for simultaneous finishes. Duplicate reports do
// not score twice. The first completion, and only the first, schedules the
// race end.
func (s *TugRace) ReportCompletion(roomID, playerID string, p model.TypingCompletePayload) {
	room := s.rooms.Get(roomID)
	if room == nil {
		return
	}

	room.Lock()
	defer room.Unlock()

	race := room.Race
	if race == nil {
		return
	}
	player := room.Players[playerID]
	if player == nil {
		return
	}
	if race.HasCompletion(playerID) {
		return
	}

	c := race.AddCompletion(playerID, player.Name, p.Time, p.WPM, nowMillis())
	s.bc.ToRoom(roomID, model.EvtPlayerFinished, c)
	log.Info().Str("room", roomID).Str("player", playerID).Int("place", c.Place).Msg("typing finished")

	if len(race.Completions) == 1 {
		room.Schedule(s.EndDelay, func() {
			if s.rooms.Get(roomID) != room {
				return
			}
			room.Lock()
			defer room.Unlock()
			s.end(room)
		})
	}
}

// end scores the race: the first finisher wins, everyone else in the room is
// eliminated, and results go out to all. The race record is cleared
// afterwards. No-op when the race is gone or empty; the scheduled callback
// can outlive a reset.
func (s *TugRace) end(room *model.Room) {
	race := room.Race
	if race == nil || len(race.Completions) == 0 {
		log.Debug().Str("room", room.ID).Msg("race end with nothing to score")
		return
	}

	// The winner may have disconnected during the grace window; the record
	// still names them, and everyone left in the room is eliminated.
	winner := race.Completions[0]
	eliminated := 0
	for id, p := range room.Players {
		if id != winner.PlayerID {
			p.Eliminated = true
			eliminated++
		}
	}

	s.bc.ToRoom(room.ID, model.EvtTugRaceEnd, model.TugRaceEndPayload{
		Winner:          winner,
		Results:         race.Completions,
		EliminatedCount: eliminated,
	})

	room.Race = nil
	room.Phase = model.PhaseFinished
	log.Info().Str("room", room.ID).Str("winner", winner.PlayerID).Msg("tug race ended")
}
