package model

import (
	"sync"
	"time"
)

// RoomPhase is the explicit lifecycle state of a room. Phase transitions only
// move forward; handlers that arrive in the wrong phase are silent no-ops.
type RoomPhase string

const (
	PhaseLobby          RoomPhase = "lobby"
	PhaseCountdown      RoomPhase = "countdown"
	PhaseRoundOne       RoomPhase = "round_one"
	PhaseBarrierWait    RoomPhase = "barrier_wait"
	PhaseRoundTwoLobby  RoomPhase = "round_two_lobby"
	PhaseRoundTwoActive RoomPhase = "round_two_active"
	PhaseFinished       RoomPhase = "finished"
)

// DefaultCapacity is the per-room player cap.
const DefaultCapacity = 20

// Room is an isolated game session. All mutation happens under the room lock,
// so handlers for the same room are serialized; rooms share no state with
// each other.
type Room struct {
	ID       string
	Capacity int
	Players  map[string]*Player
	Phase    RoomPhase

	// FirstRoundStart is epoch milliseconds of the synchronized game-start,
	// zero until the countdown finishes. Clients compute round-relative time
	// from this value, never from local receipt time.
	FirstRoundStart int64

	// Race is present only while round two is in flight.
	Race *Race

	mu     sync.Mutex
	timers []*time.Timer
}

// NewRoom returns an empty lobby-phase room.
func NewRoom(id string, capacity int) *Room {
	return &Room{
		ID:       id,
		Capacity: capacity,
		Players:  make(map[string]*Player),
		Phase:    PhaseLobby,
	}
}

func (r *Room) Lock()   { r.mu.Lock() }
func (r *Room) Unlock() { r.mu.Unlock() }

// All helpers below assume the caller holds the room lock.

// Joinable reports whether the room can accept another player. Rooms stay
// open through the countdown; they close the moment round one starts.
func (r *Room) Joinable() bool {
	if r.Phase != PhaseLobby && r.Phase != PhaseCountdown {
		return false
	}
	return len(r.Players) < r.Capacity
}

// Started reports whether the first round is in progress or done.
func (r *Room) Started() bool {
	return r.Phase != PhaseLobby && r.Phase != PhaseCountdown
}

// Roster returns the players in no particular order.
func (r *Room) Roster() []*Player {
	players := make([]*Player, 0, len(r.Players))
	for _, p := range r.Players {
		players = append(players, p)
	}
	return players
}

// Alive returns the players not yet eliminated.
func (r *Room) Alive() []*Player {
	alive := make([]*Player, 0, len(r.Players))
	for _, p := range r.Players {
		if !p.Eliminated {
			alive = append(alive, p)
		}
	}
	return alive
}

// ReadyCount counts players with the ready flag set.
func (r *Room) ReadyCount() int {
	n := 0
	for _, p := range r.Players {
		if p.Ready {
			n++
		}
	}
	return n
}

// AllReady reports whether every player in the room is ready.
func (r *Room) AllReady() bool {
	for _, p := range r.Players {
		if !p.Ready {
			return false
		}
	}
	return true
}

// Schedule runs fn after d on its own goroutine and tracks the timer so room
// teardown can cancel it. Callbacks must re-validate room and phase state
// before acting; the wait may have outlived both.
func (r *Room) Schedule(d time.Duration, fn func()) *time.Timer {
	t := time.AfterFunc(d, fn)
	r.timers = append(r.timers, t)
	return t
}

// StopTimers cancels every pending scheduled callback. Called when the last
// player leaves and the room is torn down.
func (r *Room) StopTimers() {
	for _, t := range r.timers {
		t.Stop()
	}
	r.timers = nil
}
