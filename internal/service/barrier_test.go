package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Beast-Code9999/squid-game-server/internal/model"
)

func newBarrierFixture(t *testing.T) (*Rooms, *Barrier, *TugRace, *fakeBroadcaster) {
	t.Helper()
	bc := newFakeBroadcaster()
	rooms := NewRooms(20, bc)
	tug := NewTugRace(rooms, bc)
	tug.EndDelay = 2 * time.Millisecond
	barrier := NewBarrier(rooms, bc, tug)
	barrier.AnnounceDelay = 2 * time.Millisecond
	barrier.TugStartDelay = 2 * time.Millisecond
	return rooms, barrier, tug, bc
}

// startedRoom joins the named players and flips the room into round one.
func startedRoom(t *testing.T, rooms *Rooms, ids ...string) *model.Room {
	t.Helper()
	var room *model.Room
	for _, id := range ids {
		room, _ = rooms.JoinOrCreate(id, "")
	}
	room.Lock()
	room.Phase = model.PhaseRoundOne
	room.Unlock()
	return room
}

func counts(ev *sentEvent) model.CompletionCountsPayload {
	return ev.Payload.(model.CompletionCountsPayload)
}

func TestBarrierReportsProgressCounts(t *testing.T) {
	rooms, barrier, _, bc := newBarrierFixture(t)
	room := startedRoom(t, rooms, "a", "b", "c")

	barrier.ReportCompletion(room.ID, "a", model.LevelRLGL)

	wait := bc.last(model.EvtWaitForPlayers)
	require.NotNil(t, wait)
	assert.Equal(t, "player", wait.Scope)
	assert.Equal(t, "a", wait.Target)
	assert.Equal(t, model.CompletionCountsPayload{Completed: 1, Total: 3}, counts(wait))

	update := bc.last(model.EvtRLGLCompletion)
	require.NotNil(t, update)
	assert.Equal(t, "room", update.Scope)
	assert.Equal(t, model.CompletionCountsPayload{Completed: 1, Total: 3}, counts(update))

	assert.Equal(t, model.PhaseRoundOne, roomPhase(room))
}

func TestBarrierIgnoresOtherLevels(t *testing.T) {
	rooms, barrier, _, bc := newBarrierFixture(t)
	room := startedRoom(t, rooms, "a", "b")

	barrier.ReportCompletion(room.ID, "a", "tugofwar")
	assert.Empty(t, bc.byEvent(model.EvtRLGLCompletion))
}

func TestBarrierReleasesOnceWhenAllAliveComplete(t *testing.T) {
	rooms, barrier, _, bc := newBarrierFixture(t)
	room := startedRoom(t, rooms, "a", "b")

	barrier.ReportCompletion(room.ID, "a", model.LevelRLGL)
	barrier.ReportCompletion(room.ID, "b", model.LevelRLGL)

	updates := bc.byEvent(model.EvtRLGLCompletion)
	require.Len(t, updates, 2)
	assert.Equal(t, model.CompletionCountsPayload{Completed: 1, Total: 2}, counts(&updates[0]))
	assert.Equal(t, model.CompletionCountsPayload{Completed: 2, Total: 2}, counts(&updates[1]))

	require.Eventually(t, func() bool {
		return bc.last(model.EvtTugRaceStart) != nil
	}, time.Second, time.Millisecond)

	assert.Len(t, bc.byEvent(model.EvtAllPlayersTug), 1)
	start := bc.last(model.EvtTugRaceStart).Payload.(model.TugRaceStartPayload)
	assert.GreaterOrEqual(t, start.ParagraphIndex, 0)
	assert.Less(t, start.ParagraphIndex, len(Paragraphs))
	assert.Positive(t, start.StartTime)

	// duplicate report after release must not re-trigger the transition
	barrier.ReportCompletion(room.ID, "a", model.LevelRLGL)
	time.Sleep(20 * time.Millisecond)
	assert.Len(t, bc.byEvent(model.EvtAllPlayersTug), 1)
	assert.Len(t, bc.byEvent(model.EvtTugRaceStart), 1)
}

func TestBarrierExcludesEliminatedPlayers(t *testing.T) {
	rooms, barrier, _, bc := newBarrierFixture(t)
	room := startedRoom(t, rooms, "a", "b", "c")

	room.Lock()
	room.Players["c"].Eliminated = true
	room.Unlock()

	barrier.ReportCompletion(room.ID, "a", model.LevelRLGL)
	assert.Equal(t, model.CompletionCountsPayload{Completed: 1, Total: 2}, counts(bc.last(model.EvtRLGLCompletion)))

	barrier.ReportCompletion(room.ID, "b", model.LevelRLGL)
	require.Eventually(t, func() bool {
		return bc.last(model.EvtTugRaceStart) != nil
	}, time.Second, time.Millisecond)
}

func TestBarrierNeverReleasesForSoleSurvivor(t *testing.T) {
	rooms, barrier, _, bc := newBarrierFixture(t)
	room := startedRoom(t, rooms, "a", "b")

	room.Lock()
	room.Players["b"].Eliminated = true
	room.Unlock()

	barrier.ReportCompletion(room.ID, "a", model.LevelRLGL)
	time.Sleep(20 * time.Millisecond)

	assert.Empty(t, bc.byEvent(model.EvtAllPlayersTug))
	assert.Equal(t, model.PhaseRoundOne, roomPhase(room))
}

func TestBarrierSelfHealsAfterStragglerDisconnect(t *testing.T) {
	rooms, barrier, _, bc := newBarrierFixture(t)
	room := startedRoom(t, rooms, "a", "b", "c")

	barrier.ReportCompletion(room.ID, "a", model.LevelRLGL)
	barrier.ReportCompletion(room.ID, "b", model.LevelRLGL)
	assert.Equal(t, model.PhaseRoundOne, roomPhase(room))

	// the straggler drops; the next report recomputes over the smaller set
	rooms.Leave(room.ID, "c")
	barrier.ReportCompletion(room.ID, "a", model.LevelRLGL)

	require.Eventually(t, func() bool {
		return bc.last(model.EvtTugRaceStart) != nil
	}, time.Second, time.Millisecond)
}

func TestBarrierTransitionAbortsWhenRoomDies(t *testing.T) {
	rooms, barrier, _, bc := newBarrierFixture(t)
	barrier.AnnounceDelay = 30 * time.Millisecond
	room := startedRoom(t, rooms, "a", "b")

	barrier.ReportCompletion(room.ID, "a", model.LevelRLGL)
	barrier.ReportCompletion(room.ID, "b", model.LevelRLGL)

	rooms.Leave(room.ID, "a")
	rooms.Leave(room.ID, "b")

	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, bc.byEvent(model.EvtAllPlayersTug))
	assert.Empty(t, bc.byEvent(model.EvtTugRaceStart))
}
