package service

import (
	"sync"

	"github.com/Beast-Code9999/squid-game-server/internal/model"
)

// fakeBroadcaster records every fan-out call so tests can assert on the
// outbound event stream without a live hub.
type fakeBroadcaster struct {
	mu     sync.Mutex
	events []sentEvent
}

type sentEvent struct {
	Scope   string // "room", "player", "except"
	RoomID  string
	Target  string // player id for "player", excluded id for "except"
	Event   string
	Payload interface{}
}

func newFakeBroadcaster() *fakeBroadcaster {
	return &fakeBroadcaster{}
}

func (f *fakeBroadcaster) JoinRoom(roomID, playerID string)  {}
func (f *fakeBroadcaster) LeaveRoom(roomID, playerID string) {}

func (f *fakeBroadcaster) ToRoom(roomID, event string, payload interface{}) {
	f.record(sentEvent{Scope: "room", RoomID: roomID, Event: event, Payload: payload})
}

func (f *fakeBroadcaster) ToPlayer(roomID, playerID, event string, payload interface{}) {
	f.record(sentEvent{Scope: "player", RoomID: roomID, Target: playerID, Event: event, Payload: payload})
}

func (f *fakeBroadcaster) ToRoomExcept(roomID, exceptID, event string, payload interface{}) {
	f.record(sentEvent{Scope: "except", RoomID: roomID, Target: exceptID, Event: event, Payload: payload})
}

func (f *fakeBroadcaster) record(ev sentEvent) {
	f.mu.Lock()
	f.events = append(f.events, ev)
	f.mu.Unlock()
}

// byEvent returns all recorded events with the given name, in send order.
func (f *fakeBroadcaster) byEvent(event string) []sentEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []sentEvent
	for _, ev := range f.events {
		if ev.Event == event {
			out = append(out, ev)
		}
	}
	return out
}

// last returns the most recent event with the given name, or nil.
func (f *fakeBroadcaster) last(event string) *sentEvent {
	evs := f.byEvent(event)
	if len(evs) == 0 {
		return nil
	}
	return &evs[len(evs)-1]
}

var _ Broadcaster = (*fakeBroadcaster)(nil)

// readyUpdate pulls the typed payload out of a recorded ready update.
func readyUpdate(ev *sentEvent) model.ReadyUpdatePayload {
	return ev.Payload.(model.ReadyUpdatePayload)
}
