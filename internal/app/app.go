package app

import (
	"net/http"

	"github.com/Beast-Code9999/squid-game-server/internal/config"
	"github.com/Beast-Code9999/squid-game-server/internal/service"
	"github.com/Beast-Code9999/squid-game-server/internal/transport/rest"
	"github.com/Beast-Code9999/squid-game-server/internal/transport/ws"
)

// App wires the hub, the coordination services, and the HTTP surface.
type App struct {
	Hub     *ws.Hub
	Rooms   *service.Rooms
	Lobby   *service.Lobby
	Relay   *service.Relay
	Barrier *service.Barrier
	TugRace *service.TugRace
	Router  http.Handler
}

// New builds the full dependency graph from config.
func New(cfg *config.Config) *App {
	hub := ws.NewHub()
	rooms := service.NewRooms(cfg.RoomSize, hub)

	lobby := service.NewLobby(rooms, hub)
	lobby.Tick = cfg.CountdownTick

	relay := service.NewRelay(rooms, hub)

	tug := service.NewTugRace(rooms, hub)
	tug.EndDelay = cfg.RaceEndDelay

	barrier := service.NewBarrier(rooms, hub, tug)
	barrier.AnnounceDelay = cfg.AnnounceDelay
	barrier.TugStartDelay = cfg.TugStartDelay

	wsHandler := ws.NewHandler(hub, rooms, lobby, relay, barrier, tug)

	return &App{
		Hub:     hub,
		Rooms:   rooms,
		Lobby:   lobby,
		Relay:   relay,
		Barrier: barrier,
		TugRace: tug,
		Router:  rest.NewRouter(wsHandler),
	}
}
