package model

// Client -> server event names.
const (
	EvtJoinGame       = "join-game"
	EvtPlayerReady    = "player-ready"
	EvtPlayerNotReady = "player-not-ready"
	EvtPlayerMove     = "player-move"
	EvtPlayerElim     = "player-eliminated"
	EvtGameState      = "game-state"
	EvtLevelComplete  = "level-complete"
	EvtTypingProgress = "typing-progress"
	EvtTypingComplete = "typing-complete"
	EvtTugReady       = "tug-ready"
	EvtTugNotReady    = "tug-not-ready"
)

// Level identifier carried by level-complete reports.
const (
	LevelRLGL = "rlgl"
)

// Server -> client event names.
const (
	EvtJoinedRoom       = "joined-room"
	EvtPlayerJoined     = "player-joined"
	EvtPlayerLeft       = "player-left"
	EvtPlayerMoved      = "player-moved"
	EvtPlayerEliminated = "player-eliminated"
	EvtReadyUpdate      = "player-ready-update"
	EvtCountdown        = "countdown"
	EvtGameStart        = "game-start"
	EvtGameStateUpdate  = "game-state-update"
	EvtWaitForPlayers   = "wait-for-players"
	EvtRLGLCompletion   = "rlgl-completion-update"
	EvtAllPlayersTug    = "all-players-ready-tug"
	EvtTugRaceStart     = "tug-race-start"
	EvtRaceProgress     = "race-progress"
	EvtPlayerFinished   = "player-finished-typing"
	EvtTugReadyUpdate   = "tug-ready-update"
	EvtTugTypingStart   = "tug-typing-start"
	EvtTugRaceEnd       = "tug-race-end"
)

// Inbound payloads.

type JoinGamePayload struct {
	Name string `json:"name"`
}

type MovePayload struct {
	Position Vec3 `json:"position"`
	Rotation Vec3 `json:"rotation"`
}

type LevelCompletePayload struct {
	Level string `json:"level"`
}

type TypingProgressPayload struct {
	WordIndex  int     `json:"wordIndex"`
	Percentage float64 `json:"percentage"`
	WPM        float64 `json:"wpm"`
}

type TypingCompletePayload struct {
	Time float64 `json:"time"`
	WPM  float64 `json:"wpm"`
}

// Outbound payloads.

type JoinedRoomPayload struct {
	RoomID   string    `json:"roomId"`
	PlayerID string    `json:"playerId"`
	Players  []*Player `json:"players"`
}

type PlayerJoinedPayload struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position Vec3   `json:"position"`
}

type PlayerIDPayload struct {
	ID string `json:"id"`
}

type PlayerMovedPayload struct {
	ID       string `json:"id"`
	Position Vec3   `json:"position"`
	Rotation Vec3   `json:"rotation"`
}

type ReadyUpdatePayload struct {
	ID           string `json:"id"`
	Ready        bool   `json:"ready"`
	TotalReady   int    `json:"totalReady"`
	TotalPlayers int    `json:"totalPlayers"`
}

type CountdownPayload struct {
	Count int `json:"count"`
}

type GameStartPayload struct {
	StartTime int64 `json:"startTime"`
}

// CompletionCountsPayload backs both wait-for-players and
// rlgl-completion-update: finished vs alive counts for round one.
type CompletionCountsPayload struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

type TugRaceStartPayload struct {
	ParagraphIndex int   `json:"paragraphIndex"`
	StartTime      int64 `json:"startTime"`
}

type RaceProgressPayload struct {
	PlayerID   string  `json:"playerId"`
	WordIndex  int     `json:"wordIndex"`
	Percentage float64 `json:"percentage"`
	WPM        float64 `json:"wpm"`
}

type TugReadyUpdatePayload struct {
	Ready int `json:"ready"`
	Total int `json:"total"`
}

type TugRaceEndPayload struct {
	Winner          RaceCompletion   `json:"winner"`
	Results         []RaceCompletion `json:"results"`
	EliminatedCount int              `json:"eliminatedCount"`
}
