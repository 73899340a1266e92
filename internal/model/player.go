package model

// Vec3 is a client-reported position or rotation. Values are trusted as-is;
// movement legality is the client's problem.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// SpawnPosition is where every player starts the first round.
var SpawnPosition = Vec3{X: 0, Y: 0, Z: 145}

// Player is a participant record inside a single room. A player belongs to
// exactly one room for its whole lifetime. Ready covers the pre-game ready-up
// and is cleared when the first round starts; the typing race has its own
// SecondRoundReady flag.
type Player struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Position            Vec3   `json:"position"`
	Rotation            Vec3   `json:"rotation"`
	Eliminated          bool   `json:"eliminated"`
	Ready               bool   `json:"ready"`
	CompletedFirstRound bool   `json:"completedFirstRound"`
	SecondRoundReady    bool   `json:"secondRoundReady"`
}

// NewPlayer returns a player at the spawn point with all flags cleared.
func NewPlayer(id, name string) *Player {
	return &Player{
		ID:       id,
		Name:     name,
		Position: SpawnPosition,
	}
}
