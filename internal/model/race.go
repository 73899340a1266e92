package model

// RaceProgress is a player's latest self-reported typing state. Last write
// wins; the server never recomputes WPM or percentage.
type RaceProgress struct {
	WordIndex  int     `json:"wordIndex"`
	Percentage float64 `json:"percentage"`
	WPM        float64 `json:"wpm"`
}

// RaceCompletion is one finisher's record. Place is assigned in server
// processing order, which is the authoritative tiebreak.
type RaceCompletion struct {
	PlayerID   string  `json:"playerId"`
	Name       string  `json:"name"`
	Time       float64 `json:"time"` // client-reported elapsed seconds
	WPM        float64 `json:"wpm"`
	FinishedAt int64   `json:"finishedAt"` // epoch millis at the server
	Place      int     `json:"place"`
}

// Race is the typing-duel session state, created when the completion barrier
// releases the room and cleared once results are broadcast.
type Race struct {
	ParagraphIndex int
	StartedAt      int64 // epoch millis
	Progress       map[string]*RaceProgress
	Completions    []RaceCompletion
}

// NewRace starts a race over the paragraph at index.
func NewRace(index int, startedAt int64) *Race {
	return &Race{
		ParagraphIndex: index,
		StartedAt:      startedAt,
		Progress:       make(map[string]*RaceProgress),
		Completions:    make([]RaceCompletion, 0, 4),
	}
}

// HasCompletion reports whether the player already finished. Duplicate
// typing-complete messages must not score twice.
func (r *Race) HasCompletion(playerID string) bool {
	for _, c := range r.Completions {
		if c.PlayerID == playerID {
			return true
		}
	}
	return false
}

// AddCompletion appends a finisher with the next place and returns the record.
func (r *Race) AddCompletion(playerID, name string, elapsed, wpm float64, finishedAt int64) RaceCompletion {
	c := RaceCompletion{
		PlayerID:   playerID,
		Name:       name,
		Time:       elapsed,
		WPM:        wpm,
		FinishedAt: finishedAt,
		Place:      len(r.Completions) + 1,
	}
	r.Completions = append(r.Completions, c)
	return c
}
