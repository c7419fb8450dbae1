package domain

import "time"

// Mode says who plays the second seat of a game.
type Mode string

const (
	ModeAI    Mode = "ai"
	ModeHuman Mode = "human"
)

func (m Mode) IsValid() bool {
	return m == ModeAI || m == ModeHuman
}

// Game is the state kept for one browser session between requests.
type Game struct {
	ID         string    `json:"id"`
	Mode       Mode      `json:"mode"`
	HumanColor Color     `json:"humanColor"`
	Difficulty string    `json:"difficulty,omitempty"`
	Depth      int       `json:"depth"`
	Board      Snapshot  `json:"board"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// GameState is what clients get back after every request.
type GameState struct {
	GameID    string     `json:"gameId"`
	Width     int        `json:"width"`
	Height    int        `json:"height"`
	Board     []Color    `json:"board"`
	Win       Win        `json:"win"`
	Status    GameStatus `json:"status"`
	ToMove    Color      `json:"toMove,omitempty"`
	MoveCount int        `json:"moveCount"`
}

// NewGameState builds the client view of b.
func NewGameState(gameID string, b Board) GameState {
	colors := make([]Color, 0, Size)
	for _, cell := range b.cells {
		colors = append(colors, cell.Color)
	}
	state := GameState{
		GameID:    gameID,
		Width:     Width,
		Height:    Height,
		Board:     colors,
		Win:       b.CheckWin(),
		MoveCount: b.moveCount,
	}
	state.Status = state.statusFrom(b)
	if state.Status == StatusActive {
		state.ToMove = b.ToMove()
	}
	return state
}

func (s GameState) statusFrom(b Board) GameStatus {
	if s.Win.Won {
		return StatusWon
	}
	if b.IsFull() {
		return StatusDraw
	}
	return StatusActive
}

// GameRecord is a finished game as kept in history.
type GameRecord struct {
	GameID      string    `json:"gameId"`
	Mode        Mode      `json:"mode"`
	HumanColor  Color     `json:"humanColor"`
	WinnerColor Color     `json:"winnerColor,omitempty"`
	Reason      string    `json:"reason"` // "win" or "draw"
	TotalMoves  int       `json:"totalMoves"`
	Board       Snapshot  `json:"board"`
	CreatedAt   time.Time `json:"createdAt"`
	FinishedAt  time.Time `json:"finishedAt"`
}
