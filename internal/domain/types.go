package domain

// Color of a cell or token.
type Color string

const (
	None   Color = "none"
	Red    Color = "red"
	Yellow Color = "yellow"
)

// First is the color that opens every game.
const First = Yellow

// IsPlayable reports whether c is one of the two token colors.
func (c Color) IsPlayable() bool {
	return c == Red || c == Yellow
}

// Symbol is the single character used by Render.
func (c Color) Symbol() string {
	switch c {
	case Red:
		return "X"
	case Yellow:
		return "O"
	default:
		return "_"
	}
}

// OppositeColor returns the other playable color.
func OppositeColor(c Color) (Color, error) {
	switch c {
	case Red:
		return Yellow, nil
	case Yellow:
		return Red, nil
	}
	return None, invalidColor(c)
}

const (
	Width        = 7
	Height       = 6
	Size         = Width * Height
	StreakLength = 4
)

// to represent the game status
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusDraw   GameStatus = "draw"
)

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidColor    Error = "invalid color"
	ErrInvalidColumn   Error = "invalid column"
	ErrColumnFull      Error = "column full"
	ErrInvalidSnapshot Error = "invalid board snapshot"
	ErrGameNotFound    Error = "game not found"
)
