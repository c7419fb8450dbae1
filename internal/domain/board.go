package domain

import (
	"fmt"
	"strings"

	"github.com/iamasit07/4-in-a-row-negamax/pkg/span"
)

// Cell is one square of the grid. MoveIndex is the ply at which the token was
// placed and only means something when Color is not None.
type Cell struct {
	Color     Color
	MoveIndex int
}

// Position addresses a cell, row 0 being the top row.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Board is a snapshot of the grid. It is a value: assigning or passing a
// Board copies the whole grid, and no method ever changes its receiver.
type Board struct {
	cells     [Size]Cell
	moveCount int
}

func NewBoard() Board {
	var b Board
	for i := range b.cells {
		b.cells[i] = Cell{Color: None}
	}
	return b
}

// Clone returns an independent copy of b.
func (b Board) Clone() Board {
	return b
}

func (b Board) MoveCount() int {
	return b.moveCount
}

// At returns the cell at row, col. It panics when the position is off the grid.
func (b Board) At(row, col int) Cell {
	return b.cells[index(row, col)]
}

// LegalMoves lists, left to right, the columns whose top cell is empty.
func (b Board) LegalMoves() []int {
	moves := make([]int, 0, Width)
	for col := range span.Range(0, Width) {
		if b.cells[index(0, col)].Color == None {
			moves = append(moves, col)
		}
	}
	return moves
}

func (b Board) IsFull() bool {
	return len(b.LegalMoves()) == 0
}

// Drop returns a new board with a token of color dropped into column. The
// token lands in the lowest empty cell of the column.
func (b Board) Drop(column int, color Color) (Board, error) {
	if !color.IsPlayable() {
		return Board{}, invalidColor(color)
	}
	if column < 0 || column >= Width {
		return Board{}, fmt.Errorf("%w: %d", ErrInvalidColumn, column)
	}

	next := b.Clone()
	for row := range span.Range(Height, 0) {
		cell := &next.cells[index(row, column)]
		if cell.Color == None {
			cell.Color = color
			cell.MoveIndex = next.moveCount
			next.moveCount++
			return next, nil
		}
	}

	return Board{}, fmt.Errorf("%w: %d", ErrColumnFull, column)
}

// Status classifies the board as won, drawn (full without a streak) or active.
func (b Board) Status() GameStatus {
	if b.CheckWin().Won {
		return StatusWon
	}
	if b.IsFull() {
		return StatusDraw
	}
	return StatusActive
}

// ToMove is the color whose turn it is, assuming First opened and the players
// alternated.
func (b Board) ToMove() Color {
	if b.moveCount%2 == 0 {
		return First
	}
	opposite, _ := OppositeColor(First)
	return opposite
}

// Render draws the board one row per line, each line prefixed by padding.
func (b Board) Render(padding string) string {
	var sb strings.Builder
	for row := range span.Range(0, Height) {
		sb.WriteString(padding)
		for col := range span.Range(0, Width) {
			sb.WriteString(b.cells[index(row, col)].Color.Symbol())
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (b Board) String() string {
	return b.Render("")
}

func index(row, col int) int {
	return row*Width + col
}

func invalidColor(c Color) error {
	return fmt.Errorf("%w: %q", ErrInvalidColor, string(c))
}
