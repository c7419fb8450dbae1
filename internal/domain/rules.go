package domain

import (
	"slices"

	"github.com/iamasit07/4-in-a-row-negamax/pkg/span"
)

// Win describes a finished streak. Cells are the four cells of the streak in
// the order the scan visited them.
type Win struct {
	Won   bool       `json:"won"`
	Color Color      `json:"color,omitempty"`
	Cells []Position `json:"cells,omitempty"`
}

// CheckWin scans rows (top to bottom), columns (left to right), downward
// diagonals and upward diagonals, in that order, and reports the first
// streak of StreakLength tokens it meets. A board holding several streaks
// cannot come out of legal play; for such boards the scan order decides.
func (b Board) CheckWin() Win {
	var s streakScanner

	for row := range span.Range(0, Height) {
		s.startLine()
		for col := range span.Range(0, Width) {
			if s.visit(b, row, col) {
				return s.win()
			}
		}
	}

	for col := range span.Range(0, Width) {
		s.startLine()
		for row := range span.Range(0, Height) {
			if s.visit(b, row, col) {
				return s.win()
			}
		}
	}

	// Diagonals are keyed by the column they would cross row 0 (downward) or
	// row Height-1 (upward) at; only those holding StreakLength cells are
	// walked, and cells off the grid are skipped.
	firstDiagonal := StreakLength - Height
	lastDiagonal := Width - StreakLength + 1

	for d := range span.Range(firstDiagonal, lastDiagonal) {
		s.startLine()
		for row := range span.Range(0, Height) {
			col := d + row
			if col < 0 || col >= Width {
				continue
			}
			if s.visit(b, row, col) {
				return s.win()
			}
		}
	}

	for d := range span.Range(firstDiagonal, lastDiagonal) {
		s.startLine()
		for row := range span.Range(Height, 0) {
			col := d + (Height - row - 1)
			if col < 0 || col >= Width {
				continue
			}
			if s.visit(b, row, col) {
				return s.win()
			}
		}
	}

	return Win{Won: false}
}

type streakScanner struct {
	visited []Position
	color   Color
	streak  int
}

func (s *streakScanner) startLine() {
	s.visited = s.visited[:0]
	s.color = None
	s.streak = 1
}

// visit feeds one cell to the scanner and reports whether it completed a
// streak. A color change, including to or from None, restarts the count.
func (s *streakScanner) visit(b Board, row, col int) bool {
	s.visited = append(s.visited, Position{Row: row, Col: col})
	cell := b.cells[index(row, col)]
	if cell.Color != None && cell.Color == s.color {
		s.streak++
		return s.streak == StreakLength
	}
	s.color = cell.Color
	s.streak = 1
	return false
}

func (s *streakScanner) win() Win {
	return Win{
		Won:   true,
		Color: s.color,
		Cells: slices.Clone(s.visited[len(s.visited)-StreakLength:]),
	}
}
