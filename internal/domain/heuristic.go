package domain

import "github.com/iamasit07/4-in-a-row-negamax/pkg/span"

// ColumnWeight is how much a token in col is worth: Width/2+1 for the centre
// column, one less for each step away from it (1 2 3 4 3 2 1 on a 7-wide grid).
func ColumnWeight(col int) int {
	center := Width / 2
	distance := center - col
	if distance < 0 {
		distance = -distance
	}
	return center + 1 - distance
}

// Heuristic scores the board from color's point of view: each of color's
// tokens adds its column weight and each token of any other color subtracts
// it. Heuristic(Red) == -Heuristic(Yellow) for every board.
func (b Board) Heuristic(color Color) int {
	score := 0
	for col := range span.Range(0, Width) {
		weight := ColumnWeight(col)
		for row := range span.Range(0, Height) {
			switch c := b.cells[index(row, col)].Color; {
			case c == color:
				score += weight
			case c != None:
				score -= weight
			}
		}
	}
	return score
}
