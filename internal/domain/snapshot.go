package domain

import "fmt"

// Snapshot is the plain, JSON friendly form of a Board used by session storage.
type Snapshot struct {
	MoveCount int            `json:"moveCount"`
	Cells     []CellSnapshot `json:"cells"`
}

type CellSnapshot struct {
	Color     Color `json:"color"`
	MoveIndex *int  `json:"moveIndex,omitempty"`
}

func (b Board) Snapshot() Snapshot {
	cells := make([]CellSnapshot, Size)
	for i, cell := range b.cells {
		cells[i] = CellSnapshot{Color: cell.Color}
		if cell.Color != None {
			moveIndex := cell.MoveIndex
			cells[i].MoveIndex = &moveIndex
		}
	}
	return Snapshot{MoveCount: b.moveCount, Cells: cells}
}

// FromSnapshot rebuilds a Board. Snapshots that no sequence of Drop calls
// could have produced are rejected with ErrInvalidSnapshot.
func FromSnapshot(s Snapshot) (Board, error) {
	if len(s.Cells) != Size {
		return Board{}, fmt.Errorf("%w: %d cells, want %d", ErrInvalidSnapshot, len(s.Cells), Size)
	}

	var b Board
	colored := 0
	seen := make(map[int]bool, len(s.Cells))
	for i, cs := range s.Cells {
		switch {
		case cs.Color == None:
			b.cells[i] = Cell{Color: None}
		case cs.Color.IsPlayable():
			if cs.MoveIndex == nil {
				return Board{}, fmt.Errorf("%w: cell %d has no move index", ErrInvalidSnapshot, i)
			}
			if *cs.MoveIndex < 0 || *cs.MoveIndex >= s.MoveCount {
				return Board{}, fmt.Errorf("%w: cell %d move index %d out of range", ErrInvalidSnapshot, i, *cs.MoveIndex)
			}
			if seen[*cs.MoveIndex] {
				return Board{}, fmt.Errorf("%w: move index %d used twice", ErrInvalidSnapshot, *cs.MoveIndex)
			}
			seen[*cs.MoveIndex] = true
			b.cells[i] = Cell{Color: cs.Color, MoveIndex: *cs.MoveIndex}
			colored++
		default:
			return Board{}, fmt.Errorf("%w: cell %d: %w", ErrInvalidSnapshot, i, invalidColor(cs.Color))
		}
	}

	if s.MoveCount != colored {
		return Board{}, fmt.Errorf("%w: move count %d but %d tokens", ErrInvalidSnapshot, s.MoveCount, colored)
	}
	b.moveCount = s.MoveCount

	// Tokens rest on the cell below and were dropped after it.
	for col := 0; col < Width; col++ {
		for row := 0; row < Height-1; row++ {
			cell, below := b.cells[index(row, col)], b.cells[index(row+1, col)]
			if cell.Color == None {
				continue
			}
			if below.Color == None {
				return Board{}, fmt.Errorf("%w: floating token at row %d column %d", ErrInvalidSnapshot, row, col)
			}
			if cell.MoveIndex <= below.MoveIndex {
				return Board{}, fmt.Errorf("%w: token at row %d column %d played before the one below it", ErrInvalidSnapshot, row, col)
			}
		}
	}

	return b, nil
}
