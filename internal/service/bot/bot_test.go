package bot

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/iamasit07/4-in-a-row-negamax/internal/domain"
)

func TestChooseMoveAddsOneToken(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	for i := 0; i < 50; i++ {
		b := randomBoard(rng, rng.Intn(35))
		if b.CheckWin().Won || b.IsFull() {
			continue
		}
		color := b.ToMove()

		next, err := ChooseMove(b, color, DefaultDepth)
		if err != nil {
			t.Fatalf("ChooseMove: %v\n%s", err, b)
		}
		if next.MoveCount() != b.MoveCount()+1 {
			t.Fatalf("move count %d -> %d", b.MoveCount(), next.MoveCount())
		}
	}
}

func TestChooseMovePlaysSearchResult(t *testing.T) {
	b := stack(t, map[int][]domain.Color{1: {y, y, y}, 6: {r, r}})

	next, err := ChooseMove(b, r, 2)
	if err != nil {
		t.Fatalf("ChooseMove: %v", err)
	}
	if next.At(domain.Height-4, 1).Color != r {
		t.Fatalf("expected red to block column 1\n%s", next)
	}
}

func TestChooseMoveWithoutMove(t *testing.T) {
	won := stack(t, map[int][]domain.Color{0: {y, y, y, y}})
	columns := map[int][]domain.Color{}
	for col := 0; col < domain.Width; col++ {
		columns[col] = []domain.Color{r, r, y, y, r, r}
	}
	columns[3] = []domain.Color{y, y, r, r, y, y}
	full := stack(t, columns)

	tests := []struct {
		name  string
		board domain.Board
		depth int
	}{
		{"won board", won, 3},
		{"full board", full, 3},
		{"zero depth", domain.NewBoard(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ChooseMove(tt.board, r, tt.depth); !errors.Is(err, ErrNoMove) {
				t.Fatalf("ChooseMove error = %v, want %v", err, ErrNoMove)
			}
		})
	}
}

func TestChooseMoveInvalidColor(t *testing.T) {
	if _, err := ChooseMove(domain.NewBoard(), domain.Color("green"), 2); !errors.Is(err, domain.ErrInvalidColor) {
		t.Fatalf("ChooseMove error = %v, want %v", err, domain.ErrInvalidColor)
	}
}

func TestPlayerUsesConfiguredDepth(t *testing.T) {
	p := NewPlayer(1, time.Second, nil)

	next, err := p.Play(context.Background(), domain.NewBoard(), y, 0)
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if next.At(domain.Height-1, 3).Color != y {
		t.Fatalf("expected the centre opening\n%s", next)
	}
}

func TestPlayerHonoursCancelledContext(t *testing.T) {
	p := NewPlayer(DefaultDepth, 0, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.Play(ctx, domain.NewBoard(), r, 0); !errors.Is(err, context.Canceled) {
		t.Fatalf("Play error = %v, want %v", err, context.Canceled)
	}
}

func TestDepthForDifficulty(t *testing.T) {
	tests := map[string]int{
		"easy":    1,
		"medium":  3,
		"hard":    5,
		"":        DefaultDepth,
		"extreme": DefaultDepth,
	}
	for name, want := range tests {
		if got := DepthForDifficulty(name); got != want {
			t.Errorf("DepthForDifficulty(%q) = %d, want %d", name, got, want)
		}
	}
	if IsDifficulty("extreme") || !IsDifficulty("hard") {
		t.Errorf("IsDifficulty misclassifies names")
	}
}
