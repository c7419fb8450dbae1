package game

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/iamasit07/4-in-a-row-negamax/internal/domain"
	"github.com/iamasit07/4-in-a-row-negamax/internal/repository/memory"
	"github.com/iamasit07/4-in-a-row-negamax/internal/service/bot"
)

type scriptedAI struct {
	column int
	err    error
	calls  int
}

func (a *scriptedAI) Play(_ context.Context, board domain.Board, color domain.Color, _ int) (domain.Board, error) {
	a.calls++
	if a.err != nil {
		return domain.Board{}, a.err
	}
	return board.Drop(a.column, color)
}

type recordingHistory struct {
	mu      sync.Mutex
	records []domain.GameRecord
}

func (h *recordingHistory) SaveGame(_ context.Context, record domain.GameRecord) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, record)
	return nil
}

func newTestService(ai AIPlayer, history HistoryRepository) (*Service, *memory.GameStore) {
	store := memory.NewGameStore(time.Hour)
	return NewService(store, history, ai, 1, nil), store
}

func cellAt(state domain.GameState, row, col int) domain.Color {
	return state.Board[row*state.Width+col]
}

func TestNewGameHumanOpens(t *testing.T) {
	ai := &scriptedAI{column: 6}
	svc, _ := newTestService(ai, nil)

	game, state, err := svc.NewGame(context.Background(), domain.ModeAI, domain.Yellow, "")
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if ai.calls != 0 {
		t.Fatalf("AI moved %d times before the human", ai.calls)
	}
	if state.MoveCount != 0 || state.ToMove != domain.Yellow {
		t.Fatalf("unexpected state %+v", state)
	}
	if game.Depth != 1 || state.GameID != game.ID {
		t.Fatalf("unexpected game %+v", game)
	}
}

func TestNewGameAIOpensForRedHuman(t *testing.T) {
	svc, _ := newTestService(bot.NewPlayer(1, time.Second, nil), nil)

	_, state, err := svc.NewGame(context.Background(), domain.ModeAI, domain.Red, "")
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if state.MoveCount != 1 || state.ToMove != domain.Red {
		t.Fatalf("unexpected state %+v", state)
	}
	if got := cellAt(state, domain.Height-1, 3); got != domain.Yellow {
		t.Fatalf("expected yellow in the centre column, got %s", got)
	}
}

func TestNewGameDifficulty(t *testing.T) {
	svc, _ := newTestService(&scriptedAI{}, nil)

	game, _, err := svc.NewGame(context.Background(), domain.ModeAI, domain.Yellow, "hard")
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if game.Depth != bot.DepthForDifficulty("hard") {
		t.Fatalf("depth = %d", game.Depth)
	}
}

func TestNewGameRejectsBadInput(t *testing.T) {
	svc, _ := newTestService(&scriptedAI{}, nil)
	ctx := context.Background()

	tests := []struct {
		name       string
		mode       domain.Mode
		color      domain.Color
		difficulty string
		want       error
	}{
		{"mode", domain.Mode("online"), domain.Red, "", ErrInvalidMode},
		{"color", domain.ModeAI, domain.Color("blue"), "", domain.ErrInvalidColor},
		{"none color", domain.ModeHuman, domain.None, "", domain.ErrInvalidColor},
		{"difficulty", domain.ModeAI, domain.Red, "insane", ErrInvalidDifficulty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.NewGame(ctx, tt.mode, tt.color, tt.difficulty)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestPlayAgainstAI(t *testing.T) {
	ai := &scriptedAI{column: 6}
	svc, _ := newTestService(ai, nil)
	ctx := context.Background()

	game, _, err := svc.NewGame(ctx, domain.ModeAI, domain.Yellow, "")
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	state, err := svc.Play(ctx, game.ID, 0)
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if state.MoveCount != 2 || state.ToMove != domain.Yellow {
		t.Fatalf("unexpected state %+v", state)
	}
	if cellAt(state, domain.Height-1, 0) != domain.Yellow || cellAt(state, domain.Height-1, 6) != domain.Red {
		t.Fatalf("unexpected board %v", state.Board)
	}
}

func TestPlayRollsBackWhenAIFails(t *testing.T) {
	ai := &scriptedAI{column: 6}
	svc, _ := newTestService(ai, nil)
	ctx := context.Background()

	game, _, err := svc.NewGame(ctx, domain.ModeAI, domain.Yellow, "")
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}

	ai.err = context.DeadlineExceeded
	if _, err := svc.Play(ctx, game.ID, 0); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v", err)
	}

	state, err := svc.State(ctx, game.ID)
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	if state.MoveCount != 0 {
		t.Fatalf("human move was kept: %+v", state)
	}
}

func TestPlayNotYourTurn(t *testing.T) {
	svc, store := newTestService(&scriptedAI{}, nil)
	ctx := context.Background()

	board, _ := domain.NewBoard().Drop(3, domain.Yellow)
	game := &domain.Game{
		ID:         "waiting-for-ai",
		Mode:       domain.ModeAI,
		HumanColor: domain.Yellow,
		Depth:      1,
		Board:      board.Snapshot(),
	}
	if err := store.Save(ctx, game); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if _, err := svc.Play(ctx, game.ID, 0); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("err = %v, want %v", err, ErrNotYourTurn)
	}
}

func TestHotseatGameToWin(t *testing.T) {
	history := &recordingHistory{}
	ai := &scriptedAI{}
	svc, _ := newTestService(ai, history)
	ctx := context.Background()

	game, _, err := svc.NewGame(ctx, domain.ModeHuman, domain.Red, "")
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}

	var state domain.GameState
	for i, col := range []int{0, 1, 0, 1, 0, 1, 0} {
		state, err = svc.Play(ctx, game.ID, col)
		if err != nil {
			t.Fatalf("move %d: %v", i, err)
		}
	}

	if ai.calls != 0 {
		t.Fatalf("AI moved in a hotseat game")
	}
	if state.Status != domain.StatusWon || state.Win.Color != domain.Yellow {
		t.Fatalf("unexpected state %+v", state)
	}
	if state.ToMove != domain.None {
		t.Fatalf("finished game reports %s to move", state.ToMove)
	}

	if _, err := svc.Play(ctx, game.ID, 2); !errors.Is(err, ErrGameOver) {
		t.Fatalf("err = %v, want %v", err, ErrGameOver)
	}

	if len(history.records) != 1 {
		t.Fatalf("recorded %d games", len(history.records))
	}
	rec := history.records[0]
	if rec.GameID != game.ID || rec.Reason != "win" || rec.WinnerColor != domain.Yellow || rec.TotalMoves != 7 {
		t.Fatalf("unexpected record %+v", rec)
	}
}

func TestPlayColumnErrors(t *testing.T) {
	svc, _ := newTestService(&scriptedAI{}, nil)
	ctx := context.Background()

	game, _, err := svc.NewGame(ctx, domain.ModeHuman, domain.Yellow, "")
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	for i := 0; i < domain.Height; i++ {
		if _, err := svc.Play(ctx, game.ID, 0); err != nil {
			t.Fatalf("move %d: %v", i, err)
		}
	}

	if _, err := svc.Play(ctx, game.ID, 0); !errors.Is(err, domain.ErrColumnFull) {
		t.Fatalf("err = %v, want %v", err, domain.ErrColumnFull)
	}
	if _, err := svc.Play(ctx, game.ID, domain.Width); !errors.Is(err, domain.ErrInvalidColumn) {
		t.Fatalf("err = %v, want %v", err, domain.ErrInvalidColumn)
	}
}

func TestUnknownGame(t *testing.T) {
	svc, _ := newTestService(&scriptedAI{}, nil)
	ctx := context.Background()

	if _, err := svc.State(ctx, "missing"); !errors.Is(err, domain.ErrGameNotFound) {
		t.Fatalf("State err = %v", err)
	}
	if _, err := svc.Play(ctx, "missing", 0); !errors.Is(err, domain.ErrGameNotFound) {
		t.Fatalf("Play err = %v", err)
	}
}

func TestAbandon(t *testing.T) {
	svc, _ := newTestService(&scriptedAI{}, nil)
	ctx := context.Background()

	game, _, err := svc.NewGame(ctx, domain.ModeHuman, domain.Yellow, "")
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if err := svc.Abandon(ctx, game.ID); err != nil {
		t.Fatalf("Abandon: %v", err)
	}
	if _, err := svc.State(ctx, game.ID); !errors.Is(err, domain.ErrGameNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestConcurrentPlaysAreSerialised(t *testing.T) {
	svc, _ := newTestService(&scriptedAI{}, nil)
	ctx := context.Background()

	game, _, err := svc.NewGame(ctx, domain.ModeHuman, domain.Yellow, "")
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}

	// Goroutines race for columns 1 and 2; a move may find the game already
	// won, but every move that succeeded must be on the board.
	const moves = 12
	var wg sync.WaitGroup
	errs := make(chan error, moves)
	for i := 0; i < moves; i++ {
		wg.Add(1)
		go func(col int) {
			defer wg.Done()
			if _, err := svc.Play(ctx, game.ID, col); err != nil {
				errs <- err
			}
		}(i%2 + 1)
	}
	wg.Wait()
	close(errs)

	failed := 0
	for err := range errs {
		if !errors.Is(err, domain.ErrColumnFull) && !errors.Is(err, ErrGameOver) {
			t.Fatalf("unexpected error: %v", err)
		}
		failed++
	}

	state, err := svc.State(ctx, game.ID)
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	if state.MoveCount != moves-failed {
		t.Fatalf("move count %d, want %d", state.MoveCount, moves-failed)
	}
}

func TestKeyedMutexReleasesEntries(t *testing.T) {
	k := newKeyedMutex()
	unlock := k.Lock("a")
	unlock()
	if len(k.locks) != 0 {
		t.Fatalf("lock entry kept: %d", len(k.locks))
	}
}
