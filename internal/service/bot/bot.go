package bot

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/iamasit07/4-in-a-row-negamax/internal/domain"
)

type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrNoMove       Error = "no move available"
	ErrInvalidSign  Error = "sign must be +1 or -1"
	ErrInvalidDepth Error = "invalid search depth"
)

// ChooseMove searches depth plies for color and returns the board after
// color plays the best column. It fails with ErrNoMove when the search
// yields no column: the board is already won, full, or depth is zero.
func ChooseMove(board domain.Board, color domain.Color, depth int) (domain.Board, error) {
	return defaultEngine.ChooseMove(board, color, depth)
}

func (e *Engine) ChooseMove(board domain.Board, color domain.Color, depth int) (domain.Board, error) {
	result, err := e.Negamax(board, depth, 1, color)
	if err != nil {
		return domain.Board{}, err
	}
	if !result.HasMove() {
		return domain.Board{}, fmt.Errorf("%w: value %d at depth %d", ErrNoMove, result.Value, depth)
	}
	return board.Drop(result.Move, color)
}

// Player is the automated opponent used by game sessions.
type Player struct {
	Depth   int
	Timeout time.Duration

	engine *Engine
	logger *zap.SugaredLogger
}

func NewPlayer(depth int, timeout time.Duration, logger *zap.SugaredLogger) *Player {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Player{
		Depth:   depth,
		Timeout: timeout,
		engine:  NewEngine(logger),
		logger:  logger,
	}
}

// Play chooses color's move at the player's depth, or at depth when it is
// positive. The search runs on its own goroutine; if ctx ends or the timeout
// passes first Play returns the context error and the search result, once it
// arrives, is dropped.
func (p *Player) Play(ctx context.Context, board domain.Board, color domain.Color, depth int) (domain.Board, error) {
	if depth <= 0 {
		depth = p.Depth
	}
	if err := ctx.Err(); err != nil {
		return domain.Board{}, err
	}
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	type outcome struct {
		board domain.Board
		err   error
	}
	done := make(chan outcome, 1)
	started := time.Now()

	go func() {
		next, err := p.engine.ChooseMove(board, color, depth)
		done <- outcome{board: next, err: err}
	}()

	select {
	case out := <-done:
		p.logger.Debugf("[BOT] %s searched depth %d in %s", color, depth, time.Since(started))
		return out.board, out.err
	case <-ctx.Done():
		p.logger.Warnf("[BOT] search for %s at depth %d abandoned after %s: %v", color, depth, time.Since(started), ctx.Err())
		return domain.Board{}, ctx.Err()
	}
}
