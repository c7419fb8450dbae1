package bot

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/iamasit07/4-in-a-row-negamax/internal/domain"
)

const (
	// WinSentinel is the value of a position the side to move has already lost.
	WinSentinel = -1000
	// DrawValue is the value of a full board with no streak.
	DrawValue = 0
	// NoMove marks a Result that carries no column.
	NoMove = -1
)

type Result struct {
	Value int
	Move  int
}

func (r Result) HasMove() bool {
	return r.Move != NoMove
}

// Engine runs negamax searches. With a logger at debug level every node of
// the tree is traced; otherwise the logger is never touched during search.
type Engine struct {
	logger *zap.SugaredLogger
	trace  bool
}

func NewEngine(logger *zap.SugaredLogger) *Engine {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Engine{
		logger: logger,
		trace:  logger.Desugar().Core().Enabled(zapcore.DebugLevel),
	}
}

var defaultEngine = NewEngine(nil)

// Negamax searches board to depth plies. sign is +1 when target is the
// color to move and -1 otherwise; the returned value is always from the
// point of view of the side to move, while leaves are scored with
// board.Heuristic(target). Children are tried left to right and only a
// strictly better value replaces the current best, so ties go to the
// leftmost column.
func Negamax(board domain.Board, depth, sign int, target domain.Color) (Result, error) {
	return defaultEngine.Negamax(board, depth, sign, target)
}

func (e *Engine) Negamax(board domain.Board, depth, sign int, target domain.Color) (Result, error) {
	opponent, err := domain.OppositeColor(target)
	if err != nil {
		return Result{}, err
	}
	if sign != 1 && sign != -1 {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidSign, sign)
	}
	if depth < 0 {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidDepth, depth)
	}
	return e.search(board, depth, sign, target, opponent, 0)
}

func (e *Engine) search(board domain.Board, depth, sign int, target, opponent domain.Color, ply int) (Result, error) {
	var pad string
	if e.trace {
		pad = strings.Repeat("    ", ply)
		e.logger.Debugf("%s> negamax depth=%d sign=%d\n%s", pad, depth, sign, board.Render(pad))
	}

	if board.CheckWin().Won {
		if e.trace {
			e.logger.Debugf("%s< end won %d", pad, WinSentinel)
		}
		return Result{Value: WinSentinel, Move: NoMove}, nil
	}
	if depth == 0 {
		value := sign * board.Heuristic(target)
		if e.trace {
			e.logger.Debugf("%s< end depth %d", pad, value)
		}
		return Result{Value: value, Move: NoMove}, nil
	}

	mover := target
	if sign < 0 {
		mover = opponent
	}

	moves := board.LegalMoves()
	if len(moves) == 0 {
		if e.trace {
			e.logger.Debugf("%s< end draw %d", pad, DrawValue)
		}
		return Result{Value: DrawValue, Move: NoMove}, nil
	}

	best := Result{Move: NoMove}
	for _, column := range moves {
		child, err := board.Drop(column, mover)
		if err != nil {
			return Result{}, err
		}
		reply, err := e.search(child, depth-1, -sign, target, opponent, ply+1)
		if err != nil {
			return Result{}, err
		}
		value := -reply.Value
		if best.Move == NoMove || value > best.Value {
			best = Result{Value: value, Move: column}
		}
	}

	if e.trace {
		e.logger.Debugf("%s< end best move %d value %d", pad, best.Move, best.Value)
	}
	return best, nil
}
