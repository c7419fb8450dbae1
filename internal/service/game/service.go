package game

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/iamasit07/4-in-a-row-negamax/internal/domain"
	"github.com/iamasit07/4-in-a-row-negamax/internal/service/bot"
	"github.com/iamasit07/4-in-a-row-negamax/pkg/uid"
)

type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidMode       Error = "invalid game mode"
	ErrInvalidDifficulty Error = "invalid difficulty"
	ErrGameOver          Error = "game is over"
	ErrNotYourTurn       Error = "not your turn"
)

type GameStore interface {
	Save(ctx context.Context, game *domain.Game) error
	Load(ctx context.Context, id string) (*domain.Game, error)
	Delete(ctx context.Context, id string) error
}

type HistoryRepository interface {
	SaveGame(ctx context.Context, record domain.GameRecord) error
}

// AIPlayer picks the automated side's move; *bot.Player satisfies it.
type AIPlayer interface {
	Play(ctx context.Context, board domain.Board, color domain.Color, depth int) (domain.Board, error)
}

// Service runs games between a browser and either the engine or a second
// human at the same browser.
type Service struct {
	store        GameStore
	history      HistoryRepository // optional
	ai           AIPlayer
	defaultDepth int
	logger       *zap.SugaredLogger
	locks        *keyedMutex
	now          func() time.Time
}

// NewService wires a game service. history may be nil, in which case
// finished games are not recorded.
func NewService(store GameStore, history HistoryRepository, ai AIPlayer, defaultDepth int, logger *zap.SugaredLogger) *Service {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if defaultDepth < 1 {
		defaultDepth = bot.DefaultDepth
	}
	return &Service{
		store:        store,
		history:      history,
		ai:           ai,
		defaultDepth: defaultDepth,
		logger:       logger,
		locks:        newKeyedMutex(),
		now:          time.Now,
	}
}

// NewGame starts a game. In AI mode the engine takes the color the human did
// not pick, and opens when that color is domain.First.
func (s *Service) NewGame(ctx context.Context, mode domain.Mode, humanColor domain.Color, difficulty string) (*domain.Game, domain.GameState, error) {
	if !mode.IsValid() {
		return nil, domain.GameState{}, fmt.Errorf("%w: %q", ErrInvalidMode, string(mode))
	}
	aiColor, err := domain.OppositeColor(humanColor)
	if err != nil {
		return nil, domain.GameState{}, err
	}

	depth := s.defaultDepth
	if difficulty != "" {
		if !bot.IsDifficulty(difficulty) {
			return nil, domain.GameState{}, fmt.Errorf("%w: %q", ErrInvalidDifficulty, difficulty)
		}
		depth = bot.DepthForDifficulty(difficulty)
	}

	board := domain.NewBoard()
	if mode == domain.ModeAI && aiColor == domain.First {
		board, err = s.ai.Play(ctx, board, aiColor, depth)
		if err != nil {
			return nil, domain.GameState{}, fmt.Errorf("ai opening move: %w", err)
		}
	}

	now := s.now()
	game := &domain.Game{
		ID:         uid.GenerateGameID(),
		Mode:       mode,
		HumanColor: humanColor,
		Difficulty: difficulty,
		Depth:      depth,
		Board:      board.Snapshot(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.Save(ctx, game); err != nil {
		return nil, domain.GameState{}, err
	}

	s.logger.Infof("[GAME] Created game %s: mode=%s human=%s depth=%d", game.ID, mode, humanColor, depth)
	return game, domain.NewGameState(game.ID, board), nil
}

// State returns the current view of a game.
func (s *Service) State(ctx context.Context, gameID string) (domain.GameState, error) {
	_, board, err := s.load(ctx, gameID)
	if err != nil {
		return domain.GameState{}, err
	}
	return domain.NewGameState(gameID, board), nil
}

// Play drops the human's token in column and, in AI mode, lets the engine
// answer unless the human's move ended the game. If the engine fails the
// whole request is rolled back and nothing is saved.
func (s *Service) Play(ctx context.Context, gameID string, column int) (domain.GameState, error) {
	unlock := s.locks.Lock(gameID)
	defer unlock()

	game, board, err := s.load(ctx, gameID)
	if err != nil {
		return domain.GameState{}, err
	}
	if board.Status() != domain.StatusActive {
		return domain.GameState{}, ErrGameOver
	}

	color := board.ToMove()
	if game.Mode == domain.ModeAI && color != game.HumanColor {
		return domain.GameState{}, ErrNotYourTurn
	}

	board, err = board.Drop(column, color)
	if err != nil {
		return domain.GameState{}, err
	}

	if game.Mode == domain.ModeAI && board.Status() == domain.StatusActive {
		aiColor, _ := domain.OppositeColor(game.HumanColor)
		board, err = s.ai.Play(ctx, board, aiColor, game.Depth)
		if err != nil {
			return domain.GameState{}, fmt.Errorf("ai move: %w", err)
		}
	}

	game.Board = board.Snapshot()
	game.UpdatedAt = s.now()
	if err := s.store.Save(ctx, game); err != nil {
		return domain.GameState{}, err
	}

	state := domain.NewGameState(game.ID, board)
	if state.Status != domain.StatusActive {
		s.recordFinished(ctx, game, state)
	}
	return state, nil
}

// Abandon forgets a game.
func (s *Service) Abandon(ctx context.Context, gameID string) error {
	unlock := s.locks.Lock(gameID)
	defer unlock()

	s.logger.Infof("[GAME] Abandoning game %s", gameID)
	return s.store.Delete(ctx, gameID)
}

func (s *Service) load(ctx context.Context, gameID string) (*domain.Game, domain.Board, error) {
	game, err := s.store.Load(ctx, gameID)
	if err != nil {
		return nil, domain.Board{}, err
	}
	board, err := domain.FromSnapshot(game.Board)
	if err != nil {
		return nil, domain.Board{}, fmt.Errorf("game %s: %w", gameID, err)
	}
	return game, board, nil
}

// recordFinished writes the result to history. Failures are logged: the
// game itself is already saved and the player has their answer.
func (s *Service) recordFinished(ctx context.Context, game *domain.Game, state domain.GameState) {
	reason := "draw"
	if state.Win.Won {
		reason = "win"
	}
	s.logger.Infof("[GAME] Game %s finished: %s %s after %d moves", game.ID, reason, state.Win.Color, state.MoveCount)

	if s.history == nil {
		return
	}
	record := domain.GameRecord{
		GameID:      game.ID,
		Mode:        game.Mode,
		HumanColor:  game.HumanColor,
		WinnerColor: state.Win.Color,
		Reason:      reason,
		TotalMoves:  state.MoveCount,
		Board:       game.Board,
		CreatedAt:   game.CreatedAt,
		FinishedAt:  game.UpdatedAt,
	}
	if err := s.history.SaveGame(ctx, record); err != nil {
		s.logger.Errorf("[GAME] Failed to record game %s: %v", game.ID, err)
	}
}
