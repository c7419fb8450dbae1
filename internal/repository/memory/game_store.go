package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/iamasit07/4-in-a-row-negamax/internal/domain"
)

type entry struct {
	game      domain.Game
	expiresAt time.Time
}

// GameStore keeps game sessions in process. It is used when Redis is not
// configured or not reachable; entries expire ttl after their last save.
type GameStore struct {
	games map[string]entry
	ttl   time.Duration
	now   func() time.Time
	mu    sync.RWMutex
}

func NewGameStore(ttl time.Duration) *GameStore {
	return &GameStore{
		games: make(map[string]entry),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (s *GameStore) Save(_ context.Context, game *domain.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.games[game.ID] = entry{game: cloneGame(game), expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *GameStore) Load(_ context.Context, id string) (*domain.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.games[id]
	if !ok || s.now().After(e.expiresAt) {
		return nil, fmt.Errorf("%w: %s", domain.ErrGameNotFound, id)
	}
	game := cloneGame(&e.game)
	return &game, nil
}

func (s *GameStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.games, id)
	return nil
}

// PurgeExpired drops expired sessions and returns how many went.
func (s *GameStore) PurgeExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, e := range s.games {
		if now.After(e.expiresAt) {
			delete(s.games, id)
			removed++
		}
	}
	return removed
}

func cloneGame(g *domain.Game) domain.Game {
	c := *g
	c.Board.Cells = slices.Clone(g.Board.Cells)
	for i, cell := range c.Board.Cells {
		if cell.MoveIndex != nil {
			moveIndex := *cell.MoveIndex
			c.Board.Cells[i].MoveIndex = &moveIndex
		}
	}
	return c
}

func (s *GameStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}
