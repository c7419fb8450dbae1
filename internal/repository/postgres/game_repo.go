package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iamasit07/4-in-a-row-negamax/internal/domain"
)

type GameRepo struct {
	DB *sql.DB
}

func NewGameRepo(db *sql.DB) *GameRepo {
	return &GameRepo{DB: db}
}

// SaveGame stores a finished game. Saving the same game twice keeps the
// latest result.
func (r *GameRepo) SaveGame(ctx context.Context, record domain.GameRecord) error {
	boardJSON, err := json.Marshal(record.Board)
	if err != nil {
		return fmt.Errorf("failed to marshal board state: %w", err)
	}

	var winner sql.NullString
	if record.WinnerColor != "" && record.WinnerColor != domain.None {
		winner = sql.NullString{String: string(record.WinnerColor), Valid: true}
	}

	query := `
	INSERT INTO game (game_id, mode, human_color, winner_color, reason, total_moves, board_state, created_at, finished_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (game_id) DO UPDATE SET
		winner_color = EXCLUDED.winner_color,
		reason = EXCLUDED.reason,
		total_moves = EXCLUDED.total_moves,
		board_state = EXCLUDED.board_state,
		finished_at = EXCLUDED.finished_at;
	`

	_, err = r.DB.ExecContext(ctx, query,
		record.GameID, string(record.Mode), string(record.HumanColor), winner, record.Reason,
		record.TotalMoves, boardJSON, record.CreatedAt, record.FinishedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert game record: %w", err)
	}
	return nil
}

const selectGame = `
	SELECT game_id, mode, human_color, winner_color, reason, total_moves, board_state, created_at, finished_at
	FROM game`

type scanner interface {
	Scan(dest ...any) error
}

func scanGame(row scanner) (domain.GameRecord, error) {
	var (
		record    domain.GameRecord
		mode      string
		human     string
		winner    sql.NullString
		boardJSON []byte
	)

	err := row.Scan(&record.GameID, &mode, &human, &winner, &record.Reason,
		&record.TotalMoves, &boardJSON, &record.CreatedAt, &record.FinishedAt)
	if err != nil {
		return record, err
	}

	record.Mode = domain.Mode(mode)
	record.HumanColor = domain.Color(human)
	if winner.Valid {
		record.WinnerColor = domain.Color(winner.String)
	}
	if err := json.Unmarshal(boardJSON, &record.Board); err != nil {
		return record, fmt.Errorf("failed to unmarshal board state: %w", err)
	}
	return record, nil
}

// GetGameByID returns domain.ErrGameNotFound when no such game was recorded.
func (r *GameRepo) GetGameByID(ctx context.Context, gameID string) (*domain.GameRecord, error) {
	record, err := scanGame(r.DB.QueryRowContext(ctx, selectGame+` WHERE game_id = $1;`, gameID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrGameNotFound, gameID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game by ID: %w", err)
	}
	return &record, nil
}

// ListRecentGames returns up to limit games, most recently finished first.
func (r *GameRepo) ListRecentGames(ctx context.Context, limit int) ([]domain.GameRecord, error) {
	rows, err := r.DB.QueryContext(ctx, selectGame+` ORDER BY finished_at DESC LIMIT $1;`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query game history: %w", err)
	}
	defer rows.Close()

	games := []domain.GameRecord{}
	for rows.Next() {
		record, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game row: %w", err)
		}
		games = append(games, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read game history: %w", err)
	}
	return games, nil
}
