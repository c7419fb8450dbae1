package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/iamasit07/4-in-a-row-negamax/internal/domain"
	"github.com/iamasit07/4-in-a-row-negamax/pkg/uid"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

type HistoryReader interface {
	ListRecentGames(ctx context.Context, limit int) ([]domain.GameRecord, error)
	GetGameByID(ctx context.Context, gameID string) (*domain.GameRecord, error)
}

type HistoryHandler struct {
	Repo   HistoryReader // nil when no database is configured
	Logger *zap.SugaredLogger
}

func NewHistoryHandler(repo HistoryReader, logger *zap.SugaredLogger) *HistoryHandler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &HistoryHandler{Repo: repo, Logger: logger}
}

// GetHistory handles GET /api/history[?limit=n].
func (h *HistoryHandler) GetHistory(c *gin.Context) {
	if h.Repo == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "history is not available"})
		return
	}

	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	games, err := h.Repo.ListRecentGames(c.Request.Context(), limit)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	if games == nil {
		games = []domain.GameRecord{}
	}
	c.JSON(http.StatusOK, games)
}

// GetGameDetails handles GET /api/history/:id.
func (h *HistoryHandler) GetGameDetails(c *gin.Context) {
	if h.Repo == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "history is not available"})
		return
	}

	gameID := c.Param("id")
	if !uid.IsGameID(gameID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game id"})
		return
	}

	record, err := h.Repo.GetGameByID(c.Request.Context(), gameID)
	if err != nil {
		if errors.Is(err, domain.ErrGameNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
			return
		}
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, record)
}
