package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/iamasit07/4-in-a-row-negamax/internal/domain"
	"github.com/iamasit07/4-in-a-row-negamax/internal/service/game"
	"github.com/iamasit07/4-in-a-row-negamax/internal/transport/http/middleware"
	"github.com/iamasit07/4-in-a-row-negamax/pkg/auth"
	"github.com/iamasit07/4-in-a-row-negamax/pkg/httputil"
)

// Notifier pushes messages to a game's live socket, if one is open.
type Notifier interface {
	SendMessage(gameID string, message domain.ServerMessage) error
}

type GameHandler struct {
	Service       *game.Service
	Notifier      Notifier // optional
	SessionSecret string
	SessionTTL    time.Duration
	IsProduction  bool
	Logger        *zap.SugaredLogger
}

func NewGameHandler(service *game.Service, notifier Notifier, secret string, ttl time.Duration, isProduction bool, logger *zap.SugaredLogger) *GameHandler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &GameHandler{
		Service:       service,
		Notifier:      notifier,
		SessionSecret: secret,
		SessionTTL:    ttl,
		IsProduction:  isProduction,
		Logger:        logger,
	}
}

// NewGame handles GET /api/play/:vs/:color. Once the new game exists, the
// game previously bound to the browser is abandoned.
func (h *GameHandler) NewGame(c *gin.Context) {
	mode := domain.Mode(c.Param("vs"))
	color := domain.Color(c.Param("color"))
	difficulty := c.Query("difficulty")
	ctx := c.Request.Context()

	g, state, err := h.Service.NewGame(ctx, mode, color, difficulty)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}

	token, err := auth.GenerateSessionToken(h.SessionSecret, g.ID, h.SessionTTL)
	if err != nil {
		h.abandon(c, g.ID)
		writeError(c, h.Logger, fmt.Errorf("session token: %w", err))
		return
	}

	if oldID, ok := middleware.SessionGameID(c.Request, h.SessionSecret); ok {
		h.abandon(c, oldID)
	}
	httputil.SetSessionCookie(c.Writer, token, h.SessionTTL, h.IsProduction)

	c.JSON(http.StatusOK, state)
}

// State handles GET /api/state.
func (h *GameHandler) State(c *gin.Context) {
	gameID, ok := middleware.GameID(c)
	if !ok {
		writeError(c, h.Logger, middleware.ErrSessionNotFound)
		return
	}

	state, err := h.Service.State(c.Request.Context(), gameID)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// PlayAt handles GET /api/playat/:column.
func (h *GameHandler) PlayAt(c *gin.Context) {
	gameID, ok := middleware.GameID(c)
	if !ok {
		writeError(c, h.Logger, middleware.ErrSessionNotFound)
		return
	}

	column, err := strconv.Atoi(c.Param("column"))
	if err != nil {
		writeError(c, h.Logger, fmt.Errorf("%w: %q", domain.ErrInvalidColumn, c.Param("column")))
		return
	}

	state, err := h.Service.Play(c.Request.Context(), gameID, column)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}

	// An open socket on the same game sees moves made over HTTP.
	if h.Notifier != nil {
		if err := h.Notifier.SendMessage(gameID, domain.ServerMessage{Type: "state", State: &state}); err != nil {
			h.Logger.Warnf("[HTTP] Failed to push state of game %s: %v", gameID, err)
		}
	}
	c.JSON(http.StatusOK, state)
}

func (h *GameHandler) abandon(c *gin.Context, gameID string) {
	if err := h.Service.Abandon(c.Request.Context(), gameID); err != nil {
		h.Logger.Warnf("[HTTP] Failed to abandon game %s: %v", gameID, err)
	}
}
