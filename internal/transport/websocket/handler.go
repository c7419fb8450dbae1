package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/iamasit07/4-in-a-row-negamax/internal/domain"
	"github.com/iamasit07/4-in-a-row-negamax/internal/service/game"
	"github.com/iamasit07/4-in-a-row-negamax/internal/transport/http/middleware"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// GameService is the part of game.Service the socket drives.
type GameService interface {
	State(ctx context.Context, gameID string) (domain.GameState, error)
	Play(ctx context.Context, gameID string, column int) (domain.GameState, error)
}

type Handler struct {
	ConnManager *ConnectionManager
	Games       GameService
	Upgrader    websocket.Upgrader
	Logger      *zap.SugaredLogger
}

// NewHandler creates the live-play handler. Browsers may only connect from
// allowedOrigins; requests without an Origin header are accepted.
func NewHandler(cm *ConnectionManager, games GameService, allowedOrigins []string, logger *zap.SugaredLogger) *Handler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Handler{
		ConnManager: cm,
		Games:       games,
		Logger:      logger,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || slices.Contains(allowedOrigins, origin)
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// HandleWebSocket upgrades a request that already passed the session
// middleware.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	gameID, ok := middleware.GameID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": middleware.ErrSessionNotFound.Error()})
		return
	}

	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Logger.Warnf("[WS] Upgrade error: %v", err)
		return
	}

	h.handleConnection(c.Request.Context(), gameID, conn)
}

func (h *Handler) handleConnection(ctx context.Context, gameID string, conn *websocket.Conn) {
	client := newClient(conn)
	h.ConnManager.AddConnection(gameID, client)
	h.Logger.Infof("[WS] Connection opened for game %s", gameID)

	done := make(chan struct{})
	defer func() {
		close(done)
		h.ConnManager.RemoveConnectionIfMatching(gameID, client)
		h.Logger.Infof("[WS] Connection closed for game %s", gameID)
	}()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := client.Ping(); err != nil {
					return
				}
			}
		}
	}()

	state, err := h.Games.State(ctx, gameID)
	h.reply(gameID, client, state, err)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.Logger.Warnf("[WS] Game %s disconnected unexpectedly: %v", gameID, err)
			}
			return
		}

		var msg domain.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			client.Send(domain.ServerMessage{Type: "error", Message: "invalid message format"})
			continue
		}

		switch msg.Type {
		case "state":
			state, err = h.Games.State(ctx, gameID)
		case "move":
			state, err = h.Games.Play(ctx, gameID, msg.Column)
		default:
			client.Send(domain.ServerMessage{Type: "error", Message: "unknown message type"})
			continue
		}
		h.reply(gameID, client, state, err)
	}
}

func (h *Handler) reply(gameID string, client *Client, state domain.GameState, err error) {
	msg := domain.ServerMessage{Type: "state", State: &state}
	if err != nil {
		msg = domain.ServerMessage{Type: "error", Message: errorText(err)}
		if errorText(err) == internalError {
			h.Logger.Errorf("[WS] Game %s: %v", gameID, err)
		}
	}
	if sendErr := client.Send(msg); sendErr != nil {
		h.Logger.Warnf("[WS] Write to game %s failed: %v", gameID, sendErr)
	}
}

const internalError = "internal error"

// errorText hides errors that do not come from the game rules.
func errorText(err error) string {
	var domainErr domain.Error
	var gameErr game.Error
	switch {
	case errors.As(err, &domainErr), errors.As(err, &gameErr):
		return err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return "move timed out"
	default:
		return internalError
	}
}
