package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/iamasit07/4-in-a-row-negamax/internal/domain"
	"github.com/iamasit07/4-in-a-row-negamax/internal/service/game"
	"github.com/iamasit07/4-in-a-row-negamax/internal/transport/http/middleware"
	"github.com/iamasit07/4-in-a-row-negamax/pkg/httputil"
)

// StatusForError maps service errors onto HTTP status codes.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidColor),
		errors.Is(err, domain.ErrInvalidColumn),
		errors.Is(err, game.ErrInvalidMode),
		errors.Is(err, game.ErrInvalidDifficulty):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrColumnFull),
		errors.Is(err, game.ErrNotYourTurn),
		errors.Is(err, game.ErrGameOver):
		return http.StatusConflict
	case errors.Is(err, middleware.ErrSessionNotFound),
		errors.Is(err, domain.ErrGameNotFound):
		return http.StatusUnauthorized
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, logger *zap.SugaredLogger, err error) {
	status := StatusForError(err)
	if status == http.StatusUnauthorized {
		// The game behind the cookie is gone; stop the browser resending it.
		httputil.ClearSessionCookie(c.Writer)
	}
	if status == http.StatusInternalServerError {
		logger.Errorf("[HTTP] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
