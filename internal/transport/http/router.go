package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/iamasit07/4-in-a-row-negamax/internal/transport/http/middleware"
)

type RouterConfig struct {
	Games          *GameHandler
	History        *HistoryHandler
	WebSocket      gin.HandlerFunc // optional
	SessionSecret  string
	AllowedOrigins []string
	Logger         *zap.SugaredLogger
}

// NewRouter registers every route of the game server.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins, cfg.Logger))

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	router.GET("/api/play/:vs/:color", cfg.Games.NewGame)
	router.GET("/api/history", cfg.History.GetHistory)
	router.GET("/api/history/:id", cfg.History.GetGameDetails)

	session := router.Group("/")
	session.Use(middleware.SessionMiddleware(cfg.SessionSecret))
	{
		session.GET("/api/state", cfg.Games.State)
		session.GET("/api/playat/:column", cfg.Games.PlayAt)
		if cfg.WebSocket != nil {
			session.GET("/ws", cfg.WebSocket)
		}
	}

	return router
}
