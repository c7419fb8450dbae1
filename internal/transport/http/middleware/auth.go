package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamasit07/4-in-a-row-negamax/pkg/auth"
	"github.com/iamasit07/4-in-a-row-negamax/pkg/httputil"
)

const gameIDKey = "game_id"

type Error string

func (e Error) Error() string {
	return string(e)
}

// ErrSessionNotFound means the request carries no valid session token.
const ErrSessionNotFound Error = "no game session"

// SessionMiddleware validates the session token and stores its game id in
// the gin context. Requests without a valid token are rejected with 401.
func SessionMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		gameID, ok := SessionGameID(c.Request, secret)
		if !ok {
			httputil.ClearSessionCookie(c.Writer)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrSessionNotFound.Error()})
			return
		}

		c.Set(gameIDKey, gameID)
		c.Next()
	}
}

// SessionGameID returns the game id carried by a valid session token on r.
func SessionGameID(r *http.Request, secret string) (string, bool) {
	token, err := httputil.GetTokenFromRequest(r)
	if err != nil {
		return "", false
	}
	claims, err := auth.ValidateSessionToken(secret, token)
	if err != nil {
		return "", false
	}
	return claims.GameID, true
}

// GameID returns the id stored by SessionMiddleware.
func GameID(c *gin.Context) (string, bool) {
	id := c.GetString(gameIDKey)
	return id, id != ""
}
