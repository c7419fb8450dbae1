package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is what the session cookie carries: the id of the game it plays.
type Claims struct {
	GameID string `json:"game_id"`
	jwt.RegisteredClaims
}

// GenerateSessionToken signs a token binding the browser to gameID.
func GenerateSessionToken(secret, gameID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		GameID: gameID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateSessionToken checks the signature and expiry and returns the claims
func ValidateSessionToken(secret, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid && claims.GameID != "" {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
