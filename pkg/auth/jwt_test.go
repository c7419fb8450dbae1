package auth

import (
	"testing"
	"time"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	token, err := GenerateSessionToken("secret", "game-1", time.Hour)
	if err != nil {
		t.Fatalf("GenerateSessionToken: %v", err)
	}

	claims, err := ValidateSessionToken("secret", token)
	if err != nil {
		t.Fatalf("ValidateSessionToken: %v", err)
	}
	if claims.GameID != "game-1" {
		t.Fatalf("GameID = %q, want game-1", claims.GameID)
	}
}

func TestSessionTokenWrongSecret(t *testing.T) {
	token, _ := GenerateSessionToken("secret", "game-1", time.Hour)
	if _, err := ValidateSessionToken("other", token); err == nil {
		t.Fatalf("token validated with the wrong secret")
	}
}

func TestSessionTokenExpired(t *testing.T) {
	token, _ := GenerateSessionToken("secret", "game-1", -time.Minute)
	if _, err := ValidateSessionToken("secret", token); err == nil {
		t.Fatalf("expired token validated")
	}
}

func TestSessionTokenGarbage(t *testing.T) {
	if _, err := ValidateSessionToken("secret", "not-a-token"); err == nil {
		t.Fatalf("garbage validated")
	}
}
