package utils

import (
	"errors"
	"testing"
	"time"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", 15*time.Minute, 12*time.Hour)

	pair, err := m.GenerateTokens("owner", 42)
	if err != nil {
		t.Fatalf("GenerateTokens() error = %v", err)
	}

	claims, err := m.ValidateToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != 42 || claims.Role != "owner" {
		t.Errorf("claims = %+v", claims)
	}

	if _, err := m.ValidateToken(pair.RefreshToken); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("refresh token accepted as access token, err = %v", err)
	}

	refreshed, err := m.RefreshTokens(pair.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshTokens() error = %v", err)
	}
	if _, err := m.ValidateToken(refreshed.AccessToken); err != nil {
		t.Errorf("refreshed access token invalid: %v", err)
	}

	if _, err := m.RefreshTokens(pair.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("access token accepted for refresh, err = %v", err)
	}
}

func TestTokenManager_Expired(t *testing.T) {
	m := NewTokenManager("test-secret", time.Minute, time.Hour)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Minute) }

	pair, err := m.GenerateTokens("customer", 1)
	if err != nil {
		t.Fatalf("GenerateTokens() error = %v", err)
	}

	m.now = time.Now
	if _, err := m.ValidateToken(pair.AccessToken); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("ValidateToken() error = %v, want ErrTokenExpired", err)
	}
}

func TestTokenManager_WrongSecret(t *testing.T) {
	pair, err := NewTokenManager("a", time.Minute, time.Hour).GenerateTokens("admin", 1)
	if err != nil {
		t.Fatalf("GenerateTokens() error = %v", err)
	}
	if _, err := NewTokenManager("b", time.Minute, time.Hour).ValidateToken(pair.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ValidateToken() error = %v, want ErrInvalidToken", err)
	}
}
