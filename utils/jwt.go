package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token has expired")
)

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Claims is the identity carried by a validated token.
type Claims struct {
	UserID uint
	Role   string
	Type   string
}

// TokenManager issues and validates HS256 access and refresh tokens.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenManager(secret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (m *TokenManager) GenerateTokens(userRole string, userID uint) (*TokenPair, error) {
	access, err := m.sign(userRole, userID, tokenTypeAccess, m.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := m.sign(userRole, userID, tokenTypeRefresh, m.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (m *TokenManager) sign(userRole string, userID uint, typ string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_role": userRole,
		"id":        userID,
		"typ":       typ,
		"exp":       m.now().Add(ttl).Unix(),
	})
	return token.SignedString(m.secret)
}

// ValidateToken parses an access token.
func (m *TokenManager) ValidateToken(tokenString string) (*Claims, error) {
	return m.parse(tokenString, tokenTypeAccess)
}

// RefreshTokens exchanges a valid refresh token for a new pair.
func (m *TokenManager) RefreshTokens(oldRefreshToken string) (*TokenPair, error) {
	claims, err := m.parse(oldRefreshToken, tokenTypeRefresh)
	if err != nil {
		return nil, err
	}
	return m.GenerateTokens(claims.Role, claims.UserID)
}

func (m *TokenManager) parse(tokenString, wantType string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	typ, _ := claims["typ"].(string)
	if typ != wantType {
		return nil, fmt.Errorf("%w: expected %s token", ErrInvalidToken, wantType)
	}
	role, ok := claims["user_role"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: role not found in token", ErrInvalidToken)
	}
	id, ok := claims["id"].(float64)
	if !ok {
		return nil, fmt.Errorf("%w: id not found or invalid type", ErrInvalidToken)
	}

	return &Claims{UserID: uint(id), Role: role, Type: typ}, nil
}
