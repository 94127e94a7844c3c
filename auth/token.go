// Package auth issues and verifies JWT token pairs for the blog API.
// An access/refresh pair carries user_id and username claims, the
// refresh token can only be exchanged for a new access token.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/masnyjimmy/blogapi/blog"
)

var (
	ErrInvalidToken  = errors.New("token is invalid or expired")
	ErrWrongTokenUse = errors.New("unexpected token type")
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

type Claims struct {
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	Access  string
	Refresh string
}

// Manager signs and verifies tokens with a single HMAC secret.
type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewManager(secret string, accessTTL, refreshTTL time.Duration) *Manager {
	return &Manager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (m *Manager) sign(user blog.User, tokenType string, ttl time.Duration) (string, error) {
	now := m.now()

	claims := Claims{
		UserID:    user.ID,
		Username:  user.Username,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// IssuePair returns a fresh access/refresh pair for the user.
func (m *Manager) IssuePair(user blog.User) (TokenPair, error) {
	access, err := m.sign(user, TokenTypeAccess, m.accessTTL)

	if err != nil {
		return TokenPair{}, err
	}

	refresh, err := m.sign(user, TokenTypeRefresh, m.refreshTTL)

	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{Access: access, Refresh: refresh}, nil
}

func (m *Manager) parse(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))

	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Verify checks an access token and returns its claims.
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	claims, err := m.parse(tokenString)

	if err != nil {
		return nil, err
	}

	if claims.TokenType != TokenTypeAccess {
		return nil, ErrWrongTokenUse
	}

	return claims, nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (m *Manager) Refresh(refreshToken string) (string, error) {
	claims, err := m.parse(refreshToken)

	if err != nil {
		return "", err
	}

	if claims.TokenType != TokenTypeRefresh {
		return "", ErrWrongTokenUse
	}

	user := blog.User{ID: claims.UserID, Username: claims.Username}

	return m.sign(user, TokenTypeAccess, m.accessTTL)
}
