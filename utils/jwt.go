package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// TokenManager signs and verifies the access and refresh tokens.
type TokenManager struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	now           func() time.Time
}

func NewTokenManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		AccessSecret:  []byte(accessSecret),
		RefreshSecret: []byte(refreshSecret),
		AccessTTL:     accessTTL,
		RefreshTTL:    refreshTTL,
		now:           time.Now,
	}
}

// AccessToken issues a token carrying the user id and role.
func (m *TokenManager) AccessToken(userID, role string) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID,
		"role":   role,
		"iat":    m.now().Unix(),
		"exp":    m.now().Add(m.AccessTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.AccessSecret)
}

// RefreshToken issues a token carrying only the user id.
func (m *TokenManager) RefreshToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID,
		"iat":    m.now().Unix(),
		"exp":    m.now().Add(m.RefreshTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.RefreshSecret)
}

// ParseRefresh verifies a refresh token and returns the user id it names.
func (m *TokenManager) ParseRefresh(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.RefreshSecret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token claims")
	}
	return ClaimString(claims, "userId")
}

// ClaimString reads a non-empty string claim.
func ClaimString(claims jwt.MapClaims, key string) (string, error) {
	v, ok := claims[key]
	if !ok || v == nil {
		return "", fmt.Errorf("no %s found in claims", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("unsupported %s type: %T", key, v)
	}
	if s == "" {
		return "", fmt.Errorf("empty %s in claims", key)
	}
	return s, nil
}
