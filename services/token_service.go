package services

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"rleomotos-api/config"
	"rleomotos-api/models"
)

// AuthClaims is the payload carried by both access and refresh tokens.
type AuthClaims struct {
	Email string   `json:"email"`
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// UserID parses the numeric subject claim.
func (c *AuthClaims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid subject claim: %w", err)
	}
	return uint(id), nil
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// TokenService signs and verifies JWT pairs. Access and refresh tokens use
// distinct secrets and TTLs.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{
		accessSecret:  []byte(cfg.JWTAccessSecret),
		refreshSecret: []byte(cfg.JWTRefreshSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
	}
}

func (ts *TokenService) RefreshTTL() time.Duration {
	return ts.refreshTTL
}

// IssuePair signs an access/refresh token pair for the user.
func (ts *TokenService) IssuePair(user *models.User, roles []string) (*TokenPair, error) {
	now := time.Now()

	access, err := ts.sign(user, roles, ts.accessSecret, now, ts.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := ts.sign(user, roles, ts.refreshSecret, now, ts.refreshTTL)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (ts *TokenService) sign(user *models.User, roles []string, secret []byte, now time.Time, ttl time.Duration) (string, error) {
	claims := AuthClaims{
		Email: user.Email,
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			// A unique ID keeps two tokens signed within the same second
			// from being byte-identical, which rotation relies on.
			ID:        uuid.NewString(),
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// VerifyAccess validates an access token and returns its claims.
func (ts *TokenService) VerifyAccess(tokenString string) (*AuthClaims, error) {
	return ts.verify(tokenString, ts.accessSecret)
}

// VerifyRefresh validates a refresh token and returns its claims.
func (ts *TokenService) VerifyRefresh(tokenString string) (*AuthClaims, error) {
	return ts.verify(tokenString, ts.refreshSecret)
}

func (ts *TokenService) verify(tokenString string, secret []byte) (*AuthClaims, error) {
	claims := &AuthClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, Unauthorized("Invalid or expired token")
	}
	return claims, nil
}
