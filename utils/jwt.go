package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/tuonghuynh11/HealthAppAPI/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenKind string

const (
	AccessToken         TokenKind = "access"
	RefreshToken        TokenKind = "refresh"
	EmailVerifyToken    TokenKind = "email_verify"
	ForgotPasswordToken TokenKind = "forgot_password"
)

type Claims struct {
	UserID uint                    `json:"user_id"`
	Role   models.UserRole         `json:"role"`
	Verify models.UserVerifyStatus `json:"verify"`
	Kind   TokenKind               `json:"token_type"`
	jwt.RegisteredClaims
}

func (c *Claims) Caller() Caller {
	return Caller{ID: c.UserID, Role: c.Role, Verify: c.Verify}
}

type TokenConfig struct {
	Secret string
	TTL    time.Duration
}

// TokenManager signs and verifies the four token kinds, each with its own secret.
type TokenManager struct {
	kinds map[TokenKind]TokenConfig
	now   func() time.Time
}

func NewTokenManager(kinds map[TokenKind]TokenConfig) *TokenManager {
	return &TokenManager{kinds: kinds, now: time.Now}
}

func (m *TokenManager) config(kind TokenKind) (TokenConfig, error) {
	cfg, ok := m.kinds[kind]
	if !ok || cfg.Secret == "" {
		return TokenConfig{}, fmt.Errorf("no secret configured for %s token", kind)
	}
	return cfg, nil
}

func (m *TokenManager) Sign(kind TokenKind, c Caller) (string, time.Time, error) {
	cfg, err := m.config(kind)
	if err != nil {
		return "", time.Time{}, err
	}
	exp := m.now().Add(cfg.TTL)
	tok, err := m.SignUntil(kind, c, exp)
	return tok, exp, err
}

// SignUntil signs a token with a fixed expiry; refresh rotation keeps the original one.
func (m *TokenManager) SignUntil(kind TokenKind, c Caller, exp time.Time) (string, error) {
	cfg, err := m.config(kind)
	if err != nil {
		return "", err
	}
	claims := Claims{
		UserID: c.ID,
		Role:   c.Role,
		Verify: c.Verify,
		Kind:   kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(m.now()),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
}

func (m *TokenManager) Parse(kind TokenKind, token string) (*Claims, error) {
	cfg, err := m.config(kind)
	if err != nil {
		return nil, err
	}
	claims := &Claims{}
	_, err = jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, Unauthorized("jwt expired")
		}
		return nil, Unauthorized("invalid token")
	}
	if claims.Kind != kind {
		return nil, Unauthorized("invalid token type")
	}
	return claims, nil
}
