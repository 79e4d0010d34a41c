// Package auth verifies HS256 bearer tokens issued to game operators.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/KirkDiggler/mysterybox/internal/common/clock"
	"github.com/golang-jwt/jwt/v4"
)

// RoleAdmin is the role required for admin routes
const RoleAdmin = "admin"

// Verifier checks bearer tokens
type Verifier interface {
	// Verify parses a token and returns its claims
	Verify(token string) (*Claims, error)
}

// Claims are the fields carried by an operator token
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IsAdmin reports whether the token grants admin access
func (c *Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// Config holds configuration for the JWT service
type Config struct {
	Secret string

	// Expiration is the lifetime of issued tokens; defaults to 12 hours
	Expiration time.Duration

	Clock clock.Clock
}

// JWTService issues and verifies HS256 tokens
type JWTService struct {
	secret     []byte
	expiration time.Duration
	clock      clock.Clock
}

// NewJWTService creates a new JWT service
func NewJWTService(cfg *Config) (*JWTService, error) {
	if cfg == nil || cfg.Secret == "" {
		return nil, ErrMissingSecret
	}

	svc := &JWTService{
		secret:     []byte(cfg.Secret),
		expiration: cfg.Expiration,
		clock:      cfg.Clock,
	}
	if svc.expiration <= 0 {
		svc.expiration = 12 * time.Hour
	}
	if svc.clock == nil {
		svc.clock = clock.New()
	}

	return svc, nil
}

// GenerateToken signs a token for the subject with the given role
func (s *JWTService) GenerateToken(subject, role string) (string, error) {
	now := s.clock.Now()
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// Verify parses and validates a token. A leading "Bearer " is stripped.
func (s *JWTService) Verify(token string) (*Claims, error) {
	token = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "Bearer "))
	if token == "" {
		return nil, ErrMissingToken
	}

	claims := &Claims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	parsed, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) {
			switch {
			case ve.Errors&jwt.ValidationErrorMalformed != 0:
				return nil, ErrMalformedToken
			case ve.Errors&jwt.ValidationErrorExpired != 0:
				return nil, ErrExpiredToken
			case ve.Errors&jwt.ValidationErrorSignatureInvalid != 0:
				return nil, ErrInvalidSignature
			}
		}
		return nil, ErrInvalidToken
	}

	if !parsed.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
