package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"secquiz/internal/config"
	"secquiz/internal/domain"
	"secquiz/internal/dto"
	"secquiz/internal/logger"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTypeAdmin = "admin"

var ErrInvalidJWTToken = errors.New("invalid jwt token")

// AdminClaims are the claims carried by an admin session token.
type AdminClaims struct {
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// AuthService guards the teacher dashboard. Login is a plaintext comparison
// against the configured admin password (an acknowledged weakness, kept as
// specified); success issues a short-lived HS256 token for the dashboard
// routes.
type AuthService interface {
	Login(password string) (*dto.LoginResponse, error)
	ValidateToken(tokenString string) (*AdminClaims, error)
}

type authService struct {
	adminPassword string
	secret        []byte
	tokenTTL      time.Duration
}

// NewAuthService creates the dashboard guard. When no JWT secret is
// configured a random per-process one is generated; issued tokens then stop
// working across restarts, which is logged as a warning.
func NewAuthService(authCfg config.AuthConfig) (AuthService, error) {
	if authCfg.AdminPassword == "" {
		return nil, fmt.Errorf("admin password is not configured")
	}
	secret := []byte(authCfg.JWTSecret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("failed to generate session secret: %w", err)
		}
		logger.Get().Warn("No JWT secret configured, using a random per-process secret; admin sessions will not survive restarts")
	}
	ttl := authCfg.TokenTTL
	if ttl == 0 {
		ttl = time.Hour
	}
	return &authService{
		adminPassword: authCfg.AdminPassword,
		secret:        secret,
		tokenTTL:      ttl,
	}, nil
}

func (s *authService) Login(password string) (*dto.LoginResponse, error) {
	// Plaintext comparison, no hashing or rate limiting.
	if password != s.adminPassword {
		return nil, domain.NewUnauthorizedError("Incorrect admin password")
	}

	now := time.Now()
	claims := AdminClaims{
		TokenType: tokenTypeAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, domain.NewInternalError("failed to sign admin token", err)
	}

	return &dto.LoginResponse{
		AccessToken: signed,
		ExpiresIn:   int64(s.tokenTTL.Seconds()),
	}, nil
}

func (s *authService) ValidateToken(tokenString string) (*AdminClaims, error) {
	claims := &AdminClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}
	if !token.Valid || claims.TokenType != tokenTypeAdmin {
		return nil, ErrInvalidJWTToken
	}
	return claims, nil
}
