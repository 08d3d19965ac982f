package service

import (
	"testing"
	"time"

	"secquiz/internal/config"
	"secquiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		AdminPassword: "s3cret",
		JWTSecret:     "0123456789abcdef0123456789abcdef",
		TokenTTL:      time.Hour,
	}
}

func TestAuthService_LoginAndValidate(t *testing.T) {
	svc, err := NewAuthService(testAuthConfig())
	require.NoError(t, err)

	resp, err := svc.Login("s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, int64(3600), resp.ExpiresIn)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.TokenType)
	assert.Equal(t, "admin", claims.Subject)
}

func TestAuthService_WrongPassword(t *testing.T) {
	svc, err := NewAuthService(testAuthConfig())
	require.NoError(t, err)

	_, err = svc.Login("guess")

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrUnauthorized, domainErr.Code)
}

func TestAuthService_TamperedToken(t *testing.T) {
	svc, err := NewAuthService(testAuthConfig())
	require.NoError(t, err)

	resp, err := svc.Login("s3cret")
	require.NoError(t, err)

	_, err = svc.ValidateToken(resp.AccessToken + "x")
	assert.ErrorIs(t, err, ErrInvalidJWTToken)
}

func TestAuthService_TokenFromOtherSecretRejected(t *testing.T) {
	svcA, err := NewAuthService(testAuthConfig())
	require.NoError(t, err)

	otherCfg := testAuthConfig()
	otherCfg.JWTSecret = "ffffffffffffffffffffffffffffffff"
	svcB, err := NewAuthService(otherCfg)
	require.NoError(t, err)

	resp, err := svcA.Login("s3cret")
	require.NoError(t, err)

	_, err = svcB.ValidateToken(resp.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidJWTToken)
}

func TestAuthService_GeneratesSecretWhenMissing(t *testing.T) {
	cfg := testAuthConfig()
	cfg.JWTSecret = ""

	svc, err := NewAuthService(cfg)
	require.NoError(t, err)

	// tokens still work within the process
	resp, err := svc.Login("s3cret")
	require.NoError(t, err)
	_, err = svc.ValidateToken(resp.AccessToken)
	assert.NoError(t, err)
}

func TestAuthService_RequiresAdminPassword(t *testing.T) {
	cfg := testAuthConfig()
	cfg.AdminPassword = ""

	_, err := NewAuthService(cfg)
	assert.Error(t, err)
}

func TestAuthService_ExpiredToken(t *testing.T) {
	cfg := testAuthConfig()
	cfg.TokenTTL = -time.Minute

	svc, err := NewAuthService(cfg)
	require.NoError(t, err)

	resp, err := svc.Login("s3cret")
	require.NoError(t, err)

	_, err = svc.ValidateToken(resp.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidJWTToken)
}
