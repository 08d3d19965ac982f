package middleware_test

import (
	"errors"
	"net/http/httptest"
	"testing"

	"secquiz/internal/dto"
	"secquiz/internal/middleware"
	"secquiz/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthService struct {
	validateErr error
}

func (s *stubAuthService) Login(password string) (*dto.LoginResponse, error) {
	return nil, errors.New("not used")
}

func (s *stubAuthService) ValidateToken(tokenString string) (*service.AdminClaims, error) {
	if s.validateErr != nil {
		return nil, s.validateErr
	}
	return &service.AdminClaims{TokenType: "admin"}, nil
}

func protectedApp(auth service.AuthService) *fiber.App {
	app := fiber.New()
	app.Get("/admin/summary", middleware.AdminProtected(auth), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestAdminProtected_MissingHeader(t *testing.T) {
	app := protectedApp(&stubAuthService{})

	resp, err := app.Test(httptest.NewRequest("GET", "/admin/summary", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminProtected_WrongScheme(t *testing.T) {
	app := protectedApp(&stubAuthService{})

	req := httptest.NewRequest("GET", "/admin/summary", nil)
	req.Header.Set("Authorization", "Basic abc123")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminProtected_InvalidToken(t *testing.T) {
	app := protectedApp(&stubAuthService{validateErr: service.ErrInvalidJWTToken})

	req := httptest.NewRequest("GET", "/admin/summary", nil)
	req.Header.Set("Authorization", "Bearer bad-token")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminProtected_ValidToken(t *testing.T) {
	app := protectedApp(&stubAuthService{})

	req := httptest.NewRequest("GET", "/admin/summary", nil)
	req.Header.Set("Authorization", "Bearer good-token")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
