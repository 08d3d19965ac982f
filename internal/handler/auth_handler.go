package handler

import (
	"secquiz/internal/domain"
	"secquiz/internal/dto"
	"secquiz/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles admin authentication
type AuthHandler struct {
	service service.AuthService
}

func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login godoc
// @Summary Admin login
// @Description Exchanges the admin password for a dashboard access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /admin/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	token, err := h.service.Login(req.Password)
	if err != nil {
		return err
	}
	return c.JSON(token)
}
