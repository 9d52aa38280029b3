package server

import (
	"time"

	"lumen/internal/middleware"
	"lumen/internal/models"

	"github.com/gofiber/fiber/v2"
)

const tokenTTL = 24 * time.Hour

// Login handles POST /api/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Authenticate(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	token, err := middleware.GenerateToken(user.ID, tokenTTL)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"token":    token,
		"userId":   user.ID,
		"username": user.Username,
	})
}
