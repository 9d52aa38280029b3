package server

import (
	"lumen/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ReactToPost handles POST /api/posts/:id/reactions
func (s *Server) ReactToPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		ReactionID uint `json:"reactionId"`
	}
	if err := c.BodyParser(&req); err != nil || req.ReactionID == 0 {
		return models.RespondWithError(c, models.NewValidationError("reactionId is required"))
	}

	pr, err := s.reactionService.React(c.UserContext(), currentUserID(c), postID, req.ReactionID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(pr)
}

// UnreactToPost handles DELETE /api/posts/:id/reactions
func (s *Server) UnreactToPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.reactionService.Unreact(c.UserContext(), currentUserID(c), postID); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
