package server

import (
	"lumen/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AddBookmark handles POST /api/bookmarks
func (s *Server) AddBookmark(c *fiber.Ctx) error {
	var req struct {
		PostID uint `json:"postId"`
	}
	if err := c.BodyParser(&req); err != nil || req.PostID == 0 {
		return models.RespondWithError(c, models.NewValidationError("postId is required"))
	}

	view, err := s.bookmarkService.AddBookmark(c.UserContext(), currentUserID(c), req.PostID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// GetBookmarkedPosts handles GET /api/bookmarks?page=
func (s *Server) GetBookmarkedPosts(c *fiber.Ctx) error {
	posts, err := s.bookmarkService.ListBookmarkedPosts(c.UserContext(), currentUserID(c), parsePage(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(posts)
}

// DeleteBookmark handles DELETE /api/bookmarks/:id
func (s *Server) DeleteBookmark(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.bookmarkService.DeleteBookmark(c.UserContext(), currentUserID(c), id); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
