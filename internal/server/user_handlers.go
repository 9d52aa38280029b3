package server

import (
	"io"

	"lumen/internal/models"
	"lumen/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	profile, err := s.userService.GetProfile(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(profile)
}

// GetUserProfile handles GET /api/users/:id. The literal "me" segment
// belongs to the authenticated profile routes registered after this one.
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	if c.Params("id") == "me" {
		return c.Next()
	}
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	profile, err := s.userService.GetProfile(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(profile)
}

// SearchUsers handles GET /api/users/search?q=
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	results, err := s.userService.Search(c.UserContext(), c.Query("q"))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(results)
}

// GetUserAvatar handles GET /api/users/:id/avatar
func (s *Server) GetUserAvatar(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	img, err := s.userService.GetAvatar(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if img.ContentType != "" {
		c.Set(fiber.HeaderContentType, img.ContentType)
	}
	return c.Send(img.Source)
}

// GetUserCoverImage handles GET /api/users/:id/cover
func (s *Server) GetUserCoverImage(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	img, err := s.userService.GetCoverImage(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if img.ContentType != "" {
		c.Set(fiber.HeaderContentType, img.ContentType)
	}
	return c.Send(img.Source)
}

// GetMyReactedPosts handles GET /api/users/me/reactions
func (s *Server) GetMyReactedPosts(c *fiber.Ctx) error {
	reacted, err := s.userService.ListReactedPosts(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(reacted)
}

// GetMyFeatureFlags handles GET /api/users/me/features, returning the flag
// set as evaluated for the authenticated user so clients can gate UI.
func (s *Server) GetMyFeatureFlags(c *fiber.Ctx) error {
	return c.JSON(s.flags.Snapshot(currentUserID(c)))
}

// UpdateMyTextField handles PATCH /api/users/me/text
func (s *Server) UpdateMyTextField(c *fiber.Ctx) error {
	var req struct {
		Field string `json:"field"`
		Value string `json:"value"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	if err := s.userService.UpdateTextField(c.UserContext(), currentUserID(c), req.Field, req.Value); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateMyNumericField handles PATCH /api/users/me/numeric
func (s *Server) UpdateMyNumericField(c *fiber.Ctx) error {
	var req struct {
		Field string `json:"field"`
		Value uint   `json:"value"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	if err := s.userService.UpdateNumericField(c.UserContext(), currentUserID(c), req.Field, req.Value); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateMyPassword handles PUT /api/users/me/password
func (s *Server) UpdateMyPassword(c *fiber.Ctx) error {
	var req struct {
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	if err := s.userService.UpdatePassword(c.UserContext(), currentUserID(c), req.Password); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateMyAvatar handles PUT /api/users/me/avatar (multipart, "image" part)
func (s *Server) UpdateMyAvatar(c *fiber.Ctx) error {
	return s.updateImage(c, service.ImageKindAvatar)
}

// UpdateMyCoverImage handles PUT /api/users/me/cover (multipart, "image" part)
func (s *Server) UpdateMyCoverImage(c *fiber.Ctx) error {
	return s.updateImage(c, service.ImageKindCover)
}

func (s *Server) updateImage(c *fiber.Ctx, kind service.ImageKind) error {
	file, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c, models.NewValidationError("Image file is required"))
	}
	src, err := file.Open()
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	contentType := file.Header.Get(fiber.HeaderContentType)
	if err := s.userService.UpdateImage(c.UserContext(), currentUserID(c), kind, contentType, data); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
