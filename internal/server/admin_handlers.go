package server

import (
	"lumen/internal/models"
	"lumen/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AdminListUsers handles GET /api/admin/users
func (s *Server) AdminListUsers(c *fiber.Ctx) error {
	users, err := s.adminService.ListUsers(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(users)
}

// AdminCreateUser handles POST /api/admin/users
func (s *Server) AdminCreateUser(c *fiber.Ctx) error {
	var req struct {
		Username  string `json:"username"`
		Password  string `json:"password"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
		RoleID    uint   `json:"roleId"`
		RankID    uint   `json:"rankId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	in := service.AdminCreateUserInput{
		ActorID:   currentUserID(c),
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		RoleID:    req.RoleID,
		RankID:    req.RankID,
	}
	view, err := s.adminService.CreateUser(c.UserContext(), in)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// AdminDeleteUser handles DELETE /api/admin/users/:id
func (s *Server) AdminDeleteUser(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.adminService.DeleteUser(c.UserContext(), currentUserID(c), targetID); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AdminListTags handles GET /api/admin/tags
func (s *Server) AdminListTags(c *fiber.Ctx) error {
	tags, err := s.adminService.ListTags(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(tags)
}

// AdminCreateTag handles POST /api/admin/tags
func (s *Server) AdminCreateTag(c *fiber.Ctx) error {
	var req struct {
		TagName string `json:"tagName"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	tag, err := s.adminService.CreateTag(c.UserContext(), currentUserID(c), req.TagName)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tag)
}

// AdminDeleteTag handles DELETE /api/admin/tags/:id
func (s *Server) AdminDeleteTag(c *fiber.Ctx) error {
	tagID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.adminService.DeleteTag(c.UserContext(), currentUserID(c), tagID); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AdminListCategories handles GET /api/admin/categories
func (s *Server) AdminListCategories(c *fiber.Ctx) error {
	categories, err := s.adminService.ListCategories(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(categories)
}

// AdminDeleteCategory handles DELETE /api/admin/categories/:id
func (s *Server) AdminDeleteCategory(c *fiber.Ctx) error {
	categoryID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.adminService.DeleteCategory(c.UserContext(), currentUserID(c), categoryID); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AdminListReactions handles GET /api/admin/reactions
func (s *Server) AdminListReactions(c *fiber.Ctx) error {
	reactions, err := s.adminService.ListReactions(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(reactions)
}

// AdminListRoles handles GET /api/admin/roles
func (s *Server) AdminListRoles(c *fiber.Ctx) error {
	roles, err := s.adminService.ListRoles(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(roles)
}
