package server

import (
	"lumen/internal/models"

	"github.com/gofiber/fiber/v2"
)

// FollowUser handles POST /api/users/:id/follow. The authenticated user
// becomes a follower of the user in the path.
func (s *Server) FollowUser(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.followerService.Follow(c.UserContext(), targetID, currentUserID(c)); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// UnfollowUser handles DELETE /api/users/:id/follow
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.followerService.Unfollow(c.UserContext(), targetID, currentUserID(c)); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetFollowers handles GET /api/users/:id/followers
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	followers, err := s.followerService.ListFollowers(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(followers)
}

// GetFollowing handles GET /api/users/:id/following
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	following, err := s.followerService.ListFollowing(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(following)
}

// GetFollowerCount handles GET /api/users/:id/followers/count
func (s *Server) GetFollowerCount(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	count, err := s.followerService.FollowerCount(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"userId": userID, "followers": count})
}
