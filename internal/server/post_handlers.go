package server

import (
	"io"
	"strconv"
	"strings"

	"lumen/internal/models"
	"lumen/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts. The request is multipart: post fields
// arrive as form values, the media payload (if any) as the "media" file part.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := currentUserID(c)

	in := service.CreatePostInput{
		UserID:      userID,
		Title:       c.FormValue("title"),
		ShortTitle:  c.FormValue("shortTitle"),
		Description: c.FormValue("description"),
		Location:    c.FormValue("location"),
		Longitude:   c.FormValue("longitude"),
		Latitude:    c.FormValue("latitude"),
		Type:        c.FormValue("type"),
		VideoYtbURL: c.FormValue("videoYtbUrl"),
		ImageURL:    c.FormValue("imageUrl"),
		TagIDs:      parseIDList(c.FormValue("tagIds")),
		CategoryIDs: parseIDList(c.FormValue("categoryIds")),
	}

	if file, err := c.FormFile("media"); err == nil && file != nil {
		src, err := file.Open()
		if err != nil {
			return models.RespondWithError(c, models.NewInternalError(err))
		}
		defer src.Close()
		data, err := io.ReadAll(src)
		if err != nil {
			return models.RespondWithError(c, models.NewInternalError(err))
		}
		in.MediaSource = data
		in.Size = float64(file.Size)
	}

	view, err := s.postService.CreatePost(c.UserContext(), in)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// GetPosts handles GET /api/posts?page=&tagId=&categoryId=
func (s *Server) GetPosts(c *fiber.Ctx) error {
	currentID, _ := s.optionalUserID(c)
	in := service.ListPostsInput{
		Page:          parsePage(c),
		TagID:         queryUintPtr(c, "tagId"),
		CategoryID:    queryUintPtr(c, "categoryId"),
		CurrentUserID: currentID,
	}

	posts, err := s.postService.ListPosts(c.UserContext(), in)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	currentID, _ := s.optionalUserID(c)

	post, err := s.postService.GetPost(c.UserContext(), id, currentID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(post)
}

// GetPostMedia handles GET /api/posts/:id/media, serving the raw payload
// with its stored content type.
func (s *Server) GetPostMedia(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	media, err := s.postService.GetMedia(c.UserContext(), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if media.Type != "" {
		c.Set(fiber.HeaderContentType, media.Type)
	}
	return c.Send(media.MediaSource)
}

// IncrementPostViews handles POST /api/posts/:id/views
func (s *Server) IncrementPostViews(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.postService.IncrementViews(c.UserContext(), id); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetUserPosts handles GET /api/users/:id/posts
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	posts, err := s.postService.ListUserPosts(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(posts)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	in := service.DeletePostInput{UserID: currentUserID(c), PostID: id}
	if err := s.postService.DeletePost(c.UserContext(), in); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parseIDList splits a comma-separated id list form value. Malformed entries
// are dropped rather than failing the whole request; the service validates
// the surviving ids against the database.
func parseIDList(raw string) []uint {
	if raw == "" {
		return nil
	}
	var ids []uint
	for _, part := range strings.Split(raw, ",") {
		v, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil || v == 0 {
			continue
		}
		ids = append(ids, uint(v))
	}
	return ids
}
