package service

import (
	"context"
	"strings"

	"lumen/internal/cache"
	"lumen/internal/middleware"
	"lumen/internal/models"
	"lumen/internal/repository"
	"lumen/internal/views"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepo     repository.UserRepository
	reactionRepo repository.ReactionRepository
}

func NewUserService(userRepo repository.UserRepository, reactionRepo repository.ReactionRepository) *UserService {
	return &UserService{userRepo: userRepo, reactionRepo: reactionRepo}
}

// Authenticate verifies the username (case-insensitively) and password and
// returns the matching user. Credential failures are indistinguishable from
// unknown users on purpose.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, models.NewValidationError("Username and password are required")
	}

	user, err := s.userRepo.GetByUsernameInsensitive(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewForbiddenError("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewForbiddenError("Invalid credentials")
	}
	return user, nil
}

// GetProfile returns a user's profile with their posts, cached briefly.
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*views.ProfileView, error) {
	var profile views.ProfileView
	err := cache.Aside(ctx, cache.UserKey(userID), &profile, cache.UserTTL, func() error {
		user, fetchErr := s.userRepo.GetProfile(ctx, userID)
		if fetchErr != nil {
			return fetchErr
		}
		profile = views.BuildProfileView(user)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Search finds users whose full name contains the query, case-insensitively.
func (s *UserService) Search(ctx context.Context, query string) ([]views.UserSummaryView, error) {
	if strings.TrimSpace(query) == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	users, err := s.userRepo.SearchByFullName(ctx, query)
	if err != nil {
		return nil, err
	}
	out := make([]views.UserSummaryView, 0, len(users))
	for i := range users {
		out = append(out, views.BuildUserSummaryView(&users[i]))
	}
	return out, nil
}

// GetAvatar returns the raw profile photo bytes for a user.
func (s *UserService) GetAvatar(ctx context.Context, userID uint) (*repository.UserImage, error) {
	img, err := s.userRepo.GetAvatar(ctx, userID)
	if err != nil {
		return nil, err
	}
	middleware.MediaServed.WithLabelValues("avatar").Inc()
	return img, nil
}

// GetCoverImage returns the raw cover image bytes for a user.
func (s *UserService) GetCoverImage(ctx context.Context, userID uint) (*repository.UserImage, error) {
	img, err := s.userRepo.GetCoverImage(ctx, userID)
	if err != nil {
		return nil, err
	}
	middleware.MediaServed.WithLabelValues("cover").Inc()
	return img, nil
}

// ListReactedPosts returns the posts the user has reacted to, with the
// reaction type alongside each post id.
func (s *UserService) ListReactedPosts(ctx context.Context, userID uint) ([]views.ReactedPostView, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	reactions, err := s.reactionRepo.ListReactedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return views.BuildReactedPostViews(reactions), nil
}

// textFields maps the JSON field names accepted by UpdateTextField to their
// database columns.
var textFields = map[string]string{
	"firstName":   "first_name",
	"lastName":    "last_name",
	"email":       "email",
	"phone":       "phone",
	"description": "description",
	"username":    "username",
}

// UpdateTextField updates a single text attribute of the user. Unknown field
// names are rejected rather than ignored.
func (s *UserService) UpdateTextField(ctx context.Context, userID uint, field, value string) error {
	column, ok := textFields[field]
	if !ok {
		return models.NewValidationError("Unknown text field: " + field)
	}

	if field == "username" {
		if strings.TrimSpace(value) == "" {
			return models.NewValidationError("Username must not be empty")
		}
		existing, err := s.userRepo.GetByUsernameInsensitive(ctx, value)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != userID {
			return models.NewConflictError("Username is already taken")
		}
	}

	if err := s.userRepo.UpdateFields(ctx, userID, map[string]interface{}{column: value}); err != nil {
		return err
	}
	cache.InvalidateUser(ctx, userID)
	return nil
}

// numericFields maps the JSON field names accepted by UpdateNumericField to
// their database columns.
var numericFields = map[string]string{
	"rankId": "rank_id",
}

// UpdateNumericField updates a single numeric attribute of the user.
func (s *UserService) UpdateNumericField(ctx context.Context, userID uint, field string, value uint) error {
	column, ok := numericFields[field]
	if !ok {
		return models.NewValidationError("Unknown numeric field: " + field)
	}
	if err := s.userRepo.UpdateFields(ctx, userID, map[string]interface{}{column: value}); err != nil {
		return err
	}
	cache.InvalidateUser(ctx, userID)
	return nil
}

// UpdatePassword replaces the user's password with a bcrypt hash of the new one.
func (s *UserService) UpdatePassword(ctx context.Context, userID uint, newPassword string) error {
	const minPasswordLen = 8
	if len(newPassword) < minPasswordLen {
		return models.NewValidationError("Password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}
	return s.userRepo.UpdateFields(ctx, userID, map[string]interface{}{"password": string(hash)})
}

// ImageKind selects which of a user's two image slots an update targets.
type ImageKind string

const (
	ImageKindAvatar ImageKind = "avatar"
	ImageKindCover  ImageKind = "cover"
)

// UpdateImage replaces the user's avatar or cover image payload.
func (s *UserService) UpdateImage(ctx context.Context, userID uint, kind ImageKind, contentType string, data []byte) error {
	if len(data) == 0 {
		return models.NewValidationError("Image payload is required")
	}
	if !strings.HasPrefix(contentType, "image/") {
		return models.NewValidationError("Content type must be an image MIME type")
	}

	var fields map[string]interface{}
	switch kind {
	case ImageKindAvatar:
		fields = map[string]interface{}{"img_type": contentType, "photo_source": data}
	case ImageKindCover:
		fields = map[string]interface{}{"cover_image_type": contentType, "cover_image_source": data}
	default:
		return models.NewValidationError("Unknown image kind: " + string(kind))
	}

	if err := s.userRepo.UpdateFields(ctx, userID, fields); err != nil {
		return err
	}
	cache.InvalidateUser(ctx, userID)
	return nil
}
