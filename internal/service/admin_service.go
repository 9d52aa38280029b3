package service

import (
	"context"
	"strings"

	"lumen/internal/cache"
	"lumen/internal/models"
	"lumen/internal/repository"
	"lumen/internal/views"

	"golang.org/x/crypto/bcrypt"
)

// AdminService hosts the role-gated operations. Every entry point verifies
// the acting user first: a missing actor reports NotFound before any
// Forbidden decision is made.
type AdminService struct {
	userRepo     repository.UserRepository
	tagRepo      repository.TagRepository
	categoryRepo repository.CategoryRepository
	reactionRepo repository.ReactionRepository
	roleRepo     repository.RoleRepository
}

type AdminCreateUserInput struct {
	ActorID   uint
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
	RoleID    uint
	RankID    uint
}

func NewAdminService(
	userRepo repository.UserRepository,
	tagRepo repository.TagRepository,
	categoryRepo repository.CategoryRepository,
	reactionRepo repository.ReactionRepository,
	roleRepo repository.RoleRepository,
) *AdminService {
	return &AdminService{
		userRepo:     userRepo,
		tagRepo:      tagRepo,
		categoryRepo: categoryRepo,
		reactionRepo: reactionRepo,
		roleRepo:     roleRepo,
	}
}

// requireAdmin loads the actor with their role and rejects non-admins.
// The existence check runs strictly before the role check.
func (s *AdminService) requireAdmin(ctx context.Context, actorID uint) (*models.User, error) {
	actor, err := s.userRepo.GetWithRole(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor.Role == nil || actor.Role.RoleName != models.AdminRoleName {
		return nil, models.NewForbiddenError("Admin role required")
	}
	return actor, nil
}

// IsAdmin reports whether the user exists and holds the admin role.
func (s *AdminService) IsAdmin(ctx context.Context, userID uint) (bool, error) {
	user, err := s.userRepo.GetWithRole(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.Role != nil && user.Role.RoleName == models.AdminRoleName, nil
}

// ListUsers returns every user except the acting admin, newest first.
func (s *AdminService) ListUsers(ctx context.Context, actorID uint) ([]views.UserView, error) {
	if _, err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	users, err := s.userRepo.ListForAdmin(ctx, actorID)
	if err != nil {
		return nil, err
	}
	return views.BuildUserViews(users), nil
}

// CreateUser provisions an account with a hashed password and the given role.
func (s *AdminService) CreateUser(ctx context.Context, in AdminCreateUserInput) (*views.UserView, error) {
	if _, err := s.requireAdmin(ctx, in.ActorID); err != nil {
		return nil, err
	}

	if strings.TrimSpace(in.Username) == "" {
		return nil, models.NewValidationError("Username is required")
	}
	if len(in.Password) < 8 {
		return nil, models.NewValidationError("Password must be at least 8 characters")
	}

	existing, err := s.userRepo.GetByUsernameInsensitive(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Username is already taken")
	}

	if _, err := s.roleRepo.GetByID(ctx, in.RoleID); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username:  in.Username,
		Password:  string(hash),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		RoleID:    in.RoleID,
		RankID:    in.RankID,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	created, err := s.userRepo.GetWithRole(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	view := views.BuildUserView(created)
	return &view, nil
}

// DeleteUser removes an account and all rows that depend on it.
func (s *AdminService) DeleteUser(ctx context.Context, actorID, targetID uint) error {
	if _, err := s.requireAdmin(ctx, actorID); err != nil {
		return err
	}
	if actorID == targetID {
		return models.NewValidationError("Admins cannot delete their own account")
	}
	if err := s.userRepo.Delete(ctx, targetID); err != nil {
		return err
	}
	cache.InvalidateUser(ctx, targetID)
	cache.InvalidatePostsList(ctx)
	return nil
}

// CreateTag adds a tag, enforcing case-insensitive name uniqueness.
func (s *AdminService) CreateTag(ctx context.Context, actorID uint, tagName string) (*models.Tag, error) {
	if _, err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(tagName) == "" {
		return nil, models.NewValidationError("Tag name is required")
	}

	existing, err := s.tagRepo.GetByNameInsensitive(ctx, tagName)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Tag name already exists")
	}

	tag := &models.Tag{TagName: tagName}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// DeleteTag removes a tag and detaches it from every post.
func (s *AdminService) DeleteTag(ctx context.Context, actorID, tagID uint) error {
	if _, err := s.requireAdmin(ctx, actorID); err != nil {
		return err
	}
	if err := s.tagRepo.Delete(ctx, tagID); err != nil {
		return err
	}
	cache.InvalidatePostsList(ctx)
	return nil
}

// DeleteCategory removes a category and detaches it from every post.
func (s *AdminService) DeleteCategory(ctx context.Context, actorID, categoryID uint) error {
	if _, err := s.requireAdmin(ctx, actorID); err != nil {
		return err
	}
	if err := s.categoryRepo.Delete(ctx, categoryID); err != nil {
		return err
	}
	cache.InvalidatePostsList(ctx)
	return nil
}

// ListTags returns all tags with their attached posts.
func (s *AdminService) ListTags(ctx context.Context, actorID uint) ([]models.Tag, error) {
	if _, err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	return s.tagRepo.ListWithPosts(ctx)
}

// ListCategories returns all categories with their attached posts.
func (s *AdminService) ListCategories(ctx context.Context, actorID uint) ([]models.Category, error) {
	if _, err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	return s.categoryRepo.ListWithPosts(ctx)
}

// ListReactions returns all reaction kinds with their usages.
func (s *AdminService) ListReactions(ctx context.Context, actorID uint) ([]models.Reaction, error) {
	if _, err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	return s.reactionRepo.ListWithPostReactions(ctx)
}

// ListRoles returns all roles with their members.
func (s *AdminService) ListRoles(ctx context.Context, actorID uint) ([]models.Role, error) {
	if _, err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	return s.roleRepo.ListWithUsers(ctx)
}
