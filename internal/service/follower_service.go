package service

import (
	"context"

	"lumen/internal/models"
	"lumen/internal/observability"
	"lumen/internal/repository"
	"lumen/internal/views"
)

type FollowerService struct {
	followerRepo repository.FollowerRepository
	userRepo     repository.UserRepository
}

func NewFollowerService(followerRepo repository.FollowerRepository, userRepo repository.UserRepository) *FollowerService {
	return &FollowerService{followerRepo: followerRepo, userRepo: userRepo}
}

// Follow records that followerID now follows userID. Both users are checked
// independently so the error names the missing one.
func (s *FollowerService) Follow(ctx context.Context, userID, followerID uint) error {
	if userID == followerID {
		return models.NewValidationError("Users cannot follow themselves")
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}
	if _, err := s.userRepo.GetByID(ctx, followerID); err != nil {
		return err
	}

	exists, err := s.followerRepo.Exists(ctx, userID, followerID)
	if err != nil {
		return err
	}
	if exists {
		return models.NewConflictError("Already following this user")
	}

	if err := s.followerRepo.Create(ctx, userID, followerID); err != nil {
		return err
	}
	observability.FollowEvents.WithLabelValues("follow").Inc()
	return nil
}

// Unfollow removes the follow edge. A missing edge reports NotFound.
func (s *FollowerService) Unfollow(ctx context.Context, userID, followerID uint) error {
	if err := s.followerRepo.Delete(ctx, userID, followerID); err != nil {
		return err
	}
	observability.FollowEvents.WithLabelValues("unfollow").Inc()
	return nil
}

// ListFollowers returns the users following userID.
func (s *FollowerService) ListFollowers(ctx context.Context, userID uint) ([]views.FollowerView, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	users, err := s.followerRepo.ListFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	return views.BuildFollowerViews(users), nil
}

// ListFollowing returns the users that followerID follows.
func (s *FollowerService) ListFollowing(ctx context.Context, followerID uint) ([]views.FollowerView, error) {
	if _, err := s.userRepo.GetByID(ctx, followerID); err != nil {
		return nil, err
	}
	users, err := s.followerRepo.ListFollowing(ctx, followerID)
	if err != nil {
		return nil, err
	}
	return views.BuildFollowerViews(users), nil
}

// FollowerCount returns the number of users following userID.
func (s *FollowerService) FollowerCount(ctx context.Context, userID uint) (int64, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return 0, err
	}
	return s.followerRepo.CountFollowers(ctx, userID)
}
