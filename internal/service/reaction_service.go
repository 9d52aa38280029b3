package service

import (
	"context"

	"lumen/internal/models"
	"lumen/internal/observability"
	"lumen/internal/repository"
)

type ReactionService struct {
	reactionRepo repository.ReactionRepository
	postRepo     repository.PostRepository
	userRepo     repository.UserRepository
}

func NewReactionService(
	reactionRepo repository.ReactionRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
) *ReactionService {
	return &ReactionService{
		reactionRepo: reactionRepo,
		postRepo:     postRepo,
		userRepo:     userRepo,
	}
}

// React records a user's reaction to a post. A user holds at most one
// reaction per post; reacting again with a different kind replaces it.
func (s *ReactionService) React(ctx context.Context, userID, postID, reactionID uint) (*models.PostReaction, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	if _, err := s.reactionRepo.GetByID(ctx, reactionID); err != nil {
		return nil, err
	}

	existing, err := s.reactionRepo.GetPostReaction(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.ReactionID == reactionID {
			return nil, models.NewConflictError("Post already has this reaction from the user")
		}
		if err := s.reactionRepo.RemovePostReaction(ctx, existing.ID); err != nil {
			return nil, err
		}
	}

	pr := &models.PostReaction{
		PostID:     postID,
		UserID:     userID,
		ReactionID: reactionID,
	}
	if err := s.reactionRepo.AddPostReaction(ctx, pr); err != nil {
		return nil, err
	}
	observability.ReactionEvents.WithLabelValues("add").Inc()
	return pr, nil
}

// Unreact removes the user's reaction from a post. A missing reaction
// reports NotFound.
func (s *ReactionService) Unreact(ctx context.Context, userID, postID uint) error {
	existing, err := s.reactionRepo.GetPostReaction(ctx, userID, postID)
	if err != nil {
		return err
	}
	if existing == nil {
		return models.NewNotFoundMessageError("Reaction not found for this user and post")
	}
	if err := s.reactionRepo.RemovePostReaction(ctx, existing.ID); err != nil {
		return err
	}
	observability.ReactionEvents.WithLabelValues("remove").Inc()
	return nil
}
