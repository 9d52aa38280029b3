package service

import (
	"context"
	"testing"

	"lumen/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowSelf(t *testing.T) {
	svc := NewFollowerService(&followerRepoStub{}, &userRepoStub{})

	err := svc.Follow(context.Background(), 1, 1)
	require.Error(t, err)
	assert.Equal(t, models.KindValidation, models.KindOf(err))
}

func TestFollowMissingTarget(t *testing.T) {
	userRepo := &userRepoStub{getByIDFn: missingUser}
	svc := NewFollowerService(&followerRepoStub{}, userRepo)

	err := svc.Follow(context.Background(), 1, 2)
	require.Error(t, err)
	assert.Equal(t, models.KindNotFound, models.KindOf(err))
}

func TestFollowDuplicate(t *testing.T) {
	userRepo := &userRepoStub{getByIDFn: existingUser()}
	followerRepo := &followerRepoStub{
		existsFn: func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
	}
	svc := NewFollowerService(followerRepo, userRepo)

	err := svc.Follow(context.Background(), 1, 2)
	require.Error(t, err)
	assert.Equal(t, models.KindConflict, models.KindOf(err))
}

func TestFollowThenListDirection(t *testing.T) {
	userRepo := &userRepoStub{getByIDFn: existingUser()}

	var createdUserID, createdFollowerID uint
	followerRepo := &followerRepoStub{
		existsFn: func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		createFn: func(_ context.Context, userID, followerID uint) error {
			createdUserID, createdFollowerID = userID, followerID
			return nil
		},
		listFollowersFn: func(_ context.Context, userID uint) ([]models.User, error) {
			if userID == createdUserID {
				return []models.User{{ID: createdFollowerID, FirstName: "Fay", LastName: "Ng"}}, nil
			}
			return nil, nil
		},
	}
	svc := NewFollowerService(followerRepo, userRepo)

	// 2 follows 1; 1's follower list must contain 2.
	require.NoError(t, svc.Follow(context.Background(), 1, 2))
	followers, err := svc.ListFollowers(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, uint(2), followers[0].UserID)
	assert.Equal(t, "Fay Ng", followers[0].FullName)
}

func TestUnfollowMissingEdge(t *testing.T) {
	followerRepo := &followerRepoStub{
		deleteFn: func(_ context.Context, _, _ uint) error {
			return models.NewNotFoundMessageError("Follower edge not found")
		},
	}
	svc := NewFollowerService(followerRepo, &userRepoStub{})

	err := svc.Unfollow(context.Background(), 1, 2)
	require.Error(t, err)
	assert.Equal(t, models.KindNotFound, models.KindOf(err))
}

func TestFollowerCount(t *testing.T) {
	userRepo := &userRepoStub{getByIDFn: existingUser()}
	followerRepo := &followerRepoStub{
		countFollowersFn: func(_ context.Context, _ uint) (int64, error) { return 7, nil },
	}
	svc := NewFollowerService(followerRepo, userRepo)

	count, err := svc.FollowerCount(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
}
