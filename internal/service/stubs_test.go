package service

import (
	"context"

	"lumen/internal/models"
	"lumen/internal/repository"
)

type postRepoStub struct {
	createFn               func(context.Context, *models.Post) error
	replaceTagsFn          func(context.Context, *models.Post, []uint) error
	replaceCategoriesFn    func(context.Context, *models.Post, []uint) error
	getByIDFn              func(context.Context, uint) (*models.Post, error)
	getMediaFn             func(context.Context, uint) (*repository.PostMedia, error)
	listFn                 func(context.Context, repository.PostFilter, int, int) ([]*models.Post, error)
	listByUserIDFn         func(context.Context, uint) ([]*models.Post, error)
	listBookmarkedByUserFn func(context.Context, uint, int, int) ([]*models.Post, error)
	incrementViewsFn       func(context.Context, uint) error
	deleteFn               func(context.Context, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) ReplaceTags(ctx context.Context, post *models.Post, tagIDs []uint) error {
	return s.replaceTagsFn(ctx, post, tagIDs)
}
func (s *postRepoStub) ReplaceCategories(ctx context.Context, post *models.Post, categoryIDs []uint) error {
	return s.replaceCategoriesFn(ctx, post, categoryIDs)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) GetMedia(ctx context.Context, id uint) (*repository.PostMedia, error) {
	return s.getMediaFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context, filter repository.PostFilter, limit, offset int) ([]*models.Post, error) {
	return s.listFn(ctx, filter, limit, offset)
}
func (s *postRepoStub) ListByUserID(ctx context.Context, userID uint) ([]*models.Post, error) {
	return s.listByUserIDFn(ctx, userID)
}
func (s *postRepoStub) ListBookmarkedByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	return s.listBookmarkedByUserFn(ctx, userID, limit, offset)
}
func (s *postRepoStub) IncrementViews(ctx context.Context, id uint) error {
	return s.incrementViewsFn(ctx, id)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

type userRepoStub struct {
	createFn                   func(context.Context, *models.User) error
	getByIDFn                  func(context.Context, uint) (*models.User, error)
	getByUsernameInsensitiveFn func(context.Context, string) (*models.User, error)
	getWithRoleFn              func(context.Context, uint) (*models.User, error)
	getProfileFn               func(context.Context, uint) (*models.User, error)
	getAvatarFn                func(context.Context, uint) (*repository.UserImage, error)
	getCoverImageFn            func(context.Context, uint) (*repository.UserImage, error)
	listForAdminFn             func(context.Context, uint) ([]models.User, error)
	searchByFullNameFn         func(context.Context, string) ([]models.User, error)
	updateFieldsFn             func(context.Context, uint, map[string]interface{}) error
	deleteFn                   func(context.Context, uint) error
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsernameInsensitive(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameInsensitiveFn(ctx, username)
}
func (s *userRepoStub) GetWithRole(ctx context.Context, id uint) (*models.User, error) {
	return s.getWithRoleFn(ctx, id)
}
func (s *userRepoStub) GetProfile(ctx context.Context, id uint) (*models.User, error) {
	return s.getProfileFn(ctx, id)
}
func (s *userRepoStub) GetAvatar(ctx context.Context, id uint) (*repository.UserImage, error) {
	return s.getAvatarFn(ctx, id)
}
func (s *userRepoStub) GetCoverImage(ctx context.Context, id uint) (*repository.UserImage, error) {
	return s.getCoverImageFn(ctx, id)
}
func (s *userRepoStub) ListForAdmin(ctx context.Context, excludeUserID uint) ([]models.User, error) {
	return s.listForAdminFn(ctx, excludeUserID)
}
func (s *userRepoStub) SearchByFullName(ctx context.Context, name string) ([]models.User, error) {
	return s.searchByFullNameFn(ctx, name)
}
func (s *userRepoStub) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return s.updateFieldsFn(ctx, id, fields)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

type tagRepoStub struct {
	createFn               func(context.Context, *models.Tag) error
	getByIDFn              func(context.Context, uint) (*models.Tag, error)
	getByNameInsensitiveFn func(context.Context, string) (*models.Tag, error)
	existAllFn             func(context.Context, []uint) (bool, error)
	listWithPostsFn        func(context.Context) ([]models.Tag, error)
	deleteFn               func(context.Context, uint) error
}

func (s *tagRepoStub) Create(ctx context.Context, tag *models.Tag) error {
	return s.createFn(ctx, tag)
}
func (s *tagRepoStub) GetByID(ctx context.Context, id uint) (*models.Tag, error) {
	return s.getByIDFn(ctx, id)
}
func (s *tagRepoStub) GetByNameInsensitive(ctx context.Context, name string) (*models.Tag, error) {
	return s.getByNameInsensitiveFn(ctx, name)
}
func (s *tagRepoStub) ExistAll(ctx context.Context, ids []uint) (bool, error) {
	return s.existAllFn(ctx, ids)
}
func (s *tagRepoStub) ListWithPosts(ctx context.Context) ([]models.Tag, error) {
	return s.listWithPostsFn(ctx)
}
func (s *tagRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

type categoryRepoStub struct {
	createFn        func(context.Context, *models.Category) error
	getByIDFn       func(context.Context, uint) (*models.Category, error)
	existAllFn      func(context.Context, []uint) (bool, error)
	listWithPostsFn func(context.Context) ([]models.Category, error)
	deleteFn        func(context.Context, uint) error
}

func (s *categoryRepoStub) Create(ctx context.Context, category *models.Category) error {
	return s.createFn(ctx, category)
}
func (s *categoryRepoStub) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	return s.getByIDFn(ctx, id)
}
func (s *categoryRepoStub) ExistAll(ctx context.Context, ids []uint) (bool, error) {
	return s.existAllFn(ctx, ids)
}
func (s *categoryRepoStub) ListWithPosts(ctx context.Context) ([]models.Category, error) {
	return s.listWithPostsFn(ctx)
}
func (s *categoryRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

type bookmarkRepoStub struct {
	createFn           func(context.Context, *models.Bookmark) error
	getByIDFn          func(context.Context, uint) (*models.Bookmark, error)
	getByUserAndPostFn func(context.Context, uint, uint) (*models.Bookmark, error)
	listByPostFn       func(context.Context, uint) ([]models.Bookmark, error)
	listByUserFn       func(context.Context, uint) ([]models.Bookmark, error)
	deleteFn           func(context.Context, uint) error
}

func (s *bookmarkRepoStub) Create(ctx context.Context, bookmark *models.Bookmark) error {
	return s.createFn(ctx, bookmark)
}
func (s *bookmarkRepoStub) GetByID(ctx context.Context, id uint) (*models.Bookmark, error) {
	return s.getByIDFn(ctx, id)
}
func (s *bookmarkRepoStub) GetByUserAndPost(ctx context.Context, userID, postID uint) (*models.Bookmark, error) {
	return s.getByUserAndPostFn(ctx, userID, postID)
}
func (s *bookmarkRepoStub) ListByPost(ctx context.Context, postID uint) ([]models.Bookmark, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *bookmarkRepoStub) ListByUser(ctx context.Context, userID uint) ([]models.Bookmark, error) {
	return s.listByUserFn(ctx, userID)
}
func (s *bookmarkRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

type followerRepoStub struct {
	createFn         func(context.Context, uint, uint) error
	existsFn         func(context.Context, uint, uint) (bool, error)
	deleteFn         func(context.Context, uint, uint) error
	listFollowersFn  func(context.Context, uint) ([]models.User, error)
	listFollowingFn  func(context.Context, uint) ([]models.User, error)
	countFollowersFn func(context.Context, uint) (int64, error)
}

func (s *followerRepoStub) Create(ctx context.Context, userID, followerID uint) error {
	return s.createFn(ctx, userID, followerID)
}
func (s *followerRepoStub) Exists(ctx context.Context, userID, followerID uint) (bool, error) {
	return s.existsFn(ctx, userID, followerID)
}
func (s *followerRepoStub) Delete(ctx context.Context, userID, followerID uint) error {
	return s.deleteFn(ctx, userID, followerID)
}
func (s *followerRepoStub) ListFollowers(ctx context.Context, userID uint) ([]models.User, error) {
	return s.listFollowersFn(ctx, userID)
}
func (s *followerRepoStub) ListFollowing(ctx context.Context, followerID uint) ([]models.User, error) {
	return s.listFollowingFn(ctx, followerID)
}
func (s *followerRepoStub) CountFollowers(ctx context.Context, userID uint) (int64, error) {
	return s.countFollowersFn(ctx, userID)
}

type reactionRepoStub struct {
	getByIDFn               func(context.Context, uint) (*models.Reaction, error)
	listWithPostReactionsFn func(context.Context) ([]models.Reaction, error)
	addPostReactionFn       func(context.Context, *models.PostReaction) error
	removePostReactionFn    func(context.Context, uint) error
	getPostReactionFn       func(context.Context, uint, uint) (*models.PostReaction, error)
	listReactedByUserFn     func(context.Context, uint) ([]models.PostReaction, error)
}

func (s *reactionRepoStub) GetByID(ctx context.Context, id uint) (*models.Reaction, error) {
	return s.getByIDFn(ctx, id)
}
func (s *reactionRepoStub) ListWithPostReactions(ctx context.Context) ([]models.Reaction, error) {
	return s.listWithPostReactionsFn(ctx)
}
func (s *reactionRepoStub) AddPostReaction(ctx context.Context, pr *models.PostReaction) error {
	return s.addPostReactionFn(ctx, pr)
}
func (s *reactionRepoStub) RemovePostReaction(ctx context.Context, id uint) error {
	return s.removePostReactionFn(ctx, id)
}
func (s *reactionRepoStub) GetPostReaction(ctx context.Context, userID, postID uint) (*models.PostReaction, error) {
	return s.getPostReactionFn(ctx, userID, postID)
}
func (s *reactionRepoStub) ListReactedByUser(ctx context.Context, userID uint) ([]models.PostReaction, error) {
	return s.listReactedByUserFn(ctx, userID)
}

type roleRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.Role, error)
	listWithUsersFn func(context.Context) ([]models.Role, error)
}

func (s *roleRepoStub) GetByID(ctx context.Context, id uint) (*models.Role, error) {
	return s.getByIDFn(ctx, id)
}
func (s *roleRepoStub) ListWithUsers(ctx context.Context) ([]models.Role, error) {
	return s.listWithUsersFn(ctx)
}

type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByPostFn func(context.Context, uint) ([]models.Comment, error)
	deleteFn     func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func existingUser() func(context.Context, uint) (*models.User, error) {
	return func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, Username: "user"}, nil
	}
}

func missingUser(_ context.Context, id uint) (*models.User, error) {
	return nil, models.NewNotFoundError("User", id)
}
