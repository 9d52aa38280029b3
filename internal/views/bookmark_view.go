package views

import (
	"time"

	"lumen/internal/models"
)

// BookmarkView is the projection returned when a bookmark itself is the
// subject of the response. The primary key is renamed to bookmarkId, never
// plain id.
type BookmarkView struct {
	BookmarkID uint      `json:"bookmarkId"`
	UserID     uint      `json:"userId"`
	PostID     uint      `json:"postId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// BuildBookmarkView projects a bookmark row.
func BuildBookmarkView(bookmark *models.Bookmark) BookmarkView {
	return BookmarkView{
		BookmarkID: bookmark.ID,
		UserID:     bookmark.UserID,
		PostID:     bookmark.PostID,
		CreatedAt:  bookmark.CreatedAt,
	}
}

// BuildBookmarkViews projects a slice of bookmark rows, preserving order.
func BuildBookmarkViews(bookmarks []models.Bookmark) []BookmarkView {
	result := make([]BookmarkView, 0, len(bookmarks))
	for i := range bookmarks {
		result = append(result, BuildBookmarkView(&bookmarks[i]))
	}
	return result
}

// FollowerView is one entry of a followers/following listing: the related
// user with a computed full name and flattened rank fields.
type FollowerView struct {
	UserID          uint   `json:"userId"`
	FullName        string `json:"fullName"`
	ProfilePhotoURL string `json:"profilePhotoUrl"`
	RankName        string `json:"rankName"`
	RankLogoURL     string `json:"rankLogoUrl"`
}

// BuildFollowerView projects a user (with preloaded rank) into a follower
// listing entry.
func BuildFollowerView(user *models.User) FollowerView {
	view := FollowerView{
		UserID:          user.ID,
		FullName:        user.FullName(),
		ProfilePhotoURL: user.ProfilePhotoURL,
	}
	if user.Rank != nil {
		view.RankName = user.Rank.RankName
		view.RankLogoURL = user.Rank.RankLogoURL
	}
	return view
}

// BuildFollowerViews projects a slice of users, preserving order.
func BuildFollowerViews(users []models.User) []FollowerView {
	result := make([]FollowerView, 0, len(users))
	for i := range users {
		result = append(result, BuildFollowerView(&users[i]))
	}
	return result
}

// ReactedPostView is one entry of the "posts this user reacted to" listing.
type ReactedPostView struct {
	PostReactionID uint   `json:"postReactionId"`
	PostID         uint   `json:"postId"`
	ReactionType   string `json:"reactionType"`
}

// BuildReactedPostViews projects post-reaction rows with preloaded reactions.
func BuildReactedPostViews(reactions []models.PostReaction) []ReactedPostView {
	result := make([]ReactedPostView, 0, len(reactions))
	for _, pr := range reactions {
		view := ReactedPostView{
			PostReactionID: pr.ID,
			PostID:         pr.PostID,
		}
		if pr.Reaction != nil {
			view.ReactionType = pr.Reaction.ReactionType
		}
		result = append(result, view)
	}
	return result
}
