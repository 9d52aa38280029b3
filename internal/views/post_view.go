// Package views builds client-facing projections from domain models. Each
// response shape is an explicit struct so the contract stays statically
// checkable; raw media bytes and credential hashes never appear here.
package views

import (
	"time"

	"lumen/internal/models"
)

// TagView is the projection of a tag inside a post response.
type TagView struct {
	ID      uint   `json:"id"`
	TagName string `json:"tagName"`
}

// CategoryView is the projection of a category inside a post response.
type CategoryView struct {
	ID           uint   `json:"id"`
	CategoryName string `json:"categoryName"`
}

// ReactionView is the projection of a single post reaction.
type ReactionView struct {
	PostReactionID uint   `json:"postReactionId"`
	ReactionID     uint   `json:"reactionId"`
	UserID         uint   `json:"userId"`
	ReactionType   string `json:"reactionType,omitempty"`
}

// CommentView is the projection of a comment inside a post response.
type CommentView struct {
	ID        uint      `json:"id"`
	PostID    uint      `json:"postId"`
	UserID    uint      `json:"userId"`
	Content   string    `json:"content"`
	FullName  string    `json:"fullName,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthorView is the summary of a post's owner embedded in post responses.
type AuthorView struct {
	ID              uint   `json:"id"`
	FullName        string `json:"fullName"`
	ProfilePhotoURL string `json:"profilePhotoUrl"`
}

// PostView is the client projection of a post. MediaSource is deliberately
// absent: binary payloads are only served by the media endpoint.
type PostView struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	ShortTitle  string    `json:"shortTitle,omitempty"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	Longitude   string    `json:"longitude,omitempty"`
	Latitude    string    `json:"latitude,omitempty"`
	Type        string    `json:"type"`
	Size        float64   `json:"size,omitempty"`
	VideoYtbURL string    `json:"videoYtbUrl,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Views       int       `json:"views"`
	UserID      uint      `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`

	Author     *AuthorView    `json:"author,omitempty"`
	Tags       []TagView      `json:"tags"`
	Categories []CategoryView `json:"categories"`
	Reactions  []ReactionView `json:"reactions"`
	Comments   []CommentView  `json:"comments"`

	BookmarkCount int `json:"bookmarkCount"`
	CommentCount  int `json:"commentCount"`
	ReactionCount int `json:"reactionCount"`

	// BookmarkID and IsBookmarked are populated only when the query narrowed
	// bookmarks to a single user; the one matching child is hoisted into
	// scalar fields instead of a one-element list.
	BookmarkID   uint `json:"bookmarkId,omitempty"`
	IsBookmarked bool `json:"isBookmarked,omitempty"`
}

// BuildPostView projects a post with its preloaded children. Absent relations
// yield empty collections, never an error.
func BuildPostView(post *models.Post) PostView {
	view := PostView{
		ID:          post.ID,
		Title:       post.Title,
		ShortTitle:  post.ShortTitle,
		Description: post.Description,
		Location:    post.Location,
		Longitude:   post.Longitude,
		Latitude:    post.Latitude,
		Type:        post.Type,
		Size:        post.Size,
		VideoYtbURL: post.VideoYtbURL,
		ImageURL:    post.ImageURL,
		Views:       post.Views,
		UserID:      post.UserID,
		CreatedAt:   post.CreatedAt,
		Tags:        make([]TagView, 0, len(post.Tags)),
		Categories:  make([]CategoryView, 0, len(post.Categories)),
		Reactions:   make([]ReactionView, 0, len(post.Reactions)),
		Comments:    make([]CommentView, 0, len(post.Comments)),
	}

	if post.User != nil {
		view.Author = &AuthorView{
			ID:              post.User.ID,
			FullName:        post.User.FullName(),
			ProfilePhotoURL: post.User.ProfilePhotoURL,
		}
	}

	seenTags := make(map[uint]struct{}, len(post.Tags))
	for _, tag := range post.Tags {
		if _, dup := seenTags[tag.ID]; dup {
			continue
		}
		seenTags[tag.ID] = struct{}{}
		view.Tags = append(view.Tags, TagView{ID: tag.ID, TagName: tag.TagName})
	}

	seenCategories := make(map[uint]struct{}, len(post.Categories))
	for _, category := range post.Categories {
		if _, dup := seenCategories[category.ID]; dup {
			continue
		}
		seenCategories[category.ID] = struct{}{}
		view.Categories = append(view.Categories, CategoryView{ID: category.ID, CategoryName: category.CategoryName})
	}

	for _, reaction := range post.Reactions {
		rv := ReactionView{
			PostReactionID: reaction.ID,
			ReactionID:     reaction.ReactionID,
			UserID:         reaction.UserID,
		}
		if reaction.Reaction != nil {
			rv.ReactionType = reaction.Reaction.ReactionType
		}
		view.Reactions = append(view.Reactions, rv)
	}

	for i := range post.Comments {
		view.Comments = append(view.Comments, BuildCommentView(&post.Comments[i]))
	}

	view.BookmarkCount = len(post.Bookmarks)
	view.CommentCount = len(view.Comments)
	view.ReactionCount = len(view.Reactions)

	return view
}

// BuildCommentView projects a single comment.
func BuildCommentView(comment *models.Comment) CommentView {
	cv := CommentView{
		ID:        comment.ID,
		PostID:    comment.PostID,
		UserID:    comment.UserID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
	if comment.User != nil {
		cv.FullName = comment.User.FullName()
	}
	return cv
}

// BuildCommentViews projects a slice of comments, preserving order.
func BuildCommentViews(comments []models.Comment) []CommentView {
	result := make([]CommentView, 0, len(comments))
	for i := range comments {
		result = append(result, BuildCommentView(&comments[i]))
	}
	return result
}

// BuildPostViews projects a slice of posts, preserving order.
func BuildPostViews(posts []*models.Post) []PostView {
	result := make([]PostView, 0, len(posts))
	for _, post := range posts {
		result = append(result, BuildPostView(post))
	}
	return result
}

// BuildBookmarkedPostView projects a post for a specific viewer: the
// viewer's own bookmark, if present among the preloaded bookmarks, is
// hoisted into BookmarkID and IsBookmarked.
func BuildBookmarkedPostView(post *models.Post, userID uint) PostView {
	view := BuildPostView(post)
	for _, bookmark := range post.Bookmarks {
		if bookmark.UserID == userID {
			view.BookmarkID = bookmark.ID
			view.IsBookmarked = true
			break
		}
	}
	return view
}
