package models

import "time"

// Bookmark marks a post as saved by a user. The (UserID, PostID) pair is
// unique: bookmarking the same post twice is a conflict.
type Bookmark struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_bookmark_user_post" json:"userId"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_bookmark_user_post" json:"postId"`
	Post      *Post     `gorm:"foreignKey:PostID" json:"post,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
