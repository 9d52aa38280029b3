package models

// Reaction is a reaction kind (like, love, ...) users can put on posts.
type Reaction struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	ReactionType string `gorm:"not null" json:"reactionType"`

	PostReactions []PostReaction `gorm:"foreignKey:ReactionID" json:"postReactions,omitempty"`
}

// PostReaction is the join row between a post and a reaction kind. Unlike a
// plain many-to-many link it also carries the reacting user.
type PostReaction struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PostID     uint      `gorm:"not null;index" json:"postId"`
	ReactionID uint      `gorm:"not null;index" json:"reactionId"`
	UserID     uint      `gorm:"not null;index" json:"userId"`
	Reaction   *Reaction `gorm:"foreignKey:ReactionID" json:"reaction,omitempty"`
}
