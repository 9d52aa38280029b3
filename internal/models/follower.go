package models

import "time"

// Follower is a directed edge in the follower graph: FollowerID follows
// UserID. The edge carries no payload; the pair is the primary key.
type Follower struct {
	UserID     uint      `gorm:"primaryKey;autoIncrement:false" json:"userId"`
	FollowerID uint      `gorm:"primaryKey;autoIncrement:false" json:"followerId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TableName specifies the table name for GORM
func (Follower) TableName() string {
	return "followers"
}
