// Package models contains data structures for the application's domain models.
package models

import (
	"strings"
	"time"
)

// User represents a member of the Lumen community.
//
// PhotoSource and CoverImageSource hold raw image bytes and are excluded from
// JSON; they are only served by the dedicated byte-retrieval endpoints.
type User struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Username         string    `gorm:"not null;index" json:"username"`
	Password         string    `gorm:"not null" json:"-"`
	FirstName        string    `json:"firstName"`
	LastName         string    `json:"lastName"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	Description      string    `json:"description"`
	ProfilePhotoURL  string    `gorm:"column:profile_photo_url" json:"profilePhotoUrl"`
	ImgType          string    `json:"-"`
	PhotoSource      []byte    `gorm:"type:bytea" json:"-"`
	CoverImageURL    string    `gorm:"column:cover_image_url" json:"coverImageUrl"`
	CoverImageType   string    `json:"-"`
	CoverImageSource []byte    `gorm:"type:bytea" json:"-"`
	RoleID           uint      `gorm:"index" json:"roleId"`
	Role             *Role     `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	RankID           uint      `gorm:"index" json:"rankId"`
	Rank             *Rank     `gorm:"foreignKey:RankID" json:"rank,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`

	Posts []Post `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}

// FullName joins first and last name with a single space, tolerating either
// part being empty.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
