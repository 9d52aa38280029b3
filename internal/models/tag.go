package models

// Tag is a hashtag attached to posts. TagName is unique under
// case-insensitive comparison, enforced at creation time by the service
// layer rather than by a database collation.
type Tag struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	TagName string `gorm:"not null;index" json:"tagName"`

	Posts []Post `gorm:"many2many:post_tags" json:"posts,omitempty"`
}

// Category groups posts into curated sections.
type Category struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	CategoryName string `gorm:"not null" json:"categoryName"`

	Posts []Post `gorm:"many2many:post_categories" json:"posts,omitempty"`
}
