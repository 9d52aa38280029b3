package models

import "time"

// PostTypeVideo is the sentinel Type for posts that link an external YouTube
// video. Media posts store their MIME type directly in Type (e.g.
// "image/png"), so the byte-retrieval endpoint can echo it as Content-Type.
const PostTypeVideo = "video"

// Post represents a piece of shared content: either an uploaded media blob or
// an external YouTube video, selected by Type. Exactly one of MediaSource and
// VideoYtbURL is set.
type Post struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `json:"title"`
	ShortTitle  string    `json:"shortTitle"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Longitude   string    `json:"longitude"`
	Latitude    string    `json:"latitude"`
	Type        string    `gorm:"not null" json:"type"`
	Size        float64   `json:"size"`
	MediaSource []byte    `gorm:"type:bytea" json:"-"`
	VideoYtbURL string    `gorm:"column:video_ytb_url" json:"videoYtbUrl"`
	ImageURL    string    `gorm:"column:image_url" json:"imageUrl"`
	Views       int       `gorm:"default:0" json:"views"`
	UserID      uint      `gorm:"not null;index" json:"userId"`
	User        *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Tags       []Tag          `gorm:"many2many:post_tags" json:"tags,omitempty"`
	Categories []Category     `gorm:"many2many:post_categories" json:"categories,omitempty"`
	Reactions  []PostReaction `gorm:"foreignKey:PostID" json:"reactions,omitempty"`
	Comments   []Comment      `gorm:"foreignKey:PostID" json:"comments,omitempty"`
	Bookmarks  []Bookmark     `gorm:"foreignKey:PostID" json:"bookmarks,omitempty"`
}

// IsExternalVideo reports whether the post links a YouTube video instead of
// carrying an uploaded media payload.
func (p *Post) IsExternalVideo() bool {
	return p.Type == PostTypeVideo
}
