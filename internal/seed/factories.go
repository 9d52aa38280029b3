// Package seed creates development and demo data. It is wired into
// cmd/seed and is never imported by the server itself.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"lumen/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds and persists domain entities with plausible fake content.
type Factory struct {
	db  *gorm.DB
	rnd *rand.Rand
}

// NewFactory binds a factory to the database. A fixed seed makes repeated
// runs reproducible; pass 0 to randomize.
func NewFactory(db *gorm.DB, randSeed int64) *Factory {
	if randSeed == 0 {
		randSeed = time.Now().UnixNano()
	}
	gofakeit.Seed(randSeed)
	return &Factory{db: db, rnd: rand.New(rand.NewSource(randSeed))}
}

// CreateUser persists a user with a generated identity. The password for all
// seeded users is "password" so demo logins work.
func (f *Factory) CreateUser(roleID, rankID uint, overrides ...func(*models.User)) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Username:        gofakeit.Username(),
		Password:        string(hash),
		FirstName:       gofakeit.FirstName(),
		LastName:        gofakeit.LastName(),
		Email:           gofakeit.Email(),
		Phone:           gofakeit.Phone(),
		Description:     gofakeit.Sentence(8),
		ProfilePhotoURL: fmt.Sprintf("https://picsum.photos/seed/%s/200/200", gofakeit.UUID()),
		RoleID:          roleID,
		RankID:          rankID,
	}
	for _, override := range overrides {
		override(user)
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost persists a post for the given author. Roughly one in five posts
// is an external YouTube video, the rest carry a small inline media payload.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		Title:       gofakeit.Sentence(4),
		ShortTitle:  gofakeit.Word(),
		Description: gofakeit.Paragraph(1, 2, 8, " "),
		Location:    gofakeit.City(),
		Longitude:   fmt.Sprintf("%.6f", gofakeit.Longitude()),
		Latitude:    fmt.Sprintf("%.6f", gofakeit.Latitude()),
		UserID:      user.ID,
	}

	if f.rnd.Intn(5) == 0 {
		ytbIDs := []string{"dQw4w9WgXcQ", "9bZkp7q19f0", "3JZ_D3ELwOQ", "L_jWHffIx5E"}
		id := ytbIDs[f.rnd.Intn(len(ytbIDs))]
		post.Type = models.PostTypeVideo
		post.VideoYtbURL = "https://www.youtube.com/watch?v=" + id
		post.ImageURL = "https://img.youtube.com/vi/" + id + "/hqdefault.jpg"
	} else {
		post.Type = "image/png"
		post.MediaSource = pngStub()
		post.Size = float64(len(post.MediaSource))
	}

	// Spread creation over the last 90 days so the feed orders visibly.
	post.CreatedAt = time.Now().Add(-time.Duration(f.rnd.Intn(90*24)) * time.Hour)

	for _, override := range overrides {
		override(post)
	}
	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment persists a short comment by user on post.
func (f *Factory) CreateComment(user *models.User, post *models.Post) (*models.Comment, error) {
	content := gofakeit.Sentence(6)
	if len(content) > models.MaxCommentLen {
		content = content[:models.MaxCommentLen]
	}
	comment := &models.Comment{
		Content: content,
		UserID:  user.ID,
		PostID:  post.ID,
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// AttachTags links a random subset of tags to the post.
func (f *Factory) AttachTags(post *models.Post, tags []models.Tag) error {
	if len(tags) == 0 {
		return nil
	}
	n := 1 + f.rnd.Intn(min(3, len(tags)))
	picked := f.pickTags(tags, n)
	return f.db.Model(post).Association("Tags").Append(&picked)
}

// AttachCategories links a random subset of categories to the post.
func (f *Factory) AttachCategories(post *models.Post, categories []models.Category) error {
	if len(categories) == 0 {
		return nil
	}
	c := categories[f.rnd.Intn(len(categories))]
	return f.db.Model(post).Association("Categories").Append(&c)
}

func (f *Factory) pickTags(tags []models.Tag, n int) []models.Tag {
	idx := f.rnd.Perm(len(tags))
	out := make([]models.Tag, 0, n)
	for _, i := range idx[:n] {
		out = append(out, tags[i])
	}
	return out
}

// pngStub returns a minimal PNG payload so media endpoints serve real bytes.
func pngStub() []byte {
	return []byte{
		0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A,
		0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52,
	}
}
