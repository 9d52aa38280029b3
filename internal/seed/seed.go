package seed

import (
	"fmt"
	"log/slog"

	"lumen/internal/models"

	"gorm.io/gorm"
)

// Options controls how much data Run generates.
type Options struct {
	Users        int
	PostsPerUser int
	Clean        bool
	RandSeed     int64
}

var defaultRoles = []string{models.AdminRoleName, "member"}

var defaultRanks = []models.Rank{
	{RankName: "Newcomer", RankLogoURL: "https://cdn.lumen.dev/ranks/newcomer.svg"},
	{RankName: "Regular", RankLogoURL: "https://cdn.lumen.dev/ranks/regular.svg"},
	{RankName: "Luminary", RankLogoURL: "https://cdn.lumen.dev/ranks/luminary.svg"},
}

var defaultReactions = []string{"like", "love", "laugh", "wow", "sad"}

var defaultTags = []string{
	"landscape", "portrait", "street", "travel", "food",
	"architecture", "wildlife", "nightsky", "macro", "film",
}

var defaultCategories = []string{"Featured", "Editors' Picks", "Community", "Tutorials"}

// Run populates the database: reference rows (roles, ranks, reaction kinds,
// tags, categories), one admin plus Options.Users members, posts with tag and
// category links, then a social mesh of comments, reactions, bookmarks and
// follower edges.
func Run(db *gorm.DB, opts Options) error {
	if opts.Clean {
		if err := Clean(db); err != nil {
			return err
		}
	}

	refs, err := ensureReferenceData(db)
	if err != nil {
		return err
	}

	factory := NewFactory(db, opts.RandSeed)

	admin, err := factory.CreateUser(refs.adminRoleID, refs.ranks[0].ID, func(u *models.User) {
		u.Username = "admin"
	})
	if err != nil {
		return fmt.Errorf("seeding admin: %w", err)
	}
	slog.Info("seeded admin user", "username", admin.Username, "id", admin.ID)

	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		rank := refs.ranks[factory.rnd.Intn(len(refs.ranks))]
		user, err := factory.CreateUser(refs.memberRoleID, rank.ID)
		if err != nil {
			return fmt.Errorf("seeding user %d: %w", i, err)
		}
		users = append(users, user)
	}

	var posts []*models.Post
	for _, user := range users {
		for i := 0; i < opts.PostsPerUser; i++ {
			post, err := factory.CreatePost(user)
			if err != nil {
				return fmt.Errorf("seeding post for user %d: %w", user.ID, err)
			}
			if err := factory.AttachTags(post, refs.tags); err != nil {
				return err
			}
			if err := factory.AttachCategories(post, refs.categories); err != nil {
				return err
			}
			posts = append(posts, post)
		}
	}

	if err := seedSocialMesh(db, factory, users, posts, refs.reactions); err != nil {
		return err
	}

	slog.Info("seed complete", "users", len(users)+1, "posts", len(posts))
	return nil
}

type referenceData struct {
	adminRoleID  uint
	memberRoleID uint
	ranks        []models.Rank
	reactions    []models.Reaction
	tags         []models.Tag
	categories   []models.Category
}

// ensureReferenceData creates the fixed reference rows if they are missing.
// It is idempotent so Run can be re-applied to a populated database.
func ensureReferenceData(db *gorm.DB) (*referenceData, error) {
	refs := &referenceData{}

	for _, name := range defaultRoles {
		role := models.Role{RoleName: name}
		if err := db.Where("role_name = ?", name).FirstOrCreate(&role).Error; err != nil {
			return nil, err
		}
		if name == models.AdminRoleName {
			refs.adminRoleID = role.ID
		} else {
			refs.memberRoleID = role.ID
		}
	}

	for _, rank := range defaultRanks {
		r := rank
		if err := db.Where("rank_name = ?", r.RankName).FirstOrCreate(&r).Error; err != nil {
			return nil, err
		}
		refs.ranks = append(refs.ranks, r)
	}

	for _, kind := range defaultReactions {
		r := models.Reaction{ReactionType: kind}
		if err := db.Where("reaction_type = ?", kind).FirstOrCreate(&r).Error; err != nil {
			return nil, err
		}
		refs.reactions = append(refs.reactions, r)
	}

	for _, name := range defaultTags {
		tag := models.Tag{TagName: name}
		if err := db.Where("tag_name = ?", name).FirstOrCreate(&tag).Error; err != nil {
			return nil, err
		}
		refs.tags = append(refs.tags, tag)
	}

	for _, name := range defaultCategories {
		c := models.Category{CategoryName: name}
		if err := db.Where("category_name = ?", name).FirstOrCreate(&c).Error; err != nil {
			return nil, err
		}
		refs.categories = append(refs.categories, c)
	}

	return refs, nil
}

// seedSocialMesh wires users together: each user follows a few others,
// comments on and reacts to random posts, and bookmarks a couple.
func seedSocialMesh(db *gorm.DB, factory *Factory, users []*models.User, posts []*models.Post, reactions []models.Reaction) error {
	if len(users) < 2 || len(posts) == 0 {
		return nil
	}

	for _, user := range users {
		follows := factory.rnd.Intn(min(5, len(users)))
		for _, i := range factory.rnd.Perm(len(users))[:follows] {
			target := users[i]
			if target.ID == user.ID {
				continue
			}
			edge := models.Follower{UserID: target.ID, FollowerID: user.ID}
			if err := db.Where(&edge).FirstOrCreate(&edge).Error; err != nil {
				return err
			}
		}

		for _, i := range factory.rnd.Perm(len(posts))[:min(3, len(posts))] {
			post := posts[i]
			if _, err := factory.CreateComment(user, post); err != nil {
				return err
			}
			kind := reactions[factory.rnd.Intn(len(reactions))]
			pr := models.PostReaction{PostID: post.ID, UserID: user.ID, ReactionID: kind.ID}
			if err := db.Where("post_id = ? AND user_id = ?", post.ID, user.ID).
				FirstOrCreate(&pr).Error; err != nil {
				return err
			}
		}

		for _, i := range factory.rnd.Perm(len(posts))[:min(2, len(posts))] {
			bookmark := models.Bookmark{UserID: user.ID, PostID: posts[i].ID}
			if err := db.Where(&bookmark).FirstOrCreate(&bookmark).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// Clean removes all seeded rows in dependency order. Reference tables go
// last so foreign keys never dangle mid-way.
func Clean(db *gorm.DB) error {
	tables := []string{
		"post_reactions", "comments", "bookmarks", "followers",
		"post_tags", "post_categories", "posts", "users",
		"reactions", "tags", "categories", "ranks", "roles",
	}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("cleaning %s: %w", table, err)
		}
	}
	return nil
}
