package database

import "lumen/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.Role{},
		&models.Rank{},
		&models.User{},
		&models.Post{},
		&models.Tag{},
		&models.Category{},
		&models.Reaction{},
		&models.PostReaction{},
		&models.Comment{},
		&models.Bookmark{},
		&models.Follower{},
	}
}
