package repository

import (
	"lumen/internal/models"

	"gorm.io/gorm"
)

// Cascade rules live here as explicit delete-propagation functions invoked
// inside the deleting transaction, instead of declarative association
// metadata. The rules, in one place:
//
//   - Deleting a Post removes its Comments, Bookmarks, PostReaction rows, and
//     its post_tags/post_categories link rows. It never deletes the Tag,
//     Category, Reaction, or User entities themselves.
//   - Deleting a Tag or Category removes only its link rows.
//   - Deleting a User removes their Posts (with the post cascade), their
//     Comments, Bookmarks and PostReactions on other posts, and both
//     directions of their Follower edges.

// cascadePostDelete removes all dependent rows of the given posts. The post
// rows themselves are deleted by the caller within the same transaction.
func cascadePostDelete(tx *gorm.DB, postIDs ...uint) error {
	if len(postIDs) == 0 {
		return nil
	}
	if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Comment{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Bookmark{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	if err := tx.Where("post_id IN ?", postIDs).Delete(&models.PostReaction{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	if err := tx.Exec("DELETE FROM post_tags WHERE post_id IN ?", postIDs).Error; err != nil {
		return models.NewInternalError(err)
	}
	if err := tx.Exec("DELETE FROM post_categories WHERE post_id IN ?", postIDs).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// cascadeTagDelete removes the tag's link rows only.
func cascadeTagDelete(tx *gorm.DB, tagID uint) error {
	if err := tx.Exec("DELETE FROM post_tags WHERE tag_id = ?", tagID).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// cascadeCategoryDelete removes the category's link rows only.
func cascadeCategoryDelete(tx *gorm.DB, categoryID uint) error {
	if err := tx.Exec("DELETE FROM post_categories WHERE category_id = ?", categoryID).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// cascadeUserDelete removes everything owned by the user: their posts (with
// the full post cascade), their activity on other posts, and their follower
// edges. The user row itself is deleted by the caller.
func cascadeUserDelete(tx *gorm.DB, userID uint) error {
	var postIDs []uint
	if err := tx.Model(&models.Post{}).
		Where("user_id = ?", userID).
		Pluck("id", &postIDs).Error; err != nil {
		return models.NewInternalError(err)
	}

	if len(postIDs) > 0 {
		if err := cascadePostDelete(tx, postIDs...); err != nil {
			return err
		}
		if err := tx.Where("id IN ?", postIDs).Delete(&models.Post{}).Error; err != nil {
			return models.NewInternalError(err)
		}
	}

	if err := tx.Where("user_id = ?", userID).Delete(&models.Comment{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	if err := tx.Where("user_id = ?", userID).Delete(&models.Bookmark{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	if err := tx.Where("user_id = ?", userID).Delete(&models.PostReaction{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	if err := tx.Where("user_id = ? OR follower_id = ?", userID, userID).Delete(&models.Follower{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
