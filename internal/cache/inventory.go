package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix  = "user:%d"
	PostKeyPrefix  = "post:%d"
	FeedKeyPrefix  = "feed:page:%d"
	MediaKeyPrefix = "post:%d:media"
)

const (
	UserTTL  = 5 * time.Minute
	PostTTL  = 30 * time.Minute
	FeedTTL  = 2 * time.Minute
	MediaTTL = time.Hour
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func FeedKey(page int) string {
	return fmt.Sprintf(FeedKeyPrefix, page)
}

func MediaKey(postID uint) string {
	return fmt.Sprintf(MediaKeyPrefix, postID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
	Invalidate(ctx, MediaKey(postID))
}

// InvalidatePostsList drops the cached first feed page. Only page zero is
// cached, so a single key suffices.
func InvalidatePostsList(ctx context.Context) {
	Invalidate(ctx, FeedKey(0))
}
