package migration

import (
	"context"

	"github.com/forumlab/backend/internal/entity"
	"github.com/forumlab/backend/pkg/xcontext"
)

// AutoMigrate creates or updates every table. It is safe to run on an empty
// database and on every startup.
func AutoMigrate(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.User{},
		&entity.Profile{},
		&entity.Community{},
		&entity.CommunityMember{},
		&entity.Post{},
		&entity.Comment{},
		&entity.ChatRoom{},
		&entity.ChatMessage{},
		&entity.ChatReadStatus{},
		&entity.Follow{},
		&entity.Bookmark{},
		&entity.Notification{},
		&entity.Report{},
	)
}
