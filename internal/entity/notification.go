package entity

import "github.com/forumlab/backend/pkg/enum"

type NotificationType string

var (
	NotificationTypeComment     = enum.New(NotificationType("comment"))
	NotificationTypeReply       = enum.New(NotificationType("reply"))
	NotificationTypePostLike    = enum.New(NotificationType("post_like"))
	NotificationTypeCommentLike = enum.New(NotificationType("comment_like"))
	NotificationTypeFollow      = enum.New(NotificationType("follow"))
)

type Notification struct {
	Base
	ReceiverID string
	Receiver   User `gorm:"foreignKey:ReceiverID"`

	SenderID string
	Sender   User `gorm:"foreignKey:SenderID"`

	Type NotificationType

	// TargetID points at the object the notification is about, interpreted
	// by Type (post id, comment id, or user id).
	TargetID string
	IsRead   bool
}
