package model

import (
	"time"

	"github.com/forumlab/backend/internal/entity"

	"github.com/samber/lo"
)

const DefaultTimeLayout string = time.RFC3339Nano

func ConvertShortUser(user *entity.User, profile *entity.Profile) ShortUser {
	if user == nil {
		return ShortUser{}
	}

	short := ShortUser{
		ID:       user.ID,
		Username: user.Username,
		IsOnline: user.IsOnline,
	}

	if profile != nil {
		short.Nickname = profile.Nickname
		short.AvatarURL = profile.ImageURL
	}

	return short
}

func ConvertUser(user *entity.User, profile *entity.Profile, includeSensitive bool) User {
	if user == nil {
		return User{}
	}

	result := User{
		ShortUser: ConvertShortUser(user, profile),
		CreatedAt: user.CreatedAt.Format(DefaultTimeLayout),
	}

	if profile != nil {
		result.Bio = profile.Bio
		result.ImageOffsetX = profile.ImageOffsetX
		result.ImageOffsetY = profile.ImageOffsetY
	}

	if includeSensitive {
		result.Email = user.Email
		result.Role = user.Role
	}

	return result
}

func ConvertCommunity(community *entity.Community, memberCount int64) Community {
	if community == nil {
		return Community{}
	}

	return Community{
		ID:          community.ID,
		Name:        community.Name,
		Description: community.Description,
		CreatedBy:   community.CreatedBy,
		MemberCount: memberCount,
		CreatedAt:   community.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertPost(post *entity.Post, author ShortUser) Post {
	if post == nil {
		return Post{}
	}

	return Post{
		ID:           post.ID,
		Author:       author,
		CommunityID:  post.CommunityID.String,
		Title:        post.Title,
		Content:      post.Content,
		LikeCount:    post.LikeCount,
		DislikeCount: post.DislikeCount,
		CreatedAt:    post.CreatedAt.Format(DefaultTimeLayout),
		UpdatedAt:    post.UpdatedAt.Format(DefaultTimeLayout),
	}
}

// ConvertPosts resolves each author through the given lookup of user id to
// short user.
func ConvertPosts(posts []entity.Post, authors map[string]ShortUser) []Post {
	return lo.Map(posts, func(p entity.Post, _ int) Post {
		return ConvertPost(&p, authors[p.AuthorID])
	})
}

func ConvertComment(comment *entity.Comment, author ShortUser) Comment {
	if comment == nil {
		return Comment{}
	}

	return Comment{
		ID:           comment.ID,
		PostID:       comment.PostID,
		Author:       author,
		ParentID:     comment.ParentID.String,
		Content:      comment.Content,
		LikeCount:    comment.LikeCount,
		DislikeCount: comment.DislikeCount,
		CreatedAt:    comment.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertChatMessage(message *entity.ChatMessage) ChatMessage {
	if message == nil {
		return ChatMessage{}
	}

	return ChatMessage{
		ID:        message.ID,
		RoomID:    message.RoomID,
		SenderID:  message.SenderID,
		Content:   message.Content,
		CreatedAt: message.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertChatRoom(room *entity.ChatRoom, partner ShortUser, lastMessage *entity.ChatMessage, unread int64) ChatRoom {
	if room == nil {
		return ChatRoom{}
	}

	result := ChatRoom{
		ID:          room.ID,
		Partner:     partner,
		UnreadCount: unread,
	}

	if lastMessage != nil {
		converted := ConvertChatMessage(lastMessage)
		result.LastMessage = &converted
	}

	return result
}

func ConvertNotification(notification *entity.Notification, sender ShortUser) Notification {
	if notification == nil {
		return Notification{}
	}

	return Notification{
		ID:        notification.ID,
		Sender:    sender,
		Type:      string(notification.Type),
		TargetID:  notification.TargetID,
		IsRead:    notification.IsRead,
		CreatedAt: notification.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertReport(report *entity.Report) Report {
	if report == nil {
		return Report{}
	}

	return Report{
		ID:         report.ID,
		ReporterID: report.ReporterID,
		TargetType: string(report.TargetType),
		TargetID:   report.TargetID,
		Reason:     report.Reason,
		Detail:     report.Detail,
		Status:     string(report.Status),
		Severity:   string(report.Severity),
		CreatedAt:  report.CreatedAt.Format(DefaultTimeLayout),
	}
}
