package repository

import (
	"context"

	"github.com/forumlab/backend/internal/entity"
	"github.com/forumlab/backend/pkg/xcontext"
)

type ChatRoomRepository interface {
	Create(ctx context.Context, data *entity.ChatRoom) error
	GetByID(ctx context.Context, id string) (*entity.ChatRoom, error)
	GetByPair(ctx context.Context, user1ID, user2ID string) (*entity.ChatRoom, error)
	GetByUserID(ctx context.Context, userID string) ([]entity.ChatRoom, error)
	DeleteByUserID(ctx context.Context, userID string) error
}

type chatRoomRepository struct{}

func NewChatRoomRepository() ChatRoomRepository {
	return &chatRoomRepository{}
}

func (r *chatRoomRepository) Create(ctx context.Context, data *entity.ChatRoom) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *chatRoomRepository) GetByID(ctx context.Context, id string) (*entity.ChatRoom, error) {
	var record entity.ChatRoom
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

// GetByPair expects the canonical order, user1ID < user2ID.
func (r *chatRoomRepository) GetByPair(ctx context.Context, user1ID, user2ID string) (*entity.ChatRoom, error) {
	var record entity.ChatRoom
	err := xcontext.DB(ctx).
		Where("user1_id=? AND user2_id=?", user1ID, user2ID).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *chatRoomRepository) GetByUserID(ctx context.Context, userID string) ([]entity.ChatRoom, error) {
	var records []entity.ChatRoom
	err := xcontext.DB(ctx).
		Where("user1_id=? OR user2_id=?", userID, userID).
		Order("updated_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *chatRoomRepository) DeleteByUserID(ctx context.Context, userID string) error {
	return xcontext.DB(ctx).
		Where("user1_id=? OR user2_id=?", userID, userID).
		Delete(&entity.ChatRoom{}).Error
}
