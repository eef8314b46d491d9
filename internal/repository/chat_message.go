package repository

import (
	"context"

	"github.com/forumlab/backend/internal/entity"
	"github.com/forumlab/backend/pkg/xcontext"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, data *entity.ChatMessage) error
	GetByID(ctx context.Context, id int64) (*entity.ChatMessage, error)
	GetByRoomID(ctx context.Context, roomID string, before int64, limit int) ([]entity.ChatMessage, error)
	GetLastOfRoom(ctx context.Context, roomID string) (*entity.ChatMessage, error)
	CountAfter(ctx context.Context, roomID string, afterID int64) (int64, error)
	DeleteByRoomID(ctx context.Context, roomID string) error
}

type chatMessageRepository struct{}

func NewChatMessageRepository() ChatMessageRepository {
	return &chatMessageRepository{}
}

func (r *chatMessageRepository) Create(ctx context.Context, data *entity.ChatMessage) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *chatMessageRepository) GetByID(ctx context.Context, id int64) (*entity.ChatMessage, error) {
	var record entity.ChatMessage
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

// GetByRoomID returns the newest messages of the room, capped at limit, in
// ascending ID order. A non-zero before bounds the page to messages older
// than that ID, so repeated calls walk the history backward.
func (r *chatMessageRepository) GetByRoomID(
	ctx context.Context, roomID string, before int64, limit int,
) ([]entity.ChatMessage, error) {
	tx := xcontext.DB(ctx).Where("room_id=?", roomID)
	if before > 0 {
		tx = tx.Where("id < ?", before)
	}

	if limit > 0 {
		tx = tx.Limit(limit)
	}

	var records []entity.ChatMessage
	if err := tx.Order("id DESC").Find(&records).Error; err != nil {
		return nil, err
	}

	// Back into creation order.
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}

	return records, nil
}

func (r *chatMessageRepository) GetLastOfRoom(ctx context.Context, roomID string) (*entity.ChatMessage, error) {
	var record entity.ChatMessage
	err := xcontext.DB(ctx).
		Where("room_id=?", roomID).
		Order("id DESC").
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *chatMessageRepository) CountAfter(ctx context.Context, roomID string, afterID int64) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.ChatMessage{}).
		Where("room_id=? AND id > ?", roomID, afterID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *chatMessageRepository) DeleteByRoomID(ctx context.Context, roomID string) error {
	return xcontext.DB(ctx).Where("room_id=?", roomID).Delete(&entity.ChatMessage{}).Error
}
