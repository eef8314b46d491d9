package repository

import (
	"context"

	"github.com/forumlab/backend/internal/entity"
	"github.com/forumlab/backend/pkg/xcontext"

	"gorm.io/gorm/clause"
)

type ChatReadStatusRepository interface {
	Upsert(ctx context.Context, data *entity.ChatReadStatus) error
	Get(ctx context.Context, roomID, userID string) (*entity.ChatReadStatus, error)
	DeleteByUserID(ctx context.Context, userID string) error
}

type chatReadStatusRepository struct{}

func NewChatReadStatusRepository() ChatReadStatusRepository {
	return &chatReadStatusRepository{}
}

func (r *chatReadStatusRepository) Upsert(ctx context.Context, data *entity.ChatReadStatus) error {
	return xcontext.DB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "room_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_read_message_id", "updated_at"}),
	}).Create(data).Error
}

func (r *chatReadStatusRepository) Get(ctx context.Context, roomID, userID string) (*entity.ChatReadStatus, error) {
	var record entity.ChatReadStatus
	err := xcontext.DB(ctx).
		Where("room_id=? AND user_id=?", roomID, userID).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *chatReadStatusRepository) DeleteByUserID(ctx context.Context, userID string) error {
	return xcontext.DB(ctx).Where("user_id=?", userID).Delete(&entity.ChatReadStatus{}).Error
}
