package repository

import (
	"context"
	"time"

	"github.com/forumlab/backend/internal/entity"
	"github.com/forumlab/backend/pkg/xcontext"
)

type BookmarkRepository interface {
	Create(ctx context.Context, data *entity.Bookmark) error
	Get(ctx context.Context, userID, postID string) (*entity.Bookmark, error)
	GetByUserID(ctx context.Context, userID string, offset, limit int) ([]entity.Bookmark, error)
	Delete(ctx context.Context, userID, postID string) error
	DeleteByUserID(ctx context.Context, userID string) error
	DeleteByPostID(ctx context.Context, postID string) error
}

type bookmarkRepository struct{}

func NewBookmarkRepository() BookmarkRepository {
	return &bookmarkRepository{}
}

func (r *bookmarkRepository) Create(ctx context.Context, data *entity.Bookmark) error {
	if data.CreatedAt.IsZero() {
		data.CreatedAt = time.Now()
	}

	return xcontext.DB(ctx).Create(data).Error
}

func (r *bookmarkRepository) Get(ctx context.Context, userID, postID string) (*entity.Bookmark, error) {
	var record entity.Bookmark
	err := xcontext.DB(ctx).
		Where("user_id=? AND post_id=?", userID, postID).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *bookmarkRepository) GetByUserID(
	ctx context.Context, userID string, offset, limit int,
) ([]entity.Bookmark, error) {
	var records []entity.Bookmark
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *bookmarkRepository) Delete(ctx context.Context, userID, postID string) error {
	return xcontext.DB(ctx).
		Where("user_id=? AND post_id=?", userID, postID).
		Delete(&entity.Bookmark{}).Error
}

func (r *bookmarkRepository) DeleteByUserID(ctx context.Context, userID string) error {
	return xcontext.DB(ctx).Where("user_id=?", userID).Delete(&entity.Bookmark{}).Error
}

func (r *bookmarkRepository) DeleteByPostID(ctx context.Context, postID string) error {
	return xcontext.DB(ctx).Where("post_id=?", postID).Delete(&entity.Bookmark{}).Error
}
