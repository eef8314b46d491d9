package repository

import (
	"context"

	"github.com/forumlab/backend/internal/entity"
	"github.com/forumlab/backend/pkg/xcontext"
)

type FollowRepository interface {
	Create(ctx context.Context, data *entity.Follow) error
	Get(ctx context.Context, followerID, followingID string) (*entity.Follow, error)
	GetFollowers(ctx context.Context, userID string) ([]entity.Follow, error)
	GetFollowings(ctx context.Context, userID string) ([]entity.Follow, error)
	CountFollowers(ctx context.Context, userID string) (int64, error)
	CountFollowings(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, followerID, followingID string) error
	DeleteByUserID(ctx context.Context, userID string) error
}

type followRepository struct{}

func NewFollowRepository() FollowRepository {
	return &followRepository{}
}

func (r *followRepository) Create(ctx context.Context, data *entity.Follow) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *followRepository) Get(ctx context.Context, followerID, followingID string) (*entity.Follow, error) {
	var record entity.Follow
	err := xcontext.DB(ctx).
		Where("follower_id=? AND following_id=?", followerID, followingID).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *followRepository) GetFollowers(ctx context.Context, userID string) ([]entity.Follow, error) {
	var records []entity.Follow
	err := xcontext.DB(ctx).
		Where("following_id=?", userID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *followRepository) GetFollowings(ctx context.Context, userID string) ([]entity.Follow, error) {
	var records []entity.Follow
	err := xcontext.DB(ctx).
		Where("follower_id=?", userID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *followRepository) CountFollowers(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.Follow{}).
		Where("following_id=?", userID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *followRepository) CountFollowings(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.Follow{}).
		Where("follower_id=?", userID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *followRepository) Delete(ctx context.Context, followerID, followingID string) error {
	return xcontext.DB(ctx).
		Where("follower_id=? AND following_id=?", followerID, followingID).
		Delete(&entity.Follow{}).Error
}

func (r *followRepository) DeleteByUserID(ctx context.Context, userID string) error {
	return xcontext.DB(ctx).
		Where("follower_id=? OR following_id=?", userID, userID).
		Delete(&entity.Follow{}).Error
}
