package repository

import (
	"context"

	"github.com/forumlab/backend/internal/entity"
	"github.com/forumlab/backend/pkg/xcontext"
)

type ProfileRepository interface {
	Create(ctx context.Context, data *entity.Profile) error
	GetByUserID(ctx context.Context, userID string) (*entity.Profile, error)
	GetByUserIDs(ctx context.Context, userIDs []string) ([]entity.Profile, error)
	UpdateByUserID(ctx context.Context, userID string, updates map[string]any) error
	DeleteByUserID(ctx context.Context, userID string) error
}

type profileRepository struct{}

func NewProfileRepository() ProfileRepository {
	return &profileRepository{}
}

func (r *profileRepository) Create(ctx context.Context, data *entity.Profile) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	var record entity.Profile
	if err := xcontext.DB(ctx).Where("user_id=?", userID).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *profileRepository) GetByUserIDs(ctx context.Context, userIDs []string) ([]entity.Profile, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	var records []entity.Profile
	if err := xcontext.DB(ctx).Where("user_id IN (?)", userIDs).Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *profileRepository) UpdateByUserID(ctx context.Context, userID string, updates map[string]any) error {
	return xcontext.DB(ctx).Model(&entity.Profile{}).
		Where("user_id=?", userID).
		Updates(updates).Error
}

func (r *profileRepository) DeleteByUserID(ctx context.Context, userID string) error {
	return xcontext.DB(ctx).Where("user_id=?", userID).Delete(&entity.Profile{}).Error
}
