package repository

import (
	"context"
	"time"

	"github.com/forumlab/backend/internal/entity"
	"github.com/forumlab/backend/pkg/xcontext"
)

type CommunityRepository interface {
	Create(ctx context.Context, data *entity.Community) error
	GetByID(ctx context.Context, id string) (*entity.Community, error)
	GetByName(ctx context.Context, name string) (*entity.Community, error)
	GetList(ctx context.Context, offset, limit int) ([]entity.Community, error)
	Search(ctx context.Context, keyword string, limit int) ([]entity.Community, error)
	CreateMember(ctx context.Context, data *entity.CommunityMember) error
	GetMember(ctx context.Context, communityID, userID string) (*entity.CommunityMember, error)
	GetMembers(ctx context.Context, communityID string, offset, limit int) ([]entity.CommunityMember, error)
	GetNewMembers(ctx context.Context, communityID string, limit int) ([]entity.CommunityMember, error)
	GetByUserID(ctx context.Context, userID string) ([]entity.Community, error)
	CountMembers(ctx context.Context, communityID string) (int64, error)
	DeleteMember(ctx context.Context, communityID, userID string) error
	DeleteMembersByUserID(ctx context.Context, userID string) error
}

type communityRepository struct{}

func NewCommunityRepository() CommunityRepository {
	return &communityRepository{}
}

func (r *communityRepository) Create(ctx context.Context, data *entity.Community) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *communityRepository) GetByID(ctx context.Context, id string) (*entity.Community, error) {
	var record entity.Community
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *communityRepository) GetByName(ctx context.Context, name string) (*entity.Community, error) {
	var record entity.Community
	if err := xcontext.DB(ctx).Where("name=?", name).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *communityRepository) GetList(ctx context.Context, offset, limit int) ([]entity.Community, error) {
	var records []entity.Community
	err := xcontext.DB(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *communityRepository) Search(ctx context.Context, keyword string, limit int) ([]entity.Community, error) {
	var records []entity.Community
	err := xcontext.DB(ctx).
		Where("name LIKE ? OR description LIKE ?", "%"+keyword+"%", "%"+keyword+"%").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *communityRepository) CreateMember(ctx context.Context, data *entity.CommunityMember) error {
	if data.JoinedAt.IsZero() {
		data.JoinedAt = time.Now()
	}

	return xcontext.DB(ctx).Create(data).Error
}

func (r *communityRepository) GetMember(
	ctx context.Context, communityID, userID string,
) (*entity.CommunityMember, error) {
	var record entity.CommunityMember
	err := xcontext.DB(ctx).
		Where("community_id=? AND user_id=?", communityID, userID).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *communityRepository) GetMembers(
	ctx context.Context, communityID string, offset, limit int,
) ([]entity.CommunityMember, error) {
	var records []entity.CommunityMember
	err := xcontext.DB(ctx).
		Where("community_id=?", communityID).
		Order("joined_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *communityRepository) GetNewMembers(
	ctx context.Context, communityID string, limit int,
) ([]entity.CommunityMember, error) {
	var records []entity.CommunityMember
	err := xcontext.DB(ctx).
		Where("community_id=?", communityID).
		Order("joined_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *communityRepository) GetByUserID(ctx context.Context, userID string) ([]entity.Community, error) {
	var records []entity.Community
	err := xcontext.DB(ctx).
		Joins("JOIN community_members ON community_members.community_id=communities.id").
		Where("community_members.user_id=?", userID).
		Order("community_members.joined_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *communityRepository) CountMembers(ctx context.Context, communityID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.CommunityMember{}).
		Where("community_id=?", communityID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *communityRepository) DeleteMember(ctx context.Context, communityID, userID string) error {
	return xcontext.DB(ctx).
		Where("community_id=? AND user_id=?", communityID, userID).
		Delete(&entity.CommunityMember{}).Error
}

func (r *communityRepository) DeleteMembersByUserID(ctx context.Context, userID string) error {
	return xcontext.DB(ctx).
		Where("user_id=?", userID).
		Delete(&entity.CommunityMember{}).Error
}
