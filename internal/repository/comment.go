package repository

import (
	"context"

	"github.com/forumlab/backend/internal/entity"
	"github.com/forumlab/backend/pkg/xcontext"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, data *entity.Comment) error
	GetByID(ctx context.Context, id string) (*entity.Comment, error)
	GetByPostID(ctx context.Context, postID string) ([]entity.Comment, error)
	GetByParentID(ctx context.Context, parentID string) ([]entity.Comment, error)
	IncreaseLike(ctx context.Context, id string) error
	IncreaseDislike(ctx context.Context, id string) error
	DeleteByID(ctx context.Context, id string) error
	DeleteByParentID(ctx context.Context, parentID string) error
	DeleteByPostID(ctx context.Context, postID string) error
}

type commentRepository struct{}

func NewCommentRepository() CommentRepository {
	return &commentRepository{}
}

func (r *commentRepository) Create(ctx context.Context, data *entity.Comment) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	var record entity.Comment
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *commentRepository) GetByPostID(ctx context.Context, postID string) ([]entity.Comment, error) {
	var records []entity.Comment
	err := xcontext.DB(ctx).
		Where("post_id=?", postID).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *commentRepository) GetByParentID(ctx context.Context, parentID string) ([]entity.Comment, error) {
	var records []entity.Comment
	err := xcontext.DB(ctx).
		Where("parent_id=?", parentID).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *commentRepository) IncreaseLike(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Model(&entity.Comment{}).
		Where("id=?", id).
		Update("like_count", gorm.Expr("like_count+1")).Error
}

func (r *commentRepository) IncreaseDislike(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Model(&entity.Comment{}).
		Where("id=?", id).
		Update("dislike_count", gorm.Expr("dislike_count+1")).Error
}

func (r *commentRepository) DeleteByID(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Where("id=?", id).Delete(&entity.Comment{}).Error
}

func (r *commentRepository) DeleteByParentID(ctx context.Context, parentID string) error {
	return xcontext.DB(ctx).Where("parent_id=?", parentID).Delete(&entity.Comment{}).Error
}

func (r *commentRepository) DeleteByPostID(ctx context.Context, postID string) error {
	return xcontext.DB(ctx).Where("post_id=?", postID).Delete(&entity.Comment{}).Error
}
