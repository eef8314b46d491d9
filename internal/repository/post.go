package repository

import (
	"context"
	"time"

	"github.com/forumlab/backend/internal/entity"
	"github.com/forumlab/backend/pkg/xcontext"

	"gorm.io/gorm"
)

type PostFilter struct {
	AuthorID     string
	CommunityID  string
	CommunityIDs []string
	CreatedAfter time.Time
	Order        entity.SortOrder
	Offset       int
	Limit        int
}

type PostRepository interface {
	Create(ctx context.Context, data *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.Post, error)
	GetList(ctx context.Context, filter PostFilter) ([]entity.Post, error)
	UpdateByID(ctx context.Context, id string, updates map[string]any) error
	IncreaseLike(ctx context.Context, id string) error
	IncreaseDislike(ctx context.Context, id string) error
	Search(ctx context.Context, keyword string, limit int) ([]entity.Post, error)
	CountByAuthorID(ctx context.Context, authorID string) (int64, error)
	DeleteByID(ctx context.Context, id string) error
	DeleteByAuthorID(ctx context.Context, authorID string) error
}

type postRepository struct{}

func NewPostRepository() PostRepository {
	return &postRepository{}
}

func (r *postRepository) Create(ctx context.Context, data *entity.Post) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	var record entity.Post
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *postRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.Post, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var records []entity.Post
	if err := xcontext.DB(ctx).Where("id IN (?)", ids).Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *postRepository) GetList(ctx context.Context, filter PostFilter) ([]entity.Post, error) {
	tx := xcontext.DB(ctx).Model(&entity.Post{})
	if filter.AuthorID != "" {
		tx = tx.Where("author_id=?", filter.AuthorID)
	}

	if filter.CommunityID != "" {
		tx = tx.Where("community_id=?", filter.CommunityID)
	}

	if len(filter.CommunityIDs) > 0 {
		tx = tx.Where("community_id IN (?)", filter.CommunityIDs)
	}

	if !filter.CreatedAfter.IsZero() {
		tx = tx.Where("created_at >= ?", filter.CreatedAfter)
	}

	tx = applyPostOrder(tx, filter.Order)
	if filter.Offset > 0 {
		tx = tx.Offset(filter.Offset)
	}

	if filter.Limit > 0 {
		tx = tx.Limit(filter.Limit)
	}

	var records []entity.Post
	if err := tx.Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func applyPostOrder(tx *gorm.DB, order entity.SortOrder) *gorm.DB {
	switch order {
	case entity.SortOrderOldest:
		return tx.Order("created_at ASC")
	case entity.SortOrderTop:
		return tx.Order("like_count DESC, created_at DESC")
	default:
		return tx.Order("created_at DESC")
	}
}

func (r *postRepository) UpdateByID(ctx context.Context, id string, updates map[string]any) error {
	return xcontext.DB(ctx).Model(&entity.Post{}).
		Where("id=?", id).
		Updates(updates).Error
}

func (r *postRepository) IncreaseLike(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Model(&entity.Post{}).
		Where("id=?", id).
		Update("like_count", gorm.Expr("like_count+1")).Error
}

func (r *postRepository) IncreaseDislike(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Model(&entity.Post{}).
		Where("id=?", id).
		Update("dislike_count", gorm.Expr("dislike_count+1")).Error
}

func (r *postRepository) Search(ctx context.Context, keyword string, limit int) ([]entity.Post, error) {
	var records []entity.Post
	err := xcontext.DB(ctx).
		Where("title LIKE ? OR content LIKE ?", "%"+keyword+"%", "%"+keyword+"%").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *postRepository) CountByAuthorID(ctx context.Context, authorID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.Post{}).
		Where("author_id=?", authorID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *postRepository) DeleteByID(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Where("id=?", id).Delete(&entity.Post{}).Error
}

func (r *postRepository) DeleteByAuthorID(ctx context.Context, authorID string) error {
	return xcontext.DB(ctx).Where("author_id=?", authorID).Delete(&entity.Post{}).Error
}
