package repository

import (
	"context"

	"github.com/forumlab/backend/internal/entity"
	"github.com/forumlab/backend/pkg/xcontext"
)

type ReportRepository interface {
	Create(ctx context.Context, data *entity.Report) error
	GetByID(ctx context.Context, id string) (*entity.Report, error)
	GetByTarget(ctx context.Context, reporterID string, targetType entity.ReportTargetType, targetID string) (*entity.Report, error)
	GetList(ctx context.Context, status entity.ReportStatus, offset, limit int) ([]entity.Report, error)
	UpdateStatus(ctx context.Context, id string, status entity.ReportStatus) error
}

type reportRepository struct{}

func NewReportRepository() ReportRepository {
	return &reportRepository{}
}

func (r *reportRepository) Create(ctx context.Context, data *entity.Report) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *reportRepository) GetByID(ctx context.Context, id string) (*entity.Report, error) {
	var record entity.Report
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *reportRepository) GetByTarget(
	ctx context.Context, reporterID string, targetType entity.ReportTargetType, targetID string,
) (*entity.Report, error) {
	var record entity.Report
	err := xcontext.DB(ctx).
		Where("reporter_id=? AND target_type=? AND target_id=?", reporterID, targetType, targetID).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *reportRepository) GetList(
	ctx context.Context, status entity.ReportStatus, offset, limit int,
) ([]entity.Report, error) {
	tx := xcontext.DB(ctx).Model(&entity.Report{})
	if status != "" {
		tx = tx.Where("status=?", status)
	}

	var records []entity.Report
	err := tx.Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *reportRepository) UpdateStatus(ctx context.Context, id string, status entity.ReportStatus) error {
	return xcontext.DB(ctx).Model(&entity.Report{}).
		Where("id=?", id).
		Update("status", status).Error
}
