package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/forumlab/backend/internal/entity"
	"github.com/forumlab/backend/internal/model"
	"github.com/forumlab/backend/internal/repository"
	"github.com/forumlab/backend/pkg/enum"
	"github.com/forumlab/backend/pkg/errorx"
	"github.com/forumlab/backend/pkg/xcontext"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

type ReportDomain interface {
	Create(context.Context, *model.CreateReportRequest) (*model.CreateReportResponse, error)
	Resolve(context.Context, *model.ResolveReportRequest) (*model.ResolveReportResponse, error)
	GetList(context.Context, *model.GetReportsRequest) (*model.GetReportsResponse, error)
}

type reportDomain struct {
	reportRepo    repository.ReportRepository
	postRepo      repository.PostRepository
	commentRepo   repository.CommentRepository
	userRepo      repository.UserRepository
	communityRepo repository.CommunityRepository
}

func NewReportDomain(
	reportRepo repository.ReportRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	communityRepo repository.CommunityRepository,
) *reportDomain {
	return &reportDomain{
		reportRepo:    reportRepo,
		postRepo:      postRepo,
		commentRepo:   commentRepo,
		userRepo:      userRepo,
		communityRepo: communityRepo,
	}
}

func (d *reportDomain) Create(
	ctx context.Context, req *model.CreateReportRequest,
) (*model.CreateReportResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	if strings.TrimSpace(req.Reason) == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty reason")
	}

	targetType, err := enum.ToEnum[entity.ReportTargetType](req.TargetType)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid target type %s", req.TargetType)
	}

	severity := entity.ReportSeverityLow
	if req.Severity != "" {
		severity, err = enum.ToEnum[entity.ReportSeverity](req.Severity)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid severity %s", req.Severity)
		}
	}

	if err := d.checkTarget(ctx, targetType, req.TargetID); err != nil {
		return nil, err
	}

	if _, err := d.reportRepo.GetByTarget(ctx, userID, targetType, req.TargetID); err == nil {
		// The legacy behavior answers a duplicate report with an internal
		// error; the config flag opts into a client error instead.
		if xcontext.Configs(ctx).Report.DuplicateAsBadRequest {
			return nil, errorx.New(errorx.BadRequest, "You have already reported this target")
		}

		return nil, errorx.New(errorx.Internal, "You have already reported this target")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check duplicate report: %v", err)
		return nil, errorx.Unknown
	}

	report := &entity.Report{
		Base:       entity.Base{ID: uuid.NewString()},
		ReporterID: userID,
		TargetType: targetType,
		TargetID:   req.TargetID,
		Reason:     req.Reason,
		Detail:     req.Detail,
		Status:     entity.ReportStatusPending,
		Severity:   severity,
	}

	if err := d.reportRepo.Create(ctx, report); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create report: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateReportResponse{Report: model.ConvertReport(report)}, nil
}

func (d *reportDomain) checkTarget(
	ctx context.Context, targetType entity.ReportTargetType, targetID string,
) error {
	var err error
	switch targetType {
	case entity.ReportTargetPost:
		_, err = d.postRepo.GetByID(ctx, targetID)
	case entity.ReportTargetComment:
		_, err = d.commentRepo.GetByID(ctx, targetID)
	case entity.ReportTargetUser:
		_, err = d.userRepo.GetByID(ctx, targetID)
	case entity.ReportTargetCommunity:
		_, err = d.communityRepo.GetByID(ctx, targetID)
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorx.New(errorx.NotFound, "Not found %s", targetType)
		}

		xcontext.Logger(ctx).Errorf("Cannot check report target: %v", err)
		return errorx.Unknown
	}

	return nil
}

func (d *reportDomain) Resolve(
	ctx context.Context, req *model.ResolveReportRequest,
) (*model.ResolveReportResponse, error) {
	if err := d.verifyAdmin(ctx); err != nil {
		return nil, err
	}

	var status entity.ReportStatus
	switch req.Action {
	case "approve":
		status = entity.ReportStatusApproved
	case "reject":
		status = entity.ReportStatusRejected
	default:
		return nil, errorx.New(errorx.BadRequest, "Invalid action %s", req.Action)
	}

	if _, err := d.reportRepo.GetByID(ctx, req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found report")
		}

		xcontext.Logger(ctx).Errorf("Cannot get report: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.reportRepo.UpdateStatus(ctx, req.ID, status); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update report status: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ResolveReportResponse{}, nil
}

func (d *reportDomain) GetList(
	ctx context.Context, req *model.GetReportsRequest,
) (*model.GetReportsResponse, error) {
	if err := d.verifyAdmin(ctx); err != nil {
		return nil, err
	}

	offset, limit, err := checkPagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	var status entity.ReportStatus
	if req.Status != "" {
		status, err = enum.ToEnum[entity.ReportStatus](req.Status)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid status %s", req.Status)
		}
	}

	reports, err := d.reportRepo.GetList(ctx, status, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get reports: %v", err)
		return nil, errorx.Unknown
	}

	clientReports := lo.Map(reports, func(r entity.Report, _ int) model.Report {
		return model.ConvertReport(&r)
	})

	return &model.GetReportsResponse{Reports: clientReports}, nil
}

func (d *reportDomain) verifyAdmin(ctx context.Context) error {
	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get requester: %v", err)
		return errorx.Unknown
	}

	if user.Role != entity.AdminRole {
		return errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	return nil
}
