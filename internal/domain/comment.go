package domain

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/forumlab/backend/internal/entity"
	"github.com/forumlab/backend/internal/model"
	"github.com/forumlab/backend/internal/repository"
	"github.com/forumlab/backend/pkg/errorx"
	"github.com/forumlab/backend/pkg/xcontext"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

type CommentDomain interface {
	Create(context.Context, *model.CreateCommentRequest) (*model.CreateCommentResponse, error)
	GetList(context.Context, *model.GetCommentsRequest) (*model.GetCommentsResponse, error)
	Like(context.Context, *model.LikeCommentRequest) (*model.LikeCommentResponse, error)
	Dislike(context.Context, *model.DislikeCommentRequest) (*model.DislikeCommentResponse, error)
	Delete(context.Context, *model.DeleteCommentRequest) (*model.DeleteCommentResponse, error)
}

type commentDomain struct {
	commentRepo      repository.CommentRepository
	postRepo         repository.PostRepository
	userRepo         repository.UserRepository
	profileRepo      repository.ProfileRepository
	notificationRepo repository.NotificationRepository
	sanitizer        *bluemonday.Policy
}

func NewCommentDomain(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	notificationRepo repository.NotificationRepository,
) *commentDomain {
	return &commentDomain{
		commentRepo:      commentRepo,
		postRepo:         postRepo,
		userRepo:         userRepo,
		profileRepo:      profileRepo,
		notificationRepo: notificationRepo,
		sanitizer:        bluemonday.UGCPolicy(),
	}
}

func (d *commentDomain) Create(
	ctx context.Context, req *model.CreateCommentRequest,
) (*model.CreateCommentResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	if strings.TrimSpace(req.Content) == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty content")
	}

	post, err := d.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	parentID := sql.NullString{}
	var parent *entity.Comment
	if req.ParentID != "" {
		parent, err = d.commentRepo.GetByID(ctx, req.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.NotFound, "Not found parent comment")
			}

			xcontext.Logger(ctx).Errorf("Cannot get parent comment: %v", err)
			return nil, errorx.Unknown
		}

		if parent.PostID != req.PostID {
			return nil, errorx.New(errorx.BadRequest, "Parent comment belongs to another post")
		}

		parentID = sql.NullString{Valid: true, String: req.ParentID}
	}

	comment := &entity.Comment{
		Base:     entity.Base{ID: uuid.NewString()},
		PostID:   req.PostID,
		AuthorID: userID,
		ParentID: parentID,
		Content:  d.sanitizer.Sanitize(req.Content),
	}

	if err := d.commentRepo.Create(ctx, comment); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create comment: %v", err)
		return nil, errorx.Unknown
	}

	d.notifyCreated(ctx, comment, post, parent)

	authors, err := shortUserMap(ctx, d.userRepo, d.profileRepo, []string{userID})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get author: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateCommentResponse{
		Comment: model.ConvertComment(comment, authors[userID]),
	}, nil
}

// notifyCreated notifies the parent author for a reply, otherwise the post
// author. Self-notifications are skipped.
func (d *commentDomain) notifyCreated(
	ctx context.Context, comment *entity.Comment, post *entity.Post, parent *entity.Comment,
) {
	receiverID := post.AuthorID
	notificationType := entity.NotificationTypeComment
	if parent != nil {
		receiverID = parent.AuthorID
		notificationType = entity.NotificationTypeReply
	}

	if receiverID == comment.AuthorID {
		return
	}

	err := d.notificationRepo.Create(ctx, &entity.Notification{
		Base:       entity.Base{ID: uuid.NewString()},
		ReceiverID: receiverID,
		SenderID:   comment.AuthorID,
		Type:       notificationType,
		TargetID:   comment.PostID,
	})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot create comment notification: %v", err)
	}
}

func (d *commentDomain) GetList(
	ctx context.Context, req *model.GetCommentsRequest,
) (*model.GetCommentsResponse, error) {
	if _, err := d.postRepo.GetByID(ctx, req.PostID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	comments, err := d.commentRepo.GetByPostID(ctx, req.PostID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get comments: %v", err)
		return nil, errorx.Unknown
	}

	authorIDs := lo.Map(comments, func(c entity.Comment, _ int) string {
		return c.AuthorID
	})

	authors, err := shortUserMap(ctx, d.userRepo, d.profileRepo, authorIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get authors: %v", err)
		return nil, errorx.Unknown
	}

	// Top-level comments keep creation order, replies nest one level under
	// their parent.
	topLevel := []model.Comment{}
	indexByID := map[string]int{}
	for i := range comments {
		if comments[i].ParentID.Valid {
			continue
		}

		converted := model.ConvertComment(&comments[i], authors[comments[i].AuthorID])
		topLevel = append(topLevel, converted)
		indexByID[converted.ID] = len(topLevel) - 1
	}

	for i := range comments {
		if !comments[i].ParentID.Valid {
			continue
		}

		parentIndex, ok := indexByID[comments[i].ParentID.String]
		if !ok {
			continue
		}

		converted := model.ConvertComment(&comments[i], authors[comments[i].AuthorID])
		topLevel[parentIndex].Replies = append(topLevel[parentIndex].Replies, converted)
	}

	return &model.GetCommentsResponse{Comments: topLevel}, nil
}

func (d *commentDomain) Like(
	ctx context.Context, req *model.LikeCommentRequest,
) (*model.LikeCommentResponse, error) {
	comment, err := d.commentRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found comment")
		}

		xcontext.Logger(ctx).Errorf("Cannot get comment: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.commentRepo.IncreaseLike(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase like count: %v", err)
		return nil, errorx.Unknown
	}

	userID := xcontext.RequestUserID(ctx)
	if comment.AuthorID != userID {
		err := d.notificationRepo.Create(ctx, &entity.Notification{
			Base:       entity.Base{ID: uuid.NewString()},
			ReceiverID: comment.AuthorID,
			SenderID:   userID,
			Type:       entity.NotificationTypeCommentLike,
			TargetID:   comment.PostID,
		})
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot create like notification: %v", err)
		}
	}

	return &model.LikeCommentResponse{}, nil
}

func (d *commentDomain) Dislike(
	ctx context.Context, req *model.DislikeCommentRequest,
) (*model.DislikeCommentResponse, error) {
	if _, err := d.commentRepo.GetByID(ctx, req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found comment")
		}

		xcontext.Logger(ctx).Errorf("Cannot get comment: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.commentRepo.IncreaseDislike(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase dislike count: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DislikeCommentResponse{}, nil
}

func (d *commentDomain) Delete(
	ctx context.Context, req *model.DeleteCommentRequest,
) (*model.DeleteCommentResponse, error) {
	comment, err := d.commentRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found comment")
		}

		xcontext.Logger(ctx).Errorf("Cannot get comment: %v", err)
		return nil, errorx.Unknown
	}

	requester, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get requester: %v", err)
		return nil, errorx.Unknown
	}

	if comment.AuthorID != requester.ID && requester.Role != entity.AdminRole {
		return nil, errorx.New(errorx.PermissionDenied, "Only the author can delete this comment")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.commentRepo.DeleteByParentID(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete replies: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.commentRepo.DeleteByID(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete comment: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.DeleteCommentResponse{}, nil
}
