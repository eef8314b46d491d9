package domain

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/forumlab/backend/internal/entity"
	"github.com/forumlab/backend/internal/model"
	"github.com/forumlab/backend/internal/repository"
	"github.com/forumlab/backend/pkg/dateutil"
	"github.com/forumlab/backend/pkg/errorx"
	"github.com/forumlab/backend/pkg/xcontext"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

type PostDomain interface {
	Create(context.Context, *model.CreatePostRequest) (*model.CreatePostResponse, error)
	Get(context.Context, *model.GetPostRequest) (*model.GetPostResponse, error)
	GetList(context.Context, *model.GetPostsRequest) (*model.GetPostsResponse, error)
	Update(context.Context, *model.UpdatePostRequest) (*model.UpdatePostResponse, error)
	Delete(context.Context, *model.DeletePostRequest) (*model.DeletePostResponse, error)
	Like(context.Context, *model.LikePostRequest) (*model.LikePostResponse, error)
	Dislike(context.Context, *model.DislikePostRequest) (*model.DislikePostResponse, error)
	GetTopThisWeek(context.Context, *model.GetTopPostsThisWeekRequest) (*model.GetTopPostsThisWeekResponse, error)
	GetMyCommunityPosts(context.Context, *model.GetMyCommunityPostsRequest) (*model.GetMyCommunityPostsResponse, error)
}

type postDomain struct {
	postRepo         repository.PostRepository
	commentRepo      repository.CommentRepository
	bookmarkRepo     repository.BookmarkRepository
	communityRepo    repository.CommunityRepository
	userRepo         repository.UserRepository
	profileRepo      repository.ProfileRepository
	notificationRepo repository.NotificationRepository
	sanitizer        *bluemonday.Policy
}

func NewPostDomain(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	bookmarkRepo repository.BookmarkRepository,
	communityRepo repository.CommunityRepository,
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	notificationRepo repository.NotificationRepository,
) *postDomain {
	return &postDomain{
		postRepo:         postRepo,
		commentRepo:      commentRepo,
		bookmarkRepo:     bookmarkRepo,
		communityRepo:    communityRepo,
		userRepo:         userRepo,
		profileRepo:      profileRepo,
		notificationRepo: notificationRepo,
		sanitizer:        bluemonday.UGCPolicy(),
	}
}

func (d *postDomain) Create(
	ctx context.Context, req *model.CreatePostRequest,
) (*model.CreatePostResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	if strings.TrimSpace(req.Title) == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty title")
	}

	communityID := sql.NullString{}
	if req.CommunityID != "" {
		if _, err := d.communityRepo.GetByID(ctx, req.CommunityID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.NotFound, "Not found community")
			}

			xcontext.Logger(ctx).Errorf("Cannot get community: %v", err)
			return nil, errorx.Unknown
		}

		if _, err := d.communityRepo.GetMember(ctx, req.CommunityID, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.PermissionDenied, "You are not a member of this community")
			}

			xcontext.Logger(ctx).Errorf("Cannot get community member: %v", err)
			return nil, errorx.Unknown
		}

		communityID = sql.NullString{Valid: true, String: req.CommunityID}
	}

	post := &entity.Post{
		Base:        entity.Base{ID: uuid.NewString()},
		AuthorID:    userID,
		CommunityID: communityID,
		Title:       req.Title,
		Content:     d.sanitizer.Sanitize(req.Content),
	}

	if err := d.postRepo.Create(ctx, post); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create post: %v", err)
		return nil, errorx.Unknown
	}

	author, err := d.shortUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &model.CreatePostResponse{Post: model.ConvertPost(post, author)}, nil
}

func (d *postDomain) Get(
	ctx context.Context, req *model.GetPostRequest,
) (*model.GetPostResponse, error) {
	post, err := d.postRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	author, err := d.shortUser(ctx, post.AuthorID)
	if err != nil {
		return nil, err
	}

	return &model.GetPostResponse{Post: model.ConvertPost(post, author)}, nil
}

func (d *postDomain) GetList(
	ctx context.Context, req *model.GetPostsRequest,
) (*model.GetPostsResponse, error) {
	order, err := entity.ParseSortOrder(req.Sort)
	if err != nil {
		return nil, err
	}

	offset, limit, err := checkPagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	posts, err := d.postRepo.GetList(ctx, repository.PostFilter{
		CommunityID: req.CommunityID,
		AuthorID:    req.AuthorID,
		Order:       order,
		Offset:      offset,
		Limit:       limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get posts: %v", err)
		return nil, errorx.Unknown
	}

	clientPosts, err := d.convertPosts(ctx, posts)
	if err != nil {
		return nil, err
	}

	return &model.GetPostsResponse{Posts: clientPosts}, nil
}

func (d *postDomain) Update(
	ctx context.Context, req *model.UpdatePostRequest,
) (*model.UpdatePostResponse, error) {
	post, err := d.postRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	if post.AuthorID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the author can update this post")
	}

	updates := map[string]any{}
	if req.Title != "" {
		updates["title"] = req.Title
	}

	if req.Content != "" {
		updates["content"] = d.sanitizer.Sanitize(req.Content)
	}

	if len(updates) == 0 {
		return nil, errorx.New(errorx.BadRequest, "Nothing to update")
	}

	if err := d.postRepo.UpdateByID(ctx, req.ID, updates); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update post: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdatePostResponse{}, nil
}

func (d *postDomain) Delete(
	ctx context.Context, req *model.DeletePostRequest,
) (*model.DeletePostResponse, error) {
	post, err := d.postRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	requester, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get requester: %v", err)
		return nil, errorx.Unknown
	}

	if post.AuthorID != requester.ID && requester.Role != entity.AdminRole {
		return nil, errorx.New(errorx.PermissionDenied, "Only the author can delete this post")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.commentRepo.DeleteByPostID(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete comments: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.bookmarkRepo.DeleteByPostID(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete bookmarks: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.postRepo.DeleteByID(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete post: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.DeletePostResponse{}, nil
}

func (d *postDomain) Like(
	ctx context.Context, req *model.LikePostRequest,
) (*model.LikePostResponse, error) {
	post, err := d.postRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.postRepo.IncreaseLike(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase like count: %v", err)
		return nil, errorx.Unknown
	}

	userID := xcontext.RequestUserID(ctx)
	if post.AuthorID != userID {
		err := d.notificationRepo.Create(ctx, &entity.Notification{
			Base:       entity.Base{ID: uuid.NewString()},
			ReceiverID: post.AuthorID,
			SenderID:   userID,
			Type:       entity.NotificationTypePostLike,
			TargetID:   post.ID,
		})
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot create like notification: %v", err)
		}
	}

	return &model.LikePostResponse{}, nil
}

func (d *postDomain) Dislike(
	ctx context.Context, req *model.DislikePostRequest,
) (*model.DislikePostResponse, error) {
	if _, err := d.postRepo.GetByID(ctx, req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.postRepo.IncreaseDislike(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase dislike count: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DislikePostResponse{}, nil
}

func (d *postDomain) GetTopThisWeek(
	ctx context.Context, req *model.GetTopPostsThisWeekRequest,
) (*model.GetTopPostsThisWeekResponse, error) {
	_, limit, err := checkPagination(ctx, 0, req.Limit)
	if err != nil {
		return nil, err
	}

	posts, err := d.postRepo.GetList(ctx, repository.PostFilter{
		CreatedAfter: dateutil.BeginningOfWeek(time.Now()),
		Order:        entity.SortOrderTop,
		Limit:        limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get posts: %v", err)
		return nil, errorx.Unknown
	}

	clientPosts, err := d.convertPosts(ctx, posts)
	if err != nil {
		return nil, err
	}

	return &model.GetTopPostsThisWeekResponse{Posts: clientPosts}, nil
}

func (d *postDomain) GetMyCommunityPosts(
	ctx context.Context, req *model.GetMyCommunityPostsRequest,
) (*model.GetMyCommunityPostsResponse, error) {
	offset, limit, err := checkPagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	communities, err := d.communityRepo.GetByUserID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get communities: %v", err)
		return nil, errorx.Unknown
	}

	if len(communities) == 0 {
		return &model.GetMyCommunityPostsResponse{Posts: []model.Post{}}, nil
	}

	communityIDs := lo.Map(communities, func(c entity.Community, _ int) string {
		return c.ID
	})

	posts, err := d.postRepo.GetList(ctx, repository.PostFilter{
		CommunityIDs: communityIDs,
		Order:        entity.SortOrderNewest,
		Offset:       offset,
		Limit:        limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get posts: %v", err)
		return nil, errorx.Unknown
	}

	clientPosts, err := d.convertPosts(ctx, posts)
	if err != nil {
		return nil, err
	}

	return &model.GetMyCommunityPostsResponse{Posts: clientPosts}, nil
}

func (d *postDomain) shortUser(ctx context.Context, userID string) (model.ShortUser, error) {
	users, err := shortUserMap(ctx, d.userRepo, d.profileRepo, []string{userID})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user %s: %v", userID, err)
		return model.ShortUser{}, errorx.Unknown
	}

	return users[userID], nil
}

func (d *postDomain) convertPosts(ctx context.Context, posts []entity.Post) ([]model.Post, error) {
	authorIDs := lo.Map(posts, func(p entity.Post, _ int) string {
		return p.AuthorID
	})

	authors, err := shortUserMap(ctx, d.userRepo, d.profileRepo, authorIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get authors: %v", err)
		return nil, errorx.Unknown
	}

	return model.ConvertPosts(posts, authors), nil
}
