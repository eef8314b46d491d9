package domain

import (
	"context"
	"errors"

	"github.com/forumlab/backend/internal/entity"
	"github.com/forumlab/backend/internal/model"
	"github.com/forumlab/backend/internal/repository"
	"github.com/forumlab/backend/pkg/errorx"
	"github.com/forumlab/backend/pkg/xcontext"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

type BookmarkDomain interface {
	Toggle(context.Context, *model.ToggleBookmarkRequest) (*model.ToggleBookmarkResponse, error)
	GetStatus(context.Context, *model.GetBookmarkStatusRequest) (*model.GetBookmarkStatusResponse, error)
	GetList(context.Context, *model.GetBookmarksRequest) (*model.GetBookmarksResponse, error)
}

type bookmarkDomain struct {
	bookmarkRepo repository.BookmarkRepository
	postRepo     repository.PostRepository
	userRepo     repository.UserRepository
	profileRepo  repository.ProfileRepository
}

func NewBookmarkDomain(
	bookmarkRepo repository.BookmarkRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
) *bookmarkDomain {
	return &bookmarkDomain{
		bookmarkRepo: bookmarkRepo,
		postRepo:     postRepo,
		userRepo:     userRepo,
		profileRepo:  profileRepo,
	}
}

// Toggle bookmarks the post if no bookmark exists, otherwise removes it. The
// exists-check and the mutation run in one transaction.
func (d *bookmarkDomain) Toggle(
	ctx context.Context, req *model.ToggleBookmarkRequest,
) (*model.ToggleBookmarkResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	if _, err := d.postRepo.GetByID(ctx, req.PostID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	_, err := d.bookmarkRepo.Get(ctx, userID, req.PostID)
	if err == nil {
		if err := d.bookmarkRepo.Delete(ctx, userID, req.PostID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot delete bookmark: %v", err)
			return nil, errorx.Unknown
		}

		xcontext.WithCommitDBTransaction(ctx)
		return &model.ToggleBookmarkResponse{Bookmarked: false}, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get bookmark: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.bookmarkRepo.Create(ctx, &entity.Bookmark{
		UserID: userID,
		PostID: req.PostID,
	}); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create bookmark: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.ToggleBookmarkResponse{Bookmarked: true}, nil
}

// GetStatus tells whether the requester has bookmarked the post.
func (d *bookmarkDomain) GetStatus(
	ctx context.Context, req *model.GetBookmarkStatusRequest,
) (*model.GetBookmarkStatusResponse, error) {
	if _, err := d.postRepo.GetByID(ctx, req.PostID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	_, err := d.bookmarkRepo.Get(ctx, xcontext.RequestUserID(ctx), req.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.GetBookmarkStatusResponse{Bookmarked: false}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get bookmark: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetBookmarkStatusResponse{Bookmarked: true}, nil
}

func (d *bookmarkDomain) GetList(
	ctx context.Context, req *model.GetBookmarksRequest,
) (*model.GetBookmarksResponse, error) {
	offset, limit, err := checkPagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	bookmarks, err := d.bookmarkRepo.GetByUserID(ctx, xcontext.RequestUserID(ctx), offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get bookmarks: %v", err)
		return nil, errorx.Unknown
	}

	postIDs := lo.Map(bookmarks, func(b entity.Bookmark, _ int) string {
		return b.PostID
	})

	posts, err := d.postRepo.GetByIDs(ctx, postIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get posts: %v", err)
		return nil, errorx.Unknown
	}

	authorIDs := lo.Map(posts, func(p entity.Post, _ int) string {
		return p.AuthorID
	})

	authors, err := shortUserMap(ctx, d.userRepo, d.profileRepo, authorIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get authors: %v", err)
		return nil, errorx.Unknown
	}

	// Keep bookmark recency order.
	postMap := map[string]*entity.Post{}
	for i := range posts {
		postMap[posts[i].ID] = &posts[i]
	}

	clientPosts := []model.Post{}
	for _, id := range postIDs {
		post, ok := postMap[id]
		if !ok {
			continue
		}

		clientPosts = append(clientPosts, model.ConvertPost(post, authors[post.AuthorID]))
	}

	return &model.GetBookmarksResponse{Posts: clientPosts}, nil
}
