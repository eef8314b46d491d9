package domain

import (
	"context"
	"errors"
	"io"

	"github.com/forumlab/backend/internal/entity"
	"github.com/forumlab/backend/internal/model"
	"github.com/forumlab/backend/internal/repository"
	"github.com/forumlab/backend/pkg/errorx"
	"github.com/forumlab/backend/pkg/storage"
	"github.com/forumlab/backend/pkg/xcontext"

	"gorm.io/gorm"
)

type UserDomain interface {
	GetProfile(context.Context, *model.GetProfileRequest) (*model.GetProfileResponse, error)
	UpdateProfile(context.Context, *model.UpdateProfileRequest) (*model.UpdateProfileResponse, error)
	UploadAvatar(context.Context, *model.UploadAvatarRequest) (*model.UploadAvatarResponse, error)
	GetProfileCommunities(context.Context, *model.GetProfileCommunitiesRequest) (*model.GetProfileCommunitiesResponse, error)
	GetProfilePosts(context.Context, *model.GetProfilePostsRequest) (*model.GetProfilePostsResponse, error)
	DeleteUser(context.Context, *model.DeleteUserRequest) (*model.DeleteUserResponse, error)
}

type userDomain struct {
	userRepo           repository.UserRepository
	profileRepo        repository.ProfileRepository
	postRepo           repository.PostRepository
	followRepo         repository.FollowRepository
	bookmarkRepo       repository.BookmarkRepository
	communityRepo      repository.CommunityRepository
	chatReadStatusRepo repository.ChatReadStatusRepository
	notificationRepo   repository.NotificationRepository
	storage            storage.Storage
}

func NewUserDomain(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	postRepo repository.PostRepository,
	followRepo repository.FollowRepository,
	bookmarkRepo repository.BookmarkRepository,
	communityRepo repository.CommunityRepository,
	chatReadStatusRepo repository.ChatReadStatusRepository,
	notificationRepo repository.NotificationRepository,
	s storage.Storage,
) *userDomain {
	return &userDomain{
		userRepo:           userRepo,
		profileRepo:        profileRepo,
		postRepo:           postRepo,
		followRepo:         followRepo,
		bookmarkRepo:       bookmarkRepo,
		communityRepo:      communityRepo,
		chatReadStatusRepo: chatReadStatusRepo,
		notificationRepo:   notificationRepo,
		storage:            s,
	}
}

func (d *userDomain) GetProfile(
	ctx context.Context, req *model.GetProfileRequest,
) (*model.GetProfileResponse, error) {
	user, err := d.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	profile, err := d.profileRepo.GetByUserID(ctx, user.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get profile: %v", err)
		return nil, errorx.Unknown
	}

	postCount, err := d.postRepo.CountByAuthorID(ctx, user.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count posts: %v", err)
		return nil, errorx.Unknown
	}

	followerCount, err := d.followRepo.CountFollowers(ctx, user.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count followers: %v", err)
		return nil, errorx.Unknown
	}

	followingCount, err := d.followRepo.CountFollowings(ctx, user.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count followings: %v", err)
		return nil, errorx.Unknown
	}

	includeSensitive := xcontext.RequestUserID(ctx) == user.ID
	return &model.GetProfileResponse{
		User:           model.ConvertUser(user, profile, includeSensitive),
		PostCount:      postCount,
		FollowerCount:  followerCount,
		FollowingCount: followingCount,
	}, nil
}

func (d *userDomain) UpdateProfile(
	ctx context.Context, req *model.UpdateProfileRequest,
) (*model.UpdateProfileResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	updates := map[string]any{}
	if req.Nickname != "" {
		updates["nickname"] = req.Nickname
	}

	if req.Bio != "" {
		updates["bio"] = req.Bio
	}

	if req.ImageOffsetX != nil {
		updates["image_offset_x"] = *req.ImageOffsetX
	}

	if req.ImageOffsetY != nil {
		updates["image_offset_y"] = *req.ImageOffsetY
	}

	if len(updates) == 0 {
		return nil, errorx.New(errorx.BadRequest, "Nothing to update")
	}

	if err := d.profileRepo.UpdateByUserID(ctx, userID, updates); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update profile: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateProfileResponse{}, nil
}

func (d *userDomain) UploadAvatar(
	ctx context.Context, req *model.UploadAvatarRequest,
) (*model.UploadAvatarResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	cfg := xcontext.Configs(ctx).File

	httpReq := xcontext.HTTPRequest(ctx)
	if err := httpReq.ParseMultipartForm(cfg.MaxSize); err != nil {
		return nil, errorx.New(errorx.BadRequest, "Cannot parse the multipart form")
	}

	files := httpReq.MultipartForm.File["image"]
	if len(files) == 0 {
		return nil, errorx.New(errorx.BadRequest, "Not found any image")
	}

	if len(files) > cfg.MaxFiles {
		return nil, errorx.New(errorx.TooManyFiles, "Too many files")
	}

	header := files[0]
	if header.Size > cfg.MaxSize {
		return nil, errorx.New(errorx.FileTooLarge, "The image is too large")
	}

	file, err := header.Open()
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot open the uploaded file: %v", err)
		return nil, errorx.Unknown
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot read the uploaded file: %v", err)
		return nil, errorx.Unknown
	}

	resp, err := d.storage.Upload(ctx, &storage.UploadObject{
		Bucket:   cfg.Bucket,
		Prefix:   "avatars",
		FileName: header.Filename,
		Mime:     header.Header.Get("Content-Type"),
		Data:     data,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upload the image: %v", err)
		return nil, errorx.New(errorx.UploadFailure, "Unable to upload the image")
	}

	if err := d.profileRepo.UpdateByUserID(ctx, userID, map[string]any{
		"image_url": resp.Url,
	}); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update profile image: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UploadAvatarResponse{URL: resp.Url}, nil
}

func (d *userDomain) GetProfileCommunities(
	ctx context.Context, req *model.GetProfileCommunitiesRequest,
) (*model.GetProfileCommunitiesResponse, error) {
	user, err := d.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	communities, err := d.communityRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get communities: %v", err)
		return nil, errorx.Unknown
	}

	clientCommunities := []model.Community{}
	for i := range communities {
		memberCount, err := d.communityRepo.CountMembers(ctx, communities[i].ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot count members: %v", err)
			return nil, errorx.Unknown
		}

		clientCommunities = append(clientCommunities,
			model.ConvertCommunity(&communities[i], memberCount))
	}

	return &model.GetProfileCommunitiesResponse{Communities: clientCommunities}, nil
}

func (d *userDomain) GetProfilePosts(
	ctx context.Context, req *model.GetProfilePostsRequest,
) (*model.GetProfilePostsResponse, error) {
	user, err := d.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	order, err := entity.ParseSortOrder(req.Sort)
	if err != nil {
		return nil, err
	}

	page, size, err := checkPagination(ctx, req.Page, req.Size)
	if err != nil {
		return nil, err
	}

	posts, err := d.postRepo.GetList(ctx, repository.PostFilter{
		AuthorID: user.ID,
		Order:    order,
		Offset:   page * size,
		Limit:    size,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get posts: %v", err)
		return nil, errorx.Unknown
	}

	profile, err := d.profileRepo.GetByUserID(ctx, user.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get profile: %v", err)
		return nil, errorx.Unknown
	}

	author := model.ConvertShortUser(user, profile)
	clientPosts := []model.Post{}
	for i := range posts {
		clientPosts = append(clientPosts, model.ConvertPost(&posts[i], author))
	}

	return &model.GetProfilePostsResponse{Posts: clientPosts}, nil
}

func (d *userDomain) DeleteUser(
	ctx context.Context, req *model.DeleteUserRequest,
) (*model.DeleteUserResponse, error) {
	requester, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get requester: %v", err)
		return nil, errorx.Unknown
	}

	if requester.ID != req.ID && requester.Role != entity.AdminRole {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if _, err := d.userRepo.GetByID(ctx, req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.followRepo.DeleteByUserID(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete follows: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.bookmarkRepo.DeleteByUserID(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete bookmarks: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.chatReadStatusRepo.DeleteByUserID(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete chat read statuses: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.communityRepo.DeleteMembersByUserID(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete community memberships: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.notificationRepo.DeleteByUserID(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete notifications: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.profileRepo.DeleteByUserID(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete profile: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.userRepo.DeleteByID(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete user: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.DeleteUserResponse{}, nil
}
