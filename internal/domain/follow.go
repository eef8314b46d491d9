package domain

import (
	"context"
	"errors"

	"github.com/forumlab/backend/internal/entity"
	"github.com/forumlab/backend/internal/model"
	"github.com/forumlab/backend/internal/repository"
	"github.com/forumlab/backend/pkg/errorx"
	"github.com/forumlab/backend/pkg/xcontext"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FollowDomain interface {
	Toggle(context.Context, *model.ToggleFollowRequest) (*model.ToggleFollowResponse, error)
	GetFollowers(context.Context, *model.GetFollowersRequest) (*model.GetFollowersResponse, error)
	GetFollowings(context.Context, *model.GetFollowingsRequest) (*model.GetFollowingsResponse, error)
}

type followDomain struct {
	followRepo       repository.FollowRepository
	userRepo         repository.UserRepository
	profileRepo      repository.ProfileRepository
	notificationRepo repository.NotificationRepository
}

func NewFollowDomain(
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	notificationRepo repository.NotificationRepository,
) *followDomain {
	return &followDomain{
		followRepo:       followRepo,
		userRepo:         userRepo,
		profileRepo:      profileRepo,
		notificationRepo: notificationRepo,
	}
}

// Toggle follows the target if no edge exists, otherwise unfollows. The
// exists-check and the mutation run in one transaction.
func (d *followDomain) Toggle(
	ctx context.Context, req *model.ToggleFollowRequest,
) (*model.ToggleFollowResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == req.UserID {
		return nil, errorx.New(errorx.BadRequest, "Cannot follow yourself")
	}

	if _, err := d.userRepo.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	_, err := d.followRepo.Get(ctx, userID, req.UserID)
	if err == nil {
		if err := d.followRepo.Delete(ctx, userID, req.UserID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot delete follow: %v", err)
			return nil, errorx.Unknown
		}

		xcontext.WithCommitDBTransaction(ctx)
		return &model.ToggleFollowResponse{Following: false}, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get follow: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.followRepo.Create(ctx, &entity.Follow{
		FollowerID:  userID,
		FollowingID: req.UserID,
	}); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create follow: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.notificationRepo.Create(ctx, &entity.Notification{
		Base:       entity.Base{ID: uuid.NewString()},
		ReceiverID: req.UserID,
		SenderID:   userID,
		Type:       entity.NotificationTypeFollow,
		TargetID:   userID,
	}); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create follow notification: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.ToggleFollowResponse{Following: true}, nil
}

func (d *followDomain) GetFollowers(
	ctx context.Context, req *model.GetFollowersRequest,
) (*model.GetFollowersResponse, error) {
	user, err := d.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	follows, err := d.followRepo.GetFollowers(ctx, user.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get followers: %v", err)
		return nil, errorx.Unknown
	}

	ids := []string{}
	for _, f := range follows {
		ids = append(ids, f.FollowerID)
	}

	users, err := d.orderedShortUsers(ctx, ids)
	if err != nil {
		return nil, err
	}

	return &model.GetFollowersResponse{Users: users}, nil
}

func (d *followDomain) GetFollowings(
	ctx context.Context, req *model.GetFollowingsRequest,
) (*model.GetFollowingsResponse, error) {
	user, err := d.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	follows, err := d.followRepo.GetFollowings(ctx, user.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get followings: %v", err)
		return nil, errorx.Unknown
	}

	ids := []string{}
	for _, f := range follows {
		ids = append(ids, f.FollowingID)
	}

	users, err := d.orderedShortUsers(ctx, ids)
	if err != nil {
		return nil, err
	}

	return &model.GetFollowingsResponse{Users: users}, nil
}

func (d *followDomain) orderedShortUsers(ctx context.Context, ids []string) ([]model.ShortUser, error) {
	userMap, err := shortUserMap(ctx, d.userRepo, d.profileRepo, ids)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get users: %v", err)
		return nil, errorx.Unknown
	}

	users := []model.ShortUser{}
	for _, id := range ids {
		if user, ok := userMap[id]; ok {
			users = append(users, user)
		}
	}

	return users, nil
}
