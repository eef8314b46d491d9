package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/forumlab/backend/internal/common"
	"github.com/forumlab/backend/internal/entity"
	"github.com/forumlab/backend/internal/model"
	"github.com/forumlab/backend/internal/repository"
	"github.com/forumlab/backend/pkg/crypto"
	"github.com/forumlab/backend/pkg/errorx"
	"github.com/forumlab/backend/pkg/xcontext"
	"github.com/forumlab/backend/pkg/xredis"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthDomain interface {
	Signup(context.Context, *model.SignupRequest) (*model.SignupResponse, error)
	Login(context.Context, *model.LoginRequest) (*model.LoginResponse, error)
	Logout(context.Context, *model.LogoutRequest) (*model.LogoutResponse, error)
	GetMe(context.Context, *model.GetMeRequest) (*model.GetMeResponse, error)
}

type authDomain struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	redisClient xredis.Client
}

func NewAuthDomain(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	redisClient xredis.Client,
) *authDomain {
	return &authDomain{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		redisClient: redisClient,
	}
}

func (d *authDomain) Signup(
	ctx context.Context, req *model.SignupRequest,
) (*model.SignupResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if len(req.Username) < 3 {
		return nil, errorx.New(errorx.BadRequest, "Username must have at least 3 characters")
	}

	if !strings.Contains(req.Email, "@") {
		return nil, errorx.New(errorx.BadRequest, "Invalid email address")
	}

	if len(req.Password) < 6 {
		return nil, errorx.New(errorx.BadRequest, "Password must have at least 6 characters")
	}

	if _, err := d.userRepo.GetByUsername(ctx, req.Username); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "Username is already taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check username: %v", err)
		return nil, errorx.Unknown
	}

	if _, err := d.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "Email is already taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check email: %v", err)
		return nil, errorx.Unknown
	}

	hashed, err := crypto.HashPassword(req.Password)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot hash password: %v", err)
		return nil, errorx.Unknown
	}

	user := &entity.User{
		Base:           entity.Base{ID: uuid.NewString()},
		Username:       req.Username,
		Email:          req.Email,
		HashedPassword: hashed,
		Role:           entity.UserRole,
	}

	profile := &entity.Profile{
		Base:   entity.Base{ID: uuid.NewString()},
		UserID: user.ID,
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.userRepo.Create(ctx, user); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.profileRepo.Create(ctx, profile); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create profile: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.SignupResponse{User: model.ConvertUser(user, profile, true)}, nil
}

func (d *authDomain) Login(
	ctx context.Context, req *model.LoginRequest,
) (*model.LoginResponse, error) {
	user, err := d.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.BadRequest, "Invalid username or password")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if !crypto.ComparePassword(user.HashedPassword, req.Password) {
		return nil, errorx.New(errorx.BadRequest, "Invalid username or password")
	}

	accessToken, err := xcontext.TokenEngine(ctx).Generate(user.ID, model.AccessToken{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.userRepo.SetOnline(ctx, user.ID, true); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot set online flag: %v", err)
		return nil, errorx.Unknown
	}

	if d.redisClient != nil {
		if err := d.redisClient.SAdd(ctx, common.RedisKeyOnlineUsers(), user.ID); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot add user to online set: %v", err)
		}
	}

	profile, err := d.profileRepo.GetByUserID(ctx, user.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get profile: %v", err)
		return nil, errorx.Unknown
	}

	user.IsOnline = true
	return &model.LoginResponse{
		AccessToken: accessToken,
		User:        model.ConvertUser(user, profile, true),
	}, nil
}

func (d *authDomain) Logout(
	ctx context.Context, req *model.LogoutRequest,
) (*model.LogoutResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if err := d.userRepo.SetOnline(ctx, userID, false); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot clear online flag: %v", err)
		return nil, errorx.Unknown
	}

	if d.redisClient != nil {
		if err := d.redisClient.SRem(ctx, common.RedisKeyOnlineUsers(), userID); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot remove user from online set: %v", err)
		}
	}

	return &model.LogoutResponse{}, nil
}

func (d *authDomain) GetMe(
	ctx context.Context, req *model.GetMeRequest,
) (*model.GetMeResponse, error) {
	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
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

	return &model.GetMeResponse{User: model.ConvertUser(user, profile, true)}, nil
}
