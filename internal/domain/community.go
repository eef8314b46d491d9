package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/forumlab/backend/internal/common"
	"github.com/forumlab/backend/internal/entity"
	"github.com/forumlab/backend/internal/model"
	"github.com/forumlab/backend/internal/repository"
	"github.com/forumlab/backend/pkg/errorx"
	"github.com/forumlab/backend/pkg/xcontext"
	"github.com/forumlab/backend/pkg/xredis"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type CommunityDomain interface {
	Create(context.Context, *model.CreateCommunityRequest) (*model.CreateCommunityResponse, error)
	GetList(context.Context, *model.GetCommunitiesRequest) (*model.GetCommunitiesResponse, error)
	Get(context.Context, *model.GetCommunityRequest) (*model.GetCommunityResponse, error)
	Join(context.Context, *model.JoinCommunityRequest) (*model.JoinCommunityResponse, error)
	Leave(context.Context, *model.LeaveCommunityRequest) (*model.LeaveCommunityResponse, error)
	GetMembers(context.Context, *model.GetCommunityMembersRequest) (*model.GetCommunityMembersResponse, error)
	GetOnlineMembers(context.Context, *model.GetOnlineMembersRequest) (*model.GetOnlineMembersResponse, error)
	GetNewMembers(context.Context, *model.GetNewMembersRequest) (*model.GetNewMembersResponse, error)
}

type communityDomain struct {
	communityRepo repository.CommunityRepository
	userRepo      repository.UserRepository
	profileRepo   repository.ProfileRepository
	redisClient   xredis.Client
}

func NewCommunityDomain(
	communityRepo repository.CommunityRepository,
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	redisClient xredis.Client,
) *communityDomain {
	return &communityDomain{
		communityRepo: communityRepo,
		userRepo:      userRepo,
		profileRepo:   profileRepo,
		redisClient:   redisClient,
	}
}

func (d *communityDomain) Create(
	ctx context.Context, req *model.CreateCommunityRequest,
) (*model.CreateCommunityResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	if strings.TrimSpace(req.Name) == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty community name")
	}

	if _, err := d.communityRepo.GetByName(ctx, req.Name); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "Community name is already taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check community name: %v", err)
		return nil, errorx.Unknown
	}

	community := &entity.Community{
		Base:        entity.Base{ID: uuid.NewString()},
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   userID,
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.communityRepo.Create(ctx, community); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create community: %v", err)
		return nil, errorx.Unknown
	}

	// The creator joins their own community.
	err := d.communityRepo.CreateMember(ctx, &entity.CommunityMember{
		CommunityID: community.ID,
		UserID:      userID,
		JoinedAt:    time.Now(),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot add creator as member: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.CreateCommunityResponse{
		Community: model.ConvertCommunity(community, 1),
	}, nil
}

func (d *communityDomain) GetList(
	ctx context.Context, req *model.GetCommunitiesRequest,
) (*model.GetCommunitiesResponse, error) {
	offset, limit, err := checkPagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	communities, err := d.communityRepo.GetList(ctx, offset, limit)
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

	return &model.GetCommunitiesResponse{Communities: clientCommunities}, nil
}

func (d *communityDomain) Get(
	ctx context.Context, req *model.GetCommunityRequest,
) (*model.GetCommunityResponse, error) {
	community, err := d.communityRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found community")
		}

		xcontext.Logger(ctx).Errorf("Cannot get community: %v", err)
		return nil, errorx.Unknown
	}

	memberCount, err := d.communityRepo.CountMembers(ctx, community.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count members: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetCommunityResponse{
		Community: model.ConvertCommunity(community, memberCount),
	}, nil
}

func (d *communityDomain) Join(
	ctx context.Context, req *model.JoinCommunityRequest,
) (*model.JoinCommunityResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	if _, err := d.communityRepo.GetByID(ctx, req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found community")
		}

		xcontext.Logger(ctx).Errorf("Cannot get community: %v", err)
		return nil, errorx.Unknown
	}

	if _, err := d.communityRepo.GetMember(ctx, req.ID, userID); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "You have already joined this community")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check membership: %v", err)
		return nil, errorx.Unknown
	}

	err := d.communityRepo.CreateMember(ctx, &entity.CommunityMember{
		CommunityID: req.ID,
		UserID:      userID,
		JoinedAt:    time.Now(),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create member: %v", err)
		return nil, errorx.Unknown
	}

	return &model.JoinCommunityResponse{}, nil
}

func (d *communityDomain) Leave(
	ctx context.Context, req *model.LeaveCommunityRequest,
) (*model.LeaveCommunityResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	if _, err := d.communityRepo.GetMember(ctx, req.ID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.BadRequest, "You are not a member of this community")
		}

		xcontext.Logger(ctx).Errorf("Cannot check membership: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.communityRepo.DeleteMember(ctx, req.ID, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete member: %v", err)
		return nil, errorx.Unknown
	}

	return &model.LeaveCommunityResponse{}, nil
}

func (d *communityDomain) GetMembers(
	ctx context.Context, req *model.GetCommunityMembersRequest,
) (*model.GetCommunityMembersResponse, error) {
	offset, limit, err := checkPagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	members, err := d.communityRepo.GetMembers(ctx, req.ID, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get members: %v", err)
		return nil, errorx.Unknown
	}

	clientMembers, err := d.convertMembers(ctx, members)
	if err != nil {
		return nil, err
	}

	return &model.GetCommunityMembersResponse{Members: clientMembers}, nil
}

// GetOnlineMembers intersects the community members with the online set. It
// falls back to the persisted online flag when redis is not available.
func (d *communityDomain) GetOnlineMembers(
	ctx context.Context, req *model.GetOnlineMembersRequest,
) (*model.GetOnlineMembersResponse, error) {
	members, err := d.communityRepo.GetMembers(ctx, req.ID, 0, -1)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get members: %v", err)
		return nil, errorx.Unknown
	}

	memberIDs := lo.Map(members, func(m entity.CommunityMember, _ int) string {
		return m.UserID
	})

	users, err := shortUserMap(ctx, d.userRepo, d.profileRepo, memberIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get users: %v", err)
		return nil, errorx.Unknown
	}

	var onlineIDs []string
	if d.redisClient != nil {
		onlineIDs, err = d.redisClient.SMembers(ctx, common.RedisKeyOnlineUsers())
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot get online set: %v", err)
		}
	}

	clientUsers := []model.ShortUser{}
	for _, id := range memberIDs {
		user, ok := users[id]
		if !ok {
			continue
		}

		if slices.Contains(onlineIDs, id) || user.IsOnline {
			clientUsers = append(clientUsers, user)
		}
	}

	return &model.GetOnlineMembersResponse{Users: clientUsers}, nil
}

func (d *communityDomain) GetNewMembers(
	ctx context.Context, req *model.GetNewMembersRequest,
) (*model.GetNewMembersResponse, error) {
	_, limit, err := checkPagination(ctx, 0, req.Limit)
	if err != nil {
		return nil, err
	}

	members, err := d.communityRepo.GetNewMembers(ctx, req.ID, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get new members: %v", err)
		return nil, errorx.Unknown
	}

	clientMembers, err := d.convertMembers(ctx, members)
	if err != nil {
		return nil, err
	}

	return &model.GetNewMembersResponse{Members: clientMembers}, nil
}

func (d *communityDomain) convertMembers(
	ctx context.Context, members []entity.CommunityMember,
) ([]model.CommunityMember, error) {
	memberIDs := lo.Map(members, func(m entity.CommunityMember, _ int) string {
		return m.UserID
	})

	users, err := shortUserMap(ctx, d.userRepo, d.profileRepo, memberIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get users: %v", err)
		return nil, errorx.Unknown
	}

	clientMembers := []model.CommunityMember{}
	for i := range members {
		clientMembers = append(clientMembers, model.CommunityMember{
			User:     users[members[i].UserID],
			JoinedAt: members[i].JoinedAt.Format(model.DefaultTimeLayout),
		})
	}

	return clientMembers, nil
}
