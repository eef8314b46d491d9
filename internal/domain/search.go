package domain

import (
	"context"
	"strings"

	"github.com/forumlab/backend/internal/entity"
	"github.com/forumlab/backend/internal/model"
	"github.com/forumlab/backend/internal/repository"
	"github.com/forumlab/backend/pkg/errorx"
	"github.com/forumlab/backend/pkg/xcontext"

	"github.com/samber/lo"
)

type SearchDomain interface {
	Search(context.Context, *model.SearchRequest) (*model.SearchResponse, error)
}

type searchDomain struct {
	postRepo      repository.PostRepository
	communityRepo repository.CommunityRepository
	userRepo      repository.UserRepository
	profileRepo   repository.ProfileRepository
}

func NewSearchDomain(
	postRepo repository.PostRepository,
	communityRepo repository.CommunityRepository,
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
) *searchDomain {
	return &searchDomain{
		postRepo:      postRepo,
		communityRepo: communityRepo,
		userRepo:      userRepo,
		profileRepo:   profileRepo,
	}
}

// Search runs independent keyword queries per result family and combines
// them into one response.
func (d *searchDomain) Search(
	ctx context.Context, req *model.SearchRequest,
) (*model.SearchResponse, error) {
	keyword := strings.TrimSpace(req.Query)
	if keyword == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty keyword")
	}

	maxResults := xcontext.Configs(ctx).Search.MaxResults

	posts, err := d.postRepo.Search(ctx, keyword, maxResults)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot search posts: %v", err)
		return nil, errorx.Unknown
	}

	communities, err := d.communityRepo.Search(ctx, keyword, maxResults)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot search communities: %v", err)
		return nil, errorx.Unknown
	}

	users, err := d.userRepo.Search(ctx, keyword, maxResults)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot search users: %v", err)
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

	foundUserIDs := lo.Map(users, func(u entity.User, _ int) string {
		return u.ID
	})

	foundUsers, err := shortUserMap(ctx, d.userRepo, d.profileRepo, foundUserIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get users: %v", err)
		return nil, errorx.Unknown
	}

	clientUsers := []model.ShortUser{}
	for _, id := range foundUserIDs {
		if user, ok := foundUsers[id]; ok {
			clientUsers = append(clientUsers, user)
		}
	}

	return &model.SearchResponse{
		Posts:       model.ConvertPosts(posts, authors),
		Communities: clientCommunities,
		Users:       clientUsers,
	}, nil
}
