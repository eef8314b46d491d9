package domain

import (
	"testing"

	"github.com/forumlab/backend/internal/common"
	"github.com/forumlab/backend/internal/entity"
	"github.com/forumlab/backend/internal/model"
	"github.com/forumlab/backend/internal/repository"
	"github.com/forumlab/backend/pkg/errorx"
	"github.com/forumlab/backend/pkg/testutil"
	"github.com/forumlab/backend/pkg/xcontext"
	"github.com/forumlab/backend/pkg/xredis"

	"github.com/stretchr/testify/require"
)

func newCommunityDomainForTest() *communityDomain {
	return NewCommunityDomain(
		repository.NewCommunityRepository(),
		repository.NewUserRepository(),
		repository.NewProfileRepository(),
		nil,
	)
}

func Test_communityDomain_Create(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newCommunityDomainForTest()

	resp, err := domain.Create(ctx, &model.CreateCommunityRequest{
		Name:        "gophers",
		Description: "all things go",
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.Community.MemberCount)

	var community entity.Community
	tx := xcontext.DB(ctx).Take(&community, "id=?", resp.Community.ID)
	require.NoError(t, tx.Error)
	require.Equal(t, "gophers", community.Name)
	require.Equal(t, testutil.User1.ID, community.CreatedBy)

	// The creator becomes the first member.
	var member entity.CommunityMember
	tx = xcontext.DB(ctx).Take(&member,
		"community_id=? AND user_id=?", resp.Community.ID, testutil.User1.ID)
	require.NoError(t, tx.Error)
}

func Test_communityDomain_Create_duplicateName(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newCommunityDomainForTest()

	_, err := domain.Create(ctx, &model.CreateCommunityRequest{Name: testutil.Community1.Name})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.AlreadyExists, errx.Code)
}

func Test_communityDomain_JoinAndLeave(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newCommunityDomainForTest()

	_, err := domain.Join(ctx, &model.JoinCommunityRequest{ID: testutil.Community2.ID})
	require.NoError(t, err)

	// Joining twice is rejected.
	_, err = domain.Join(ctx, &model.JoinCommunityRequest{ID: testutil.Community2.ID})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.AlreadyExists, errx.Code)

	community, err := domain.Get(ctx, &model.GetCommunityRequest{ID: testutil.Community2.ID})
	require.NoError(t, err)
	require.Equal(t, int64(2), community.Community.MemberCount)

	_, err = domain.Leave(ctx, &model.LeaveCommunityRequest{ID: testutil.Community2.ID})
	require.NoError(t, err)

	// Leaving without a membership is rejected.
	_, err = domain.Leave(ctx, &model.LeaveCommunityRequest{ID: testutil.Community2.ID})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)
}

func Test_communityDomain_GetMembers(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newCommunityDomainForTest()

	resp, err := domain.GetMembers(ctx, &model.GetCommunityMembersRequest{
		ID: testutil.Community1.ID,
	})
	require.NoError(t, err)
	require.Len(t, resp.Members, 2)

	for _, member := range resp.Members {
		require.NotEmpty(t, member.User.ID)
		require.NotEmpty(t, member.JoinedAt)
	}
}

func Test_communityDomain_GetOnlineMembers(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newCommunityDomainForTest()

	require.NoError(t,
		repository.NewUserRepository().SetOnline(ctx, testutil.User2.ID, true))

	resp, err := domain.GetOnlineMembers(ctx, &model.GetOnlineMembersRequest{
		ID: testutil.Community1.ID,
	})
	require.NoError(t, err)
	require.Len(t, resp.Users, 1)
	require.Equal(t, testutil.User2.ID, resp.Users[0].ID)
}

func Test_communityDomain_GetOnlineMembers_redis(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	redisClient := xredis.NewMockClient()
	domain := NewCommunityDomain(
		repository.NewCommunityRepository(),
		repository.NewUserRepository(),
		repository.NewProfileRepository(),
		redisClient,
	)

	// User3 is online but not a member, user1 is an online member.
	require.NoError(t, redisClient.SAdd(ctx, common.RedisKeyOnlineUsers(),
		testutil.User1.ID, testutil.User3.ID))

	resp, err := domain.GetOnlineMembers(ctx, &model.GetOnlineMembersRequest{
		ID: testutil.Community1.ID,
	})
	require.NoError(t, err)
	require.Len(t, resp.Users, 1)
	require.Equal(t, testutil.User1.ID, resp.Users[0].ID)
}

func Test_communityDomain_GetNewMembers(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User3.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newCommunityDomainForTest()

	_, err := domain.Join(ctx, &model.JoinCommunityRequest{ID: testutil.Community1.ID})
	require.NoError(t, err)

	resp, err := domain.GetNewMembers(ctx, &model.GetNewMembersRequest{
		ID:    testutil.Community1.ID,
		Limit: 2,
	})
	require.NoError(t, err)
	require.Len(t, resp.Members, 2)
	require.Equal(t, testutil.User3.ID, resp.Members[0].User.ID)
}
