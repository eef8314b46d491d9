package domain

import (
	"testing"

	"github.com/forumlab/backend/internal/entity"
	"github.com/forumlab/backend/internal/model"
	"github.com/forumlab/backend/internal/repository"
	"github.com/forumlab/backend/pkg/errorx"
	"github.com/forumlab/backend/pkg/testutil"
	"github.com/forumlab/backend/pkg/xcontext"

	"github.com/stretchr/testify/require"
)

func newFollowDomainForTest() *followDomain {
	return NewFollowDomain(
		repository.NewFollowRepository(),
		repository.NewUserRepository(),
		repository.NewProfileRepository(),
		repository.NewNotificationRepository(),
	)
}

func Test_followDomain_Toggle(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newFollowDomainForTest()

	resp, err := domain.Toggle(ctx, &model.ToggleFollowRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)
	require.True(t, resp.Following)

	var follow entity.Follow
	tx := xcontext.DB(ctx).Take(&follow,
		"follower_id=? AND following_id=?", testutil.User1.ID, testutil.User2.ID)
	require.NoError(t, tx.Error)

	var notification entity.Notification
	tx = xcontext.DB(ctx).Take(&notification, "receiver_id=?", testutil.User2.ID)
	require.NoError(t, tx.Error)
	require.Equal(t, entity.NotificationTypeFollow, notification.Type)
	require.Equal(t, testutil.User1.ID, notification.SenderID)

	// The second toggle removes the edge again.
	resp, err = domain.Toggle(ctx, &model.ToggleFollowRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)
	require.False(t, resp.Following)

	var count int64
	xcontext.DB(ctx).Model(&entity.Follow{}).Count(&count)
	require.Equal(t, int64(0), count)
}

func Test_followDomain_Toggle_self(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newFollowDomainForTest()

	_, err := domain.Toggle(ctx, &model.ToggleFollowRequest{UserID: testutil.User1.ID})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)
}

func Test_followDomain_Toggle_unknownTarget(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newFollowDomainForTest()

	_, err := domain.Toggle(ctx, &model.ToggleFollowRequest{UserID: "ghost"})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)
}

func Test_followDomain_GetFollowersAndFollowings(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newFollowDomainForTest()

	_, err := domain.Toggle(ctx, &model.ToggleFollowRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)

	ctx3 := xcontext.WithRequestUserID(ctx, testutil.User3.ID)
	_, err = domain.Toggle(ctx3, &model.ToggleFollowRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)

	followers, err := domain.GetFollowers(ctx, &model.GetFollowersRequest{
		Username: testutil.User2.Username,
	})
	require.NoError(t, err)
	require.Len(t, followers.Users, 2)

	followings, err := domain.GetFollowings(ctx, &model.GetFollowingsRequest{
		Username: testutil.User1.Username,
	})
	require.NoError(t, err)
	require.Len(t, followings.Users, 1)
	require.Equal(t, testutil.User2.ID, followings.Users[0].ID)
}
