package domain

import (
	"testing"

	"github.com/forumlab/backend/internal/entity"
	"github.com/forumlab/backend/internal/model"
	"github.com/forumlab/backend/internal/repository"
	"github.com/forumlab/backend/pkg/errorx"
	"github.com/forumlab/backend/pkg/storage"
	"github.com/forumlab/backend/pkg/testutil"
	"github.com/forumlab/backend/pkg/xcontext"

	"github.com/stretchr/testify/require"
)

func newUserDomainForTest() *userDomain {
	return NewUserDomain(
		repository.NewUserRepository(),
		repository.NewProfileRepository(),
		repository.NewPostRepository(),
		repository.NewFollowRepository(),
		repository.NewBookmarkRepository(),
		repository.NewCommunityRepository(),
		repository.NewChatReadStatusRepository(),
		repository.NewNotificationRepository(),
		storage.NewMockStorage(),
	)
}

func Test_userDomain_GetProfile(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newUserDomainForTest()
	followDomain := newFollowDomainForTest()

	_, err := followDomain.Toggle(ctx, &model.ToggleFollowRequest{UserID: testutil.User1.ID})
	require.NoError(t, err)

	resp, err := domain.GetProfile(ctx, &model.GetProfileRequest{
		Username: testutil.User1.Username,
	})
	require.NoError(t, err)
	require.Equal(t, testutil.User1.ID, resp.User.ID)
	require.Equal(t, int64(1), resp.PostCount)
	require.Equal(t, int64(1), resp.FollowerCount)
	require.Equal(t, int64(0), resp.FollowingCount)

	// The email of another user is not exposed.
	require.Empty(t, resp.User.Email)

	own, err := domain.GetProfile(ctx, &model.GetProfileRequest{
		Username: testutil.User2.Username,
	})
	require.NoError(t, err)
	require.Equal(t, testutil.User2.Email, own.User.Email)
}

func Test_userDomain_GetProfile_notFound(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newUserDomainForTest()

	_, err := domain.GetProfile(ctx, &model.GetProfileRequest{Username: "nobody"})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)
}

func Test_userDomain_UpdateProfile(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newUserDomainForTest()

	offsetX := 10
	_, err := domain.UpdateProfile(ctx, &model.UpdateProfileRequest{
		Nickname:     "gopher",
		Bio:          "I write Go",
		ImageOffsetX: &offsetX,
	})
	require.NoError(t, err)

	profile, err := repository.NewProfileRepository().GetByUserID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, "gopher", profile.Nickname)
	require.Equal(t, "I write Go", profile.Bio)
	require.Equal(t, 10, profile.ImageOffsetX)
	require.Equal(t, 0, profile.ImageOffsetY)

	_, err = domain.UpdateProfile(ctx, &model.UpdateProfileRequest{})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)
}

func Test_userDomain_GetProfileCommunities(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newUserDomainForTest()

	resp, err := domain.GetProfileCommunities(ctx, &model.GetProfileCommunitiesRequest{
		Username: testutil.User2.Username,
	})
	require.NoError(t, err)
	require.Len(t, resp.Communities, 2)
}

func Test_userDomain_GetProfilePosts(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newUserDomainForTest()

	resp, err := domain.GetProfilePosts(ctx, &model.GetProfilePostsRequest{
		Username: testutil.User1.Username,
		Sort:     "newest",
	})
	require.NoError(t, err)
	require.Len(t, resp.Posts, 1)
	require.Equal(t, testutil.Post1.ID, resp.Posts[0].ID)
	require.Equal(t, testutil.User1.ID, resp.Posts[0].Author.ID)

	// Page addressing: the second page of size 1 is past the only post.
	resp, err = domain.GetProfilePosts(ctx, &model.GetProfilePostsRequest{
		Username: testutil.User1.Username,
		Page:     1,
		Size:     1,
	})
	require.NoError(t, err)
	require.Empty(t, resp.Posts)

	_, err = domain.GetProfilePosts(ctx, &model.GetProfilePostsRequest{
		Username: testutil.User1.Username,
		Page:     -1,
	})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)
}

func Test_userDomain_DeleteUser(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newUserDomainForTest()
	followDomain := newFollowDomainForTest()
	bookmarkDomain := newBookmarkDomainForTest()

	_, err := followDomain.Toggle(ctx, &model.ToggleFollowRequest{UserID: testutil.User1.ID})
	require.NoError(t, err)
	_, err = bookmarkDomain.Toggle(ctx, &model.ToggleBookmarkRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)

	// A regular user cannot delete someone else.
	_, err = domain.DeleteUser(ctx, &model.DeleteUserRequest{ID: testutil.User1.ID})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)

	// An admin can.
	adminCtx := xcontext.WithRequestUserID(ctx, testutil.User3.ID)
	_, err = domain.DeleteUser(adminCtx, &model.DeleteUserRequest{ID: testutil.User2.ID})
	require.NoError(t, err)

	var count int64
	xcontext.DB(ctx).Model(&entity.User{}).Where("id=?", testutil.User2.ID).Count(&count)
	require.Equal(t, int64(0), count)
	xcontext.DB(ctx).Model(&entity.Profile{}).Where("user_id=?", testutil.User2.ID).Count(&count)
	require.Equal(t, int64(0), count)
	xcontext.DB(ctx).Model(&entity.Follow{}).
		Where("follower_id=? OR following_id=?", testutil.User2.ID, testutil.User2.ID).
		Count(&count)
	require.Equal(t, int64(0), count)
	xcontext.DB(ctx).Model(&entity.Bookmark{}).Where("user_id=?", testutil.User2.ID).Count(&count)
	require.Equal(t, int64(0), count)
	xcontext.DB(ctx).Model(&entity.CommunityMember{}).Where("user_id=?", testutil.User2.ID).Count(&count)
	require.Equal(t, int64(0), count)
}

func Test_userDomain_DeleteUser_self(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newUserDomainForTest()

	_, err := domain.DeleteUser(ctx, &model.DeleteUserRequest{ID: testutil.User1.ID})
	require.NoError(t, err)

	var count int64
	xcontext.DB(ctx).Model(&entity.User{}).Where("id=?", testutil.User1.ID).Count(&count)
	require.Equal(t, int64(0), count)
}
