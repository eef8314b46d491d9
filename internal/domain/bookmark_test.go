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

func newBookmarkDomainForTest() *bookmarkDomain {
	return NewBookmarkDomain(
		repository.NewBookmarkRepository(),
		repository.NewPostRepository(),
		repository.NewUserRepository(),
		repository.NewProfileRepository(),
	)
}

func Test_bookmarkDomain_Toggle(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newBookmarkDomainForTest()

	resp, err := domain.Toggle(ctx, &model.ToggleBookmarkRequest{PostID: testutil.Post2.ID})
	require.NoError(t, err)
	require.True(t, resp.Bookmarked)

	resp, err = domain.Toggle(ctx, &model.ToggleBookmarkRequest{PostID: testutil.Post2.ID})
	require.NoError(t, err)
	require.False(t, resp.Bookmarked)

	var count int64
	xcontext.DB(ctx).Model(&entity.Bookmark{}).Count(&count)
	require.Equal(t, int64(0), count)
}

func Test_bookmarkDomain_Toggle_unknownPost(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newBookmarkDomainForTest()

	_, err := domain.Toggle(ctx, &model.ToggleBookmarkRequest{PostID: "ghost"})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)
}

func Test_bookmarkDomain_GetStatus(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newBookmarkDomainForTest()

	resp, err := domain.GetStatus(ctx, &model.GetBookmarkStatusRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)
	require.False(t, resp.Bookmarked)

	_, err = domain.Toggle(ctx, &model.ToggleBookmarkRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)

	resp, err = domain.GetStatus(ctx, &model.GetBookmarkStatusRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)
	require.True(t, resp.Bookmarked)

	// Another user's bookmark does not show up in the status.
	ctx2 := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	resp, err = domain.GetStatus(ctx2, &model.GetBookmarkStatusRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)
	require.False(t, resp.Bookmarked)

	_, err = domain.GetStatus(ctx, &model.GetBookmarkStatusRequest{PostID: "ghost"})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)
}

func Test_bookmarkDomain_GetList(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newBookmarkDomainForTest()

	_, err := domain.Toggle(ctx, &model.ToggleBookmarkRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)
	_, err = domain.Toggle(ctx, &model.ToggleBookmarkRequest{PostID: testutil.Post2.ID})
	require.NoError(t, err)

	resp, err := domain.GetList(ctx, &model.GetBookmarksRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Posts, 2)

	for _, post := range resp.Posts {
		require.NotEmpty(t, post.Author.ID)
	}
}
