package domain

import (
	"testing"

	"github.com/forumlab/backend/internal/model"
	"github.com/forumlab/backend/internal/repository"
	"github.com/forumlab/backend/pkg/errorx"
	"github.com/forumlab/backend/pkg/testutil"

	"github.com/stretchr/testify/require"
)

func newSearchDomainForTest() *searchDomain {
	return NewSearchDomain(
		repository.NewPostRepository(),
		repository.NewCommunityRepository(),
		repository.NewUserRepository(),
		repository.NewProfileRepository(),
	)
}

func Test_searchDomain_Search(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newSearchDomainForTest()

	resp, err := domain.Search(ctx, &model.SearchRequest{Query: "user1"})
	require.NoError(t, err)
	require.Len(t, resp.Posts, 1)
	require.Equal(t, testutil.Post1.ID, resp.Posts[0].ID)
	require.Len(t, resp.Users, 1)
	require.Equal(t, testutil.User1.ID, resp.Users[0].ID)
	require.Empty(t, resp.Communities)

	resp, err = domain.Search(ctx, &model.SearchRequest{Query: "Community"})
	require.NoError(t, err)
	require.Len(t, resp.Communities, 2)
}

func Test_searchDomain_Search_emptyKeyword(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newSearchDomainForTest()

	_, err := domain.Search(ctx, &model.SearchRequest{Query: "   "})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)
}
