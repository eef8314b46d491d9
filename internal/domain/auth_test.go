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

func Test_authDomain_Signup(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := NewAuthDomain(
		repository.NewUserRepository(), repository.NewProfileRepository(), nil)

	resp, err := domain.Signup(ctx, &model.SignupRequest{
		Username: "newcomer",
		Email:    "newcomer@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	require.Equal(t, "newcomer", resp.User.Username)
	require.Equal(t, entity.UserRole, resp.User.Role)

	var user entity.User
	tx := xcontext.DB(ctx).Take(&user, "username=?", "newcomer")
	require.NoError(t, tx.Error)
	require.NotEqual(t, "secret123", user.HashedPassword)

	var profile entity.Profile
	tx = xcontext.DB(ctx).Take(&profile, "user_id=?", user.ID)
	require.NoError(t, tx.Error)
}

func Test_authDomain_Signup_invalid(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := NewAuthDomain(
		repository.NewUserRepository(), repository.NewProfileRepository(), nil)

	testcases := []struct {
		name string
		req  *model.SignupRequest
		code errorx.Code
	}{
		{
			name: "short username",
			req:  &model.SignupRequest{Username: "ab", Email: "a@b.c", Password: "secret123"},
			code: errorx.BadRequest,
		},
		{
			name: "invalid email",
			req:  &model.SignupRequest{Username: "abcdef", Email: "not-an-email", Password: "secret123"},
			code: errorx.BadRequest,
		},
		{
			name: "short password",
			req:  &model.SignupRequest{Username: "abcdef", Email: "a@b.c", Password: "123"},
			code: errorx.BadRequest,
		},
		{
			name: "taken username",
			req:  &model.SignupRequest{Username: testutil.User1.Username, Email: "a@b.c", Password: "secret123"},
			code: errorx.AlreadyExists,
		},
		{
			name: "taken email",
			req:  &model.SignupRequest{Username: "abcdef", Email: testutil.User1.Email, Password: "secret123"},
			code: errorx.AlreadyExists,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := domain.Signup(ctx, tc.req)
			var errx errorx.Error
			require.ErrorAs(t, err, &errx)
			require.Equal(t, tc.code, errx.Code)
		})
	}
}

func Test_authDomain_Login(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	userRepo := repository.NewUserRepository()
	domain := NewAuthDomain(userRepo, repository.NewProfileRepository(), nil)

	resp, err := domain.Login(ctx, &model.LoginRequest{
		Username: testutil.User1.Username,
		Password: testutil.Password,
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	require.True(t, resp.User.IsOnline)

	info, err := xcontext.TokenEngine(ctx).Verify(resp.AccessToken)
	require.NoError(t, err)
	require.Equal(t, testutil.User1.ID, info.ID)

	user, err := userRepo.GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.True(t, user.IsOnline)
}

func Test_authDomain_Login_badCredentials(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := NewAuthDomain(
		repository.NewUserRepository(), repository.NewProfileRepository(), nil)

	_, err := domain.Login(ctx, &model.LoginRequest{
		Username: testutil.User1.Username,
		Password: "wrong-password",
	})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)

	_, err = domain.Login(ctx, &model.LoginRequest{
		Username: "nobody",
		Password: testutil.Password,
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)
}

func Test_authDomain_Logout(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	userRepo := repository.NewUserRepository()
	redisClient := xredis.NewMockClient()
	domain := NewAuthDomain(userRepo, repository.NewProfileRepository(), redisClient)

	_, err := domain.Login(ctx, &model.LoginRequest{
		Username: testutil.User1.Username,
		Password: testutil.Password,
	})
	require.NoError(t, err)

	online, err := redisClient.SIsMember(ctx, common.RedisKeyOnlineUsers(), testutil.User1.ID)
	require.NoError(t, err)
	require.True(t, online)

	_, err = domain.Logout(ctx, &model.LogoutRequest{})
	require.NoError(t, err)

	user, err := userRepo.GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.False(t, user.IsOnline)

	online, err = redisClient.SIsMember(ctx, common.RedisKeyOnlineUsers(), testutil.User1.ID)
	require.NoError(t, err)
	require.False(t, online)
}

func Test_authDomain_GetMe(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixtureDb(ctx)
	domain := NewAuthDomain(
		repository.NewUserRepository(), repository.NewProfileRepository(), nil)

	resp, err := domain.GetMe(ctx, &model.GetMeRequest{})
	require.NoError(t, err)
	require.Equal(t, testutil.User2.ID, resp.User.ID)
	require.Equal(t, testutil.User2.Email, resp.User.Email)
}
