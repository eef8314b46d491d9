package domain

import (
	"testing"

	"github.com/forumlab/backend/internal/model"
	"github.com/forumlab/backend/internal/repository"
	"github.com/forumlab/backend/pkg/errorx"
	"github.com/forumlab/backend/pkg/testutil"
	"github.com/forumlab/backend/pkg/xcontext"

	"github.com/stretchr/testify/require"
)

func newNotificationDomainForTest() *notificationDomain {
	return NewNotificationDomain(
		repository.NewNotificationRepository(),
		repository.NewUserRepository(),
		repository.NewProfileRepository(),
	)
}

func Test_notificationDomain_GetListAndUnreadCount(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newNotificationDomainForTest()
	commentDomain := newCommentDomainForTest()

	// A comment and a like on user2's comment produce two notifications for
	// user2 and one for user1.
	ctx1 := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	_, err := commentDomain.Create(ctx1, &model.CreateCommentRequest{
		PostID:   testutil.Post1.ID,
		ParentID: testutil.Comment1.ID,
		Content:  "reply",
	})
	require.NoError(t, err)
	_, err = commentDomain.Like(ctx1, &model.LikeCommentRequest{ID: testutil.Comment1.ID})
	require.NoError(t, err)

	resp, err := domain.GetList(ctx, &model.GetNotificationsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Notifications, 2)
	for _, n := range resp.Notifications {
		require.Equal(t, testutil.User1.ID, n.Sender.ID)
		require.False(t, n.IsRead)
	}

	count, err := domain.GetUnreadCount(ctx, &model.GetNotificationUnreadCountRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(2), count.Count)
}

func Test_notificationDomain_MarkRead(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newNotificationDomainForTest()
	commentDomain := newCommentDomainForTest()

	ctx1 := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	_, err := commentDomain.Like(ctx1, &model.LikeCommentRequest{ID: testutil.Comment1.ID})
	require.NoError(t, err)

	list, err := domain.GetList(ctx, &model.GetNotificationsRequest{})
	require.NoError(t, err)
	require.Len(t, list.Notifications, 1)
	notificationID := list.Notifications[0].ID

	// Only the receiver can mark a notification as read.
	_, err = domain.MarkRead(ctx1, &model.MarkNotificationReadRequest{ID: notificationID})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)

	_, err = domain.MarkRead(ctx, &model.MarkNotificationReadRequest{ID: notificationID})
	require.NoError(t, err)

	count, err := domain.GetUnreadCount(ctx, &model.GetNotificationUnreadCountRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(0), count.Count)
}

func Test_notificationDomain_MarkAllRead(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newNotificationDomainForTest()
	postDomain := newPostDomainForTest()
	commentDomain := newCommentDomainForTest()

	ctx1 := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	_, err := postDomain.Like(ctx1, &model.LikePostRequest{ID: testutil.Post2.ID})
	require.NoError(t, err)
	_, err = commentDomain.Like(ctx1, &model.LikeCommentRequest{ID: testutil.Comment1.ID})
	require.NoError(t, err)

	_, err = domain.MarkAllRead(ctx, &model.MarkAllNotificationsReadRequest{})
	require.NoError(t, err)

	count, err := domain.GetUnreadCount(ctx, &model.GetNotificationUnreadCountRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(0), count.Count)
}
