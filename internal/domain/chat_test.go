package domain

import (
	"fmt"
	"testing"

	"github.com/forumlab/backend/internal/entity"
	"github.com/forumlab/backend/internal/model"
	"github.com/forumlab/backend/internal/repository"
	"github.com/forumlab/backend/pkg/errorx"
	"github.com/forumlab/backend/pkg/testutil"
	"github.com/forumlab/backend/pkg/ws"
	"github.com/forumlab/backend/pkg/xcontext"

	"github.com/stretchr/testify/require"
)

func newChatDomainForTest() *chatDomain {
	return NewChatDomain(
		repository.NewChatRoomRepository(),
		repository.NewChatMessageRepository(),
		repository.NewChatReadStatusRepository(),
		repository.NewUserRepository(),
		repository.NewProfileRepository(),
		ws.NewHub(),
	)
}

func Test_chatDomain_GetOrCreateRoom(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newChatDomainForTest()

	resp, err := domain.GetOrCreateRoom(ctx, &model.GetOrCreateChatRoomRequest{
		UserID: testutil.User2.ID,
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Room.ID)
	require.Equal(t, testutil.User2.ID, resp.Room.Partner.ID)

	// The same pair from the other side resolves to the same room.
	ctx2 := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	resp2, err := domain.GetOrCreateRoom(ctx2, &model.GetOrCreateChatRoomRequest{
		UserID: testutil.User1.ID,
	})
	require.NoError(t, err)
	require.Equal(t, resp.Room.ID, resp2.Room.ID)
	require.Equal(t, testutil.User1.ID, resp2.Room.Partner.ID)

	var count int64
	xcontext.DB(ctx).Model(&entity.ChatRoom{}).Count(&count)
	require.Equal(t, int64(1), count)
}

func Test_chatDomain_GetOrCreateRoom_self(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newChatDomainForTest()

	_, err := domain.GetOrCreateRoom(ctx, &model.GetOrCreateChatRoomRequest{
		UserID: testutil.User1.ID,
	})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)
}

func Test_chatDomain_GetOrCreateRoom_byPair(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newChatDomainForTest()

	resp, err := domain.GetOrCreateRoom(ctx, &model.GetOrCreateChatRoomRequest{
		User1ID: testutil.User1.ID,
		User2ID: testutil.User2.ID,
	})
	require.NoError(t, err)
	require.Equal(t, testutil.User2.ID, resp.Room.Partner.ID)

	// The reversed pair resolves to the same room.
	resp2, err := domain.GetOrCreateRoom(ctx, &model.GetOrCreateChatRoomRequest{
		User1ID: testutil.User2.ID,
		User2ID: testutil.User1.ID,
	})
	require.NoError(t, err)
	require.Equal(t, resp.Room.ID, resp2.Room.ID)

	// A requester outside the pair is rejected.
	ctx3 := xcontext.WithRequestUserID(ctx, testutil.User3.ID)
	var errx errorx.Error
	_, err = domain.GetOrCreateRoom(ctx3, &model.GetOrCreateChatRoomRequest{
		User1ID: testutil.User1.ID,
		User2ID: testutil.User2.ID,
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)

	// No partner at all cannot resolve a room.
	_, err = domain.GetOrCreateRoom(ctx, &model.GetOrCreateChatRoomRequest{})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)
}

func Test_chatDomain_SendAndGetMessages(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newChatDomainForTest()

	room, err := domain.GetOrCreateRoom(ctx, &model.GetOrCreateChatRoomRequest{
		UserID: testutil.User2.ID,
	})
	require.NoError(t, err)

	first, err := domain.Send(ctx, &model.SendChatMessageRequest{
		RoomID:  room.Room.ID,
		Content: "hello",
	})
	require.NoError(t, err)

	ctx2 := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	second, err := domain.Send(ctx2, &model.SendChatMessageRequest{
		RoomID:  room.Room.ID,
		Content: "hi there",
	})
	require.NoError(t, err)

	// Message ids are generated in ascending order.
	require.Less(t, first.Message.ID, second.Message.ID)

	resp, err := domain.GetMessages(ctx, &model.GetChatMessagesRequest{
		RoomID: room.Room.ID,
	})
	require.NoError(t, err)
	require.Len(t, resp.Messages, 2)
	require.Equal(t, "hello", resp.Messages[0].Content)
	require.Equal(t, "hi there", resp.Messages[1].Content)
}

func Test_chatDomain_GetMessages_newestPage(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newChatDomainForTest()

	room, err := domain.GetOrCreateRoom(ctx, &model.GetOrCreateChatRoomRequest{
		UserID: testutil.User2.ID,
	})
	require.NoError(t, err)

	for i := 0; i < 60; i++ {
		_, err := domain.Send(ctx, &model.SendChatMessageRequest{
			RoomID:  room.Room.ID,
			Content: fmt.Sprintf("msg-%d", i),
		})
		require.NoError(t, err)
	}

	// The default page holds the newest messages, still in creation order.
	latest, err := domain.GetMessages(ctx, &model.GetChatMessagesRequest{
		RoomID: room.Room.ID,
	})
	require.NoError(t, err)
	require.Len(t, latest.Messages, 20)
	require.Equal(t, "msg-40", latest.Messages[0].Content)
	require.Equal(t, "msg-59", latest.Messages[19].Content)

	resp, err := domain.GetMessages(ctx, &model.GetChatMessagesRequest{
		RoomID: room.Room.ID,
		Limit:  50,
	})
	require.NoError(t, err)
	require.Len(t, resp.Messages, 50)
	require.Equal(t, "msg-10", resp.Messages[0].Content)
	require.Equal(t, "msg-59", resp.Messages[49].Content)

	// Paging backward from the oldest returned message reaches the rest.
	older, err := domain.GetMessages(ctx, &model.GetChatMessagesRequest{
		RoomID: room.Room.ID,
		Before: resp.Messages[0].ID,
		Limit:  50,
	})
	require.NoError(t, err)
	require.Len(t, older.Messages, 10)
	require.Equal(t, "msg-0", older.Messages[0].Content)
	require.Equal(t, "msg-9", older.Messages[9].Content)
}

func Test_chatDomain_Send_invalid(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newChatDomainForTest()

	room, err := domain.GetOrCreateRoom(ctx, &model.GetOrCreateChatRoomRequest{
		UserID: testutil.User2.ID,
	})
	require.NoError(t, err)

	var errx errorx.Error
	_, err = domain.Send(ctx, &model.SendChatMessageRequest{
		RoomID:  room.Room.ID,
		Content: "   ",
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)

	// An outsider cannot post into the room.
	ctx3 := xcontext.WithRequestUserID(ctx, testutil.User3.ID)
	_, err = domain.Send(ctx3, &model.SendChatMessageRequest{
		RoomID:  room.Room.ID,
		Content: "let me in",
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)
}

func Test_chatDomain_MarkReadAndUnreadCount(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newChatDomainForTest()

	room, err := domain.GetOrCreateRoom(ctx, &model.GetOrCreateChatRoomRequest{
		UserID: testutil.User2.ID,
	})
	require.NoError(t, err)

	first, err := domain.Send(ctx, &model.SendChatMessageRequest{
		RoomID:  room.Room.ID,
		Content: "one",
	})
	require.NoError(t, err)
	second, err := domain.Send(ctx, &model.SendChatMessageRequest{
		RoomID:  room.Room.ID,
		Content: "two",
	})
	require.NoError(t, err)

	ctx2 := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	unread, err := domain.GetUnreadCount(ctx2, &model.GetChatUnreadCountRequest{
		RoomID: room.Room.ID,
	})
	require.NoError(t, err)
	require.Equal(t, int64(2), unread.Count)

	_, err = domain.MarkRead(ctx2, &model.MarkChatReadRequest{
		RoomID:            room.Room.ID,
		LastReadMessageID: first.Message.ID,
	})
	require.NoError(t, err)

	unread, err = domain.GetUnreadCount(ctx2, &model.GetChatUnreadCountRequest{
		RoomID: room.Room.ID,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), unread.Count)

	_, err = domain.MarkRead(ctx2, &model.MarkChatReadRequest{
		RoomID:            room.Room.ID,
		LastReadMessageID: second.Message.ID,
	})
	require.NoError(t, err)

	// An older mark never moves the high-water mark backwards.
	_, err = domain.MarkRead(ctx2, &model.MarkChatReadRequest{
		RoomID:            room.Room.ID,
		LastReadMessageID: first.Message.ID,
	})
	require.NoError(t, err)

	status, err := repository.NewChatReadStatusRepository().Get(ctx, room.Room.ID, testutil.User2.ID)
	require.NoError(t, err)
	require.Equal(t, second.Message.ID, status.LastReadMessageID)

	unread, err = domain.GetUnreadCount(ctx2, &model.GetChatUnreadCountRequest{
		RoomID: room.Room.ID,
	})
	require.NoError(t, err)
	require.Equal(t, int64(0), unread.Count)
}

func Test_chatDomain_GetMyRooms(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newChatDomainForTest()

	room, err := domain.GetOrCreateRoom(ctx, &model.GetOrCreateChatRoomRequest{
		UserID: testutil.User2.ID,
	})
	require.NoError(t, err)

	_, err = domain.Send(ctx, &model.SendChatMessageRequest{
		RoomID:  room.Room.ID,
		Content: "latest",
	})
	require.NoError(t, err)

	resp, err := domain.GetMyRooms(ctx, &model.GetMyChatRoomsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Rooms, 1)
	require.Equal(t, testutil.User2.ID, resp.Rooms[0].Partner.ID)
	require.NotNil(t, resp.Rooms[0].LastMessage)
	require.Equal(t, "latest", resp.Rooms[0].LastMessage.Content)

	// User3 has no room.
	ctx3 := xcontext.WithRequestUserID(ctx, testutil.User3.ID)
	resp3, err := domain.GetMyRooms(ctx3, &model.GetMyChatRoomsRequest{})
	require.NoError(t, err)
	require.Empty(t, resp3.Rooms)
}
