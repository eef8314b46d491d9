package domain

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/forumlab/backend/internal/common"
	"github.com/forumlab/backend/internal/entity"
	"github.com/forumlab/backend/internal/model"
	"github.com/forumlab/backend/internal/repository"
	"github.com/forumlab/backend/pkg/errorx"
	"github.com/forumlab/backend/pkg/ws"
	"github.com/forumlab/backend/pkg/xcontext"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatDomain interface {
	GetOrCreateRoom(context.Context, *model.GetOrCreateChatRoomRequest) (*model.GetOrCreateChatRoomResponse, error)
	GetMessages(context.Context, *model.GetChatMessagesRequest) (*model.GetChatMessagesResponse, error)
	Send(context.Context, *model.SendChatMessageRequest) (*model.SendChatMessageResponse, error)
	MarkRead(context.Context, *model.MarkChatReadRequest) (*model.MarkChatReadResponse, error)
	GetUnreadCount(context.Context, *model.GetChatUnreadCountRequest) (*model.GetChatUnreadCountResponse, error)
	GetMyRooms(context.Context, *model.GetMyChatRoomsRequest) (*model.GetMyChatRoomsResponse, error)
	ServeChatClient(ctx context.Context, req *model.ServeChatClientRequest) error
}

type chatDomain struct {
	chatRoomRepo       repository.ChatRoomRepository
	chatMessageRepo    repository.ChatMessageRepository
	chatReadStatusRepo repository.ChatReadStatusRepository
	userRepo           repository.UserRepository
	profileRepo        repository.ProfileRepository
	hub                *ws.Hub
}

func NewChatDomain(
	chatRoomRepo repository.ChatRoomRepository,
	chatMessageRepo repository.ChatMessageRepository,
	chatReadStatusRepo repository.ChatReadStatusRepository,
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	hub *ws.Hub,
) *chatDomain {
	return &chatDomain{
		chatRoomRepo:       chatRoomRepo,
		chatMessageRepo:    chatMessageRepo,
		chatReadStatusRepo: chatReadStatusRepo,
		userRepo:           userRepo,
		profileRepo:        profileRepo,
		hub:                hub,
	}
}

func chatTopic(roomID string) string {
	return "/topic/chat." + roomID
}

// canonicalPair orders the two participants so a pair always maps to the
// same room row.
func canonicalPair(a, b string) (string, string) {
	if a < b {
		return a, b
	}

	return b, a
}

func (d *chatDomain) GetOrCreateRoom(
	ctx context.Context, req *model.GetOrCreateChatRoomRequest,
) (*model.GetOrCreateChatRoomResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	partnerID := req.UserID
	if partnerID == "" {
		switch userID {
		case req.User1ID:
			partnerID = req.User2ID
		case req.User2ID:
			partnerID = req.User1ID
		default:
			if req.User1ID != "" || req.User2ID != "" {
				return nil, errorx.New(errorx.PermissionDenied, "You are not a participant of this room")
			}
		}
	}

	if partnerID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty partner")
	}

	if partnerID == userID {
		return nil, errorx.New(errorx.BadRequest, "Cannot chat with yourself")
	}

	partner, err := d.userRepo.GetByID(ctx, partnerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	user1ID, user2ID := canonicalPair(userID, partnerID)
	room, err := d.chatRoomRepo.GetByPair(ctx, user1ID, user2ID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get room: %v", err)
			return nil, errorx.Unknown
		}

		room, err = d.createRoom(ctx, user1ID, user2ID)
		if err != nil {
			return nil, err
		}
	}

	return &model.GetOrCreateChatRoomResponse{
		Room: d.convertRoom(ctx, room, partner, userID),
	}, nil
}

func (d *chatDomain) createRoom(ctx context.Context, user1ID, user2ID string) (*entity.ChatRoom, error) {
	room := &entity.ChatRoom{
		Base:    entity.Base{ID: uuid.NewString()},
		RoomKey: user1ID + ":" + user2ID,
		User1ID: user1ID,
		User2ID: user2ID,
	}

	txCtx := xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(txCtx)

	if err := d.chatRoomRepo.Create(txCtx, room); err != nil {
		// A concurrent request created the room first; the unique pair
		// index rejects the second insert.
		existing, getErr := d.chatRoomRepo.GetByPair(ctx, user1ID, user2ID)
		if getErr != nil {
			xcontext.Logger(ctx).Errorf("Cannot create room: %v", err)
			return nil, errorx.Unknown
		}

		return existing, nil
	}

	xcontext.WithCommitDBTransaction(txCtx)
	return room, nil
}

func (d *chatDomain) roomOf(ctx context.Context, roomID, userID string) (*entity.ChatRoom, error) {
	room, err := d.chatRoomRepo.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found room")
		}

		xcontext.Logger(ctx).Errorf("Cannot get room: %v", err)
		return nil, errorx.Unknown
	}

	if room.User1ID != userID && room.User2ID != userID {
		return nil, errorx.New(errorx.PermissionDenied, "You are not a participant of this room")
	}

	return room, nil
}

func (d *chatDomain) GetMessages(
	ctx context.Context, req *model.GetChatMessagesRequest,
) (*model.GetChatMessagesResponse, error) {
	if _, err := d.roomOf(ctx, req.RoomID, xcontext.RequestUserID(ctx)); err != nil {
		return nil, err
	}

	_, limit, err := checkPagination(ctx, 0, req.Limit)
	if err != nil {
		return nil, err
	}

	messages, err := d.chatMessageRepo.GetByRoomID(ctx, req.RoomID, req.Before, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get messages: %v", err)
		return nil, errorx.Unknown
	}

	clientMessages := []model.ChatMessage{}
	for i := range messages {
		clientMessages = append(clientMessages, model.ConvertChatMessage(&messages[i]))
	}

	return &model.GetChatMessagesResponse{Messages: clientMessages}, nil
}

// Send persists the message first, then broadcasts it to the room topic. A
// persistence failure aborts the send; a slow subscriber only loses its own
// delivery.
func (d *chatDomain) Send(
	ctx context.Context, req *model.SendChatMessageRequest,
) (*model.SendChatMessageResponse, error) {
	return d.send(ctx, req, "http")
}

func (d *chatDomain) send(
	ctx context.Context, req *model.SendChatMessageRequest, transport string,
) (*model.SendChatMessageResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	if strings.TrimSpace(req.Content) == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty message")
	}

	if _, err := d.roomOf(ctx, req.RoomID, userID); err != nil {
		return nil, err
	}

	message := &entity.ChatMessage{
		ID:        xcontext.SnowFlake(ctx).Generate().Int64(),
		RoomID:    req.RoomID,
		SenderID:  userID,
		Content:   req.Content,
		CreatedAt: time.Now(),
	}

	if err := d.chatMessageRepo.Create(ctx, message); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create message: %v", err)
		return nil, errorx.Unknown
	}

	clientMessage := model.ConvertChatMessage(message)
	data, err := json.Marshal(clientMessage)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal message: %v", err)
		return nil, errorx.Unknown
	}

	d.hub.Broadcast(chatTopic(req.RoomID), data)
	common.PromCounters[common.ChatMessageTotal].WithLabelValues(transport).Inc()

	return &model.SendChatMessageResponse{Message: clientMessage}, nil
}

// MarkRead moves the read mark forward. An older mark never wins over a
// newer one.
func (d *chatDomain) MarkRead(
	ctx context.Context, req *model.MarkChatReadRequest,
) (*model.MarkChatReadResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if _, err := d.roomOf(ctx, req.RoomID, userID); err != nil {
		return nil, err
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	current, err := d.chatReadStatusRepo.Get(ctx, req.RoomID, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get read status: %v", err)
		return nil, errorx.Unknown
	}

	if current != nil && current.LastReadMessageID >= req.LastReadMessageID {
		xcontext.WithCommitDBTransaction(ctx)
		return &model.MarkChatReadResponse{}, nil
	}

	if err := d.chatReadStatusRepo.Upsert(ctx, &entity.ChatReadStatus{
		RoomID:            req.RoomID,
		UserID:            userID,
		LastReadMessageID: req.LastReadMessageID,
		UpdatedAt:         time.Now(),
	}); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upsert read status: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.MarkChatReadResponse{}, nil
}

func (d *chatDomain) GetUnreadCount(
	ctx context.Context, req *model.GetChatUnreadCountRequest,
) (*model.GetChatUnreadCountResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if _, err := d.roomOf(ctx, req.RoomID, userID); err != nil {
		return nil, err
	}

	count, err := d.unreadCount(ctx, req.RoomID, userID)
	if err != nil {
		return nil, err
	}

	return &model.GetChatUnreadCountResponse{Count: count}, nil
}

func (d *chatDomain) unreadCount(ctx context.Context, roomID, userID string) (int64, error) {
	afterID := int64(0)
	status, err := d.chatReadStatusRepo.Get(ctx, roomID, userID)
	if err == nil {
		afterID = status.LastReadMessageID
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get read status: %v", err)
		return 0, errorx.Unknown
	}

	count, err := d.chatMessageRepo.CountAfter(ctx, roomID, afterID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count unread messages: %v", err)
		return 0, errorx.Unknown
	}

	return count, nil
}

func (d *chatDomain) GetMyRooms(
	ctx context.Context, req *model.GetMyChatRoomsRequest,
) (*model.GetMyChatRoomsResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	rooms, err := d.chatRoomRepo.GetByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get rooms: %v", err)
		return nil, errorx.Unknown
	}

	clientRooms := []model.ChatRoom{}
	for i := range rooms {
		partnerID := rooms[i].User1ID
		if partnerID == userID {
			partnerID = rooms[i].User2ID
		}

		partner, err := d.userRepo.GetByID(ctx, partnerID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get partner %s: %v", partnerID, err)
			return nil, errorx.Unknown
		}

		clientRooms = append(clientRooms, d.convertRoom(ctx, &rooms[i], partner, userID))
	}

	return &model.GetMyChatRoomsResponse{Rooms: clientRooms}, nil
}

func (d *chatDomain) convertRoom(
	ctx context.Context, room *entity.ChatRoom, partner *entity.User, userID string,
) model.ChatRoom {
	profile, err := d.profileRepo.GetByUserID(ctx, partner.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Warnf("Cannot get partner profile: %v", err)
	}

	lastMessage, err := d.chatMessageRepo.GetLastOfRoom(ctx, room.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Warnf("Cannot get last message: %v", err)
	}

	unread, err := d.unreadCount(ctx, room.ID, userID)
	if err != nil {
		unread = 0
	}

	return model.ConvertChatRoom(room, model.ConvertShortUser(partner, profile), lastMessage, unread)
}

// ServeChatClient pumps the websocket session of one participant. Incoming
// frames become regular sends; messages broadcast to the room topic are
// forwarded to the peer.
func (d *chatDomain) ServeChatClient(ctx context.Context, req *model.ServeChatClientRequest) error {
	userID := xcontext.RequestUserID(ctx)
	room, err := d.roomOf(ctx, req.RoomID, userID)
	if err != nil {
		return err
	}

	topic := chatTopic(room.ID)
	hubCh, err := d.hub.Register(topic, userID)
	if err != nil {
		return errorx.New(errorx.AlreadyExists, "You have already connected to this room")
	}
	defer d.hub.Unregister(topic, userID)

	client := xcontext.WSClient(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil

		case msg, ok := <-hubCh:
			if !ok {
				return nil
			}

			if err := client.Write(msg); err != nil {
				xcontext.Logger(ctx).Debugf("Cannot write to client: %v", err)
				return nil
			}

		case frame, ok := <-client.R:
			if !ok {
				return nil
			}

			var chatFrame model.ChatFrame
			if err := json.Unmarshal(frame, &chatFrame); err != nil {
				xcontext.Logger(ctx).Debugf("Cannot parse chat frame: %v", err)
				continue
			}

			if chatFrame.RoomID == "" {
				chatFrame.RoomID = room.ID
			}

			_, err := d.send(ctx, &model.SendChatMessageRequest{
				RoomID:  chatFrame.RoomID,
				Content: chatFrame.Content,
			}, "websocket")
			if err != nil {
				xcontext.Logger(ctx).Debugf("Cannot send message: %v", err)
			}
		}
	}
}
