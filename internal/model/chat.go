package model

// GetOrCreateChatRoomRequest resolves a room either by the partner id (POST
// body) or by the explicit pair of participant ids (GET query).
type GetOrCreateChatRoomRequest struct {
	UserID  string `json:"user_id"`
	User1ID string `json:"-" form:"user1Id"`
	User2ID string `json:"-" form:"user2Id"`
}

type GetOrCreateChatRoomResponse struct {
	Room ChatRoom `json:"room"`
}

type GetChatMessagesRequest struct {
	RoomID string `uri:"room_id"`
	Before int64  `form:"before"`
	Limit  int    `form:"limit"`
}

type GetChatMessagesResponse struct {
	Messages []ChatMessage `json:"messages"`
}

type SendChatMessageRequest struct {
	RoomID  string `uri:"room_id"`
	Content string `json:"content"`
}

type SendChatMessageResponse struct {
	Message ChatMessage `json:"message"`
}

type MarkChatReadRequest struct {
	RoomID            string `uri:"room_id"`
	LastReadMessageID int64  `json:"last_read_message_id"`
}

type MarkChatReadResponse struct{}

type GetChatUnreadCountRequest struct {
	RoomID string `uri:"room_id"`
}

type GetChatUnreadCountResponse struct {
	Count int64 `json:"count"`
}

type GetMyChatRoomsRequest struct{}

type GetMyChatRoomsResponse struct {
	Rooms []ChatRoom `json:"rooms"`
}

type ServeChatClientRequest struct {
	RoomID string `form:"room_id"`
}

// ChatFrame is a client-to-server websocket frame.
type ChatFrame struct {
	RoomID  string `json:"room_id"`
	Content string `json:"content"`
}
