package model

type ShortUser struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatar_url"`
	IsOnline  bool   `json:"is_online"`
}

type User struct {
	ShortUser
	Email        string `json:"email,omitempty"`
	Role         string `json:"role,omitempty"`
	Bio          string `json:"bio"`
	ImageOffsetX int    `json:"image_offset_x"`
	ImageOffsetY int    `json:"image_offset_y"`
	CreatedAt    string `json:"created_at"`
}

type Community struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedBy   string `json:"created_by"`
	MemberCount int64  `json:"member_count"`
	CreatedAt   string `json:"created_at"`
}

type CommunityMember struct {
	User     ShortUser `json:"user"`
	JoinedAt string    `json:"joined_at"`
}

type Post struct {
	ID           string    `json:"id"`
	Author       ShortUser `json:"author"`
	CommunityID  string    `json:"community_id,omitempty"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	LikeCount    int       `json:"like_count"`
	DislikeCount int       `json:"dislike_count"`
	CreatedAt    string    `json:"created_at"`
	UpdatedAt    string    `json:"updated_at"`
}

type Comment struct {
	ID           string    `json:"id"`
	PostID       string    `json:"post_id"`
	Author       ShortUser `json:"author"`
	ParentID     string    `json:"parent_id,omitempty"`
	Content      string    `json:"content"`
	LikeCount    int       `json:"like_count"`
	DislikeCount int       `json:"dislike_count"`
	CreatedAt    string    `json:"created_at"`
	Replies      []Comment `json:"replies,omitempty"`
}

type ChatMessage struct {
	ID        int64  `json:"id"`
	RoomID    string `json:"room_id"`
	SenderID  string `json:"sender_id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

type ChatRoom struct {
	ID          string       `json:"id"`
	Partner     ShortUser    `json:"partner"`
	LastMessage *ChatMessage `json:"last_message,omitempty"`
	UnreadCount int64        `json:"unread_count"`
}

type Notification struct {
	ID        string    `json:"id"`
	Sender    ShortUser `json:"sender"`
	Type      string    `json:"type"`
	TargetID  string    `json:"target_id"`
	IsRead    bool      `json:"is_read"`
	CreatedAt string    `json:"created_at"`
}

type Report struct {
	ID         string `json:"id"`
	ReporterID string `json:"reporter_id"`
	TargetType string `json:"target_type"`
	TargetID   string `json:"target_id"`
	Reason     string `json:"reason"`
	Detail     string `json:"detail"`
	Status     string `json:"status"`
	Severity   string `json:"severity"`
	CreatedAt  string `json:"created_at"`
}
