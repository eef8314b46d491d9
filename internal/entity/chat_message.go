package entity

import "time"

// ChatMessage IDs are snowflakes, so ascending ID order is creation order
// even when timestamps collide.
type ChatMessage struct {
	ID        int64 `gorm:"primaryKey"`
	RoomID    string
	Room      ChatRoom `gorm:"foreignKey:RoomID"`
	SenderID  string
	Sender    User `gorm:"foreignKey:SenderID"`
	Content   string `gorm:"type:text"`
	CreatedAt time.Time
}
