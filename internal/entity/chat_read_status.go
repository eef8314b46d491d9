package entity

import "time"

type ChatReadStatus struct {
	RoomID string   `gorm:"primaryKey"`
	Room   ChatRoom `gorm:"foreignKey:RoomID"`

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	LastReadMessageID int64
	UpdatedAt         time.Time
}
