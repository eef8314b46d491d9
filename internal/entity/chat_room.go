package entity

// ChatRoom is a direct-message room between exactly two users. User1ID is
// always the lexicographically smaller of the pair, so a pair maps to a
// single row regardless of who opened the room.
type ChatRoom struct {
	Base
	RoomKey string `gorm:"unique"`

	User1ID string `gorm:"uniqueIndex:idx_chat_room_pair"`
	User1   User   `gorm:"foreignKey:User1ID"`

	User2ID string `gorm:"uniqueIndex:idx_chat_room_pair"`
	User2   User   `gorm:"foreignKey:User2ID"`
}
