package entity

type User struct {
	Base
	Username       string `gorm:"unique"`
	Email          string `gorm:"unique"`
	HashedPassword string
	Role           string `gorm:"default:user"`
	IsOnline       bool
}

const (
	AdminRole = "admin"
	UserRole  = "user"
)

type Profile struct {
	Base
	UserID       string `gorm:"unique"`
	User         User   `gorm:"foreignKey:UserID"`
	Nickname     string
	Bio          string `gorm:"type:text"`
	ImageURL     string
	ImageOffsetX int
	ImageOffsetY int
}
