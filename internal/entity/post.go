package entity

import "database/sql"

type Post struct {
	Base
	AuthorID string
	Author   User `gorm:"foreignKey:AuthorID"`

	CommunityID sql.NullString
	Community   Community `gorm:"foreignKey:CommunityID"`

	Title        string
	Content      string `gorm:"type:longtext"`
	LikeCount    int
	DislikeCount int
}
