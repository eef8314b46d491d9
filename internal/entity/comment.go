package entity

import "database/sql"

type Comment struct {
	Base
	PostID string
	Post   Post `gorm:"foreignKey:PostID"`

	AuthorID string
	Author   User `gorm:"foreignKey:AuthorID"`

	// ParentID, when set, must point to a comment of the same post.
	ParentID sql.NullString

	Content      string `gorm:"type:text"`
	LikeCount    int
	DislikeCount int
}
