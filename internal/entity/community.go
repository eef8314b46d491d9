package entity

import "time"

type Community struct {
	Base
	Name          string `gorm:"unique"`
	Description   string `gorm:"type:text"`
	CreatedBy     string
	CreatedByUser User `gorm:"foreignKey:CreatedBy"`
}

type CommunityMember struct {
	CommunityID string    `gorm:"primaryKey"`
	Community   Community `gorm:"foreignKey:CommunityID"`

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	JoinedAt time.Time
}
