package entity

import "time"

type RefreshToken struct {
	Base

	UserID string
	User   User `gorm:"foreignKey:UserID"`

	Token      string `gorm:"unique"`
	Expiration time.Time
}
