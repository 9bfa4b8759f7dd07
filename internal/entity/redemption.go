package entity

import "database/sql"

// Redemption is the immutable record of a completed point-for-reward
// exchange. CreatedAt is the redemption timestamp.
type Redemption struct {
	Base

	UserID string
	User   User `gorm:"foreignKey:UserID"`

	RewardID string
	Reward   Reward `gorm:"foreignKey:RewardID"`

	Code        string `gorm:"unique"`
	PointsSpent uint64
	UsedAt      sql.NullTime
}
