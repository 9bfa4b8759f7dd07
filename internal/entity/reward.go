package entity

import (
	"database/sql"

	"github.com/volunhub/backend/pkg/enum"
)

type RewardType string

var (
	RewardVoucher     = enum.New(RewardType("voucher"))
	RewardMerchandise = enum.New(RewardType("merchandise"))
	RewardExperience  = enum.New(RewardType("experience"))
	RewardDonation    = enum.New(RewardType("donation"))
)

type Reward struct {
	Base

	Title       string
	Description string `gorm:"type:longtext"`

	// Points is the redemption cost, snapshotted into the redemption row.
	Points uint64
	Type   RewardType

	PartnerID sql.NullString
	Partner   User `gorm:"foreignKey:PartnerID"`

	// Quantity is NULL for unlimited rewards. Use StockLimit instead of
	// reading this field directly.
	Quantity sql.NullInt64

	IsActive       bool
	AvailableFrom  sql.NullTime
	AvailableUntil sql.NullTime

	CreatedBy string
}

// StockLimit returns the maximum number of redemptions and whether the reward
// is stock-limited at all. When the second value is false the stock counter
// must not be consulted.
func (r *Reward) StockLimit() (int64, bool) {
	return r.Quantity.Int64, r.Quantity.Valid
}
