package entity

import (
	"database/sql"
	"time"

	"github.com/volunhub/backend/pkg/enum"
)

type OpportunityStatus string

var (
	OpportunityDraft     = enum.New(OpportunityStatus("draft"))
	OpportunityOpen      = enum.New(OpportunityStatus("open"))
	OpportunityCancelled = enum.New(OpportunityStatus("cancelled"))
	OpportunityCompleted = enum.New(OpportunityStatus("completed"))
)

type Opportunity struct {
	Base

	PromoterID string
	Promoter   User `gorm:"foreignKey:PromoterID"`

	Title       string
	Description string `gorm:"type:longtext"`
	Location    sql.NullString

	StartDate time.Time
	EndDate   time.Time

	MaxVolunteers int
	Points        uint64
	Status        OpportunityStatus
}

// IsEditable reports whether the opportunity still accepts updates. Cancelled
// and completed opportunities are frozen.
func (o *Opportunity) IsEditable() bool {
	return o.Status == OpportunityDraft || o.Status == OpportunityOpen
}

type OpportunitySkill struct {
	CreatedAt time.Time

	OpportunityID string      `gorm:"primaryKey"`
	Opportunity   Opportunity `gorm:"foreignKey:OpportunityID"`

	SkillID string `gorm:"primaryKey"`
	Skill   Skill  `gorm:"foreignKey:SkillID"`
}
