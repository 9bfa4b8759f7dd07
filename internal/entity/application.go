package entity

import (
	"database/sql"
	"time"

	"github.com/volunhub/backend/pkg/enum"
)

type ApplicationStatus string

var (
	ApplicationPending  = enum.New(ApplicationStatus("pending"))
	ApplicationApproved = enum.New(ApplicationStatus("approved"))
	ApplicationRejected = enum.New(ApplicationStatus("rejected"))
)

type Application struct {
	Base

	OpportunityID string      `gorm:"uniqueIndex:idx_applications_volunteer_opportunity"`
	Opportunity   Opportunity `gorm:"foreignKey:OpportunityID"`

	VolunteerID string `gorm:"uniqueIndex:idx_applications_volunteer_opportunity"`
	Volunteer   User   `gorm:"foreignKey:VolunteerID"`

	Message     string
	Status      ApplicationStatus
	ReviewerID  string
	ReviewedAt  time.Time
	CompletedAt sql.NullTime
}
